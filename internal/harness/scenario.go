package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the inline document text. Exactly one of Document and
	// File must be set.
	Document string `yaml:"document,omitempty"`

	// File is a path to the document, relative to the scenario file.
	File string `yaml:"file,omitempty"`

	// TypeChecking forces type checking on.
	TypeChecking bool `yaml:"type_checking,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect groups the scenario's expectations. A nil list is not checked.
type Expect struct {
	Diagnostics []ExpectedDiagnostic `yaml:"diagnostics"`
	Completions []ExpectedCompletion `yaml:"completions,omitempty"`
	Templates   []ExpectedTemplate   `yaml:"templates,omitempty"`
	Suggestions []string             `yaml:"suggestions"`
}

// ExpectedDiagnostic matches a diagnostic by line and code. Column and
// Message are checked only when set.
type ExpectedDiagnostic struct {
	Line    int    `yaml:"line"`
	Column  *int   `yaml:"column,omitempty"`
	Code    string `yaml:"code"`
	Message string `yaml:"message,omitempty"`
}

// ExpectedCompletion lists the labels offered at a cursor.
type ExpectedCompletion struct {
	Line   int      `yaml:"line"`
	Column int      `yaml:"column"`
	Labels []string `yaml:"labels"`
}

// ExpectedTemplate names the template a literal resolves to.
type ExpectedTemplate struct {
	Literal  string `yaml:"literal"`
	Template string `yaml:"template"`
}

func (e Expect) empty() bool {
	return e.Diagnostics == nil && len(e.Completions) == 0 &&
		len(e.Templates) == 0 && e.Suggestions == nil
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.File != "" && !filepath.IsAbs(scenario.File) {
		scenario.File = filepath.Join(filepath.Dir(path), scenario.File)
	}
	if scenario.File != "" {
		if _, err := os.Stat(scenario.File); err != nil {
			return nil, fmt.Errorf("invalid scenario: document file: %w", err)
		}
	}

	return scenario, nil
}

// ParseScenario decodes a scenario with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}

	switch {
	case s.Document == "" && s.File == "":
		return errors.New("one of document or file is required")
	case s.Document != "" && s.File != "":
		return errors.New("document and file are mutually exclusive")
	}

	if s.Expect.empty() {
		return errors.New("expect must contain at least one expectation")
	}

	for i, d := range s.Expect.Diagnostics {
		if d.Code == "" {
			return fmt.Errorf("expect.diagnostics[%d]: code is required", i)
		}
		if d.Line < 0 {
			return fmt.Errorf("expect.diagnostics[%d]: line must be non-negative", i)
		}
	}
	for i, c := range s.Expect.Completions {
		if c.Line < 0 || c.Column < 0 {
			return fmt.Errorf("expect.completions[%d]: line and column must be non-negative", i)
		}
	}
	for i, t := range s.Expect.Templates {
		if t.Literal == "" {
			return fmt.Errorf("expect.templates[%d]: literal is required", i)
		}
	}
	return nil
}
