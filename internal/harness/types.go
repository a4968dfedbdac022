package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/lels/internal/ir"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Errors contains one message per failed expectation.
	Errors []string `json:"errors,omitempty"`

	Diagnostics []ir.Diagnostic    `json:"diagnostics"`
	Completions []CompletionResult `json:"completions,omitempty"`
	Templates   []TemplateResult   `json:"templates,omitempty"`
	Suggestions []string           `json:"suggestions"`
}

// CompletionResult holds the completions offered at one cursor.
type CompletionResult struct {
	Line   int             `json:"line"`
	Column int             `json:"column"`
	Items  []ir.Completion `json:"items"`
}

// Labels returns the item labels in rank order.
func (c CompletionResult) Labels() []string {
	labels := make([]string, len(c.Items))
	for i, item := range c.Items {
		labels[i] = item.Label
	}
	return labels
}

// TemplateResult is the template a literal resolved to, or "" for none.
type TemplateResult struct {
	Literal  string `json:"literal"`
	Template string `json:"template"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Errors:      []string{},
		Diagnostics: []ir.Diagnostic{},
		Suggestions: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Snapshot renders the result as deterministic text. Positions are
// 0-based line:column pairs, as in scenario files.
func (r *Result) Snapshot(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)

	b.WriteString("\ndiagnostics:\n")
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "  %s %s %s %s\n", span(d.Range), d.Code, d.Severity, d.Message)
	}

	for _, c := range r.Completions {
		fmt.Fprintf(&b, "\ncompletions at %d:%d:\n", c.Line, c.Column)
		for _, item := range c.Items {
			fmt.Fprintf(&b, "  %d %.2f %s\n", item.Rank, item.Score, item.Label)
			fmt.Fprintf(&b, "    insert: %s\n", item.InsertText)
		}
	}

	if len(r.Templates) > 0 {
		b.WriteString("\ntemplates:\n")
		for _, t := range r.Templates {
			tmpl := t.Template
			if tmpl == "" {
				tmpl = "(none)"
			}
			fmt.Fprintf(&b, "  %s => %s\n", t.Literal, tmpl)
		}
	}

	b.WriteString("\nsuggestions:\n")
	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "  %s\n", s)
	}

	return b.String()
}

func span(r ir.Range) string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}
