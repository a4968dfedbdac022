package harness

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/complete"
	"github.com/roach88/lels/internal/quickfix"
	"github.com/roach88/lels/internal/validate"
)

// Harness runs scenarios with fixed analysis settings.
type Harness struct {
	analysis        analysis.Options
	maxProblems     int
	completionLimit int
	logger          *zap.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithAnalysis sets the analysis options every scenario starts from.
func WithAnalysis(opts analysis.Options) Option {
	return func(h *Harness) { h.analysis = opts }
}

// WithLimits sets the diagnostic cap and completion count.
func WithLimits(maxProblems, completionLimit int) Option {
	return func(h *Harness) {
		h.maxProblems = maxProblems
		h.completionLimit = completionLimit
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// New returns a harness with default limits.
func New(opts ...Option) *Harness {
	h := &Harness{
		maxProblems:     validate.DefaultMaxProblems,
		completionLimit: complete.DefaultLimit,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run analyses the scenario's document and evaluates its expectations.
// The returned error reports problems running the scenario; failed
// expectations are recorded on the result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	text := scenario.Document
	if scenario.File != "" {
		data, err := os.ReadFile(scenario.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		text = string(data)
	}

	opts := h.analysis
	opts.TypeChecking = opts.TypeChecking || scenario.TypeChecking
	p := analysis.Analyze(text, opts)

	result := NewResult()
	result.Diagnostics = append(result.Diagnostics, validate.Document(p, h.maxProblems)...)

	for _, c := range scenario.Expect.Completions {
		result.Completions = append(result.Completions, CompletionResult{
			Line:   c.Line,
			Column: c.Column,
			Items:  complete.Complete(p, c.Line, c.Column, h.completionLimit),
		})
	}

	for _, t := range scenario.Expect.Templates {
		tr := TemplateResult{Literal: t.Literal}
		if best := p.Catalog.BestMatch(t.Literal); best != nil {
			tr.Template = best.String()
		}
		result.Templates = append(result.Templates, tr)
	}

	for _, s := range quickfix.Suggest(p) {
		result.Suggestions = append(result.Suggestions, s.Template.String())
	}

	for _, err := range EvaluateAssertions(result, scenario.Expect) {
		result.AddError(err.Error())
	}

	h.logger.Debug("scenario finished",
		zap.String("scenario", scenario.Name),
		zap.Bool("pass", result.Pass),
		zap.Int("diagnostics", len(result.Diagnostics)),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}
