package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/lels/internal/ir"
)

// Assertion kinds.
const (
	AssertDiagnostics = "diagnostics"
	AssertCompletions = "completions"
	AssertTemplates   = "templates"
	AssertSuggestions = "suggestions"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Kind     string // Assertion kind for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Diff     string // cmp diff (-expected +actual), when available
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Kind)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Diff != "" {
		fmt.Fprintf(&buf, "\nDiff (-expected +actual):\n%s", e.Diff)
	}

	return buf.String()
}

// EvaluateAssertions checks every expectation against the result and
// returns one error per failure.
func EvaluateAssertions(r *Result, expect Expect) []error {
	var errs []error

	if expect.Diagnostics != nil {
		errs = append(errs, assertDiagnostics(r.Diagnostics, expect.Diagnostics)...)
	}
	for i, want := range expect.Completions {
		if i >= len(r.Completions) {
			break
		}
		if err := assertCompletions(r.Completions[i], want); err != nil {
			errs = append(errs, err)
		}
	}
	for i, want := range expect.Templates {
		if i >= len(r.Templates) {
			break
		}
		if err := assertTemplate(r.Templates[i], want); err != nil {
			errs = append(errs, err)
		}
	}
	if expect.Suggestions != nil {
		if err := assertSuggestions(r.Suggestions, expect.Suggestions); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// assertDiagnostics requires the same number of diagnostics, matched in
// order.
func assertDiagnostics(actual []ir.Diagnostic, expected []ExpectedDiagnostic) []error {
	if len(actual) != len(expected) {
		want := make([]string, len(expected))
		for i, d := range expected {
			want[i] = describeExpected(d)
		}
		got := make([]string, len(actual))
		for i, d := range actual {
			got[i] = describe(d)
		}
		return []error{&AssertionError{
			Kind:     AssertDiagnostics,
			Expected: fmt.Sprintf("%d diagnostic(s)", len(expected)),
			Actual:   fmt.Sprintf("%d diagnostic(s)", len(actual)),
			Diff:     cmp.Diff(want, got),
		}}
	}

	var errs []error
	for i, want := range expected {
		if !matchDiagnostic(actual[i], want) {
			errs = append(errs, &AssertionError{
				Kind:     AssertDiagnostics,
				Expected: fmt.Sprintf("[%d] %s", i, describeExpected(want)),
				Actual:   fmt.Sprintf("[%d] %s", i, describe(actual[i])),
			})
		}
	}
	return errs
}

func matchDiagnostic(d ir.Diagnostic, want ExpectedDiagnostic) bool {
	if d.Code != want.Code || d.Range.Start.Line != want.Line {
		return false
	}
	if want.Column != nil && d.Range.Start.Column != *want.Column {
		return false
	}
	if want.Message != "" && d.Message != want.Message {
		return false
	}
	return true
}

func describe(d ir.Diagnostic) string {
	return fmt.Sprintf("%s at %d:%d %q", d.Code, d.Range.Start.Line, d.Range.Start.Column, d.Message)
}

func describeExpected(d ExpectedDiagnostic) string {
	s := fmt.Sprintf("%s at line %d", d.Code, d.Line)
	if d.Column != nil {
		s = fmt.Sprintf("%s at %d:%d", d.Code, d.Line, *d.Column)
	}
	if d.Message != "" {
		s += fmt.Sprintf(" %q", d.Message)
	}
	return s
}

func assertCompletions(actual CompletionResult, want ExpectedCompletion) error {
	labels := actual.Labels()
	want.Labels = nonNil(want.Labels)
	if slices.Equal(labels, want.Labels) {
		return nil
	}
	return &AssertionError{
		Kind:     AssertCompletions,
		Expected: fmt.Sprintf("%q at %d:%d", want.Labels, want.Line, want.Column),
		Actual:   fmt.Sprintf("%q", labels),
		Diff:     cmp.Diff(want.Labels, labels),
	}
}

func assertTemplate(actual TemplateResult, want ExpectedTemplate) error {
	if actual.Template == want.Template {
		return nil
	}
	return &AssertionError{
		Kind:     AssertTemplates,
		Expected: fmt.Sprintf("%q matches %q", want.Literal, want.Template),
		Actual:   fmt.Sprintf("%q matches %q", actual.Literal, actual.Template),
	}
}

func assertSuggestions(actual, expected []string) error {
	if slices.Equal(actual, expected) {
		return nil
	}
	return &AssertionError{
		Kind:     AssertSuggestions,
		Expected: fmt.Sprintf("%q", expected),
		Actual:   fmt.Sprintf("%q", actual),
		Diff:     cmp.Diff(expected, actual),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
