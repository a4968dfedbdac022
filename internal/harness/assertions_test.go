package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lels/internal/ir"
)

func intPtr(n int) *int { return &n }

var noTemplate = ir.Diagnostic{
	Range:    ir.LineRange(4, 2, 12),
	Severity: ir.SeverityWarning,
	Code:     "W101",
	Message:  "Literal has no template.",
}

func TestAssertDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		expected []ExpectedDiagnostic
		wantErrs int
	}{
		{"line and code", []ExpectedDiagnostic{{Line: 4, Code: "W101"}}, 0},
		{"column", []ExpectedDiagnostic{{Line: 4, Column: intPtr(2), Code: "W101"}}, 0},
		{"message", []ExpectedDiagnostic{{Line: 4, Code: "W101", Message: "Literal has no template."}}, 0},
		{"wrong line", []ExpectedDiagnostic{{Line: 3, Code: "W101"}}, 1},
		{"wrong column", []ExpectedDiagnostic{{Line: 4, Column: intPtr(0), Code: "W101"}}, 1},
		{"wrong code", []ExpectedDiagnostic{{Line: 4, Code: "W102"}}, 1},
		{"wrong message", []ExpectedDiagnostic{{Line: 4, Code: "W101", Message: "nope"}}, 1},
		{"count", []ExpectedDiagnostic{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := assertDiagnostics([]ir.Diagnostic{noTemplate}, tt.expected)
			assert.Len(t, errs, tt.wantErrs)
			for _, err := range errs {
				var ae *AssertionError
				require.True(t, errors.As(err, &ae))
				assert.Equal(t, AssertDiagnostics, ae.Kind)
			}
		})
	}
}

func TestAssertionError_Message(t *testing.T) {
	errs := assertDiagnostics([]ir.Diagnostic{noTemplate}, nil)
	require.Len(t, errs, 1)

	msg := errs[0].Error()
	assert.Contains(t, msg, "Assertion failed: diagnostics")
	assert.Contains(t, msg, "Expected: 0 diagnostic(s)")
	assert.Contains(t, msg, "Actual: 1 diagnostic(s)")
	assert.Contains(t, msg, `W101 at 4:2 "Literal has no template."`)
}

func TestEvaluateAssertions(t *testing.T) {
	result := &Result{
		Diagnostics: []ir.Diagnostic{noTemplate},
		Completions: []CompletionResult{{
			Line: 4, Column: 8,
			Items: []ir.Completion{{Label: "fred likes *a thing*"}, {Label: "fred loves *a thing*"}},
		}},
		Templates:   []TemplateResult{{Literal: "fred likes apples", Template: "*a person* likes *a thing*"}},
		Suggestions: []string{"bob dances"},
	}

	t.Run("all hold", func(t *testing.T) {
		errs := EvaluateAssertions(result, Expect{
			Diagnostics: []ExpectedDiagnostic{{Line: 4, Code: "W101"}},
			Completions: []ExpectedCompletion{{Line: 4, Column: 8, Labels: []string{"fred likes *a thing*", "fred loves *a thing*"}}},
			Templates:   []ExpectedTemplate{{Literal: "fred likes apples", Template: "*a person* likes *a thing*"}},
			Suggestions: []string{"bob dances"},
		})
		assert.Empty(t, errs)
	})

	t.Run("nil expectations are skipped", func(t *testing.T) {
		assert.Empty(t, EvaluateAssertions(result, Expect{}))
	})

	t.Run("every failure is reported", func(t *testing.T) {
		errs := EvaluateAssertions(result, Expect{
			Diagnostics: []ExpectedDiagnostic{},
			Completions: []ExpectedCompletion{{Line: 4, Column: 8, Labels: []string{"fred loves *a thing*"}}},
			Templates:   []ExpectedTemplate{{Literal: "fred likes apples"}},
			Suggestions: []string{},
		})
		require.Len(t, errs, 4)

		kinds := make([]string, len(errs))
		for i, err := range errs {
			var ae *AssertionError
			require.True(t, errors.As(err, &ae))
			kinds[i] = ae.Kind
		}
		assert.Equal(t, []string{AssertDiagnostics, AssertCompletions, AssertTemplates, AssertSuggestions}, kinds)
		assert.Contains(t, errs[3].Error(), "Diff (-expected +actual)")
	})
}
