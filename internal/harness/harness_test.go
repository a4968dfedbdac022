package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/lels/internal/analysis"
)

func TestRun_Scenarios(t *testing.T) {
	for _, name := range []string{"likes", "completion", "typed"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := New(WithLogger(zaptest.NewLogger(t))).Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_RecordsFailures(t *testing.T) {
	s := &Scenario{
		Name:        "failing",
		Description: "expects a clean document that is not",
		Document:    "knowledge base:\nbob dances.\n",
		Expect:      Expect{Diagnostics: []ExpectedDiagnostic{}},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: diagnostics")
	assert.Equal(t, []string{"bob dances"}, result.Suggestions)
}

func TestRun_TypeCheckingOption(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/typed.yaml")
	require.NoError(t, err)
	s.TypeChecking = false

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Empty(t, result.Diagnostics)

	result, err = New(WithAnalysis(analysis.Options{TypeChecking: true})).Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_Limits(t *testing.T) {
	s := &Scenario{
		Name:        "limits",
		Description: "caps diagnostics",
		Document:    "knowledge base:\nbob dances.\nalice sings.\ncarol hums.\n",
		Expect:      Expect{Diagnostics: []ExpectedDiagnostic{{Line: 1, Code: "W101"}}},
	}

	result, err := New(WithLimits(1, 1)).Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_MissingDocumentFile(t *testing.T) {
	s := &Scenario{Name: "x", Description: "y", File: "testdata/documents/missing.le"}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}
