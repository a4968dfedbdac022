package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"likes", "completion"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestResult_Snapshot(t *testing.T) {
	r := NewResult()
	r.Templates = []TemplateResult{{Literal: "x", Template: ""}}

	require.Equal(t, "scenario: empty\n\ndiagnostics:\n\ntemplates:\n  x => (none)\n\nsuggestions:\n", r.Snapshot("empty"))
}
