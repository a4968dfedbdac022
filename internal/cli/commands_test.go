package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestCommandOutput_Golden(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		exitCode int
	}{
		{name: "check_text", args: []string{"check", "testdata/docs/likes.le"}, exitCode: ExitFailure},
		{name: "check_json", args: []string{"--format", "json", "check", "testdata/docs"}, exitCode: ExitFailure},
		{name: "complete_text", args: []string{"complete", "testdata/docs/likes.le", "--line", "11", "--column", "13"}},
		{name: "suggest_text", args: []string{"suggest", "testdata/docs/likes.le"}},
		{name: "tokens_text", args: []string{"tokens", "testdata/docs/likes.le"}},
		{name: "types_text", args: []string{"types", "testdata/docs/likes.le"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
			newGoldie(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestCompleteCommand_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "complete", "testdata/docs/likes.le", "--line", "11", "--column", "13")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   CompleteResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Completions, 1)
	assert.Equal(t, "fred bloggs is hungry", resp.Data.Completions[0].Label)
	assert.InDelta(t, 0.5, resp.Data.Completions[0].Score, 1e-9)
}

func TestCompleteCommand_OutsideClauseArea(t *testing.T) {
	out, err := execute(t, "complete", "testdata/docs/likes.le", "--line", "4", "--column", "3")
	require.NoError(t, err)
	assert.Equal(t, "No completions.\n", out)
}

func TestCompleteCommand_BadPosition(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing flags", args: []string{"complete", "testdata/docs/likes.le"}},
		{name: "line past end", args: []string{"complete", "testdata/docs/likes.le", "--line", "99", "--column", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestSuggestCommand_NothingToSuggest(t *testing.T) {
	out, err := execute(t, "suggest", "testdata/docs/nested/clean.le")
	require.NoError(t, err)
	assert.Equal(t, "Every literal has a template.\n", out)
}

func TestTypesCommand_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "types", "testdata/docs/likes.le")
	require.NoError(t, err)

	var resp struct {
		Data TypesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "any", resp.Data.Tree.Name)
	require.NotEmpty(t, resp.Data.Tree.Subtypes)
	assert.Equal(t, "person", resp.Data.Tree.Subtypes[0].Name)
	require.Len(t, resp.Data.Tree.Subtypes[0].Subtypes, 1)
	assert.Equal(t, "cook", resp.Data.Tree.Subtypes[0].Subtypes[0].Name)
	assert.Empty(t, resp.Data.Ignored)
}

func TestFindDocuments(t *testing.T) {
	files, err := FindDocuments([]string{"testdata/docs", "testdata/docs/likes.le"})
	require.NoError(t, err)
	assert.Equal(t, []string{"testdata/docs/likes.le", "testdata/docs/nested/clean.le"}, files)

	_, err = FindDocuments([]string{"testdata/docs/nested/notes.txt"})
	require.NoError(t, err, "files named explicitly are taken as given")

	_, err = FindDocuments([]string{"testdata/missing"})
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}
