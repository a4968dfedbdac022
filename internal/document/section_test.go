package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tastyDoc = `the templates are:
*a person* really likes *an object*.

the knowledge base tasty includes:
fred bloggs really likes apples.
hello if
    blob
    and alpha.`

func TestClassify(t *testing.T) {
	tests := []struct {
		line   string
		kind   Kind
		header bool
	}{
		{"the templates are:", KindTemplates, true},
		{"The Type Hierarchy is:", KindTypeHierarchy, true},
		{"the knowledge base tasty includes:", KindClauses, true},
		{"scenario one is:", KindClauses, true},
		{"query two is:", KindClauses, true},
		{"some other thing:", KindOther, true},
		{"fred bloggs really likes apples.", KindOther, false},
		{"", KindOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			kind, header := Classify(tt.line)
			assert.Equal(t, tt.header, header)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestSections_Located(t *testing.T) {
	sections := Sections(tastyDoc)

	templates, ok := sections[KindTemplates]
	require.True(t, ok)
	assert.Equal(t, 0, templates.HeaderLine)
	assert.Equal(t, 1, templates.StartLine)
	assert.Equal(t, 2, templates.EndLine)
	assert.Equal(t, []string{"*a person* really likes *an object*.", ""}, templates.Lines)
	assert.Equal(t, 1, templates.LastContentLine())

	clauses, ok := sections[KindClauses]
	require.True(t, ok)
	assert.Equal(t, 4, clauses.StartLine)
	assert.Equal(t, 7, clauses.EndLine)

	_, ok = sections[KindTypeHierarchy]
	assert.False(t, ok, "absent header means absent section")
}

func TestSections_BoundaryIgnoresBlankLines(t *testing.T) {
	body := []string{"*a thing* is red", "", "*a thing* is blue", "", "", "*a thing* is green"}
	text := "templates:\n" + strings.Join(body, "\n") + "\nknowledge base:\nx is red."

	templates := Sections(text)[KindTemplates]
	assert.Len(t, templates.Lines, len(body))
	assert.Equal(t, body, templates.Lines)
}

func TestSections_ClauseAreaSpansSameKindHeaders(t *testing.T) {
	text := strings.Join([]string{
		"the knowledge base includes:", // 0
		"a is b.",                      // 1
		"scenario one is:",             // 2
		"c is d.",                      // 3
		"query one is:",                // 4
		"which is b.",                  // 5
		"the type hierarchy is:",       // 6
		"person",                       // 7
	}, "\n")

	sections := Sections(text)
	area := sections[KindClauses]
	assert.Equal(t, 1, area.StartLine)
	assert.Equal(t, 5, area.EndLine)

	hierarchy := sections[KindTypeHierarchy]
	assert.Equal(t, []string{"person"}, hierarchy.Lines)
}

func TestSections_OnlyFirstRangePerKind(t *testing.T) {
	text := "templates:\nfirst\nknowledge base:\nx.\ntemplates:\nsecond"

	templates := Sections(text)[KindTemplates]
	assert.Equal(t, []string{"first"}, templates.Lines)
}

func TestSections_HeaderOnLastLine(t *testing.T) {
	templates := Sections("a.\ntemplates:")[KindTemplates]
	assert.Empty(t, templates.Lines)
	assert.Equal(t, templates.StartLine-1, templates.EndLine)
	assert.Equal(t, templates.HeaderLine, templates.LastContentLine())
}

func TestSplitLines_DropsCarriageReturns(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\r\nb\r\n"))
}
