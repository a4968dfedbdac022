package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/ir"
)

const doc = `templates:
*a person* really likes *an object*.

knowledge base:
fred bloggs really likes the apple.
bob dances.
`

func TestCategory(t *testing.T) {
	assert.Equal(t, ir.CategoryVariable, Category("a person"))
	assert.Equal(t, ir.CategoryVariable, Category("An object"))
	assert.Equal(t, ir.CategoryVariable, Category("the apple"))
	assert.Equal(t, ir.CategoryConstant, Category("fred bloggs"))
	assert.Equal(t, ir.CategoryConstant, Category("apple"))
	assert.Equal(t, ir.CategoryConstant, Category("theatre"))
}

func TestRanges(t *testing.T) {
	p := analysis.Analyze(doc, analysis.Options{})

	got := Ranges(p)

	assert.Equal(t, []ir.SemanticRange{
		{Line: 4, Column: 0, Length: 11, Category: ir.CategoryConstant},
		{Line: 4, Column: 25, Length: 9, Category: ir.CategoryVariable},
	}, got)
}

func TestHover(t *testing.T) {
	p := analysis.Analyze(doc, analysis.Options{})

	h, ok := Hover(p, ir.Position{Line: 4, Column: 3})
	require.True(t, ok)
	assert.Equal(t, ir.LineRange(4, 0, 34), h.Range)
	assert.Equal(t, "`*a person* really likes *an object*`\n\n- fred bloggs: *person*\n\n- the apple: *object*", h.Markdown)

	h, ok = Hover(p, ir.Position{Line: 5, Column: 0})
	require.True(t, ok)
	assert.Equal(t, "Literal has no template.", h.Markdown)

	_, ok = Hover(p, ir.Position{Line: 1, Column: 0})
	assert.False(t, ok)
}
