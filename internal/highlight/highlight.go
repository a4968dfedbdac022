// Package highlight maps the terms of matched literals to semantic ranges
// and renders hover text.
package highlight

import (
	"fmt"
	"strings"

	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/ir"
	"github.com/roach88/lels/internal/validate"
)

// Category classifies a term. Terms introduced with an article are
// variables; everything else is a constant.
func Category(term string) ir.SemanticCategory {
	lower := strings.ToLower(term)
	for _, article := range []string{"a ", "an ", "the "} {
		if strings.HasPrefix(lower, article) {
			return ir.CategoryVariable
		}
	}
	return ir.CategoryConstant
}

// Ranges returns a semantic range for every term of every literal that
// has a template, in document order.
func Ranges(p *analysis.Pass) []ir.SemanticRange {
	var ranges []ir.SemanticRange
	for i := range p.Literals {
		for _, ref := range p.Terms(i) {
			ranges = append(ranges, ir.SemanticRange{
				Line:     ref.Range.Start.Line,
				Column:   ref.Range.Start.Column,
				Length:   ref.Range.End.Column - ref.Range.Start.Column,
				Category: Category(ref.Name),
			})
		}
	}
	return ranges
}

// Hover describes the literal under pos: the template it matches and the
// type of each term.
func Hover(p *analysis.Pass, pos ir.Position) (ir.Hover, bool) {
	i, ok := p.LiteralAt(pos)
	if !ok {
		return ir.Hover{}, false
	}
	lit := p.Literals[i]

	best := p.Catalog.BestMatch(lit.Text)
	if best == nil {
		return ir.Hover{Range: lit.Range(), Markdown: validate.MessageNoTemplate}, true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "`%s`", best.String())
	for _, ref := range p.Terms(i) {
		fmt.Fprintf(&b, "\n\n- %s: *%s*", ref.Name, p.Tree.Name(ref.Type))
	}
	return ir.Hover{Range: lit.Range(), Markdown: b.String()}, true
}
