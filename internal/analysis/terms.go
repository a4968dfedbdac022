package analysis

import (
	"github.com/roach88/lels/internal/ir"
	"github.com/roach88/lels/internal/template"
)

// TermRef is a term of a literal located in the document.
type TermRef struct {
	template.Term
	Range   ir.Range
	Literal int
}

// Terms returns the terms of literal i as bound by its best matching
// template. A literal without a template has no terms.
func (p *Pass) Terms(i int) []TermRef {
	if i < 0 || i >= len(p.Literals) {
		return nil
	}
	lit := p.Literals[i]
	best := p.Catalog.BestMatch(lit.Text)
	if best == nil {
		return nil
	}

	located := best.LocateTerms(lit.Text)
	refs := make([]TermRef, len(located))
	for k, lt := range located {
		refs[k] = TermRef{
			Term:    lt.Term,
			Range:   ir.LineRange(lit.Line, lit.Start+lt.Start, lit.Start+lt.End),
			Literal: i,
		}
	}
	return refs
}

// ClauseTerms returns the terms of every literal of clause c in order.
func (p *Pass) ClauseTerms(c int) []TermRef {
	var refs []TermRef
	for i, lit := range p.Literals {
		if lit.Clause == c {
			refs = append(refs, p.Terms(i)...)
		}
	}
	return refs
}
