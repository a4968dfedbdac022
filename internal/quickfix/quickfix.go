// Package quickfix offers "Generate a template" fixes for literals that no
// template matches.
package quickfix

import (
	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/document"
	"github.com/roach88/lels/internal/ir"
	"github.com/roach88/lels/internal/template"
	"github.com/roach88/lels/internal/validate"
)

// Title is the title of every generated action.
const Title = "Generate a template"

// Suggestion is a template derived for a group of untemplated literals.
type Suggestion struct {
	Template *template.Template
	Literals []int // indexes into Pass.Literals
}

// Suggest partitions the untemplated literals of the pass into groups that
// generalise to one template each. Groups are grown greedily in document
// order: a literal joins the first group it can be generalised with. Slots
// whose terms are typed elsewhere in the same clauses take those types.
func Suggest(p *analysis.Pass) []Suggestion {
	var suggestions []Suggestion
	grouped := make(map[int]bool)

	untemplated := p.Untemplated()
	for _, seed := range untemplated {
		if grouped[seed] {
			continue
		}
		group := []int{seed}
		texts := []string{p.Literals[seed].Text}
		for _, other := range untemplated {
			if other == seed || grouped[other] {
				continue
			}
			if _, ok := template.Generalize(append(texts[:len(texts):len(texts)], p.Literals[other].Text)); ok {
				group = append(group, other)
				texts = append(texts, p.Literals[other].Text)
			}
		}

		g, ok := template.Generalize(texts)
		if !ok {
			continue
		}
		for _, i := range group {
			grouped[i] = true
		}
		suggestions = append(suggestions, Suggestion{
			Template: widen(p, g, group, texts),
			Literals: group,
		})
	}
	return suggestions
}

func widen(p *analysis.Pass, g *template.Template, group []int, texts []string) *template.Template {
	var known []template.Term
	seen := make(map[int]bool)
	for _, i := range group {
		c := p.Literals[i].Clause
		if seen[c] {
			continue
		}
		seen[c] = true
		for _, ref := range p.ClauseTerms(c) {
			known = append(known, ref.Term)
		}
	}

	w := template.Widen(p.Tree, g, texts[0], known)
	for _, text := range texts[1:] {
		if !w.Matches(text) {
			return g
		}
	}
	return w
}

// Actions returns one action per "literal has no template" diagnostic
// whose literal can be generalised. Each action inserts the derived
// template after the last line of the templates section. Documents without
// a templates section get no actions.
func Actions(p *analysis.Pass, diagnostics []ir.Diagnostic) []ir.CodeAction {
	section, ok := p.Section(document.KindTemplates)
	if !ok {
		return nil
	}

	byLiteral := make(map[int]*template.Template)
	for _, s := range Suggest(p) {
		for _, i := range s.Literals {
			byLiteral[i] = s.Template
		}
	}

	var actions []ir.CodeAction
	for _, d := range diagnostics {
		if d.Code != validate.CodeNoTemplate {
			continue
		}
		i, ok := literalWithRange(p, d.Range)
		if !ok {
			continue
		}
		tmpl, ok := byLiteral[i]
		if !ok {
			continue
		}
		actions = append(actions, ir.CodeAction{
			Title:       Title,
			Edit:        insertion(p, section, tmpl.String()),
			Diagnostics: []ir.Diagnostic{d},
		})
	}
	return actions
}

func literalWithRange(p *analysis.Pass, r ir.Range) (int, bool) {
	for i, lit := range p.Literals {
		if lit.Range() == r {
			return i, true
		}
	}
	return -1, false
}

// insertion places text on its own line after the section's last content
// line.
func insertion(p *analysis.Pass, s document.Section, text string) ir.TextEdit {
	lines := document.SplitLines(p.Text)
	line := s.LastContentLine() + 1
	if line < len(lines) {
		pos := ir.Position{Line: line, Column: 0}
		return ir.TextEdit{Range: ir.Range{Start: pos, End: pos}, NewText: text + "\n"}
	}
	last := len(lines) - 1
	pos := ir.Position{Line: last, Column: len(lines[last])}
	return ir.TextEdit{Range: ir.Range{Start: pos, End: pos}, NewText: "\n" + text}
}
