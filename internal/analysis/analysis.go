// Package analysis runs the per-document analysis pass that every editor
// feature consumes.
//
// A Pass is built from scratch for one snapshot of a document and is never
// mutated afterwards. It holds the located sections, the type tree, the
// template catalog (built-in templates merged with the document's own),
// clauses and literals. Diagnostics, completions, quick fixes and semantic
// ranges are all pure functions of a Pass.
package analysis

import (
	"strings"

	"github.com/roach88/lels/internal/document"
	"github.com/roach88/lels/internal/ir"
	"github.com/roach88/lels/internal/template"
	"github.com/roach88/lels/internal/types"
)

// DefaultBuiltins are the templates every document can use without
// declaring them.
var DefaultBuiltins = []string{
	"*a date* is before *a date*",
	"*a date* is after *a date*",
	"*a number* is greater than *a number*",
	"*a number* is less than *a number*",
	"*a number* is equal to *a number*",
	"*an item* is in *a list*",
	"*an item* is not in *a list*",
}

// Options configures a pass.
type Options struct {
	// Builtins replaces DefaultBuiltins when non-nil.
	Builtins []string
	// TypeChecking enables type checking regardless of the document's
	// "% type checking on" directive.
	TypeChecking bool
}

// Pass is the result of analysing one document snapshot.
type Pass struct {
	// Text is the document as received.
	Text string
	// Lines is the document split into lines with comments removed.
	Lines []string

	Sections     map[document.Kind]document.Section
	Tree         *types.Tree
	Catalog      *template.Catalog
	Clauses      []document.Clause
	Literals     []document.Literal
	TypeChecking bool

	// HierarchyErr is set when the type hierarchy section could not be
	// built and the pass fell back to an empty tree.
	HierarchyErr error
}

// Analyze builds a pass over text.
func Analyze(text string, opts Options) *Pass {
	stripped := document.StripComments(text)
	p := &Pass{
		Text:         text,
		Lines:        document.SplitLines(stripped),
		Sections:     document.Sections(stripped),
		TypeChecking: opts.TypeChecking || document.TypeCheckingEnabled(text),
	}

	p.Tree = types.New()
	if s, ok := p.Sections[document.KindTypeHierarchy]; ok {
		tree, err := types.FromHierarchy(bodyLines(s))
		if err != nil {
			p.HierarchyErr = err
		} else {
			p.Tree = tree
		}
	}

	var declared []*template.Template
	if s, ok := p.Sections[document.KindTemplates]; ok {
		for _, line := range bodyLines(s) {
			declared = append(declared, template.Parse(p.Tree, line))
		}
	}
	builtinText := DefaultBuiltins
	if opts.Builtins != nil {
		builtinText = opts.Builtins
	}
	builtins := make([]*template.Template, 0, len(builtinText))
	for _, b := range builtinText {
		builtins = append(builtins, template.Parse(p.Tree, b))
	}
	p.Catalog = template.NewCatalog(builtins, declared)

	p.Clauses = document.Clauses(stripped)
	p.Literals = document.LiteralsOf(p.Clauses)

	return p
}

// bodyLines returns the non-blank, non-header lines of a section.
func bodyLines(s document.Section) []string {
	var lines []string
	for _, line := range s.Lines {
		if strings.TrimSpace(line) == "" || document.IsHeader(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Section returns the section of the given kind.
func (p *Pass) Section(kind document.Kind) (document.Section, bool) {
	s, ok := p.Sections[kind]
	return s, ok
}

// Line returns line n of the comment-stripped document, or "".
func (p *Pass) Line(n int) string {
	if n < 0 || n >= len(p.Lines) {
		return ""
	}
	return p.Lines[n]
}

// InClauseArea reports whether line n lies inside the clause area.
func (p *Pass) InClauseArea(n int) bool {
	s, ok := p.Sections[document.KindClauses]
	return ok && s.Contains(n)
}

// Untemplated returns the indexes of literals no catalog template matches.
func (p *Pass) Untemplated() []int {
	var idx []int
	for i, lit := range p.Literals {
		if !p.Catalog.Matches(lit.Text) {
			idx = append(idx, i)
		}
	}
	return idx
}

// LiteralAt returns the index of the literal covering pos.
func (p *Pass) LiteralAt(pos ir.Position) (int, bool) {
	for i, lit := range p.Literals {
		if lit.Line == pos.Line && pos.Column >= lit.Start && pos.Column <= lit.End {
			return i, true
		}
	}
	return -1, false
}
