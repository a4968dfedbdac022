// Package validate produces the diagnostics of an analysis pass.
package validate

import (
	"fmt"
	"sort"

	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/document"
	"github.com/roach88/lels/internal/ir"
)

// Diagnostic codes (W100-W199)
const (
	CodeNoTemplate            = "W101" // literal matches no template
	CodeMisalignedConnectives = "W102" // and/or mixed at the same indentation
	CodeTypeMismatch          = "W103" // one term bound to incompatible types
	CodeHierarchyIgnored      = "W104" // type hierarchy failed to build
)

// Diagnostic messages shared with the quick-fix provider.
const (
	MessageNoTemplate            = "Literal has no template."
	MessageMisalignedConnectives = "Clause has misaligned connectives."
)

// DefaultMaxProblems caps the diagnostics of one document when no limit is
// configured.
const DefaultMaxProblems = 1000

// Document returns every finding of the pass ordered by range, capped at
// limit. A limit of zero or less means DefaultMaxProblems.
func Document(p *analysis.Pass, limit int) []ir.Diagnostic {
	if limit <= 0 {
		limit = DefaultMaxProblems
	}

	var diags []ir.Diagnostic
	diags = append(diags, hierarchy(p)...)
	diags = append(diags, noTemplate(p)...)
	diags = append(diags, misaligned(p)...)
	if p.TypeChecking {
		diags = append(diags, typeMismatch(p)...)
	}

	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Range.Before(diags[j].Range)
	})
	if len(diags) > limit {
		diags = diags[:limit]
	}
	return diags
}

func hierarchy(p *analysis.Pass) []ir.Diagnostic {
	if p.HierarchyErr == nil {
		return nil
	}
	s, ok := p.Section(document.KindTypeHierarchy)
	if !ok {
		return nil
	}
	return []ir.Diagnostic{{
		Range:    ir.LineRange(s.HeaderLine, 0, len(s.Header)),
		Severity: ir.SeverityInformation,
		Code:     CodeHierarchyIgnored,
		Message:  fmt.Sprintf("Type hierarchy ignored: %v", p.HierarchyErr),
	}}
}

func noTemplate(p *analysis.Pass) []ir.Diagnostic {
	var diags []ir.Diagnostic
	for _, i := range p.Untemplated() {
		diags = append(diags, ir.Diagnostic{
			Range:    p.Literals[i].Range(),
			Severity: ir.SeverityWarning,
			Code:     CodeNoTemplate,
			Message:  MessageNoTemplate,
		})
	}
	return diags
}

func misaligned(p *analysis.Pass) []ir.Diagnostic {
	var diags []ir.Diagnostic
	for _, c := range p.Clauses {
		if MisalignedConnectives(c.Lines) {
			diags = append(diags, ir.Diagnostic{
				Range:    c.Range,
				Severity: ir.SeverityWarning,
				Code:     CodeMisalignedConnectives,
				Message:  MessageMisalignedConnectives,
			})
		}
	}
	return diags
}

// MisalignedConnectives reports whether a later line opens with the other
// connective at exactly the same indentation as an earlier "and" or "or".
func MisalignedConnectives(lines []string) bool {
	seen := make(map[string]string) // indentation -> first connective
	for _, line := range lines {
		conn, indent, ok := document.LeadingConnective(line)
		if !ok {
			continue
		}
		if first, dup := seen[indent]; dup && first != conn {
			return true
		}
		if _, dup := seen[indent]; !dup {
			seen[indent] = conn
		}
	}
	return false
}

func typeMismatch(p *analysis.Pass) []ir.Diagnostic {
	var diags []ir.Diagnostic
	reported := make(map[ir.Range]bool)

	for c := range p.Clauses {
		terms := p.ClauseTerms(c)
		for i := 0; i < len(terms); i++ {
			for j := i + 1; j < len(terms); j++ {
				a, b := terms[i], terms[j]
				if a.Name != b.Name || p.Tree.IsCompatible(a.Type, b.Type) {
					continue
				}
				msg := fmt.Sprintf("Type mismatch: '%s' versus '%s'", p.Tree.Name(a.Type), p.Tree.Name(b.Type))
				for _, r := range []ir.Range{a.Range, b.Range} {
					if reported[r] {
						continue
					}
					reported[r] = true
					diags = append(diags, ir.Diagnostic{
						Range:    r,
						Severity: ir.SeverityWarning,
						Code:     CodeTypeMismatch,
						Message:  msg,
					})
				}
			}
		}
	}
	return diags
}
