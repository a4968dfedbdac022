// Package complete ranks document templates against the literal being typed.
package complete

import (
	"sort"

	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/document"
	"github.com/roach88/lels/internal/ir"
	"github.com/roach88/lels/internal/template"
)

// DefaultLimit is the number of completions returned when no limit is set.
const DefaultLimit = 3

type candidate struct {
	tmpl  *template.Template
	score float64
}

// Complete returns up to limit completions for the cursor at line and
// column. The cursor must sit in the clause area right after a literal in
// progress. Templates declared in the document are scored against that
// literal; the ones scoring above zero are returned best first.
func Complete(p *analysis.Pass, line, column, limit int) []ir.Completion {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if !p.InClauseArea(line) {
		return nil
	}
	frag, ok := document.LiteralAtCursor(p.Line(line), column)
	if !ok {
		return nil
	}

	var candidates []candidate
	for _, t := range p.Catalog.Declared() {
		score, ok := t.MatchScore(frag.Text)
		if !ok || score <= 0 {
			continue
		}
		candidates = append(candidates, candidate{tmpl: t, score: score})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	replace := ir.LineRange(line, frag.Start, min(column, len(p.Line(line))))
	completions := make([]ir.Completion, 0, len(candidates))
	for rank, c := range candidates {
		filled := c.tmpl.WithMissingTerms(frag.Text)
		completions = append(completions, ir.Completion{
			Label:        filled.String(),
			InsertText:   filled.Snippet(),
			FilterText:   frag.Text,
			ReplaceRange: replace,
			Rank:         rank,
			Score:        c.score,
		})
	}
	return completions
}
