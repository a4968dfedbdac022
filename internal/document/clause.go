package document

import (
	"strings"
	"unicode"

	"github.com/roach88/lels/internal/ir"
)

// Clause is a run of lines in the clause area terminated by a line ending in
// a period. A clause still open at the end of the area is reported with
// Terminated false.
type Clause struct {
	Text       string // lines joined with "\n"
	Lines      []string
	StartLine  int
	EndLine    int
	Range      ir.Range
	Terminated bool
}

// Clauses returns the clauses of the clause area in document order.
func Clauses(text string) []Clause {
	return clausesOf(SplitLines(text))
}

func clausesOf(lines []string) []Clause {
	area, ok := sectionsOf(lines)[KindClauses]
	if !ok {
		return nil
	}

	var clauses []Clause
	start := -1
	flush := func(end int, terminated bool) {
		end = lastNonBlank(lines, start, end)
		clauses = append(clauses, newClause(lines, start, end, terminated))
		start = -1
	}

	for n := area.StartLine; n <= area.EndLine; n++ {
		line := lines[n]
		if IsHeader(line) {
			if start >= 0 {
				flush(n-1, false)
			}
			continue
		}
		if start < 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			start = n
		}
		if strings.HasSuffix(trimRight(line), ".") {
			flush(n, true)
		}
	}
	if start >= 0 {
		flush(area.EndLine, false)
	}

	return clauses
}

func newClause(lines []string, start, end int, terminated bool) Clause {
	body := lines[start : end+1]
	first := lines[start]
	return Clause{
		Text:      strings.Join(body, "\n"),
		Lines:     body,
		StartLine: start,
		EndLine:   end,
		Range: ir.Range{
			Start: ir.Position{Line: start, Column: len(first) - len(strings.TrimLeftFunc(first, unicode.IsSpace))},
			End:   ir.Position{Line: end, Column: len(trimRight(lines[end]))},
		},
		Terminated: terminated,
	}
}

func lastNonBlank(lines []string, start, end int) int {
	for n := end; n > start; n-- {
		if strings.TrimSpace(lines[n]) != "" {
			return n
		}
	}
	return start
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
