package document

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/roach88/lels/internal/ir"
)

var (
	// and/or/if open or close a line; mid-line and/or belong to the literal.
	leadingConnective  = regexp.MustCompile(`^(?:and|or|if)(?:\s+|$)`)
	trailingConnective = regexp.MustCompile(`(?:^|\s+)(?:if|and|or)$`)
	// if also separates head and body inside a single-line rule.
	innerConnective = regexp.MustCompile(`\b(?:it is not the case that|it is the case that|if)\b`)
)

// Literal is one atomic sentence with its position on a line.
type Literal struct {
	Text   string
	Line   int
	Start  int // byte column of the first character
	End    int // byte column after the last character
	Clause int // index into the clause list it was taken from
}

// Range returns the literal's source range.
func (l Literal) Range() ir.Range {
	return ir.LineRange(l.Line, l.Start, l.End)
}

// Literals returns every literal of every clause in document order.
func Literals(text string) []Literal {
	return LiteralsOf(Clauses(text))
}

// LiteralsOf extracts the literals of already located clauses.
func LiteralsOf(clauses []Clause) []Literal {
	var literals []Literal
	for i, c := range clauses {
		for _, lit := range c.Literals() {
			lit.Clause = i
			literals = append(literals, lit)
		}
	}
	return literals
}

// Literals splits the clause on connectives.
func (c Clause) Literals() []Literal {
	var literals []Literal
	for i, line := range c.Lines {
		spans, _ := splitLine(line)
		for _, s := range spans {
			literals = append(literals, Literal{
				Text:  line[s.start:s.end],
				Line:  c.StartLine + i,
				Start: s.start,
				End:   s.end,
			})
		}
	}
	return literals
}

// Fragment is the in-progress literal under a cursor.
type Fragment struct {
	Text  string
	Start int
	End   int
}

// LiteralAtCursor returns the literal being typed on line before column.
// It reports false when the cursor follows a connective, a finished
// literal, or nothing at all.
func LiteralAtCursor(line string, column int) (Fragment, bool) {
	if column < 0 {
		return Fragment{}, false
	}
	if column > len(line) {
		column = len(line)
	}
	prefix := line[:column]

	spans, openEnded := splitLine(prefix)
	if openEnded || len(spans) == 0 {
		return Fragment{}, false
	}
	last := spans[len(spans)-1]
	if last.end != len(trimRight(prefix)) {
		return Fragment{}, false
	}
	return Fragment{Text: prefix[last.start:last.end], Start: last.start, End: last.end}, true
}

type span struct{ start, end int }

// splitLine returns the literal spans of a single line. openEnded is true
// when the line closes with a connective.
func splitLine(line string) (spans []span, openEnded bool) {
	lo, hi := trimBounds(line, 0, len(line))
	if loc := leadingConnective.FindStringIndex(line[lo:hi]); loc != nil {
		lo += loc[1]
	}
	if lo < hi {
		if loc := trailingConnective.FindStringIndex(line[lo:hi]); loc != nil {
			hi = lo + loc[0]
			openEnded = true
		}
	}

	cursor := lo
	for _, m := range innerConnective.FindAllStringIndex(line[lo:hi], -1) {
		spans = appendSpan(spans, line, cursor, lo+m[0])
		cursor = lo + m[1]
	}
	spans = appendSpan(spans, line, cursor, hi)
	return spans, openEnded
}

func appendSpan(spans []span, line string, from, to int) []span {
	lo, hi := trimBounds(line, from, to)
	if hi > lo && line[hi-1] == '.' {
		hi--
		lo, hi = trimBounds(line, lo, hi)
	}
	if hi <= lo {
		return spans
	}
	return append(spans, span{start: lo, end: hi})
}

func trimBounds(s string, lo, hi int) (int, int) {
	inner := s[lo:hi]
	trimmed := strings.TrimLeftFunc(inner, unicode.IsSpace)
	lo += len(inner) - len(trimmed)
	hi = lo + len(strings.TrimRightFunc(trimmed, unicode.IsSpace))
	return lo, hi
}

// LeadingConnective reports whether line opens with "and" or "or" and
// returns the connective together with the indentation before it.
func LeadingConnective(line string) (connective, indent string, ok bool) {
	body := strings.TrimLeftFunc(line, unicode.IsSpace)
	indent = line[:len(line)-len(body)]
	for _, c := range []string{"and", "or"} {
		if body == c || strings.HasPrefix(body, c+" ") || strings.HasPrefix(body, c+"\t") {
			return c, indent, true
		}
	}
	return "", "", false
}
