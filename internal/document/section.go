package document

import "strings"

// Kind identifies a section category.
type Kind int

const (
	// KindOther is any colon-bearing line that names no known section.
	KindOther Kind = iota
	KindTemplates
	KindTypeHierarchy
	// KindClauses covers "knowledge base", "scenario" and "query" headers,
	// which together form the clause area.
	KindClauses
)

func (k Kind) String() string {
	switch k {
	case KindTemplates:
		return "templates"
	case KindTypeHierarchy:
		return "type hierarchy"
	case KindClauses:
		return "clauses"
	default:
		return "other"
	}
}

// headerNames is checked in order; the first kind with a matching name wins.
var headerNames = []struct {
	kind  Kind
	names []string
}{
	{KindTypeHierarchy, []string{"type hierarchy"}},
	{KindTemplates, []string{"templates"}},
	{KindClauses, []string{"knowledge base", "scenario", "query"}},
}

// Classify reports whether line is a header and, if so, its kind.
func Classify(line string) (Kind, bool) {
	if !strings.Contains(line, ":") {
		return KindOther, false
	}
	lower := strings.ToLower(line)
	for _, h := range headerNames {
		for _, name := range h.names {
			if strings.Contains(lower, name) {
				return h.kind, true
			}
		}
	}
	return KindOther, true
}

// IsHeader reports whether line is a header of any kind.
func IsHeader(line string) bool {
	_, ok := Classify(line)
	return ok
}

// Section is a header-delimited region. Lines holds every line after the
// header up to EndLine inclusive, blank lines and same-kind sub-headers
// included.
type Section struct {
	Kind       Kind
	Header     string
	HeaderLine int
	Lines      []string
	StartLine  int // first line after the header
	EndLine    int // last line, inclusive; StartLine-1 when empty
}

// Line returns the text of absolute line n, or "" outside the section.
func (s Section) Line(n int) string {
	if n < s.StartLine || n > s.EndLine {
		return ""
	}
	return s.Lines[n-s.StartLine]
}

// Contains reports whether absolute line n is inside the section body.
func (s Section) Contains(n int) bool {
	return n >= s.StartLine && n <= s.EndLine
}

// LastContentLine returns the last non-blank, non-header line of the
// section, or the header line when the body is empty.
func (s Section) LastContentLine() int {
	for n := s.EndLine; n >= s.StartLine; n-- {
		line := s.Line(n)
		if strings.TrimSpace(line) != "" && !IsHeader(line) {
			return n
		}
	}
	return s.HeaderLine
}

// SplitLines splits text on newlines and drops a trailing carriage return
// from each line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Sections locates the first contiguous section of each known kind.
func Sections(text string) map[Kind]Section {
	return sectionsOf(SplitLines(text))
}

func sectionsOf(lines []string) map[Kind]Section {
	sections := make(map[Kind]Section)
	var cur *Section

	closeAt := func(end int) {
		if cur == nil {
			return
		}
		cur.EndLine = end
		cur.Lines = lines[cur.StartLine : end+1]
		sections[cur.Kind] = *cur
		cur = nil
	}

	for i, line := range lines {
		kind, header := Classify(line)
		if !header {
			continue
		}
		if cur != nil {
			if cur.Kind == kind {
				continue
			}
			closeAt(i - 1)
		}
		if kind == KindOther {
			continue
		}
		if _, seen := sections[kind]; seen {
			continue
		}
		cur = &Section{Kind: kind, Header: line, HeaderLine: i, StartLine: i + 1}
	}
	closeAt(len(lines) - 1)

	return sections
}
