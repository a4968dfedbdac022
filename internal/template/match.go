package template

import (
	"sort"
	"strings"

	"github.com/roach88/lels/internal/types"
)

// Namer returns the label of the i-th slot of a derived template.
type Namer func(i int) string

var defaultLabels = []string{"an A", "a B", "a C", "a D", "an E", "an F", "a G", "an H"}

// DefaultNamer labels slots "an A", "a B", "a C" and so on.
func DefaultNamer(i int) string {
	if i < len(defaultLabels) {
		return defaultLabels[i]
	}
	name := string(rune('A' + i%26))
	if i >= 26 {
		name += strings.Repeat("'", i/26)
	}
	return Label(name)
}

// span is a half-open range of word indexes.
type span struct{ from, to int }

// anchorTerms walks words and consumes anchors in order. Every run of words
// between two consumed anchors becomes a term. When partial is set, the
// last word also consumes the next anchor if it is a prefix of it.
func anchorTerms(words []word, anchors []string, partial bool) []span {
	var terms []span
	start := -1
	next := 0
	for i, w := range words {
		if next < len(anchors) {
			text := canonical(w.text)
			hit := text == anchors[next] ||
				(partial && i == len(words)-1 && strings.HasPrefix(anchors[next], text))
			if hit {
				if start >= 0 {
					terms = append(terms, span{start, i})
					start = -1
				}
				next++
				continue
			}
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		terms = append(terms, span{start, len(words)})
	}
	return terms
}

func canonicalAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = canonical(w)
	}
	return out
}

func joinSpan(literal string, words []word, s span) string {
	return literal[words[s.from].start:words[s.to-1].end]
}

// split turns literal into tokens, making a slot of every occurrence of a
// term that starts and ends on word boundaries. Longer terms are tried
// first. Slots carry the root type and a label from namer.
func split(literal string, terms []string, namer Namer) []Token {
	words := splitWords(literal)

	candidates := make([][]string, 0, len(terms))
	for _, term := range terms {
		if f := strings.Fields(canonical(term)); len(f) > 0 {
			candidates = append(candidates, f)
		}
	}
	sortLongestFirst(candidates)

	var tokens []Token
	runStart := -1
	flush := func(end int) {
		if runStart >= 0 {
			tokens = append(tokens, Word(literal[words[runStart].start:words[end-1].end]))
			runStart = -1
		}
	}

	slots := 0
	for i := 0; i < len(words); {
		if n := matchAt(words, i, candidates); n > 0 {
			flush(i)
			tokens = append(tokens, Slot(namer(slots), types.Root))
			slots++
			i += n
			continue
		}
		if runStart < 0 {
			runStart = i
		}
		i++
	}
	flush(len(words))

	return tokens
}

func sortLongestFirst(candidates [][]string) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return len(strings.Join(candidates[i], " ")) > len(strings.Join(candidates[j], " "))
	})
}

func matchAt(words []word, i int, candidates [][]string) int {
next:
	for _, c := range candidates {
		if i+len(c) > len(words) {
			continue
		}
		for k, w := range c {
			if canonical(words[i+k].text) != w {
				continue next
			}
		}
		return len(c)
	}
	return 0
}

// FromLiteral derives a template from literal by turning every occurrence
// of the given terms into a slot. Slots are typed with the root type and
// labelled by namer, or DefaultNamer when namer is nil.
func FromLiteral(literal string, terms []string, namer Namer) *Template {
	if namer == nil {
		namer = DefaultNamer
	}
	return New(split(cleanLiteral(literal), terms, namer)...)
}

func (t *Template) extract(literal string) ([]word, []span) {
	words := splitWords(literal)
	return words, anchorTerms(words, canonicalAll(t.PredicateWords()), false)
}

// Matches reports whether literal is an instance of the template.
func (t *Template) Matches(literal string) bool {
	literal = cleanLiteral(literal)
	words, spans := t.extract(literal)
	terms := make([]string, len(spans))
	for i, s := range spans {
		terms[i] = joinSpan(literal, words, s)
	}
	return sameSignature(t.tokens, split(literal, terms, DefaultNamer))
}

// Terms extracts the terms of literal and pairs them with the template's
// slot types in order. Extra terms or slots are dropped.
func (t *Template) Terms(literal string) []Term {
	located := t.LocateTerms(literal)
	terms := make([]Term, len(located))
	for i, lt := range located {
		terms[i] = lt.Term
	}
	return terms
}

// LocateTerms is Terms with the byte span of each term in literal.
func (t *Template) LocateTerms(literal string) []LocatedTerm {
	literal = cleanLiteral(literal)
	words, spans := t.extract(literal)
	slotTypes := t.SlotTypes()

	n := min(len(spans), len(slotTypes))
	located := make([]LocatedTerm, n)
	for i := 0; i < n; i++ {
		s := spans[i]
		located[i] = LocatedTerm{
			Term:  Term{Name: joinSpan(literal, words, s), Type: slotTypes[i]},
			Start: words[s.from].start,
			End:   words[s.to-1].end,
		}
	}
	return located
}

// BestMatch returns the template that matches literal with the most slots,
// breaking ties by the longest predicate text and then by order. It
// returns nil when no template matches.
func BestMatch(templates []*Template, literal string) *Template {
	var best *Template
	for _, t := range templates {
		if !t.Matches(literal) {
			continue
		}
		if best == nil || t.Slots() > best.Slots() ||
			(t.Slots() == best.Slots() && t.predicateLength() > best.predicateLength()) {
			best = t
		}
	}
	return best
}
