package template

import (
	"strings"

	"github.com/roach88/lels/internal/types"
)

// connectives never become part of a generalised skeleton, so "jam and
// pickles" and "cats and babies" end up in a single slot.
var connectives = map[string]bool{"if": true, "and": true, "or": true}

// Generalize derives the most general template that every literal is an
// instance of. The skeleton is the ordered intersection of the literals'
// words: a word of the first literal is kept when every other literal still
// has an unconsumed occurrence of it, and that occurrence is consumed. The
// gaps of the first literal around the skeleton become slots.
//
// It reports false for an empty input, when the literals share no word, or
// when the derived template does not match every literal. A single literal
// generalises to itself.
func Generalize(literals []string) (*Template, bool) {
	if len(literals) == 0 {
		return nil, false
	}
	first := cleanLiteral(literals[0])
	if strings.TrimSpace(first) == "" {
		return nil, false
	}
	if len(literals) == 1 {
		return New(Word(strings.TrimSpace(first))), true
	}

	firstWords := splitWords(first)
	others := make([][]string, 0, len(literals)-1)
	for _, l := range literals[1:] {
		others = append(others, canonicalAll(strings.Fields(cleanLiteral(l))))
	}

	var skeleton []string
	for _, w := range firstWords {
		text := canonical(w.text)
		if connectives[strings.ToLower(text)] || !allContain(others, text) {
			continue
		}
		skeleton = append(skeleton, text)
		for i := range others {
			others[i] = removeFirst(others[i], text)
		}
	}

	if len(skeleton) == 0 {
		return nil, false
	}

	spans := anchorTerms(firstWords, skeleton, false)
	terms := make([]string, len(spans))
	for i, s := range spans {
		terms[i] = joinSpan(first, firstWords, s)
	}

	g := FromLiteral(first, terms, DefaultNamer)
	for _, l := range literals {
		if !g.Matches(l) {
			return nil, false
		}
	}
	return g, true
}

func allContain(lists [][]string, w string) bool {
	for _, l := range lists {
		found := false
		for _, x := range l {
			if x == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func removeFirst(list []string, w string) []string {
	for i, x := range list {
		if x == w {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// Widen promotes known typed terms into g. A slot bound to the text of a
// known term takes that term's type, and a word run containing a known term
// on word boundaries is split around a new slot of that type. The widened
// template is returned only if it still matches literal; otherwise g is
// returned unchanged. Known terms of the root type are ignored.
func Widen(tree *types.Tree, g *Template, literal string, known []Term) *Template {
	byName := make(map[string]Term, len(known))
	var candidates [][]string
	for _, k := range known {
		name := canonical(k.Name)
		if name == "" || k.Type == types.Root {
			continue
		}
		if _, dup := byName[name]; dup {
			continue
		}
		byName[name] = k
		candidates = append(candidates, strings.Fields(name))
	}
	if len(candidates) == 0 {
		return g
	}
	sortLongestFirst(candidates)

	terms := g.Terms(literal)
	var tokens []Token
	slot := 0
	for _, tok := range g.tokens {
		if tok.Kind == KindSlot {
			if slot < len(terms) {
				if k, ok := byName[canonical(terms[slot].Name)]; ok {
					tok = Slot(Label(tree.Name(k.Type)), k.Type)
				}
			}
			slot++
			tokens = append(tokens, tok)
			continue
		}
		tokens = append(tokens, splitRun(tree, tok.Text, candidates, byName)...)
	}

	widened := New(tokens...)
	if !widened.Matches(literal) {
		return g
	}
	return widened
}

func splitRun(tree *types.Tree, run string, candidates [][]string, byName map[string]Term) []Token {
	words := splitWords(run)
	var tokens []Token
	runStart := -1
	flush := func(end int) {
		if runStart >= 0 {
			tokens = append(tokens, Word(run[words[runStart].start:words[end-1].end]))
			runStart = -1
		}
	}
	for i := 0; i < len(words); {
		if n := matchAt(words, i, candidates); n > 0 {
			k := byName[strings.Join(fieldsOf(words[i:i+n]), " ")]
			flush(i)
			tokens = append(tokens, Slot(Label(tree.Name(k.Type)), k.Type))
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

func fieldsOf(words []word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = canonical(w.text)
	}
	return out
}
