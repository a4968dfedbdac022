package template

import "strings"

// MatchScore rates how far a partially typed literal has progressed through
// the template. Each word run of the template is one predicate, searched for
// in order in the part of the literal not yet consumed; each hit scores one.
// At the first miss the scan stops, scoring a half when the literal's last
// word is a prefix of the missing predicate. The result is normalised by the
// number of predicates.
//
// ok is false for templates without predicates, which cannot be scored.
func (t *Template) MatchScore(literal string) (score float64, ok bool) {
	var predicates []string
	for _, tok := range t.tokens {
		if tok.Kind == KindWord {
			if p := canonical(tok.Text); p != "" {
				predicates = append(predicates, p)
			}
		}
	}
	if len(predicates) == 0 {
		return 0, false
	}

	tail := canonical(literal)
	for _, p := range predicates {
		idx := strings.Index(tail, p)
		if idx < 0 {
			if fields := strings.Fields(tail); len(fields) > 0 && strings.HasPrefix(p, fields[len(fields)-1]) {
				score += 0.5
			}
			break
		}
		score++
		tail = tail[idx+len(p):]
	}

	return score / float64(len(predicates)), true
}

// WithMissingTerms fills the template's leading slots with the terms already
// typed in an incomplete literal. A term closed by a predicate word always
// fills its slot. A term still being typed at the end of the literal fills
// its slot only when more of the template follows that slot; otherwise the
// slot stays open for the completion to offer. Unfilled slots are kept.
func (t *Template) WithMissingTerms(literal string) *Template {
	words := splitWords(literal)
	spans := anchorTerms(words, canonicalAll(t.PredicateWords()), true)

	terms := make([]string, 0, len(spans))
	for i, s := range spans {
		if i == len(spans)-1 && s.to == len(words) && !t.followsSlot(i) {
			break
		}
		terms = append(terms, joinSpan(literal, words, s))
	}

	tokens := make([]Token, 0, len(t.tokens))
	slot := 0
	for _, tok := range t.tokens {
		if tok.Kind == KindSlot && slot < len(terms) {
			tokens = append(tokens, Word(terms[slot]))
			slot++
			continue
		}
		if tok.Kind == KindSlot {
			slot++
		}
		tokens = append(tokens, tok)
	}
	return New(tokens...)
}

// followsSlot reports whether any token comes after the i-th slot.
func (t *Template) followsSlot(i int) bool {
	seen := -1
	for k, tok := range t.tokens {
		if tok.Kind != KindSlot {
			continue
		}
		seen++
		if seen == i {
			return k < len(t.tokens)-1
		}
	}
	return false
}
