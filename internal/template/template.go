package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/lels/internal/types"
)

// slotPattern matches "*a Name*" and "*an Name*". Unbalanced asterisks do
// not match and stay part of the surrounding word run.
var slotPattern = regexp.MustCompile(`\*\s*(an?)\s+([^*]+?)\s*\*`)

// Template is an ordered sequence of word runs and slots. Templates are
// immutable once built.
type Template struct {
	tokens []Token
}

// New builds a template from tokens. Empty word runs are dropped.
func New(tokens ...Token) *Template {
	t := &Template{tokens: make([]Token, 0, len(tokens))}
	for _, tok := range tokens {
		if tok.Kind == KindWord && strings.TrimSpace(tok.Text) == "" {
			continue
		}
		t.tokens = append(t.tokens, tok)
	}
	return t
}

// Parse reads a template string. Each slot's type is looked up in tree by
// the name after the article and created under the root when missing.
func Parse(tree *types.Tree, text string) *Template {
	text = cleanLiteral(strings.TrimSpace(text))

	var tokens []Token
	cursor := 0
	for _, m := range slotPattern.FindAllStringSubmatchIndex(text, -1) {
		tokens = append(tokens, Word(strings.TrimSpace(text[cursor:m[0]])))
		name := strings.Join(strings.Fields(text[m[4]:m[5]]), " ")
		tokens = append(tokens, Slot(text[m[2]:m[3]]+" "+name, tree.GetOrCreate(name)))
		cursor = m[1]
	}
	tokens = append(tokens, Word(strings.TrimSpace(text[cursor:])))

	return New(tokens...)
}

// Tokens returns a copy of the template's tokens.
func (t *Template) Tokens() []Token {
	return append([]Token(nil), t.tokens...)
}

// Len returns the number of tokens.
func (t *Template) Len() int {
	return len(t.tokens)
}

// Slots returns the number of slot tokens.
func (t *Template) Slots() int {
	n := 0
	for _, tok := range t.tokens {
		if tok.Kind == KindSlot {
			n++
		}
	}
	return n
}

// SlotTypes returns the types of the slots in order.
func (t *Template) SlotTypes() []types.ID {
	var ids []types.ID
	for _, tok := range t.tokens {
		if tok.Kind == KindSlot {
			ids = append(ids, tok.Type)
		}
	}
	return ids
}

// PredicateWords returns the individual words of every word run in order.
func (t *Template) PredicateWords() []string {
	var words []string
	for _, tok := range t.tokens {
		if tok.Kind == KindWord {
			words = append(words, strings.Fields(tok.Text)...)
		}
	}
	return words
}

func (t *Template) predicateLength() int {
	n := 0
	for _, tok := range t.tokens {
		if tok.Kind == KindWord {
			n += len(tok.Text)
		}
	}
	return n
}

// SameSignature reports whether both templates have the same token kinds in
// the same order and equal word runs. Slot types are ignored.
func (t *Template) SameSignature(other *Template) bool {
	if other == nil {
		return false
	}
	return sameSignature(t.tokens, other.tokens)
}

func sameSignature(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return false
		}
		if a[i].Kind == KindWord && canonical(a[i].Text) != canonical(b[i].Text) {
			return false
		}
	}
	return true
}

// String renders the template with slots between asterisks.
func (t *Template) String() string {
	parts := make([]string, len(t.tokens))
	for i, tok := range t.tokens {
		if tok.Kind == KindSlot {
			parts[i] = "*" + tok.Text + "*"
		} else {
			parts[i] = tok.Text
		}
	}
	return strings.Join(parts, " ")
}

var snippetEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

// Snippet renders the template as an editor snippet in which every slot is
// a numbered placeholder.
func (t *Template) Snippet() string {
	parts := make([]string, len(t.tokens))
	n := 0
	for i, tok := range t.tokens {
		if tok.Kind == KindSlot {
			n++
			parts[i] = "${" + strconv.Itoa(n) + ":" + snippetEscaper.Replace(tok.Text) + "}"
		} else {
			parts[i] = snippetEscaper.Replace(tok.Text)
		}
	}
	return strings.Join(parts, " ")
}
