package template

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/lels/internal/types"
)

// Kind distinguishes word runs from slots.
type Kind int

const (
	KindWord Kind = iota
	KindSlot
)

func (k Kind) String() string {
	if k == KindSlot {
		return "slot"
	}
	return "word"
}

// Token is one element of a template. For a word run Text holds the words
// with their internal spacing. For a slot Text holds the label shown
// between asterisks, such as "a person", and Type the slot's type.
type Token struct {
	Kind Kind
	Text string
	Type types.ID
}

// Word returns a word-run token.
func Word(text string) Token {
	return Token{Kind: KindWord, Text: text}
}

// Slot returns a slot token.
func Slot(label string, typ types.ID) Token {
	return Token{Kind: KindSlot, Text: label, Type: typ}
}

// Term is the text bound to a slot together with the slot's type.
type Term struct {
	Name string
	Type types.ID
}

// LocatedTerm is a Term with its byte span inside the literal it came from.
type LocatedTerm struct {
	Term
	Start int
	End   int
}

// canonical folds a word run to NFC with single spaces between words.
func canonical(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Article returns "an" for names whose spoken form starts with a vowel
// sound and "a" otherwise.
func Article(name string) string {
	if name == "" {
		return "a"
	}
	r := []rune(name)
	if len(r) == 1 || (len(r) > 1 && unicode.IsUpper(r[0]) && !unicode.IsLower(r[1])) {
		if strings.ContainsRune("AEFHILMNORSX", unicode.ToUpper(r[0])) {
			return "an"
		}
		return "a"
	}
	if strings.ContainsRune("aeiou", unicode.ToLower(r[0])) {
		return "an"
	}
	return "a"
}

// Label builds a slot label from a type name.
func Label(typeName string) string {
	return Article(typeName) + " " + typeName
}

// word is a whitespace-delimited word of a literal.
type word struct {
	text  string
	start int
	end   int
}

func splitWords(s string) []word {
	var words []word
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, word{text: s[start:i], start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, word{text: s[start:], start: start, end: len(s)})
	}
	return words
}

// cleanLiteral drops trailing whitespace and one trailing period.
func cleanLiteral(literal string) string {
	literal = strings.TrimRightFunc(literal, unicode.IsSpace)
	literal = strings.TrimSuffix(literal, ".")
	return strings.TrimRightFunc(literal, unicode.IsSpace)
}
