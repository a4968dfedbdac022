package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/roach88/lels/internal/document"
	"github.com/roach88/lels/internal/ir"
)

// lineIndex converts between the byte columns used internally and the
// UTF-16 columns of the protocol.
type lineIndex []string

func newLineIndex(text string) lineIndex {
	return lineIndex(document.SplitLines(text))
}

func (li lineIndex) line(n int) string {
	if n < 0 || n >= len(li) {
		return ""
	}
	return li[n]
}

// byteColumn maps a UTF-16 column on line n to a byte column.
func (li lineIndex) byteColumn(n, utf16Col int) int {
	s := li.line(n)
	units := 0
	for i, r := range s {
		if units >= utf16Col {
			return i
		}
		units += utf16.RuneLen(r)
		if units > utf16Col {
			// Inside a surrogate pair; snap to the rune start.
			return i
		}
	}
	return len(s)
}

// utf16Column maps a byte column on line n to a UTF-16 column.
func (li lineIndex) utf16Column(n, byteCol int) int {
	s := li.line(n)
	if byteCol > len(s) {
		byteCol = len(s)
	}
	units := 0
	for i := 0; i < byteCol; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			units++
			i++
			continue
		}
		units += utf16.RuneLen(r)
		i += size
	}
	return units
}

func (li lineIndex) toWirePosition(p ir.Position) Position {
	return Position{Line: p.Line, Character: li.utf16Column(p.Line, p.Column)}
}

func (li lineIndex) toWire(r ir.Range) Range {
	return Range{Start: li.toWirePosition(r.Start), End: li.toWirePosition(r.End)}
}

func (li lineIndex) fromWirePosition(p Position) ir.Position {
	return ir.Position{Line: p.Line, Column: li.byteColumn(p.Line, p.Character)}
}

func (li lineIndex) fromWire(r Range) ir.Range {
	return ir.Range{Start: li.fromWirePosition(r.Start), End: li.fromWirePosition(r.End)}
}
