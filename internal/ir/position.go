package ir

import "fmt"

// Position is a 0-based line and byte column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open span [Start, End).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// LineRange returns a single-line range covering [start, end) on line.
func LineRange(line, start, end int) Range {
	return Range{
		Start: Position{Line: line, Column: start},
		End:   Position{Line: line, Column: end},
	}
}

// Contains reports whether p lies inside r. The end position is inclusive
// so that a cursor placed right after the last character still counts.
func (r Range) Contains(p Position) bool {
	if p.Line < r.Start.Line || p.Line > r.End.Line {
		return false
	}
	if p.Line == r.Start.Line && p.Column < r.Start.Column {
		return false
	}
	if p.Line == r.End.Line && p.Column > r.End.Column {
		return false
	}
	return true
}

// Before orders ranges by start position, then end position.
func (r Range) Before(o Range) bool {
	if r.Start != o.Start {
		return r.Start.Before(o.Start)
	}
	return r.End.Before(o.End)
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
