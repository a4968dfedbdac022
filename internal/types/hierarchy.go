package types

import (
	"fmt"
	"strings"
	"unicode"
)

// FromHierarchy builds a tree from an indentation outline with one type name
// per line. A line indented deeper than the line above it declares a subtype
// of that line. Blank lines are ignored. Mixing tabs and spaces is not
// supported.
//
// A name declared twice keeps its first position; subtypes listed under the
// second declaration attach to the existing node.
func FromHierarchy(lines []string) (*Tree, error) {
	t := New()

	type frame struct {
		indent int
		id     ID
	}
	stack := []frame{{indent: -1, id: Root}}

	for _, line := range lines {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
		for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].id

		id, exists := t.Lookup(name)
		switch {
		case !exists:
			id = t.create(name, parent)
		case id == parent:
			return nil, fmt.Errorf("%q: %w", name, ErrSelfSubtype)
		}
		stack = append(stack, frame{indent: indent, id: id})
	}

	return t, nil
}
