// Package types maintains the type hierarchy of a document.
//
// The tree is an arena of nodes addressed by ID. Node 0 is the root, named
// "any". Types are created on first reference and never removed, so an ID
// stays valid for the lifetime of the tree.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// RootName is the name of the root type.
const RootName = "any"

// ErrSelfSubtype is returned when a type is declared as its own subtype.
var ErrSelfSubtype = errors.New("type cannot be its own subtype")

// ID addresses a type node inside its Tree.
type ID int

// Root is the ID of the root type.
const Root ID = 0

type node struct {
	name     string
	parent   ID
	children []ID
}

// Tree is a single-rooted type hierarchy. It is not safe for concurrent
// mutation; one analysis pass owns one tree.
type Tree struct {
	nodes  []node
	byName map[string]ID
}

// New returns a tree holding only the root type.
func New() *Tree {
	return &Tree{
		nodes:  []node{{name: RootName, parent: Root}},
		byName: map[string]ID{RootName: Root},
	}
}

// GetOrCreate returns the type called name, creating it under the root when
// it does not exist yet.
func (t *Tree) GetOrCreate(name string) ID {
	if id, ok := t.byName[name]; ok {
		return id
	}
	return t.create(name, Root)
}

func (t *Tree) create(name string, parent ID) ID {
	id := ID(len(t.nodes))
	t.nodes = append(t.nodes, node{name: name, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	t.byName[name] = id
	return id
}

// Lookup returns the type called name if it exists.
func (t *Tree) Lookup(name string) (ID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Name returns the name of id.
func (t *Tree) Name(id ID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].name
}

// Subtypes returns the direct subtypes of id in creation order.
func (t *Tree) Subtypes(id ID) []ID {
	if !t.valid(id) {
		return nil
	}
	return append([]ID(nil), t.nodes[id].children...)
}

// Parent returns the parent of id. The root has no parent.
func (t *Tree) Parent(id ID) (ID, bool) {
	if !t.valid(id) || id == Root {
		return Root, false
	}
	return t.nodes[id].parent, true
}

// Len returns the number of types, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AddSubtype moves child under parent. A child that already hangs below
// another declared type keeps its place; only children of the root are
// moved, which keeps the structure a tree.
func (t *Tree) AddSubtype(parent, child ID) error {
	if !t.valid(parent) || !t.valid(child) {
		return fmt.Errorf("unknown type id %d or %d", parent, child)
	}
	if parent == child {
		return fmt.Errorf("%q: %w", t.nodes[child].name, ErrSelfSubtype)
	}
	if child == Root || t.nodes[child].parent != Root || t.IsSubtype(parent, child) {
		return nil
	}
	t.detach(child)
	t.nodes[child].parent = parent
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	return nil
}

func (t *Tree) detach(child ID) {
	p := t.nodes[child].parent
	kids := t.nodes[p].children
	for i, k := range kids {
		if k == child {
			t.nodes[p].children = append(kids[:i:i], kids[i+1:]...)
			return
		}
	}
}

// IsSubtype reports whether sub equals super or descends from it.
func (t *Tree) IsSubtype(sub, super ID) bool {
	if !t.valid(sub) || !t.valid(super) {
		return false
	}
	for id := sub; ; id = t.nodes[id].parent {
		if id == super {
			return true
		}
		if id == Root {
			return false
		}
	}
}

// IsCompatible reports whether one of a and b is an ancestor of the other,
// equality included.
func (t *Tree) IsCompatible(a, b ID) bool {
	return t.IsSubtype(a, b) || t.IsSubtype(b, a)
}

// String renders the tree as an outline indented by four spaces per level.
func (t *Tree) String() string {
	var b strings.Builder
	var walk func(id ID, depth int)
	walk = func(id ID, depth int) {
		b.WriteString(strings.Repeat("    ", depth))
		b.WriteString(t.nodes[id].name)
		b.WriteByte('\n')
		for _, c := range t.nodes[id].children {
			walk(c, depth+1)
		}
	}
	walk(Root, 0)
	return b.String()
}

func (t *Tree) valid(id ID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
