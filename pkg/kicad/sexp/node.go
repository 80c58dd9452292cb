// Package sexp provides a streaming S-expression reader and writer for KiCad
// design files (.kicad_pcb, .kicad_mod). Unlike general-purpose sexp
// libraries, the parser streams from an io.Reader so arbitrarily large board
// files can be handled, and the node model keeps enough lexical information
// (quoted string vs bare symbol) to serialize a modified tree back out in a
// form KiCad accepts.
package sexp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the three node shapes.
type Kind int

const (
	KindList Kind = iota
	KindSymbol
	KindString
)

// Node is a single S-expression node. Lists own their children; atoms carry
// their unescaped text in Value.
type Node struct {
	Kind     Kind
	Value    string
	Children []*Node
}

// Symbol returns a bare (unquoted) atom node.
func Symbol(v string) *Node {
	return &Node{Kind: KindSymbol, Value: v}
}

// String returns a quoted string atom node.
func String(v string) *Node {
	return &Node{Kind: KindString, Value: v}
}

// Number returns a symbol atom formatted the way KiCad writes numbers
// (shortest decimal form, no exponent).
func Number(v float64) *Node {
	return Symbol(FormatNumber(v))
}

// List returns a list node with the given children.
func List(children ...*Node) *Node {
	return &Node{Kind: KindList, Children: children}
}

// FormatNumber renders a float in KiCad's file style.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsList reports whether the node is a list.
func (n *Node) IsList() bool {
	return n != nil && n.Kind == KindList
}

// Name returns the leading symbol of a list (the node type, e.g. "footprint"
// for (footprint ...)), or the atom text for atoms. Empty lists have no name.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	if n.Kind != KindList {
		return n.Value
	}
	if len(n.Children) == 0 {
		return ""
	}
	head := n.Children[0]
	if head.Kind == KindList {
		return ""
	}
	return head.Value
}

// Len returns the number of children of a list, 0 for atoms.
func (n *Node) Len() int {
	if n == nil || n.Kind != KindList {
		return 0
	}
	return len(n.Children)
}

// At returns the child at index i, or nil when out of range.
func (n *Node) At(i int) *Node {
	if n == nil || n.Kind != KindList || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Child returns the first child list named key, e.g. Child("at") finds
// (at 100 50) inside a footprint node. Returns nil if absent.
func (n *Node) Child(key string) *Node {
	if n == nil || n.Kind != KindList {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == KindList && c.Name() == key {
			return c
		}
	}
	return nil
}

// ChildAll returns every child list named key, in order.
func (n *Node) ChildAll(key string) []*Node {
	if n == nil || n.Kind != KindList {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == KindList && c.Name() == key {
			out = append(out, c)
		}
	}
	return out
}

// HasFlag reports whether the list contains a bare symbol atom, e.g.
// (pad ... locked) -> HasFlag("locked").
func (n *Node) HasFlag(sym string) bool {
	if n == nil || n.Kind != KindList {
		return false
	}
	for _, c := range n.Children {
		if c.Kind == KindSymbol && c.Value == sym {
			return true
		}
	}
	return false
}

// Str returns the text of the atom at index i (quoted or bare), or "" when
// out of range or not an atom.
func (n *Node) Str(i int) string {
	c := n.At(i)
	if c == nil || c.Kind == KindList {
		return ""
	}
	return c.Value
}

// Float parses the atom at index i as a float64.
func (n *Node) Float(i int) (float64, error) {
	s := n.Str(i)
	if s == "" {
		return 0, fmt.Errorf("no numeric value at index %d", i)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", s, err)
	}
	return v, nil
}

// Int parses the atom at index i as an int.
func (n *Node) Int(i int) (int, error) {
	s := n.Str(i)
	if s == "" {
		return 0, fmt.Errorf("no integer value at index %d", i)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", s, err)
	}
	return v, nil
}

// Remove drops the first occurrence of child from the list, reporting
// whether anything was removed. Comparison is by pointer identity.
func (n *Node) Remove(child *Node) bool {
	if n == nil || n.Kind != KindList {
		return false
	}
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds children to the end of the list.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// String renders the node on a single line. Use Write for file output.
func (n *Node) String() string {
	var b strings.Builder
	writeCompact(&b, n)
	return b.String()
}
