package sexp

import (
	"bufio"
	"io"
	"strings"
)

// Write serializes a node tree to w in KiCad's file layout: atoms of a list
// stay on the head line, each list child goes on its own indented line, and
// the closing paren of a multi-line list sits on its own line. KiCad's own
// writers vary in exact whitespace; any well-formed layout re-loads fine.
func Write(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeIndented(bw, n, 0)
	bw.WriteString("\n")
	return bw.Flush()
}

func writeIndented(w *bufio.Writer, n *Node, depth int) {
	if n.Kind != KindList {
		w.WriteString(renderAtom(n))
		return
	}

	// Lists with no list children fit on one line
	if !hasListChild(n) {
		var b strings.Builder
		writeCompact(&b, n)
		w.WriteString(b.String())
		return
	}

	w.WriteString("(")
	broken := false
	for i, c := range n.Children {
		if c.Kind == KindList {
			w.WriteString("\n")
			w.WriteString(strings.Repeat("\t", depth+1))
			writeIndented(w, c, depth+1)
			broken = true
		} else {
			if i > 0 && !broken {
				w.WriteString(" ")
			} else if broken {
				// Atom after a list child (rare, e.g. trailing flags)
				w.WriteString("\n")
				w.WriteString(strings.Repeat("\t", depth+1))
			}
			w.WriteString(renderAtom(c))
		}
	}
	w.WriteString("\n")
	w.WriteString(strings.Repeat("\t", depth))
	w.WriteString(")")
}

func writeCompact(b *strings.Builder, n *Node) {
	if n.Kind != KindList {
		b.WriteString(renderAtom(n))
		return
	}
	b.WriteString("(")
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(" ")
		}
		writeCompact(b, c)
	}
	b.WriteString(")")
}

func hasListChild(n *Node) bool {
	for _, c := range n.Children {
		if c.Kind == KindList {
			return true
		}
	}
	return false
}

func renderAtom(n *Node) string {
	if n.Kind == KindString {
		return `"` + escapeString(n.Value) + `"`
	}
	return n.Value
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
