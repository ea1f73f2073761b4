package layout

import (
	"math"
	"strconv"
	"strings"
)

// Walk calls fn for n and every descendant in depth-first, left-to-right
// order. depth is 0 for n. Returning false from fn skips that node's
// children.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	if s, ok := n.(*Split); ok {
		for _, child := range s.Children {
			walk(child, depth+1, fn)
		}
	}
}

// Find returns the node with the given id, or nil.
func Find(tree Node, id NodeID) Node {
	var found Node
	Walk(tree, func(n Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.NodeID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindWindow returns the window with the given id, or nil.
func FindWindow(tree Node, id NodeID) *Window {
	w, _ := Find(tree, id).(*Window)
	return w
}

// Windows returns every window in depth-first, left-to-right order.
func Windows(tree Node) []*Window {
	var out []*Window
	Walk(tree, func(n Node, _ int) bool {
		if w, ok := n.(*Window); ok {
			out = append(out, w)
		}
		return true
	})
	return out
}

// CountWindows returns the number of windows in tree.
func CountWindows(tree Node) int {
	count := 0
	Walk(tree, func(n Node, _ int) bool {
		if _, ok := n.(*Window); ok {
			count++
		}
		return true
	})
	return count
}

// Describe renders the tree shape, e.g.
// Split{horizontal, [Window(1), Window(2)], [50,50]}. Split ids and window
// content are omitted.
func Describe(n Node) string {
	var b strings.Builder
	describe(&b, n)
	return b.String()
}

func describe(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Window:
		b.WriteString("Window(")
		b.WriteString(string(n.ID))
		b.WriteString(")")
	case *Split:
		b.WriteString("Split{")
		b.WriteString(n.Orientation.String())
		b.WriteString(", [")
		for i, child := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			describe(b, child)
		}
		b.WriteString("], [")
		for i, size := range n.Sizes {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(strconv.FormatFloat(math.Round(size*100)/100, 'f', -1, 64))
		}
		b.WriteString("]}")
	}
}
