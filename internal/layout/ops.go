package layout

import "math"

// DefaultMinPane is the smallest percentage a resized pane may shrink to.
const DefaultMinPane = 20

// Ops bundles the policy the tree operations need. The zero value is usable:
// it behaves like DefaultOps.
type Ops struct {
	// MinPane bounds every resized size to [MinPane, 100-MinPane].
	MinPane float64
	// NewID generates ids for nodes created by Split.
	NewID IDGenerator
	// Derive builds the content of the fresh window created by Split from
	// the content of the window being split. The result should mark the
	// content as not yet initialized. Nil yields nil content.
	Derive func(content any) any
}

// DefaultOps returns Ops with DefaultMinPane, uuid ids and nil derived content.
func DefaultOps() Ops {
	return Ops{MinPane: DefaultMinPane, NewID: UUIDs()}
}

func (o Ops) minPane() float64 {
	if o.MinPane <= 0 {
		return DefaultMinPane
	}
	return o.MinPane
}

func (o Ops) newID(kind NodeKind) NodeID {
	if o.NewID == nil {
		return UUIDs()(kind)
	}
	return o.NewID(kind)
}

func (o Ops) derive(content any) any {
	if o.Derive == nil {
		return nil
	}
	return o.Derive(content)
}

// Split replaces the window target with a split of the given orientation
// holding the original window and a fresh one, sized 50/50. The tree is
// returned unchanged when target is not a window in it.
func (o Ops) Split(tree Node, target NodeID, orientation Orientation) Node {
	out, ok := replace(tree, target, func(n Node) (Node, bool) {
		w, ok := n.(*Window)
		if !ok {
			return n, false
		}
		fresh := &Window{ID: o.newID(KindWindow), Content: o.derive(w.Content)}
		return &Split{
			ID:          o.newID(KindSplit),
			Orientation: orientation,
			Children:    []Node{w, fresh},
			Sizes:       []float64{50, 50},
		}, true
	})
	if !ok {
		return tree
	}
	return out
}

// Close removes the window target. A split left with one child is replaced
// by that child; a split left with several gets even sizes. Closing the last
// window, or an id that is not a window in the tree, returns tree unchanged.
func (o Ops) Close(tree Node, target NodeID) Node {
	if _, ok := tree.(*Window); ok {
		return tree
	}
	out, found := closeIn(tree, target)
	if !found || out == nil {
		return tree
	}
	return out
}

// Resize moves the boundary between Sizes[pairIndex] and Sizes[pairIndex+1]
// of the split splitID by deltaPixels out of containerSize pixels. Both
// adjusted sizes are clamped independently to [MinPane, 100-MinPane]; no
// other size changes and the pair is not renormalized against the rest.
func (o Ops) Resize(tree Node, splitID NodeID, pairIndex int, deltaPixels, containerSize float64) Node {
	if containerSize <= 0 || pairIndex < 0 {
		return tree
	}
	minPane := o.minPane()
	out, ok := replace(tree, splitID, func(n Node) (Node, bool) {
		s, ok := n.(*Split)
		if !ok || pairIndex+1 >= len(s.Sizes) {
			return n, false
		}
		delta := deltaPixels * 100 / containerSize
		first := clamp(s.Sizes[pairIndex]+delta, minPane, 100-minPane)
		second := clamp(s.Sizes[pairIndex+1]-delta, minPane, 100-minPane)
		if first == s.Sizes[pairIndex] && second == s.Sizes[pairIndex+1] {
			return n, false
		}
		sizes := cloneSizes(s.Sizes)
		sizes[pairIndex] = first
		sizes[pairIndex+1] = second
		return &Split{ID: s.ID, Orientation: s.Orientation, Children: s.Children, Sizes: sizes}, true
	})
	if !ok {
		return tree
	}
	return out
}

// SetContent replaces the content of the window id. Unknown ids are a no-op.
func (o Ops) SetContent(tree Node, id NodeID, content any) Node {
	out, ok := replace(tree, id, func(n Node) (Node, bool) {
		w, ok := n.(*Window)
		if !ok {
			return n, false
		}
		return &Window{ID: w.ID, Content: content}, true
	})
	if !ok {
		return tree
	}
	return out
}

// replace finds the node id and substitutes fn's result for it, rebuilding
// every split on the path. The bool is false when id was not found or fn
// declined, in which case n is returned as-is.
func replace(n Node, id NodeID, fn func(Node) (Node, bool)) (Node, bool) {
	if n.NodeID() == id {
		return fn(n)
	}
	s, ok := n.(*Split)
	if !ok {
		return n, false
	}
	for i, child := range s.Children {
		if out, ok := replace(child, id, fn); ok {
			return s.with(i, out), true
		}
	}
	return n, false
}

// closeIn removes the window target below n. A nil result means n itself
// is gone.
func closeIn(n Node, target NodeID) (Node, bool) {
	switch n := n.(type) {
	case *Window:
		if n.ID == target {
			return nil, true
		}
	case *Split:
		for i, child := range n.Children {
			out, found := closeIn(child, target)
			if !found {
				continue
			}
			if out != nil {
				return n.with(i, out), true
			}
			return n.without(i), true
		}
	}
	return n, false
}

// without drops child i and flattens the split if fewer than two remain.
func (s *Split) without(i int) Node {
	children := make([]Node, 0, len(s.Children)-1)
	children = append(children, s.Children[:i]...)
	children = append(children, s.Children[i+1:]...)
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return &Split{
		ID:          s.ID,
		Orientation: s.Orientation,
		Children:    children,
		Sizes:       evenSizes(len(children)),
	}
}

func evenSizes(n int) []float64 {
	sizes := make([]float64, n)
	for i := range sizes {
		sizes[i] = 100 / float64(n)
	}
	return sizes
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
