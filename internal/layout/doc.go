// Package layout models a tiling pane layout as an immutable tree.
//
// A tree is either a single Window (a leaf holding opaque pane content) or a
// Split that partitions its area among two or more children along one axis.
// Sizes are percentages of the split's area and always sum to 100.
//
// Trees are never mutated in place. Ops.Split, Ops.Close, Ops.Resize and
// Ops.SetContent take a tree and return a new one, rebuilding only the path from the root to the
// node they touch; every other subtree is shared by pointer with the input.
// When an operation has nothing to do (unknown id, closing the last window)
// the input tree itself is returned, so callers can detect no-ops with ==.
//
// Nodes carry no parent references. Code that needs ancestry walks down from
// the root.
package layout
