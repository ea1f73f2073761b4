// Package render walks a layout tree to place and draw its panes.
//
// Compute assigns every window and every splitter a cell rectangle inside a
// bounding box; the UI uses the result for hit testing and to size drags.
// Renderer performs the same walk and draws the tree as a string, delegating
// each window's body to a PaneRenderer and drawing a one-cell splitter
// between adjacent children of every split.
package render

import (
	"math"
	"sort"

	"chartgrid/internal/layout"
)

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Pane is the placement of one window.
type Pane struct {
	ID      layout.NodeID
	Content any
	Rect    Rect
}

// Splitter is the draggable boundary between children PairIndex and
// PairIndex+1 of split SplitID.
type Splitter struct {
	SplitID     layout.NodeID
	PairIndex   int
	Orientation layout.Orientation
	Rect        Rect
	// ContainerSize is the number of cells the split's children share along
	// its axis, excluding splitters. Drag deltas are measured against it.
	ContainerSize int
}

// Layout is the computed placement of a tree.
type Layout struct {
	Bounds    Rect
	Panes     []Pane
	Splitters []Splitter
}

// Compute places tree inside bounds.
func Compute(tree layout.Node, bounds Rect) *Layout {
	l := &Layout{Bounds: bounds}
	l.place(tree, bounds)
	return l
}

func (l *Layout) place(n layout.Node, r Rect) {
	switch n := n.(type) {
	case *layout.Window:
		l.Panes = append(l.Panes, Pane{ID: n.ID, Content: n.Content, Rect: r})
	case *layout.Split:
		d := divide(r, n)
		for i, child := range n.Children {
			l.place(child, d.children[i])
			if i < len(d.splitters) {
				l.Splitters = append(l.Splitters, Splitter{
					SplitID:       n.ID,
					PairIndex:     i,
					Orientation:   n.Orientation,
					Rect:          d.splitters[i],
					ContainerSize: d.container,
				})
			}
		}
	}
}

// PaneAt returns the pane containing cell (x, y).
func (l *Layout) PaneAt(x, y int) (Pane, bool) {
	for _, p := range l.Panes {
		if p.Rect.Contains(x, y) {
			return p, true
		}
	}
	return Pane{}, false
}

// SplitterAt returns the splitter containing cell (x, y).
func (l *Layout) SplitterAt(x, y int) (Splitter, bool) {
	for _, s := range l.Splitters {
		if s.Rect.Contains(x, y) {
			return s, true
		}
	}
	return Splitter{}, false
}

// Pane returns the placement of window id.
func (l *Layout) Pane(id layout.NodeID) (Pane, bool) {
	for _, p := range l.Panes {
		if p.ID == id {
			return p, true
		}
	}
	return Pane{}, false
}

// division is a split's rectangle cut into child and splitter rectangles.
type division struct {
	children  []Rect
	splitters []Rect
	container int
}

// divide cuts r along s's axis: one cell per splitter, the rest shared by
// the children in proportion to s.Sizes.
func divide(r Rect, s *layout.Split) division {
	n := len(s.Children)
	extent := r.W
	if s.Orientation == layout.Vertical {
		extent = r.H
	}
	container := extent - (n - 1)
	if container < 0 {
		container = 0
	}
	cells := apportion(container, s.Sizes, n)

	d := division{container: container}
	offset := 0
	for i := 0; i < n; i++ {
		d.children = append(d.children, along(r, s.Orientation, offset, cells[i]))
		offset += cells[i]
		if i < n-1 {
			d.splitters = append(d.splitters, along(r, s.Orientation, offset, 1))
			offset++
		}
	}
	return d
}

// along returns the slice of r starting offset cells along o with the given
// length.
func along(r Rect, o layout.Orientation, offset, length int) Rect {
	if o == layout.Vertical {
		return Rect{X: r.X, Y: r.Y + offset, W: r.W, H: length}
	}
	return Rect{X: r.X + offset, Y: r.Y, W: length, H: r.H}
}

// apportion splits total cells among n children by sizes using the largest
// remainder method. Every child gets at least one cell while total allows.
func apportion(total int, sizes []float64, n int) []int {
	cells := make([]int, n)
	if n == 0 || total <= 0 {
		return cells
	}
	sum := 0.0
	for i := 0; i < n && i < len(sizes); i++ {
		sum += sizes[i]
	}
	if sum <= 0 {
		sum = 1
	}

	type remainder struct {
		index int
		frac  float64
	}
	rems := make([]remainder, n)
	used := 0
	for i := 0; i < n; i++ {
		size := 0.0
		if i < len(sizes) {
			size = sizes[i]
		}
		exact := float64(total) * size / sum
		cells[i] = int(math.Floor(exact))
		used += cells[i]
		rems[i] = remainder{index: i, frac: exact - math.Floor(exact)}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; used < total; i = (i + 1) % n {
		cells[rems[i].index]++
		used++
	}

	if total < n {
		return cells
	}
	for i := range cells {
		if cells[i] > 0 {
			continue
		}
		largest := 0
		for j := range cells {
			if cells[j] > cells[largest] {
				largest = j
			}
		}
		cells[largest]--
		cells[i]++
	}
	return cells
}
