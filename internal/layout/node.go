package layout

import "fmt"

// NodeID identifies a node. Ids are unique across a tree.
type NodeID string

// Orientation is the axis along which a Split arranges its children.
type Orientation int

const (
	// Horizontal lays children out left to right.
	Horizontal Orientation = iota
	// Vertical stacks children top to bottom.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation accepts "horizontal"/"h" and "vertical"/"v".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Node is either a *Window or a *Split.
type Node interface {
	NodeID() NodeID
	isNode()
}

// Window is a leaf pane. Content is opaque to this package.
type Window struct {
	ID      NodeID
	Content any
}

// Split partitions its area among Children. Sizes[i] is the percentage of the
// split's extent along Orientation given to Children[i].
type Split struct {
	ID          NodeID
	Orientation Orientation
	Children    []Node
	Sizes       []float64
}

// NodeID returns the window id.
func (w *Window) NodeID() NodeID { return w.ID }

// NodeID returns the split id.
func (s *Split) NodeID() NodeID { return s.ID }

func (*Window) isNode() {}
func (*Split) isNode()  {}

// NewWindow returns a window with the given id and content.
func NewWindow(id NodeID, content any) *Window {
	return &Window{ID: id, Content: content}
}

// with returns a copy of s whose child at index i is replaced by child.
func (s *Split) with(i int, child Node) *Split {
	children := make([]Node, len(s.Children))
	copy(children, s.Children)
	children[i] = child
	return &Split{
		ID:          s.ID,
		Orientation: s.Orientation,
		Children:    children,
		Sizes:       cloneSizes(s.Sizes),
	}
}

func cloneSizes(sizes []float64) []float64 {
	out := make([]float64, len(sizes))
	copy(out, sizes)
	return out
}
