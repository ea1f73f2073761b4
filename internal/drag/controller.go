// Package drag turns pointer events on a splitter handle into resize calls.
//
// The Controller has two states. Idle ignores moves. PointerDown on a handle
// enters Dragging; each PointerMove while Dragging resizes the handle's split
// by the pointer travel along the split's axis since the previous event.
// PointerUp returns to Idle from any state, so hosts must forward every
// release they see, not only those over the handle.
//
// Travel is applied step by step, not measured from the drag's origin. Once a
// size hits its clamp, further travel in that direction is dropped, so moving
// the pointer back resizes immediately and the splitter no longer sits under
// the pointer for the rest of the drag.
package drag

import (
	"chartgrid/internal/layout"
)

// State is the controller state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Point is a pointer position in the host's coordinate space (terminal cells
// for the TUI).
type Point struct {
	X, Y int
}

// Handle identifies the splitter being dragged: the boundary between
// children PairIndex and PairIndex+1 of split SplitID.
type Handle struct {
	SplitID     layout.NodeID
	PairIndex   int
	Orientation layout.Orientation
	// ContainerSize is the split's extent along Orientation when the drag
	// started, in the same units as Point.
	ContainerSize int
}

// Host owns the authoritative tree. Current must return the latest tree at
// the time of the call; Commit stores a new one.
type Host interface {
	Current() layout.Node
	Commit(tree layout.Node)
}

// ResizeFunc has the signature of layout.Ops.Resize.
type ResizeFunc func(tree layout.Node, splitID layout.NodeID, pairIndex int, deltaPixels, containerSize float64) layout.Node

// Controller is the drag state machine. It is not safe for concurrent use;
// drive it from the host's event loop.
type Controller struct {
	host   Host
	resize ResizeFunc

	state  State
	handle Handle
	last   Point
}

// NewController returns an idle controller. A nil resize uses
// layout.DefaultOps().Resize.
func NewController(host Host, resize ResizeFunc) *Controller {
	if resize == nil {
		resize = layout.DefaultOps().Resize
	}
	return &Controller{host: host, resize: resize}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Handle returns the handle being dragged and whether a drag is active.
func (c *Controller) Handle() (Handle, bool) {
	return c.handle, c.state == Dragging
}

// PointerDown starts dragging h from p. A down while already dragging
// restarts on the new handle; the previous drag's missed release is
// treated as having happened.
func (c *Controller) PointerDown(h Handle, p Point) {
	c.state = Dragging
	c.handle = h
	c.last = p
}

// PointerMove resizes the dragged split by the travel since the last event.
// It reports whether the tree changed.
func (c *Controller) PointerMove(p Point) bool {
	if c.state != Dragging {
		return false
	}
	delta := p.X - c.last.X
	if c.handle.Orientation == layout.Vertical {
		delta = p.Y - c.last.Y
	}
	if delta == 0 {
		return false
	}
	c.last = p
	tree := c.host.Current()
	next := c.resize(tree, c.handle.SplitID, c.handle.PairIndex, float64(delta), float64(c.handle.ContainerSize))
	if next == tree {
		return false
	}
	c.host.Commit(next)
	return true
}

// PointerUp ends any drag.
func (c *Controller) PointerUp() {
	c.state = Idle
	c.handle = Handle{}
}
