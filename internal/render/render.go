package render

import (
	"strings"

	"chartgrid/internal/layout"

	"github.com/charmbracelet/lipgloss"
)

// PaneActions are the pane-level operations offered to a pane renderer.
type PaneActions struct {
	// Split requests splitting the pane. Always set.
	Split func(layout.Orientation)
	// Close requests closing the pane. Nil when it is the only window.
	Close func()
}

// PaneProps is everything a pane renderer receives for one window.
type PaneProps struct {
	ID      layout.NodeID
	Content any
	Width   int
	Height  int
	Focused bool
	Actions PaneActions
}

// PaneRenderer draws the body of one window. The result is clipped or padded
// to Width x Height.
type PaneRenderer interface {
	RenderPane(p PaneProps) string
}

// PaneRendererFunc adapts a function to PaneRenderer.
type PaneRendererFunc func(p PaneProps) string

// RenderPane implements PaneRenderer.
func (f PaneRendererFunc) RenderPane(p PaneProps) string { return f(p) }

// Requester receives the pane actions. The workspace implements it.
type Requester interface {
	RequestSplit(id layout.NodeID, o layout.Orientation) bool
	RequestClose(id layout.NodeID) bool
}

// SplitterRef names one splitter.
type SplitterRef struct {
	SplitID   layout.NodeID
	PairIndex int
}

// Styles controls splitter drawing.
type Styles struct {
	Splitter       lipgloss.Style
	ActiveSplitter lipgloss.Style
}

// Renderer draws a tree.
type Renderer struct {
	Panes   PaneRenderer
	Actions Requester
	Styles  Styles
	// Focused marks one window as focused in its PaneProps.
	Focused layout.NodeID
	// Active is the splitter being dragged, drawn with ActiveSplitter.
	Active *SplitterRef
}

// Render draws tree into a width x height block.
func (r Renderer) Render(tree layout.Node, width, height int) string {
	if tree == nil || width <= 0 || height <= 0 {
		return ""
	}
	_, sole := tree.(*layout.Window)
	return r.node(tree, Rect{W: width, H: height}, sole)
}

func (r Renderer) node(n layout.Node, rect Rect, sole bool) string {
	switch n := n.(type) {
	case *layout.Window:
		return r.window(n, rect, sole)
	case *layout.Split:
		return r.split(n, rect, sole)
	}
	return ""
}

func (r Renderer) window(w *layout.Window, rect Rect, sole bool) string {
	if rect.W <= 0 || rect.H <= 0 {
		return ""
	}
	props := PaneProps{
		ID:      w.ID,
		Content: w.Content,
		Width:   rect.W,
		Height:  rect.H,
		Focused: w.ID == r.Focused,
		Actions: r.actions(w.ID, sole),
	}
	body := ""
	if r.Panes != nil {
		body = r.Panes.RenderPane(props)
	}
	return lipgloss.NewStyle().
		Width(rect.W).
		Height(rect.H).
		MaxWidth(rect.W).
		MaxHeight(rect.H).
		Render(body)
}

// ActionsFor returns the actions Render hands the pane renderer for window
// id of tree, for hosts that dispatch input after the frame is drawn.
func (r Renderer) ActionsFor(tree layout.Node, id layout.NodeID) (PaneActions, bool) {
	if layout.FindWindow(tree, id) == nil {
		return PaneActions{}, false
	}
	_, sole := tree.(*layout.Window)
	return r.actions(id, sole), true
}

func (r Renderer) actions(id layout.NodeID, sole bool) PaneActions {
	a := PaneActions{
		Split: func(o layout.Orientation) {
			if r.Actions != nil {
				r.Actions.RequestSplit(id, o)
			}
		},
	}
	if !sole {
		a.Close = func() {
			if r.Actions != nil {
				r.Actions.RequestClose(id)
			}
		}
	}
	return a
}

func (r Renderer) split(s *layout.Split, rect Rect, sole bool) string {
	d := divide(rect, s)
	parts := make([]string, 0, 2*len(s.Children)-1)
	for i, child := range s.Children {
		if part := r.node(child, d.children[i], sole); part != "" {
			parts = append(parts, part)
		}
		if i < len(d.splitters) {
			parts = append(parts, r.splitter(s, i, d.splitters[i]))
		}
	}
	if s.Orientation == layout.Vertical {
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r Renderer) splitter(s *layout.Split, pair int, rect Rect) string {
	style := r.Styles.Splitter
	if r.Active != nil && r.Active.SplitID == s.ID && r.Active.PairIndex == pair {
		style = r.Styles.ActiveSplitter
	}
	if s.Orientation == layout.Vertical {
		return style.Render(strings.Repeat("─", rect.W))
	}
	if rect.H <= 0 {
		return ""
	}
	return style.Render(strings.Repeat("│\n", rect.H-1) + "│")
}
