package tmux

import (
	"fmt"
	"strings"

	"chartgrid/internal/layout"
	"chartgrid/internal/render"
)

// LayoutString renders tree as a tmux custom layout for a w x h window, as
// accepted by select-layout. Pane numbers come from paneIDs, falling back to
// the window's position in traversal order.
//
// The grammar is checksum "," cell, where a cell is "WxH,X,Y" followed by
// ",N" for a pane, "{...}" for side-by-side children or "[...]" for stacked
// children. tmux puts a one-cell border between panes, which matches the
// splitter cells of render.Compute.
func LayoutString(tree layout.Node, w, h int, paneIDs map[layout.NodeID]int) string {
	geo := render.Compute(tree, render.Rect{W: w, H: h})
	rects := make(map[layout.NodeID]render.Rect, len(geo.Panes))
	order := make(map[layout.NodeID]int, len(geo.Panes))
	for i, p := range geo.Panes {
		rects[p.ID] = p.Rect
		order[p.ID] = i
	}

	var cell func(n layout.Node) (string, render.Rect)
	cell = func(n layout.Node) (string, render.Rect) {
		switch n := n.(type) {
		case *layout.Window:
			r := rects[n.ID]
			id, ok := paneIDs[n.ID]
			if !ok {
				id = order[n.ID]
			}
			return fmt.Sprintf("%dx%d,%d,%d,%d", r.W, r.H, r.X, r.Y, id), r
		case *layout.Split:
			parts := make([]string, len(n.Children))
			var box render.Rect
			for i, child := range n.Children {
				var r render.Rect
				parts[i], r = cell(child)
				box = union(box, r, i == 0)
			}
			open, end := "{", "}"
			if n.Orientation == layout.Vertical {
				open, end = "[", "]"
			}
			return fmt.Sprintf("%dx%d,%d,%d%s%s%s", box.W, box.H, box.X, box.Y, open, strings.Join(parts, ","), end), box
		}
		return "", render.Rect{}
	}
	body, _ := cell(tree)
	return fmt.Sprintf("%04x,%s", Checksum(body), body)
}

func union(a, b render.Rect, first bool) render.Rect {
	if first {
		return b
	}
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.X+a.W, b.X+b.W), max(a.Y+a.H, b.Y+b.H)
	return render.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Checksum is tmux's 16-bit layout checksum.
func Checksum(s string) uint16 {
	var csum uint16
	for i := 0; i < len(s); i++ {
		csum = (csum >> 1) + ((csum & 1) << 15)
		csum += uint16(s[i])
	}
	return csum
}
