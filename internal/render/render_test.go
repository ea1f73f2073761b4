package render

import (
	"fmt"
	"strings"
	"testing"

	"chartgrid/internal/layout"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requests struct {
	splits []string
	closes []layout.NodeID
}

func (r *requests) RequestSplit(id layout.NodeID, o layout.Orientation) bool {
	r.splits = append(r.splits, fmt.Sprintf("%s:%s", id, o))
	return true
}

func (r *requests) RequestClose(id layout.NodeID) bool {
	r.closes = append(r.closes, id)
	return true
}

type recorder struct {
	props []PaneProps
}

func (rec *recorder) RenderPane(p PaneProps) string {
	rec.props = append(rec.props, p)
	return string(p.ID)
}

func TestRender_Dimensions(t *testing.T) {
	tree := split("s1", layout.Horizontal, []float64{50, 50},
		win("1"),
		split("s2", layout.Vertical, []float64{30, 70}, win("2"), win("3")),
	)
	r := Renderer{Panes: &recorder{}}
	out := r.Render(tree, 41, 12)

	assert.Equal(t, 41, lipgloss.Width(out))
	assert.Equal(t, 12, lipgloss.Height(out))
	assert.Contains(t, out, "│")
	assert.Contains(t, out, "─")
}

func TestRender_PropsMatchGeometry(t *testing.T) {
	tree := split("s1", layout.Horizontal, []float64{60, 40}, win("1"), win("2"))
	rec := &recorder{}
	r := Renderer{Panes: rec, Focused: "2"}
	r.Render(tree, 51, 10)

	l := Compute(tree, Rect{W: 51, H: 10})
	require.Len(t, rec.props, 2)
	for i, p := range rec.props {
		assert.Equal(t, l.Panes[i].ID, p.ID)
		assert.Equal(t, l.Panes[i].Rect.W, p.Width)
		assert.Equal(t, l.Panes[i].Rect.H, p.Height)
	}
	assert.False(t, rec.props[0].Focused)
	assert.True(t, rec.props[1].Focused)
}

func TestRender_CloseAbsentForSoleWindow(t *testing.T) {
	rec := &recorder{}
	req := &requests{}
	r := Renderer{Panes: rec, Actions: req}
	r.Render(win("1"), 20, 5)

	require.Len(t, rec.props, 1)
	assert.Nil(t, rec.props[0].Actions.Close)
	require.NotNil(t, rec.props[0].Actions.Split)
	rec.props[0].Actions.Split(layout.Vertical)
	assert.Equal(t, []string{"1:vertical"}, req.splits)
}

func TestRender_ActionsTargetTheirPane(t *testing.T) {
	rec := &recorder{}
	req := &requests{}
	r := Renderer{Panes: rec, Actions: req}
	tree := split("s1", layout.Vertical, []float64{50, 50}, win("1"), win("2"))
	r.Render(tree, 20, 11)

	require.Len(t, rec.props, 2)
	for _, p := range rec.props {
		require.NotNil(t, p.Actions.Close)
	}
	rec.props[1].Actions.Close()
	rec.props[0].Actions.Split(layout.Horizontal)
	assert.Equal(t, []layout.NodeID{"2"}, req.closes)
	assert.Equal(t, []string{"1:horizontal"}, req.splits)
}

func TestActionsFor_MatchRenderedProps(t *testing.T) {
	req := &requests{}
	r := Renderer{Actions: req}
	tree := split("s1", layout.Horizontal, []float64{50, 50}, win("1"), win("2"))

	a, ok := r.ActionsFor(tree, "2")
	require.True(t, ok)
	require.NotNil(t, a.Close)
	a.Close()
	a.Split(layout.Vertical)
	assert.Equal(t, []layout.NodeID{"2"}, req.closes)
	assert.Equal(t, []string{"2:vertical"}, req.splits)

	sole, ok := r.ActionsFor(win("1"), "1")
	require.True(t, ok)
	assert.Nil(t, sole.Close)

	_, ok = r.ActionsFor(tree, "s1")
	assert.False(t, ok, "splits have no pane actions")
	_, ok = r.ActionsFor(tree, "9")
	assert.False(t, ok)
}

func TestRender_ClipsOversizedBody(t *testing.T) {
	r := Renderer{Panes: PaneRendererFunc(func(p PaneProps) string {
		return strings.Repeat(strings.Repeat("x", 100)+"\n", 50)
	})}
	out := r.Render(win("1"), 10, 3)
	assert.Equal(t, 10, lipgloss.Width(out))
	assert.Equal(t, 3, lipgloss.Height(out))
}

func TestRender_ActiveSplitterStyled(t *testing.T) {
	tree := split("s1", layout.Horizontal, []float64{50, 50}, win("1"), win("2"))
	styles := Styles{
		Splitter:       lipgloss.NewStyle().Transform(func(s string) string { return strings.ReplaceAll(s, "│", "|") }),
		ActiveSplitter: lipgloss.NewStyle().Transform(func(s string) string { return strings.ReplaceAll(s, "│", "#") }),
	}
	r := Renderer{Panes: &recorder{}, Styles: styles}
	idle := r.Render(tree, 21, 3)
	assert.Contains(t, idle, "|")
	assert.NotContains(t, idle, "#")

	r.Active = &SplitterRef{SplitID: "s1", PairIndex: 0}
	active := r.Render(tree, 21, 3)
	assert.Contains(t, active, "#")
	assert.NotContains(t, active, "|")
}

func TestRender_Empty(t *testing.T) {
	r := Renderer{}
	assert.Empty(t, r.Render(nil, 10, 10))
	assert.Empty(t, r.Render(win("1"), 0, 10))
}
