package ui

import (
	"fmt"
	"strings"

	"chartgrid/internal/chart"
	"chartgrid/internal/layout"
	"chartgrid/internal/render"
	"chartgrid/internal/ui/textutil"

	"github.com/charmbracelet/lipgloss"
)

type buttonKind int

const (
	buttonSplitHorizontal buttonKind = iota
	buttonSplitVertical
	buttonClose
)

// titleButton is a clickable label on a pane's title row. Offset counts
// cells from the pane's left edge.
type titleButton struct {
	kind   buttonKind
	label  string
	offset int
}

// titleButtons lays out the buttons right-aligned in a title row width
// cells wide. None are shown when they would cover more than half the row.
func titleButtons(width int, canClose bool) []titleButton {
	buttons := []titleButton{
		{kind: buttonSplitHorizontal, label: "[|]"},
		{kind: buttonSplitVertical, label: "[-]"},
	}
	if canClose {
		buttons = append(buttons, titleButton{kind: buttonClose, label: "[x]"})
	}
	total := 0
	for _, b := range buttons {
		total += len(b.label)
	}
	if total*2 > width {
		return nil
	}
	x := width - total
	for i := range buttons {
		buttons[i].offset = x
		x += len(buttons[i].label)
	}
	return buttons
}

// buttonAt returns the button under column x of a title row.
func buttonAt(buttons []titleButton, x int) (titleButton, bool) {
	for _, b := range buttons {
		if x >= b.offset && x < b.offset+len(b.label) {
			return b, true
		}
	}
	return titleButton{}, false
}

// renderPane draws one chart window: a title row with buttons and the body.
func (m *AppModel) renderPane(p render.PaneProps) string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}
	title := m.renderTitle(p)
	if p.Height == 1 {
		return title
	}
	return title + "\n" + m.renderBody(p.Content, p.Width, p.Height-1)
}

func (m *AppModel) renderTitle(p render.PaneProps) string {
	style := Styles.Title
	if p.Focused {
		style = Styles.TitleFocused
	}
	label := " " + string(p.ID)
	if c, ok := p.Content.(chart.Config); ok {
		label = " " + c.Title()
	}

	buttons := titleButtons(p.Width, p.Actions.Close != nil)
	room := p.Width
	if len(buttons) > 0 {
		room = buttons[0].offset
	}
	label = textutil.Fit(label, room)
	var b strings.Builder
	b.WriteString(style.Render(label))
	for _, btn := range buttons {
		b.WriteString(Styles.Button.Inherit(style).Render(btn.label))
	}
	return b.String()
}

func (m *AppModel) renderBody(content any, width, height int) string {
	c, ok := content.(chart.Config)
	switch {
	case !ok:
		return Styles.Muted.Render("empty")
	case c.Pending():
		return m.spinner.View() + Styles.Muted.Render(" loading")
	case c.Err != "":
		return Styles.Error.Width(width).Render(c.Err)
	case len(c.Series) == 0:
		return Styles.Muted.Render("no data")
	}

	last := c.Series[len(c.Series)-1]
	change := chart.Change(c.Series)
	changeStyle := Styles.Up
	if change < 0 {
		changeStyle = Styles.Down
	}
	stats := fmt.Sprintf("%.2f ", last) + changeStyle.Render(fmt.Sprintf("%+.2f%%", change))
	if height == 1 {
		return stats
	}
	lines := chart.Sparkline(c.Series, width, height-1)
	return lipgloss.JoinVertical(lipgloss.Left, stats, Styles.Chart.Render(strings.Join(lines, "\n")))
}

// paneTitleHit runs the pane action under a click on a title row. The
// actions are the ones the renderer hands the pane when it draws it.
func (m *AppModel) paneTitleHit(p render.Pane, x int) bool {
	actions, ok := m.renderer().ActionsFor(m.ws.Tree(), p.ID)
	if !ok {
		return false
	}
	buttons := titleButtons(p.Rect.W, actions.Close != nil)
	b, ok := buttonAt(buttons, x-p.Rect.X)
	if !ok {
		return false
	}
	switch b.kind {
	case buttonSplitHorizontal:
		actions.Split(layout.Horizontal)
	case buttonSplitVertical:
		actions.Split(layout.Vertical)
	case buttonClose:
		actions.Close()
	}
	return true
}
