package ui

import (
	"chartgrid/internal/render"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
const (
	ColorAccent    = "86"  // titles, rising prices
	ColorHighlight = "205" // focus, active splitter
	ColorDanger    = "196" // errors, falling prices
	ColorMuted     = "241" // hints, idle splitters
	ColorText      = "252"
)

// Styles are the shared styles of the chart grid.
var Styles = struct {
	Title        lipgloss.Style
	TitleFocused lipgloss.Style
	Button       lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Up           lipgloss.Style
	Down         lipgloss.Style
	Chart        lipgloss.Style
	Splitter     lipgloss.Style
	Dragging     lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color("236")),
	TitleFocused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color(ColorAccent)),
	Button: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Up: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Down: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Chart: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Splitter: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Dragging: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
}

// splitterStyles adapts Styles for render.Renderer.
func splitterStyles() render.Styles {
	return render.Styles{
		Splitter:       Styles.Splitter,
		ActiveSplitter: Styles.Dragging,
	}
}
