package ui

import "chartgrid/internal/layout"

// SplitMsg splits the focused window.
type SplitMsg struct {
	Orientation layout.Orientation
}

// CloseMsg closes the focused window.
type CloseMsg struct{}

// FocusMsg moves focus by Delta windows in traversal order.
type FocusMsg struct {
	Delta int
}

// ToggleHelpMsg shows or hides the help bar.
type ToggleHelpMsg struct{}

// ChartLoadedMsg carries the result of loading window ID.
type ChartLoadedMsg struct {
	ID     layout.NodeID
	Series []float64
	Err    error
}
