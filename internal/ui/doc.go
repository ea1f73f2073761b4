// Package ui is the terminal front end of chartgrid, built on Bubble Tea.
//
// AppModel owns a workspace.Manager and renders its tree every frame through
// render.Renderer. Mouse presses on a splitter start a drag, motion feeds it
// and any release ends it. Keys and pane title buttons split and close panes.
// New windows are loaded asynchronously: the workspace's initialization hook
// queues a load and the result comes back as a ChartLoadedMsg.
package ui
