// Package ui implements the Bubble Tea front end: a fixed grid of browsing
// panes over the menu cache, a detail panel for manifests and layer
// commands, and fuzzy filtering within the focused pane.
package ui
