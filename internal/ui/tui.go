// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the frame monitor
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Control carries the quit signal from the TUI back to the pump loop
type Control struct {
	Quit chan struct{}
}

// NewControl creates a new TUI control handler
func NewControl() *Control {
	return &Control{
		Quit: make(chan struct{}, 1),
	}
}

// NewModel creates a new monitor model
func NewModel(ctrl *Control) Model {
	return Model{
		quit: ctrl,
	}
}

// Run starts the TUI
func Run(ctrl *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())
	return p, nil
}
