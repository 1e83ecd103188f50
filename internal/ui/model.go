// ABOUTME: Bubbletea model for the frame monitor TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Stream
	opened     bool
	sourceName string
	codec      string
	sampleRate int
	channels   int
	byteRate   int
	blockSize  int
	seekable   bool
	duration   time.Duration

	// Pump
	frames    int64
	bytes     int64
	cursor    int64
	length    int64
	timestamp time.Duration
	exhausted bool

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int

	quit *Control
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStreamInfo()
	s += m.renderPump()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders the source status line
func (m Model) renderHeader() string {
	status := "No stream"
	if m.opened {
		status = fmt.Sprintf("Streaming %s", truncate(m.sourceName, 32))
	}
	if m.exhausted {
		status = "Exhausted"
	}

	return fmt.Sprintf(`┌─ Framecast Monitor ──────────────────────────────────┐
│ Status: %-45s │
├──────────────────────────────────────────────────────┤
`, status)
}

// renderStreamInfo renders the demuxed format
func (m Model) renderStreamInfo() string {
	if !m.opened {
		return "│ Waiting for stream...                                │\n"
	}

	seek := "no"
	if m.seekable {
		seek = "yes"
	}

	s := fmt.Sprintf("│ Format:   %s %dHz %s%-23s │\n",
		m.codec, m.sampleRate, channelName(m.channels), "")
	s += fmt.Sprintf("│ Rate:     %d B/s, %d byte frames%-16s │\n",
		m.byteRate, m.blockSize, "")
	s += fmt.Sprintf("│ Duration: %-14v seekable: %-3s%-12s │\n",
		m.duration, seek, "")

	return s
}

// renderPump renders frame pump progress
func (m Model) renderPump() string {
	progress := 0
	if m.length > 0 {
		progress = int(m.cursor * 100 / m.length)
		if progress > 100 {
			progress = 100
		}
	}

	bar := renderBar(progress, 100, 20)

	return fmt.Sprintf("│                                                      │\n"+
		"│ Progress: [%s] %3d%%%-15s │\n"+
		"│ Frames: %-10d Position: %-14v%-6s │\n",
		bar, progress, "",
		m.frames, m.timestamp, "")
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ d:Debug  q:Quit                                      │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders cursor internals
func (m Model) renderDebug() string {
	return fmt.Sprintf(`│ DEBUG:                                               │
│   Cursor: %d / %d bytes%-20s │
│   Payload bytes: %d%-28s │
`, m.cursor, m.length, "", m.bytes, "")
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.quit != nil {
			select {
			case m.quit.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from a status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Opened != nil {
		m.opened = *msg.Opened
	}
	if msg.SourceName != "" {
		m.sourceName = msg.SourceName
	}
	if msg.Codec != "" {
		m.codec = msg.Codec
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.byteRate = msg.ByteRate
		m.blockSize = msg.BlockSize
		m.seekable = msg.Seekable
		m.duration = msg.Duration
		m.length = msg.Length
	}
	if msg.Frames != 0 || msg.Exhausted {
		m.frames = msg.Frames
		m.bytes = msg.Bytes
		m.cursor = msg.Cursor
		m.timestamp = msg.Timestamp
		m.exhausted = msg.Exhausted
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Opened     *bool
	SourceName string
	Codec      string
	SampleRate int
	Channels   int
	ByteRate   int
	BlockSize  int
	Seekable   bool
	Duration   time.Duration
	Length     int64
	Frames     int64
	Bytes      int64
	Cursor     int64
	Timestamp  time.Duration
	Exhausted  bool
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}
