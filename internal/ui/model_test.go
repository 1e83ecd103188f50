// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, message handling, and state transitions
package ui

import (
	"testing"
	"time"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // Control is optional for testing

	if model.opened {
		t.Error("expected opened to be false initially")
	}

	if model.exhausted {
		t.Error("expected exhausted to be false initially")
	}

	if model.showDebug {
		t.Error("expected showDebug to be false initially")
	}
}

func TestStatusMsgOpened(t *testing.T) {
	model := NewModel(nil)

	opened := true
	msg := StatusMsg{
		Opened:     &opened,
		SourceName: "test.mp3",
	}

	model.applyStatus(msg)

	if !model.opened {
		t.Error("expected opened to be true after status update")
	}

	if model.sourceName != "test.mp3" {
		t.Errorf("expected sourceName 'test.mp3', got '%s'", model.sourceName)
	}
}

func TestStatusMsgStreamInfo(t *testing.T) {
	model := NewModel(nil)

	msg := StatusMsg{
		Codec:      "mp3",
		SampleRate: 44100,
		Channels:   2,
		ByteRate:   16000,
		BlockSize:  417,
		Seekable:   true,
		Duration:   275 * time.Second,
		Length:     4410000,
	}

	model.applyStatus(msg)

	if model.codec != "mp3" {
		t.Errorf("expected codec 'mp3', got '%s'", model.codec)
	}

	if model.sampleRate != 44100 {
		t.Errorf("expected sampleRate 44100, got %d", model.sampleRate)
	}

	if model.channels != 2 {
		t.Errorf("expected channels 2, got %d", model.channels)
	}

	if model.duration != 275*time.Second {
		t.Errorf("expected duration 275s, got %v", model.duration)
	}

	if model.length != 4410000 {
		t.Errorf("expected length 4410000, got %d", model.length)
	}
}

func TestStatusMsgPumpStats(t *testing.T) {
	model := NewModel(nil)

	msg := StatusMsg{
		Frames:    42,
		Bytes:     42 * 413,
		Cursor:    42*417 + 4,
		Timestamp: 1100 * time.Millisecond,
	}

	model.applyStatus(msg)

	if model.frames != 42 {
		t.Errorf("expected frames 42, got %d", model.frames)
	}

	if model.cursor != 42*417+4 {
		t.Errorf("expected cursor %d, got %d", 42*417+4, model.cursor)
	}

	if model.timestamp != 1100*time.Millisecond {
		t.Errorf("expected timestamp 1.1s, got %v", model.timestamp)
	}
}

func TestStatusMsgExhausted(t *testing.T) {
	model := NewModel(nil)

	// Exhaustion must apply even when the frame count did not change.
	model.applyStatus(StatusMsg{Frames: 3})
	model.applyStatus(StatusMsg{Frames: 3, Exhausted: true})

	if !model.exhausted {
		t.Error("expected exhausted to be true after status update")
	}
}

func TestMultipleStatusUpdates(t *testing.T) {
	model := NewModel(nil)

	opened := true
	model.applyStatus(StatusMsg{
		Opened: &opened,
		Codec:  "mp3",
	})

	if model.codec != "mp3" {
		t.Error("first update failed")
	}

	model.applyStatus(StatusMsg{
		Codec:      "mp3",
		SampleRate: 44100,
	})

	// Previous values should be retained
	if model.codec != "mp3" {
		t.Error("previous codec value was lost")
	}

	if model.sampleRate != 44100 {
		t.Error("new sampleRate not applied")
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"this is longer than allowed", 10, "this is..."},
		{"", 10, ""},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

func TestChannelNameFunction(t *testing.T) {
	tests := []struct {
		channels int
		expected string
	}{
		{1, "Mono"},
		{2, "Stereo"},
	}

	for _, tt := range tests {
		result := channelName(tt.channels)
		if result != tt.expected {
			t.Errorf("channelName(%d) = %q, expected %q",
				tt.channels, result, tt.expected)
		}
	}
}
