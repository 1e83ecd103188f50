// ABOUTME: Tests for discovery manager lifecycle
// ABOUTME: Construction, channel plumbing, and stop behavior
package discovery

import (
	"testing"
	"time"
)

func TestNewManager(t *testing.T) {
	m := NewManager(Config{ServiceName: "test-framecast", Port: 9544})
	if m == nil {
		t.Fatal("NewManager() returned nil")
	}
	if m.Servers() == nil {
		t.Error("Servers() returned nil channel")
	}
	m.Stop()
}

func TestStopUnblocksBrowse(t *testing.T) {
	m := NewManager(Config{ServiceName: "test-framecast", Port: 9544})

	done := make(chan struct{})
	go func() {
		<-m.ctx.Done()
		close(done)
	}()

	m.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Stop() did not cancel the manager context")
	}
}
