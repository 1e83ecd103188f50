// ABOUTME: Tests for protocol message encoding
// ABOUTME: Frame chunk round trips and malformed chunk rejection
package protocol

import (
	"bytes"
	"testing"
)

func TestFrameChunkRoundTrip(t *testing.T) {
	payload := []byte{0xFF, 0xFB, 0x90, 0x00, 0x01, 0x02, 0x03}
	chunk := EncodeFrameChunk(1234567, payload)

	if len(chunk) != 9+len(payload) {
		t.Fatalf("chunk length = %d, want %d", len(chunk), 9+len(payload))
	}
	if chunk[0] != FrameChunkMessageType {
		t.Errorf("message type = %d, want %d", chunk[0], FrameChunkMessageType)
	}

	ts, frame, err := DecodeFrameChunk(chunk)
	if err != nil {
		t.Fatalf("DecodeFrameChunk() error = %v", err)
	}
	if ts != 1234567 {
		t.Errorf("timestamp = %d, want 1234567", ts)
	}
	if !bytes.Equal(frame, payload) {
		t.Errorf("payload = %x, want %x", frame, payload)
	}
}

func TestDecodeFrameChunkRejectsMalformed(t *testing.T) {
	if _, _, err := DecodeFrameChunk([]byte{FrameChunkMessageType, 0, 0}); err == nil {
		t.Error("DecodeFrameChunk() error = nil for a short chunk")
	}
	if _, _, err := DecodeFrameChunk(make([]byte, 16)); err == nil {
		t.Error("DecodeFrameChunk() error = nil for an unknown message type")
	}
}

func TestEncodeFrameChunkEmptyPayload(t *testing.T) {
	chunk := EncodeFrameChunk(0, nil)
	ts, frame, err := DecodeFrameChunk(chunk)
	if err != nil {
		t.Fatalf("DecodeFrameChunk() error = %v", err)
	}
	if ts != 0 || len(frame) != 0 {
		t.Errorf("got ts=%d len=%d, want zero chunk", ts, len(frame))
	}
}
