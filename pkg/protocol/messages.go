// ABOUTME: Framecast protocol message definitions
// ABOUTME: JSON control messages and the binary frame chunk layout
package protocol

import (
	"encoding/binary"
	"fmt"
)

// ProtocolVersion is the framecast protocol version this package speaks.
const ProtocolVersion = 1

// FrameChunkMessageType is the first byte of every binary frame chunk.
const FrameChunkMessageType = 1

// Message is the top-level wrapper for all JSON control messages.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ClientHello is sent by subscribers to initiate the handshake.
type ClientHello struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Version  int    `json:"version"`
}

// ServerHello is the server's response to client/hello.
type ServerHello struct {
	ServerID string `json:"server_id"`
	Name     string `json:"name"`
	Version  int    `json:"version"`
}

// StreamStart announces the stream a subscriber is about to receive. It
// carries the format metadata the demuxer derived from the first frame,
// plus the opaque codec private data in its hex wire encoding.
type StreamStart struct {
	Codec            string `json:"codec"` // always "mp3"
	Channels         int    `json:"channels"`
	SampleRate       int    `json:"sample_rate"`
	ByteRate         int    `json:"byte_rate"`
	BlockSize        int    `json:"block_size"`
	DurationTicks    int64  `json:"duration_ticks"` // 100ns units
	CanSeek          bool   `json:"can_seek"`
	CodecPrivateData string `json:"codec_private_data,omitempty"`
}

// StreamEnd tells subscribers the frame pump is exhausted.
type StreamEnd struct {
	Reason string `json:"reason,omitempty"` // "end_of_stream" or "shutdown"
}

// ClientGoodbye is sent before a graceful subscriber disconnect.
type ClientGoodbye struct {
	Reason string `json:"reason,omitempty"`
}

// EncodeFrameChunk builds a binary frame chunk: a 1-byte message type, an
// 8-byte big-endian timestamp in microseconds, and the frame payload.
func EncodeFrameChunk(timestampUS int64, frame []byte) []byte {
	chunk := make([]byte, 1+8+len(frame))
	chunk[0] = FrameChunkMessageType
	binary.BigEndian.PutUint64(chunk[1:9], uint64(timestampUS))
	copy(chunk[9:], frame)
	return chunk
}

// DecodeFrameChunk splits a binary frame chunk back into its timestamp and
// payload. The payload slice aliases data.
func DecodeFrameChunk(data []byte) (timestampUS int64, frame []byte, err error) {
	if len(data) < 9 {
		return 0, nil, fmt.Errorf("protocol: frame chunk too short: %d bytes", len(data))
	}
	if data[0] != FrameChunkMessageType {
		return 0, nil, fmt.Errorf("protocol: unknown binary message type %d", data[0])
	}
	return int64(binary.BigEndian.Uint64(data[1:9])), data[9:], nil
}
