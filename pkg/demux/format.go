// ABOUTME: Stream-level format descriptor derived from the first frame
// ABOUTME: Immutable metadata: channels, rate, byte rate, block size
package demux

// FormatTagMP3 is the fixed encoder identifier carried by the format
// descriptor (the MPEG Layer 3 wave format tag).
const FormatTagMP3 = 0x0055

// Format describes the stream, derived once from the first frame at open
// time and immutable thereafter. For variable-bitrate content the byte rate
// — and everything computed from it — is an estimate based on the first
// frame alone.
type Format struct {
	// Channels is 1 (mono) or 2 (any stereo-like mode).
	Channels int

	// SampleRate in Hz.
	SampleRate int

	// ByteRate is the average byte rate (first frame bitrate / 8).
	// Always positive for a stream that opened successfully.
	ByteRate int

	// BlockSize is the size in bytes of the first frame.
	BlockSize int
}
