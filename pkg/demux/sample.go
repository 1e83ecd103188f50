// ABOUTME: Sample type emitted by the frame pump
// ABOUTME: One compressed frame with its timeline position, or end-of-stream
package demux

import "time"

// Sample is one unit produced by a pull: either a complete compressed frame
// with its timeline position, or the end-of-stream marker (nil Data, zero
// Length, zero Timestamp).
//
// Data aliases the demuxer's single reusable payload buffer. It is valid
// only until the next Pull; a consumer that needs the bytes longer must
// copy them first.
type Sample struct {
	// Data holds the full frame, header included. nil at end of stream.
	Data []byte

	// Offset is the byte offset of the frame within Data. Always 0.
	Offset int64

	// Length is the frame size in bytes. 0 at end of stream.
	Length int

	// Timestamp is the frame's position on the presentation timeline,
	// interpolated linearly from its byte offset in the stream.
	Timestamp time.Duration
}

// EndOfStream reports whether s is the end-of-stream marker.
func (s Sample) EndOfStream() bool {
	return s.Data == nil
}
