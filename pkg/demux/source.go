// ABOUTME: Source abstraction for demuxable byte streams
// ABOUTME: Declares the reader contract the demuxer consumes
package demux

import "io"

// Source is an ordered byte stream of known total length. The demuxer takes
// exclusive ownership of a Source for its lifetime and closes it exactly
// once at teardown.
//
// Seekable is advisory: it is surfaced to the consumer as format metadata
// but the demuxer itself never seeks. Network and decrypting streams
// report false.
type Source interface {
	io.ReadCloser

	// Length returns the total stream length in bytes.
	Length() int64

	// Seekable reports whether the underlying stream supports random
	// access.
	Seekable() bool
}
