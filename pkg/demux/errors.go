// ABOUTME: Sentinel errors for the demux package
// ABOUTME: Defines open-failure, close-classification, and unsupported-op errors
package demux

import "errors"

var (
	// ErrInvalidStream is returned by Open when the source does not begin
	// with a valid MPEG audio frame. The stream cannot be demuxed.
	ErrInvalidStream = errors.New("demux: not a valid MPEG audio stream")

	// ErrUnknownLength is returned by Open when the source cannot declare
	// its total length. Duration and per-sample timestamps both derive
	// from the total length, so it is required.
	ErrUnknownLength = errors.New("demux: source length unknown")

	// ErrTransformInterrupted is the one close-failure class a demuxer
	// suppresses. Transforming sources (decrypting readers and the like)
	// return an error wrapping this sentinel when closed before their
	// internal transform state is complete; that is expected when a
	// stream is torn down mid-read.
	ErrTransformInterrupted = errors.New("demux: transform interrupted at close")

	// ErrNotImplemented is returned by operations the demuxer deliberately
	// does not support, such as diagnostics queries and mid-stream media
	// switching.
	ErrNotImplemented = errors.New("demux: operation not implemented")
)

// ignorableAtClose classifies a close error. Only the interrupted-transform
// class is expected and safe to suppress; everything else is the caller's
// to log or surface.
func ignorableAtClose(err error) bool {
	return errors.Is(err, ErrTransformInterrupted)
}
