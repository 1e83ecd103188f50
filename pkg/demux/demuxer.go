// ABOUTME: Frame-pull streaming state machine over an MP3 byte stream
// ABOUTME: Opens, validates, pumps frames one at a time, and tears down
package demux

import (
	"fmt"
	"io"
	"time"

	"github.com/Framecast/framecast-go/pkg/mp3"
)

// maxFrameSize is the reusable payload buffer capacity. The largest frame
// the header tables can describe is well under 2 KiB (MPEG1 Layer II at
// 384 kbit/s over 32 kHz), so 4 KiB covers every valid stream.
const maxFrameSize = 4096

// streamState is the pump's two-state machine. Exhausted is terminal:
// there is no transition back to streaming, not even through Seek.
type streamState int

const (
	stateStreaming streamState = iota
	stateExhausted
)

// Demuxer splits a raw MP3 byte stream into discrete frames, pulled one at
// a time. It owns its Source exclusively and holds a single reusable
// payload buffer, so at most one Sample is live at a time and its bytes
// are overwritten by the next Pull.
//
// A Demuxer is strictly sequential: Open, Pull, Seek, and Close are
// expected to be serialized by the caller. It never starts goroutines and
// never buffers more than one frame.
type Demuxer struct {
	src    Source
	length int64

	format   Format
	duration time.Duration
	seekable bool

	// cursor is the byte offset at which the payload of the currently
	// held frame begins. It only ever moves forward.
	cursor int64

	state   streamState
	current mp3.FrameHeader // valid only while state == stateStreaming

	buf    []byte
	closed bool
}

// Open validates src as an MP3 stream and prepares it for pulling.
//
// It reads exactly one frame header from the start of src — no payload
// bytes — and derives the stream format and a duration estimate from that
// single header plus the declared stream length. The estimate truncates to
// whole seconds and assumes the first frame's bitrate holds for the whole
// stream; variable-bitrate content therefore gets an approximate duration.
//
// On failure src is not closed; the caller still owns it.
func Open(src Source) (*Demuxer, error) {
	if src.Length() <= 0 {
		return nil, ErrUnknownLength
	}

	header, err := mp3.ParseHeader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStream, err)
	}
	if header.FrameSize <= 0 || header.Bitrate <= 0 {
		return nil, ErrInvalidStream
	}

	byteRate := header.Bitrate / 8
	length := src.Length()

	return &Demuxer{
		src:    src,
		length: length,
		format: Format{
			Channels:   header.Channels(),
			SampleRate: header.SampleRate,
			ByteRate:   byteRate,
			BlockSize:  header.FrameSize,
		},
		duration: time.Duration(length/int64(byteRate)) * time.Second,
		seekable: src.Seekable(),
		cursor:   mp3.HeaderSize,
		state:    stateStreaming,
		current:  header,
		buf:      make([]byte, maxFrameSize),
	}, nil
}

// Format returns the stream format derived from the first frame.
func (d *Demuxer) Format() Format { return d.format }

// Duration returns the stream duration estimate, truncated to whole
// seconds.
func (d *Demuxer) Duration() time.Duration { return d.duration }

// Seekable reports whether the underlying source supports random access.
// Advisory only; see Seek.
func (d *Demuxer) Seekable() bool { return d.seekable }

// Length returns the total stream length in bytes.
func (d *Demuxer) Length() int64 { return d.length }

// Position returns the current byte cursor into the stream.
func (d *Demuxer) Position() int64 { return d.cursor }

// Exhausted reports whether the pump has reached its terminal state.
func (d *Demuxer) Exhausted() bool { return d.state == stateExhausted }

// Pull emits the next frame, or the end-of-stream marker once the stream
// is exhausted. It never fails: a short read mid-frame and a lookahead
// header that does not belong to this stream are both absorbed as a
// graceful end of stream, since both are expected at the tail of real
// streams. Pulling past exhaustion keeps returning the marker.
//
// The returned Sample's Data aliases the demuxer's reusable buffer and is
// valid only until the next Pull.
func (d *Demuxer) Pull() Sample {
	if d.state == stateExhausted {
		return Sample{}
	}

	// Timeline position interpolated from byte offset. Exact for constant
	// bitrate; drifts for VBR, matching the duration estimate's precision.
	timestamp := time.Duration(float64(d.duration) * float64(d.cursor) / float64(d.length))

	frameSize := d.current.FrameSize
	n := d.current.CopyHeader(d.buf)
	body := d.buf[n:frameSize]

	if _, err := io.ReadFull(d.src, body); err != nil {
		// Truncated frame: never emit a partial sample.
		d.state = stateExhausted
		return Sample{}
	}
	d.cursor += int64(len(body))

	sample := Sample{
		Data:      d.buf[:frameSize],
		Offset:    0,
		Length:    frameSize,
		Timestamp: timestamp,
	}

	// Lookahead: hold the next header for the following pull, or terminate
	// if the stream desynchronized or ran out.
	next, err := mp3.ParseHeader(d.src)
	if err != nil || !d.current.SameStream(&next) {
		d.state = stateExhausted
	} else {
		d.cursor += mp3.HeaderSize
		d.current = next
	}

	return sample
}

// Seek acknowledges the requested time and returns it unchanged. The
// cursor and pump state are unaffected: playback continues sequentially
// from wherever the pump currently is. A frame-accurate seek would
// relocate the cursor via the byte/time ratio and rescan for a header;
// this demuxer targets streaming-only presentation and does not.
func (d *Demuxer) Seek(target time.Duration) time.Duration {
	return target
}

// Close releases the source. Safe to call more than once; only the first
// call closes. The interrupted-transform error class of decrypting or
// transforming sources is expected when a stream is torn down mid-read
// and is suppressed; any other close failure is returned for the caller
// to log.
func (d *Demuxer) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.src.Close(); err != nil && !ignorableAtClose(err) {
		return fmt.Errorf("demux: closing source: %w", err)
	}
	return nil
}

// Diagnostic is a placeholder for host diagnostics queries. Not
// implemented.
func (d *Demuxer) Diagnostic(kind string) (string, error) {
	return "", ErrNotImplemented
}

// SwitchStream is a placeholder for mid-presentation stream switching.
// Not implemented.
func (d *Demuxer) SwitchStream(src Source) error {
	return ErrNotImplemented
}
