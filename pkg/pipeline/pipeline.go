// ABOUTME: Callback-based host pipeline adapter over the demuxer
// ABOUTME: Marshals format metadata, samples, and seek acknowledgements
package pipeline

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Framecast/framecast-go/pkg/demux"
)

// TicksPerSecond is the host timeline resolution: one tick is 100 ns.
const TicksPerSecond = 10_000_000

// Attribute keys reported alongside media metadata.
const (
	AttrDuration = "Duration" // stream duration as a tick count
	AttrCanSeek  = "CanSeek"  // "1" if the source is seekable, else "0"
)

// Attributes is a small set of string key/value pairs handed to the host.
type Attributes map[string]string

// MediaInfo describes an opened stream.
type MediaInfo struct {
	Format           demux.Format
	Duration         time.Duration
	Seekable         bool
	CodecPrivateData string // hex-encoded wire descriptor, opaque to the host
	Attributes       Attributes
}

// Sample is the host-facing form of one pulled frame. A nil Data with zero
// Count and Timestamp is the canonical end-of-stream signal.
type Sample struct {
	Data       []byte
	Offset     int64
	Count      int
	Timestamp  int64 // ticks
	Attributes Attributes
}

// EndOfStream reports whether s is the end-of-stream signal.
func (s Sample) EndOfStream() bool { return s.Data == nil }

// Config wires the host's callbacks. Any callback may be nil.
type Config struct {
	// OnMediaOpened is called once, after Open succeeds.
	OnMediaOpened func(MediaInfo)

	// OnSampleReady is called once per RequestSample. The sample's Data
	// aliases the demuxer's reusable buffer: it is valid only until the
	// next RequestSample.
	OnSampleReady func(Sample)

	// OnSeekCompleted acknowledges a seek with the requested time.
	OnSeekCompleted func(time.Duration)

	// OnError is called for failures that are noted but never propagated,
	// such as unexpected close errors at teardown.
	OnError func(error)
}

// Presenter adapts a demuxer to a request-driven host media pipeline.
// Like the demuxer it wraps, it is strictly sequential: the host is
// expected to serialize requests.
type Presenter struct {
	cfg Config
	src demux.Source
	dmx *demux.Demuxer
}

// NewPresenter creates a presenter for the given source. The source is not
// touched until Open.
func NewPresenter(src demux.Source, cfg Config) *Presenter {
	return &Presenter{cfg: cfg, src: src}
}

// Open validates the stream and reports media metadata to the host. A
// source that does not start with a valid frame fails here; the host must
// not proceed.
func (p *Presenter) Open() error {
	dmx, err := demux.Open(p.src)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	p.dmx = dmx

	if p.cfg.OnMediaOpened != nil {
		p.cfg.OnMediaOpened(p.mediaInfo())
	}
	return nil
}

func (p *Presenter) mediaInfo() MediaInfo {
	canSeek := "0"
	if p.dmx.Seekable() {
		canSeek = "1"
	}
	return MediaInfo{
		Format:           p.dmx.Format(),
		Duration:         p.dmx.Duration(),
		Seekable:         p.dmx.Seekable(),
		CodecPrivateData: CodecPrivateData(p.dmx.Format()),
		Attributes: Attributes{
			AttrDuration: strconv.FormatInt(Ticks(p.dmx.Duration()), 10),
			AttrCanSeek:  canSeek,
		},
	}
}

// RequestSample pulls one frame and reports it. Past exhaustion every
// request reports the end-of-stream sample; the host sees a graceful stop,
// never an error.
func (p *Presenter) RequestSample() {
	s := p.dmx.Pull()

	out := Sample{Attributes: Attributes{}}
	if !s.EndOfStream() {
		out.Data = s.Data
		out.Offset = s.Offset
		out.Count = s.Length
		out.Timestamp = Ticks(s.Timestamp)
	}

	if p.cfg.OnSampleReady != nil {
		p.cfg.OnSampleReady(out)
	}
}

// RequestSeek acknowledges the requested time. Playback position is
// unaffected; the demuxer's seek is deliberately degenerate.
func (p *Presenter) RequestSeek(target time.Duration) {
	acked := p.dmx.Seek(target)
	if p.cfg.OnSeekCompleted != nil {
		p.cfg.OnSeekCompleted(acked)
	}
}

// Diagnostic is not implemented by this presenter.
func (p *Presenter) Diagnostic(kind string) (string, error) {
	return p.dmx.Diagnostic(kind)
}

// SwitchMedia is not implemented by this presenter.
func (p *Presenter) SwitchMedia(src demux.Source) error {
	return p.dmx.SwitchStream(src)
}

// Close tears the stream down. It never fails the host: the demuxer
// already suppresses the expected interrupted-transform class, and
// anything else is noted and swallowed here so resources are always
// reclaimed.
func (p *Presenter) Close() {
	if p.dmx == nil {
		return
	}
	if err := p.dmx.Close(); err != nil {
		log.Printf("pipeline: close: %v", err)
		if p.cfg.OnError != nil {
			p.cfg.OnError(err)
		}
	}
}

// Ticks converts a duration to host ticks (100 ns units).
func Ticks(d time.Duration) int64 {
	return int64(d / 100)
}
