// ABOUTME: MPEG audio frame header parsing
// ABOUTME: Reads and validates 4-byte headers and computes frame sizes
package mp3

import (
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the fixed size of an MPEG audio frame header in bytes.
const HeaderSize = 4

// MPEG version identifiers (2-bit field in the header).
type Version byte

const (
	MPEG2_5 Version = 0
	MPEG2   Version = 2
	MPEG1   Version = 3

	versionReserved Version = 1
)

// MPEG layer identifiers (2-bit field in the header).
type Layer byte

const (
	LayerIII Layer = 1
	LayerII  Layer = 2
	LayerI   Layer = 3

	layerReserved Layer = 0
)

// Channel modes (2-bit field in the header).
type ChannelMode byte

const (
	Stereo      ChannelMode = 0
	JointStereo ChannelMode = 1
	DualChannel ChannelMode = 2
	Mono        ChannelMode = 3
)

// ErrInvalidHeader indicates the bytes at the current position do not form
// a valid MPEG audio frame header.
var ErrInvalidHeader = errors.New("mp3: invalid frame header")

// Bitrate tables in kbit/s, indexed by the 4-bit bitrate index.
// Index 0 ("free format") and 15 are rejected.
var (
	v1l1Bitrates = [16]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448}
	v1l2Bitrates = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384}
	v1l3Bitrates = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
	v2l1Bitrates = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256}
	v2l2Bitrates = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}
)

// Sampling rate tables in Hz, indexed by the 2-bit sampling rate index.
var (
	v1SampleRates  = [3]int{44100, 48000, 32000}
	v2SampleRates  = [3]int{22050, 24000, 16000}
	v25SampleRates = [3]int{11025, 12000, 8000}
)

// FrameHeader is a parsed MPEG audio frame header. It describes the frame
// that starts at the position the header was read from, including the total
// frame size in bytes (header included).
type FrameHeader struct {
	Version    Version
	Layer      Layer
	Bitrate    int // bits per second
	SampleRate int // Hz
	Mode       ChannelMode
	Padding    bool
	CRC        bool
	FrameSize  int // total frame bytes, header included

	raw [HeaderSize]byte
}

// ParseHeader reads exactly HeaderSize bytes from r and parses them as an
// MPEG audio frame header. It consumes no payload bytes. A short read is
// returned as the underlying read error; malformed header fields are
// reported as ErrInvalidHeader.
func ParseHeader(r io.Reader) (FrameHeader, error) {
	var h FrameHeader
	if _, err := io.ReadFull(r, h.raw[:]); err != nil {
		return FrameHeader{}, err
	}
	if err := h.parse(); err != nil {
		return FrameHeader{}, err
	}
	return h, nil
}

// ParseHeaderBytes parses a header from an in-memory slice of at least
// HeaderSize bytes.
func ParseHeaderBytes(b []byte) (FrameHeader, error) {
	if len(b) < HeaderSize {
		return FrameHeader{}, fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidHeader, HeaderSize, len(b))
	}
	var h FrameHeader
	copy(h.raw[:], b[:HeaderSize])
	if err := h.parse(); err != nil {
		return FrameHeader{}, err
	}
	return h, nil
}

func (h *FrameHeader) parse() error {
	b := h.raw

	// 11-bit frame sync: all bits of byte 0 plus the top 3 bits of byte 1.
	if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return fmt.Errorf("%w: bad sync word", ErrInvalidHeader)
	}

	h.Version = Version((b[1] & 0x18) >> 3)
	if h.Version == versionReserved {
		return fmt.Errorf("%w: reserved MPEG version", ErrInvalidHeader)
	}

	h.Layer = Layer((b[1] & 0x06) >> 1)
	if h.Layer == layerReserved {
		return fmt.Errorf("%w: reserved layer", ErrInvalidHeader)
	}

	h.CRC = b[1]&0x01 == 0

	bitrateIndex := (b[2] & 0xF0) >> 4
	if bitrateIndex == 0 || bitrateIndex == 15 {
		return fmt.Errorf("%w: bitrate index %d", ErrInvalidHeader, bitrateIndex)
	}
	h.Bitrate = bitrateFor(h.Version, h.Layer, bitrateIndex)

	sampleRateIndex := (b[2] & 0x0C) >> 2
	if sampleRateIndex == 3 {
		return fmt.Errorf("%w: reserved sampling rate index", ErrInvalidHeader)
	}
	switch h.Version {
	case MPEG1:
		h.SampleRate = v1SampleRates[sampleRateIndex]
	case MPEG2:
		h.SampleRate = v2SampleRates[sampleRateIndex]
	case MPEG2_5:
		h.SampleRate = v25SampleRates[sampleRateIndex]
	}

	h.Padding = b[2]&0x02 != 0
	h.Mode = ChannelMode((b[3] & 0xC0) >> 6)

	if emphasis := b[3] & 0x03; emphasis == 2 {
		return fmt.Errorf("%w: reserved emphasis", ErrInvalidHeader)
	}

	h.FrameSize = h.frameSize()
	if h.FrameSize <= 0 {
		return fmt.Errorf("%w: non-positive frame size", ErrInvalidHeader)
	}

	return nil
}

func bitrateFor(v Version, l Layer, index byte) int {
	var kbps int
	if v == MPEG1 {
		switch l {
		case LayerI:
			kbps = v1l1Bitrates[index]
		case LayerII:
			kbps = v1l2Bitrates[index]
		case LayerIII:
			kbps = v1l3Bitrates[index]
		}
	} else {
		switch l {
		case LayerI:
			kbps = v2l1Bitrates[index]
		default:
			// Layers II and III share a table for MPEG2/2.5.
			kbps = v2l2Bitrates[index]
		}
	}
	return kbps * 1000
}

// samplesPerFrame returns the number of PCM samples encoded by one frame.
func (h *FrameHeader) samplesPerFrame() int {
	switch h.Layer {
	case LayerI:
		return 384
	case LayerII:
		return 1152
	default: // Layer III
		if h.Version == MPEG1 {
			return 1152
		}
		return 576
	}
}

// frameSize computes the total frame length in bytes, header included.
// A padded frame carries one extra slot: 4 bytes for Layer I, 1 byte
// otherwise.
func (h *FrameHeader) frameSize() int {
	pad := 0
	if h.Padding {
		pad = 1
		if h.Layer == LayerI {
			pad = 4
		}
	}
	return (h.samplesPerFrame()/8*h.Bitrate)/h.SampleRate + pad
}

// Channels returns the channel count implied by the channel mode.
func (h *FrameHeader) Channels() int {
	if h.Mode == Mono {
		return 1
	}
	return 2
}

// CopyHeader copies the raw header bytes to the start of dst and returns
// the number of bytes written. dst must hold at least HeaderSize bytes.
func (h *FrameHeader) CopyHeader(dst []byte) int {
	return copy(dst, h.raw[:])
}

// SameStream reports whether other belongs to the same elementary stream
// as h, i.e. carries the same MPEG version and layer identifiers.
func (h *FrameHeader) SameStream(other *FrameHeader) bool {
	return h.Version == other.Version && h.Layer == other.Layer
}
