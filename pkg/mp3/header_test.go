// ABOUTME: Tests for MPEG frame header parsing
// ABOUTME: Covers bitrate/sample-rate tables, frame sizes, and rejection cases
package mp3

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// buildHeader assembles raw header bytes from field values. The CRC
// protection bit is always set to 1 (no CRC).
func buildHeader(v Version, l Layer, bitrateIndex, sampleRateIndex byte, padding bool, mode ChannelMode) []byte {
	b1 := byte(0xE0) | byte(v)<<3 | byte(l)<<1 | 0x01
	b2 := bitrateIndex<<4 | sampleRateIndex<<2
	if padding {
		b2 |= 0x02
	}
	b3 := byte(mode) << 6
	return []byte{0xFF, b1, b2, b3}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name       string
		raw        []byte
		bitrate    int
		sampleRate int
		frameSize  int
		channels   int
	}{
		{
			name:       "MPEG1 Layer III 128kbps 44.1kHz stereo",
			raw:        buildHeader(MPEG1, LayerIII, 9, 0, false, Stereo),
			bitrate:    128000,
			sampleRate: 44100,
			frameSize:  417,
			channels:   2,
		},
		{
			name:       "MPEG1 Layer III 128kbps 44.1kHz padded",
			raw:        buildHeader(MPEG1, LayerIII, 9, 0, true, Stereo),
			bitrate:    128000,
			sampleRate: 44100,
			frameSize:  418,
			channels:   2,
		},
		{
			name:       "MPEG2.5 Layer III 16kbps 8kHz mono",
			raw:        buildHeader(MPEG2_5, LayerIII, 2, 2, false, Mono),
			bitrate:    16000,
			sampleRate: 8000,
			frameSize:  144,
			channels:   1,
		},
		{
			name:       "MPEG1 Layer I 448kbps 32kHz padded",
			raw:        buildHeader(MPEG1, LayerI, 14, 2, true, Stereo),
			bitrate:    448000,
			sampleRate: 32000,
			frameSize:  676, // 672 + 4-byte Layer I padding slot
			channels:   2,
		},
		{
			name:       "MPEG2 Layer II 64kbps 24kHz joint stereo",
			raw:        buildHeader(MPEG2, LayerII, 8, 1, false, JointStereo),
			bitrate:    64000,
			sampleRate: 24000,
			frameSize:  384,
			channels:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(bytes.NewReader(tt.raw))
			if err != nil {
				t.Fatalf("ParseHeader() error = %v", err)
			}
			if h.Bitrate != tt.bitrate {
				t.Errorf("Bitrate = %d, want %d", h.Bitrate, tt.bitrate)
			}
			if h.SampleRate != tt.sampleRate {
				t.Errorf("SampleRate = %d, want %d", h.SampleRate, tt.sampleRate)
			}
			if h.FrameSize != tt.frameSize {
				t.Errorf("FrameSize = %d, want %d", h.FrameSize, tt.frameSize)
			}
			if h.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", h.Channels(), tt.channels)
			}
		})
	}
}

func TestParseHeaderRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"bad sync first byte", []byte{0xFE, 0xFB, 0x90, 0x00}},
		{"bad sync second byte", []byte{0xFF, 0x1B, 0x90, 0x00}},
		{"reserved version", []byte{0xFF, 0xEB, 0x90, 0x00}},
		{"reserved layer", []byte{0xFF, 0xF9, 0x90, 0x00}},
		{"free format bitrate", buildHeader(MPEG1, LayerIII, 0, 0, false, Stereo)},
		{"invalid bitrate index", buildHeader(MPEG1, LayerIII, 15, 0, false, Stereo)},
		{"reserved sampling rate", buildHeader(MPEG1, LayerIII, 9, 3, false, Stereo)},
		{"reserved emphasis", []byte{0xFF, 0xFB, 0x90, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(bytes.NewReader(tt.raw))
			if !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("ParseHeader() error = %v, want ErrInvalidHeader", err)
			}
		})
	}
}

func TestParseHeaderShortRead(t *testing.T) {
	_, err := ParseHeader(bytes.NewReader([]byte{0xFF, 0xFB}))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("ParseHeader() error = %v, want io.ErrUnexpectedEOF", err)
	}

	_, err = ParseHeader(bytes.NewReader(nil))
	if err != io.EOF {
		t.Errorf("ParseHeader() on empty stream error = %v, want io.EOF", err)
	}
}

func TestParseHeaderConsumesExactlyHeaderSize(t *testing.T) {
	raw := buildHeader(MPEG1, LayerIII, 9, 0, false, Stereo)
	payload := []byte{0xAA, 0xBB, 0xCC}
	r := bytes.NewReader(append(append([]byte{}, raw...), payload...))

	if _, err := ParseHeader(r); err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}

	rest, _ := io.ReadAll(r)
	if !bytes.Equal(rest, payload) {
		t.Errorf("remaining stream = %x, want %x", rest, payload)
	}
}

func TestCopyHeader(t *testing.T) {
	raw := buildHeader(MPEG2_5, LayerIII, 2, 2, false, Mono)
	h, err := ParseHeader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}

	dst := make([]byte, 16)
	n := h.CopyHeader(dst)
	if n != HeaderSize {
		t.Errorf("CopyHeader() = %d, want %d", n, HeaderSize)
	}
	if !bytes.Equal(dst[:HeaderSize], raw) {
		t.Errorf("copied header = %x, want %x", dst[:HeaderSize], raw)
	}
}

func TestSameStream(t *testing.T) {
	a, _ := ParseHeaderBytes(buildHeader(MPEG1, LayerIII, 9, 0, false, Stereo))
	b, _ := ParseHeaderBytes(buildHeader(MPEG1, LayerIII, 11, 0, true, Mono))
	c, _ := ParseHeaderBytes(buildHeader(MPEG2, LayerII, 8, 1, false, Stereo))

	if !a.SameStream(&b) {
		t.Error("headers with same version/layer should match")
	}
	if a.SameStream(&c) {
		t.Error("headers with different version/layer should not match")
	}
}

func TestParseHeaderBytesTooShort(t *testing.T) {
	_, err := ParseHeaderBytes([]byte{0xFF, 0xFB})
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("ParseHeaderBytes() error = %v, want ErrInvalidHeader", err)
	}
}
