// ABOUTME: MPEGLAYER3WAVEFORMAT wire serialization of the format descriptor
// ABOUTME: Produces the opaque codec private data handed to the host
package pipeline

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/Framecast/framecast-go/pkg/demux"
)

// mpegLayer3WaveFormat is the little-endian MPEGLAYER3WAVEFORMAT layout:
// a WAVEFORMATEX header followed by 12 bytes of MP3-specific fields.
type mpegLayer3WaveFormat struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	ExtraSize      uint16

	ID             uint16
	Flags          uint32
	BlockSize      uint16
	FramesPerBlock uint16
	CodecDelay     uint16
}

const mp3ExtraSize = 12

// MarshalWaveFormat serializes a format descriptor to its wire layout.
// The host treats these bytes as opaque.
func MarshalWaveFormat(f demux.Format) []byte {
	wf := mpegLayer3WaveFormat{
		FormatTag:      demux.FormatTagMP3,
		Channels:       uint16(f.Channels),
		SamplesPerSec:  uint32(f.SampleRate),
		AvgBytesPerSec: uint32(f.ByteRate),
		BlockAlign:     1,
		BitsPerSample:  0, // compressed, no fixed sample width
		ExtraSize:      mp3ExtraSize,
		ID:             1, // MPEGLAYER3_ID_MPEG
		Flags:          0,
		BlockSize:      uint16(f.BlockSize),
		FramesPerBlock: 1,
		CodecDelay:     0,
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, &wf)
	return buf.Bytes()
}

// CodecPrivateData returns the hex-encoded (uppercase) wire serialization
// of a format descriptor, the form the host pipeline expects.
func CodecPrivateData(f demux.Format) string {
	return strings.ToUpper(hex.EncodeToString(MarshalWaveFormat(f)))
}
