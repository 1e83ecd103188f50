// ABOUTME: MPEG audio frame header parser package
// ABOUTME: Bit-level header decoding consumed by the demuxer
// Package mp3 parses MPEG audio (MP3) frame headers.
//
// A frame header is a fixed 4-byte prefix describing the frame that
// follows: MPEG version, layer, bitrate, sampling rate, channel mode,
// padding, and — derived from those — the total frame size in bytes.
//
// The package deliberately stops at header level. It never reads frame
// payload bytes, which makes it usable over non-seekable streams where
// the caller controls exactly how much is consumed:
//
//	header, err := mp3.ParseHeader(r) // consumes exactly mp3.HeaderSize bytes
//	payload := make([]byte, header.FrameSize-mp3.HeaderSize)
//	_, err = io.ReadFull(r, payload)
package mp3
