// ABOUTME: Core MP3 frame demuxer package
// ABOUTME: Pull-based frame pump with format and duration metadata
// Package demux splits a raw MPEG audio (MP3) byte stream into discrete,
// independently decodable frames, pulled one at a time.
//
// It works over both seekable and non-seekable sources (files, network
// bodies, decrypting streams) and never buffers more than one frame. All
// stream-level metadata — channel count, sample rate, byte rate, duration —
// is derived from the first frame plus the declared stream length, so VBR
// streams get approximate timing by design.
//
//	dmx, err := demux.Open(src)
//	if err != nil { ... }
//	defer dmx.Close()
//
//	for {
//	    sample := dmx.Pull()
//	    if sample.EndOfStream() {
//	        break
//	    }
//	    // sample.Data is valid only until the next Pull.
//	}
package demux
