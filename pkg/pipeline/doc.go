// ABOUTME: Host media pipeline adapter package
// ABOUTME: Thin callback-driven reporting layer over pkg/demux
// Package pipeline adapts the frame demuxer to a request-driven host media
// pipeline: "media opened", "sample ready", and "seek completed" reports
// delivered through callbacks, with format metadata marshaled to the wire
// forms the host expects (hex-encoded codec private data, string
// attributes, 100 ns tick timestamps).
//
// Everything here is a thin adapter over the demuxer's data; the streaming
// state machine itself lives in pkg/demux.
package pipeline
