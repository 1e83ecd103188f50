// ABOUTME: Framecast wire protocol package
// ABOUTME: Message structs shared by server and subscriber client
// Package protocol defines the framecast wire protocol: JSON control
// messages (hello handshake, stream/start, stream/end) and the binary
// frame chunk carrying one timestamped MP3 frame.
package protocol
