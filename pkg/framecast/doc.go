// ABOUTME: High-level framecast streaming API
// ABOUTME: Server broadcasts demuxed frames; Client subscribes to them
// Package framecast streams demuxed MP3 frames over WebSocket.
//
// A Server owns one demuxer, pulls frames at the stream's real-time rate,
// and broadcasts each frame as a timestamped binary chunk to every
// connected subscriber. A Client subscribes and surfaces the stream
// announcement and frames through callbacks.
//
//	src, _ := source.OpenFile("stream.mp3")
//	server, _ := framecast.NewServer(framecast.ServerConfig{Source: src})
//	go server.Start()
//
//	client := framecast.NewClient(framecast.ClientConfig{
//	    ServerAddr: "localhost:9544",
//	    OnFrame:    func(f framecast.Frame) { ... },
//	})
//	client.Connect()
package framecast
