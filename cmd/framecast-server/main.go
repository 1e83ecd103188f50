// ABOUTME: Entry point for the framecast broadcast server
// ABOUTME: Parses CLI flags and starts the WebSocket frame server
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Framecast/framecast-go/internal/source"
	"github.com/Framecast/framecast-go/pkg/demux"
	"github.com/Framecast/framecast-go/pkg/framecast"
)

var (
	port    = flag.Int("port", framecast.DefaultPort, "WebSocket server port")
	name    = flag.String("name", "", "Server friendly name (default: hostname-framecast-server)")
	input   = flag.String("input", "", "MP3 file path or http(s) URL to broadcast (required)")
	logFile = flag.String("log-file", "framecast-server.log", "Log file path")
	debug   = flag.Bool("debug", false, "Enable debug logging")
	noMDNS  = flag.Bool("no-mdns", false, "Disable mDNS advertisement")
)

func main() {
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: framecast-server -input <file-or-url>")
		os.Exit(2)
	}

	// Set up logging (both file and console)
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	// Log to both file and stdout
	multiWriter := io.MultiWriter(os.Stdout, f)
	log.SetOutput(multiWriter)

	// Determine server name
	serverName := *name
	if serverName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		serverName = fmt.Sprintf("%s-framecast-server", hostname)
	}

	src, err := openSource(*input)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}

	log.Printf("Starting Framecast Server: %s on port %d", serverName, *port)
	log.Printf("Broadcasting: %s", *input)
	if *debug {
		log.Printf("Debug logging enabled")
	}
	log.Printf("Logging to: %s", *logFile)
	log.Printf("Press Ctrl-C to stop")

	srv, err := framecast.NewServer(framecast.ServerConfig{
		Port:       *port,
		Name:       serverName,
		Source:     src,
		EnableMDNS: !*noMDNS,
		Debug:      *debug,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("\nReceived %v signal, shutting down gracefully...", sig)
		srv.Stop()
	}()

	// Start server
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Printf("Server stopped")
}

// openSource opens a local file or an HTTP URL as a stream source.
func openSource(input string) (demux.Source, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return source.OpenHTTP(input)
	}
	return source.OpenFile(input)
}
