// ABOUTME: Entry point for the framecast frame monitor
// ABOUTME: Parses CLI flags, pumps a stream, and drives the TUI
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
	"time"

	"github.com/Framecast/framecast-go/internal/source"
	"github.com/Framecast/framecast-go/internal/ui"
	"github.com/Framecast/framecast-go/internal/version"
	"github.com/Framecast/framecast-go/pkg/demux"
	"github.com/Framecast/framecast-go/pkg/pipeline"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	input      = flag.String("input", "", "MP3 file path or http(s) URL (required)")
	logFile    = flag.String("log-file", "framecast-monitor.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
)

func main() {
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: framecast -input <file-or-url>")
		os.Exit(2)
	}

	// Determine if we should use TUI or streaming logs
	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	if !useTUI {
		log.Printf("Starting %s monitor %s", version.Product, version.Version)
	}

	src, err := openSource(*input)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}

	// TUI setup
	var tuiProg *tea.Program
	var ctrl *ui.Control

	if useTUI {
		ctrl = ui.NewControl()
		tuiProg, err = ui.Run(ctrl)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go tuiProg.Run()
	}

	// Helper to update TUI
	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	var (
		info      pipeline.MediaInfo
		frames    int64
		bytes     int64
		exhausted = make(chan struct{})
	)

	presenter := pipeline.NewPresenter(src, pipeline.Config{
		OnMediaOpened: func(mi pipeline.MediaInfo) {
			info = mi
			opened := true
			updateTUI(ui.StatusMsg{
				Opened:     &opened,
				SourceName: *input,
				Codec:      "mp3",
				SampleRate: mi.Format.SampleRate,
				Channels:   mi.Format.Channels,
				ByteRate:   mi.Format.ByteRate,
				BlockSize:  mi.Format.BlockSize,
				Seekable:   mi.Seekable,
				Duration:   mi.Duration,
				Length:     src.Length(),
			})
			log.Printf("Media opened: %dHz/%dch, %d B/s, %d byte frames, ~%v",
				mi.Format.SampleRate, mi.Format.Channels,
				mi.Format.ByteRate, mi.Format.BlockSize, mi.Duration)
		},
		OnSampleReady: func(s pipeline.Sample) {
			if s.EndOfStream() {
				log.Printf("Stream exhausted after %d frames", frames)
				updateTUI(ui.StatusMsg{
					Frames:    frames,
					Bytes:     bytes,
					Cursor:    src.Length(),
					Exhausted: true,
				})
				close(exhausted)
				return
			}
			frames++
			bytes += int64(s.Count)
			updateTUI(ui.StatusMsg{
				Frames:    frames,
				Bytes:     bytes,
				Cursor:    bytes,
				Timestamp: time.Duration(s.Timestamp * 100),
			})
		},
		OnError: func(err error) {
			log.Printf("Pipeline error: %v", err)
		},
	})

	if err := presenter.Open(); err != nil {
		log.Fatalf("Failed to open stream: %v", err)
	}

	// Pump frames at the stream's real-time rate.
	interval := time.Duration(float64(time.Second) *
		float64(info.Format.BlockSize) / float64(info.Format.ByteRate))
	pumpStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				presenter.RequestSample()
			case <-exhausted:
				return
			case <-pumpStop:
				return
			}
		}
	}()

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for quit signal from TUI, stream end, or OS
	if ctrl != nil {
		select {
		case <-ctrl.Quit:
			log.Printf("Received quit signal from TUI")
		case <-sigChan:
			log.Printf("Shutdown signal received")
		}
	} else {
		select {
		case <-exhausted:
		case <-sigChan:
			log.Printf("Shutdown signal received")
		}
	}

	close(pumpStop)
	presenter.Close()
	log.Printf("Monitor stopped")
}

// openSource opens a local file or an HTTP URL as a stream source.
func openSource(input string) (demux.Source, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return source.OpenHTTP(input)
	}
	return source.OpenFile(input)
}
