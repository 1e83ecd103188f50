// ABOUTME: Headless probe that inspects an MP3 stream
// ABOUTME: Prints format, duration, and optionally every pulled frame
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Framecast/framecast-go/internal/source"
	"github.com/Framecast/framecast-go/pkg/demux"
	"github.com/Framecast/framecast-go/pkg/pipeline"
)

var (
	input  = flag.String("input", "", "MP3 file path or http(s) URL (required)")
	frames = flag.Bool("frames", false, "List every frame as it is pulled")
)

func main() {
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: framecast-probe [-frames] -input <file-or-url>")
		os.Exit(2)
	}

	src, err := openSource(*input)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}

	d, err := demux.Open(src)
	if err != nil {
		log.Fatalf("Failed to open stream: %v", err)
	}

	f := d.Format()
	fmt.Printf("Input:            %s\n", *input)
	fmt.Printf("Length:           %d bytes\n", d.Length())
	fmt.Printf("Channels:         %d\n", f.Channels)
	fmt.Printf("Sample rate:      %d Hz\n", f.SampleRate)
	fmt.Printf("Byte rate:        %d B/s\n", f.ByteRate)
	fmt.Printf("Frame size:       %d bytes\n", f.BlockSize)
	fmt.Printf("Duration:         %v (%d ticks)\n", d.Duration(), pipeline.Ticks(d.Duration()))
	fmt.Printf("Seekable:         %v\n", d.Seekable())
	fmt.Printf("CodecPrivateData: %s\n", pipeline.CodecPrivateData(f))

	var (
		count int64
		bytes int64
		last  time.Duration
	)
	for {
		sample := d.Pull()
		if sample.EndOfStream() {
			break
		}
		count++
		bytes += int64(sample.Length)
		last = sample.Timestamp
		if *frames {
			fmt.Printf("frame %6d  cursor=%-10d len=%-5d ts=%v\n",
				count, d.Position(), sample.Length, sample.Timestamp)
		}
	}

	fmt.Printf("Frames pulled:    %d (%d payload bytes, last ts %v)\n", count, bytes, last)

	if err := d.Close(); err != nil {
		log.Fatalf("Failed to close stream: %v", err)
	}
}

// openSource opens a local file or an HTTP URL as a stream source.
func openSource(input string) (demux.Source, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return source.OpenHTTP(input)
	}
	return source.OpenFile(input)
}
