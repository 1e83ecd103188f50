// ABOUTME: Non-seekable HTTP byte source
// ABOUTME: Streams a response body with length from Content-Length
package source

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Framecast/framecast-go/pkg/demux"
)

// HTTP is a non-seekable stream over an HTTP response body.
type HTTP struct {
	body   io.ReadCloser
	length int64
}

// OpenHTTP fetches url and wraps the response body as a demuxable source.
// The server must report a Content-Length: the demuxer needs the total
// stream length for duration and timestamps.
func OpenHTTP(url string) (*HTTP, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("source: GET %s: %s", url, resp.Status)
	}
	if resp.ContentLength <= 0 {
		resp.Body.Close()
		return nil, fmt.Errorf("source: GET %s: %w", url, demux.ErrUnknownLength)
	}

	return &HTTP{body: resp.Body, length: resp.ContentLength}, nil
}

func (s *HTTP) Read(p []byte) (int, error) { return s.body.Read(p) }
func (s *HTTP) Close() error               { return s.body.Close() }
func (s *HTTP) Length() int64              { return s.length }
func (s *HTTP) Seekable() bool             { return false }
