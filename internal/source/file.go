// ABOUTME: Seekable file-backed byte source
// ABOUTME: Length from stat, exclusive ownership of the file handle
package source

import (
	"fmt"
	"os"
)

// File is a seekable stream over a local file.
type File struct {
	f      *os.File
	length int64
}

// OpenFile opens path as a demuxable source. The returned File owns the
// handle and releases it on Close.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("source: %w", err)
	}

	return &File{f: f, length: info.Size()}, nil
}

func (s *File) Read(p []byte) (int, error) { return s.f.Read(p) }
func (s *File) Close() error               { return s.f.Close() }
func (s *File) Length() int64              { return s.length }
func (s *File) Seekable() bool             { return true }
