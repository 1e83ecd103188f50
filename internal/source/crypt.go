// ABOUTME: AES-CTR decrypting source wrapper
// ABOUTME: The transforming stream whose mid-read close is expected to fail
package source

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	"github.com/Framecast/framecast-go/pkg/demux"
)

// Decrypt decrypts an AES-CTR ciphertext source on the fly. Decryption is
// strictly sequential, so the wrapped stream is never seekable.
//
// Closing a Decrypt before the ciphertext is fully drained leaves the
// cipher state incomplete; Close reports that as an error wrapping
// demux.ErrTransformInterrupted, which the demuxer recognizes as the one
// expected-and-ignorable teardown failure.
type Decrypt struct {
	inner    demux.Source
	stream   cipher.StreamReader
	consumed int64
}

// NewDecrypt wraps inner with an AES-CTR decrypting reader. The key must
// be 16, 24, or 32 bytes and the IV one AES block.
func NewDecrypt(inner demux.Source, key, iv []byte) (*Decrypt, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("source: IV must be %d bytes, got %d", block.BlockSize(), len(iv))
	}

	return &Decrypt{
		inner:  inner,
		stream: cipher.StreamReader{S: cipher.NewCTR(block, iv), R: inner},
	}, nil
}

func (s *Decrypt) Read(p []byte) (int, error) {
	n, err := s.stream.Read(p)
	s.consumed += int64(n)
	return n, err
}

func (s *Decrypt) Length() int64  { return s.inner.Length() }
func (s *Decrypt) Seekable() bool { return false }

// Close releases the underlying source. If ciphertext remains undrained
// the transform was interrupted mid-stream and the returned error wraps
// demux.ErrTransformInterrupted.
func (s *Decrypt) Close() error {
	err := s.inner.Close()
	if s.consumed < s.inner.Length() {
		return fmt.Errorf("source: decrypt closed mid-stream: %w", demux.ErrTransformInterrupted)
	}
	return err
}

// Stream wraps an arbitrary reader of known length as a non-seekable
// source.
type Stream struct {
	r      io.ReadCloser
	length int64
}

// NewStream declares length bytes readable from r.
func NewStream(r io.ReadCloser, length int64) *Stream {
	return &Stream{r: r, length: length}
}

func (s *Stream) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s *Stream) Close() error               { return s.r.Close() }
func (s *Stream) Length() int64              { return s.length }
func (s *Stream) Seekable() bool             { return false }
