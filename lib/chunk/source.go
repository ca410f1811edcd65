// Package chunk implements the length-prefixed, nestable, tag-addressed
// container format used by every binary file this module reads and writes:
// `(id:u32, size:u32, payload[size])*`, with nesting done by taking
// independent sliced views of a shared backing source rather than copying
// payload bytes, so each view gets its own cursor over one open file handle.
package chunk

import (
	"io"
	"os"

	"github.com/xray-forge/xrf-go/lib/diskio"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// Source is a random-access byte provider: a file or an in-memory buffer.
// Offsets are int64 since chunk sizes are u32 but files can in principle
// exceed 4GiB.
type Source interface {
	ReadAt(p []byte, off int64) (int, error)
	Size() int64
}

// memSource is a Source backed entirely by an in-memory byte slice.
type memSource struct {
	buf []byte
}

// NewMemorySource wraps an in-memory buffer as a chunk Source.
func NewMemorySource(buf []byte) Source {
	return &memSource{buf: buf}
}

func (s *memSource) Size() int64 { return int64(len(s.buf)) }

func (s *memSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// fileSource wraps a diskio.OSFile for random-access reading by byte offset.
type fileSource struct {
	f *diskio.OSFile[int64]
}

// OpenFile opens path for random-access reading as a chunk Source.
func OpenFile(path string) (Source, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, xrerr.Wrap(xrerr.Io, err, "opening %s", path)
	}
	src := &fileSource{f: &diskio.OSFile[int64]{File: f}}
	return src, f.Close, nil
}

func (s *fileSource) Size() int64 { return s.f.Size() }

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) {
	return s.f.ReadAt(p, off)
}
