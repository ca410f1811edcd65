package chunk

import (
	"encoding/binary"
	"io"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// Writer accumulates payload bytes in memory and flushes them to a
// destination as a single (id, size, payload) chunk. Codecs build a file
// bottom-up: write the innermost payload, FlushChunk it under its own id
// into the parent Writer's buffer, repeat outward.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Bytes() []byte { return w.buf }
func (w *Writer) Len() int      { return len(w.buf) }
func (w *Writer) Reset()        { w.buf = w.buf[:0] }

// Raw appends b verbatim to the buffer.
func (w *Writer) Raw(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

// Child writes the bytes produced by a nested Writer as a chunk with the
// given id, directly into this Writer's buffer. It's a convenience over
// building the child separately and calling FlushChunk(w, id).
func (w *Writer) Child(id uint32, child *Writer) *Writer {
	w.writeHeader(id, uint32(child.Len()))
	return w.Raw(child.Bytes())
}

func (w *Writer) writeHeader(id, size uint32) {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], id)
	binary.LittleEndian.PutUint32(hdr[4:8], size)
	w.buf = append(w.buf, hdr[:]...)
}

// FlushChunk writes this Writer's accumulated bytes to dst as a single
// chunk (id, size, payload) and resets this Writer so it can be reused for
// the next sibling.
func (w *Writer) FlushChunk(dst io.Writer, id uint32) error {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], id)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(w.buf)))
	if _, err := dst.Write(hdr[:]); err != nil {
		return xrerr.Wrap(xrerr.Io, err, "writing chunk 0x%x header", id)
	}
	if _, err := dst.Write(w.buf); err != nil {
		return xrerr.Wrap(xrerr.Io, err, "writing chunk 0x%x payload", id)
	}
	w.Reset()
	return nil
}
