package chunk

import (
	"encoding/binary"

	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// compressedBit is the high bit of a chunk id: when set, the
// payload is compressed. This module never handles compression; readers
// that encounter it fail cleanly instead of silently misparsing.
const compressedBit = 0x8000_0000

// headerSize is the on-disk size of a chunk's (id, size) header.
const headerSize = 8

// Reader is a view into a byte range of a Source: (source, start, end,
// cursor). Slicing a child view via Children/Find/Require is O(1) — it sets
// new bounds on the same shared Source, it never copies.
type Reader struct {
	src Source

	// ID and Size are populated for readers returned by Children/Find/
	// Require; the top-level reader from Open has both zero.
	ID   uint32
	Size uint32

	start, end, pos int64
}

// Open returns a top-level Reader over the whole of src.
func Open(src Source) *Reader {
	return &Reader{src: src, start: 0, end: src.Size(), pos: 0}
}

// Position returns the reader's cursor, relative to the start of its own
// view.
func (r *Reader) Position() int64 { return r.pos - r.start }

// BytesRemaining returns how many unread payload bytes this view has left.
func (r *Reader) BytesRemaining() int64 { return r.end - r.pos }

// AssertEnded fails with NotEnded if this view has unread bytes left.
func (r *Reader) AssertEnded(msg string) error {
	if rem := r.BytesRemaining(); rem != 0 {
		return xrerr.New(xrerr.NotEnded, "%s: %d bytes unread", msg, rem).WithChunkPath(msg)
	}
	return nil
}

func (r *Reader) readHeaderAt(pos int64) (id, size uint32, err error) {
	var hdr [headerSize]byte
	n, rerr := r.src.ReadAt(hdr[:], pos)
	if n < headerSize {
		return 0, 0, xrerr.Wrap(xrerr.Io, rerr, "reading chunk header at %d", pos)
	}
	id = binary.LittleEndian.Uint32(hdr[0:4])
	size = binary.LittleEndian.Uint32(hdr[4:8])
	return id, size, nil
}

// child builds a Reader view over the payload that begins right after a
// header at headerPos, without copying payload bytes.
func (r *Reader) child(headerPos int64, id, size uint32) *Reader {
	payloadStart := headerPos + headerSize
	return &Reader{
		src:   r.src,
		ID:    id &^ compressedBit,
		Size:  size,
		start: payloadStart,
		end:   payloadStart + int64(size),
		pos:   payloadStart,
	}
}

// ChildIterator yields sibling chunks in encountered order. Use
// it the way bufio.Scanner is used: `for it.Next() { ... it.Reader() ... }`
// then check it.Err().
type ChildIterator struct {
	r       *Reader
	pos     int64
	current *Reader
	err     error
}

// Children returns an iterator over this view's immediate sub-chunks, in the
// order they were written. Advancing the iterator moves past a child (and
// moves this reader's cursor past it) by its declared size regardless of how
// much of the child was actually read by the caller — partial reads are caught later by AssertEnded, not silently
// tolerated here.
func (r *Reader) Children() *ChildIterator {
	return &ChildIterator{r: r, pos: r.start}
}

// Next advances the iterator and reports whether a child was produced.
func (it *ChildIterator) Next() bool {
	if it.err != nil || it.pos >= it.r.end {
		return false
	}
	if it.pos+headerSize > it.r.end {
		it.err = xrerr.New(xrerr.Parsing, "truncated chunk header at %d", it.pos)
		return false
	}
	id, size, err := it.r.readHeaderAt(it.pos)
	if err != nil {
		it.err = err
		return false
	}
	if id&compressedBit != 0 {
		it.err = xrerr.New(xrerr.NotImplemented, "compressed chunk 0x%x", id&^compressedBit)
		return false
	}
	child := it.r.child(it.pos, id, size)
	if child.end > it.r.end {
		it.err = xrerr.New(xrerr.Invalid, "chunk 0x%x size %d overruns parent", id, size)
		return false
	}
	it.pos = child.end
	it.r.pos = child.end
	it.current = child
	return true
}

// Reader returns the child view produced by the most recent Next.
func (it *ChildIterator) Reader() *Reader { return it.current }

// Err returns the first error encountered while iterating, if any.
func (it *ChildIterator) Err() error { return it.err }

// Find scans this view's children for one with the given id, not advancing
// this reader's own cursor. Children are discovered by id, so order among
// siblings of this kind is irrelevant; the first match wins.
func (r *Reader) Find(id uint32) (*Reader, bool, error) {
	pos := r.pos
	defer func() { r.pos = pos }()
	it := r.Children()
	for it.Next() {
		if it.Reader().ID == id {
			return it.Reader(), true, nil
		}
	}
	return nil, false, it.Err()
}

// Require is Find but fails NotFoundChunk when absent; on success it moves
// this reader's cursor to the end of the returned child.
func (r *Reader) Require(id uint32) (*Reader, error) {
	child, ok, err := r.Find(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, xrerr.New(xrerr.NotFoundChunk, "chunk 0x%x not found", id)
	}
	r.pos = child.end
	return child, nil
}

// Bytes reads and returns this view's entire remaining payload as a single
// slice. This is the one point where chunk data is actually copied out of
// the Source — callers that only need to walk children never pay for it.
func (r *Reader) Bytes() ([]byte, error) {
	n := r.end - r.pos
	buf := make([]byte, n)
	read, err := r.src.ReadAt(buf, r.pos)
	if int64(read) < n {
		return nil, xrerr.Wrap(xrerr.Io, err, "reading %d byte payload", n)
	}
	r.pos = r.end
	return buf, nil
}

// PayloadReader materializes this view's payload and wraps it in an
// xrbyte.Reader for scalar decoding. Codecs use this once they've located
// the leaf chunk they actually need to decode.
func (r *Reader) PayloadReader() (*xrbyte.Reader, error) {
	b, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return xrbyte.NewReader(b), nil
}
