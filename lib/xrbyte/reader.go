// Package xrbyte implements the little-endian scalar and string primitives
// every binary codec in this module is built from, as explicit per-field
// methods rather than reflection-driven struct tags: the domain is
// polymorphic tagged chunks that need a manual switch per variant anyway,
// so there's no fixed struct layout for reflection to walk.
package xrbyte

import (
	"encoding/binary"
	"math"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// Reader is a cursor over an in-memory byte slice. It never copies; slicing
// a sub-range (see chunk.Reader) is just a new Reader over the same backing
// array with an independent cursor.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Len() int            { return len(r.buf) }
func (r *Reader) Pos() int            { return r.pos }
func (r *Reader) Remaining() int      { return len(r.buf) - r.pos }
func (r *Reader) Bytes() []byte       { return r.buf }
func (r *Reader) SetPos(pos int)      { r.pos = pos }
func (r *Reader) AtEnd() bool         { return r.pos >= len(r.buf) }

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return xrerr.New(xrerr.Parsing, "need %d bytes, only %d remaining", n, r.Remaining())
	}
	return nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Slice returns the next n bytes without copying and advances the cursor.
func (r *Reader) Slice(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Rest returns every remaining byte without advancing the cursor.
func (r *Reader) Rest() []byte {
	return r.buf[r.pos:]
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.Slice(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) U16() (uint16, error) {
	b, err := r.Slice(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U24 reads a 3-byte little-endian unsigned integer, used by the level
// graph's packed (level id, vertex id) fields.
func (r *Reader) U24() (uint32, error) {
	b, err := r.Slice(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.Slice(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) U64() (uint64, error) {
	b, err := r.Slice(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// U128 reads a 16-byte little-endian value, used for raw GUID bytes.
func (r *Reader) U128() ([16]byte, error) {
	var out [16]byte
	b, err := r.Slice(16)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Vec3 reads three little-endian f32s.
func (r *Reader) Vec3() (Vec3, error) {
	var v Vec3
	var err error
	if v.X, err = r.F32(); err != nil {
		return v, err
	}
	if v.Y, err = r.F32(); err != nil {
		return v, err
	}
	if v.Z, err = r.F32(); err != nil {
		return v, err
	}
	return v, nil
}

// RGB reads three little-endian f32 color channels.
func (r *Reader) RGB() (RGB, error) {
	var c RGB
	var err error
	if c.R, err = r.F32(); err != nil {
		return c, err
	}
	if c.G, err = r.F32(); err != nil {
		return c, err
	}
	if c.B, err = r.F32(); err != nil {
		return c, err
	}
	return c, nil
}

// Sphere reads a center vec3 plus an f32 radius.
func (r *Reader) Sphere() (Sphere, error) {
	var s Sphere
	var err error
	if s.Center, err = r.Vec3(); err != nil {
		return s, err
	}
	if s.Radius, err = r.F32(); err != nil {
		return s, err
	}
	return s, nil
}

// Box reads 4 vec3s, the layout of an ALife restrictor box shape.
func (r *Reader) Box() (Box, error) {
	var b Box
	for i := range b {
		v, err := r.Vec3()
		if err != nil {
			return b, err
		}
		b[i] = v
	}
	return b, nil
}

// NullTerminatedString reads bytes up to (and consuming) a 0x00 terminator,
// decoding them with enc. Running off the end of the buffer without finding
// a terminator fails with NoNullTerminator.
func (r *Reader) NullTerminatedString(enc Encoding) (string, error) {
	start := r.pos
	for r.pos < len(r.buf) {
		if r.buf[r.pos] == 0 {
			s, err := enc.Decode(r.buf[start:r.pos])
			r.pos++
			return s, err
		}
		r.pos++
	}
	r.pos = start
	return "", xrerr.New(xrerr.NoNullTerminator, "no null terminator found in remaining %d bytes", r.Remaining())
}

// SizedString reads a u32le byte count followed by that many bytes.
func (r *Reader) SizedString(enc Encoding) (string, error) {
	n, err := r.U32()
	if err != nil {
		return "", err
	}
	b, err := r.Slice(int(n))
	if err != nil {
		return "", err
	}
	return enc.Decode(b)
}
