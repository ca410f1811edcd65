package xrbyte

import (
	"encoding/binary"
	"math"
)

// Writer accumulates little-endian bytes into an in-memory buffer. It is the
// write-side mirror of Reader, and is what chunk.Writer.FlushChunk wraps.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Bytes() []byte { return w.buf }
func (w *Writer) Len() int      { return len(w.buf) }
func (w *Writer) Reset()        { w.buf = w.buf[:0] }

func (w *Writer) Raw(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

func (w *Writer) U8(v uint8) *Writer {
	w.buf = append(w.buf, v)
	return w
}

func (w *Writer) U16(v uint16) *Writer {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return w.Raw(b[:])
}

// U24 writes a 3-byte little-endian unsigned integer.
func (w *Writer) U24(v uint32) *Writer {
	return w.Raw([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
}

func (w *Writer) U32(v uint32) *Writer {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return w.Raw(b[:])
}

func (w *Writer) U64(v uint64) *Writer {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.Raw(b[:])
}

func (w *Writer) U128(v [16]byte) *Writer {
	return w.Raw(v[:])
}

func (w *Writer) I8(v int8) *Writer   { return w.U8(uint8(v)) }
func (w *Writer) I16(v int16) *Writer { return w.U16(uint16(v)) }
func (w *Writer) I32(v int32) *Writer { return w.U32(uint32(v)) }

func (w *Writer) F32(v float32) *Writer {
	return w.U32(math.Float32bits(v))
}

func (w *Writer) Vec3(v Vec3) *Writer {
	return w.F32(v.X).F32(v.Y).F32(v.Z)
}

func (w *Writer) RGB(c RGB) *Writer {
	return w.F32(c.R).F32(c.G).F32(c.B)
}

func (w *Writer) Sphere(s Sphere) *Writer {
	return w.Vec3(s.Center).F32(s.Radius)
}

func (w *Writer) Box(b Box) *Writer {
	for _, v := range b {
		w.Vec3(v)
	}
	return w
}

// NullTerminatedString encodes s with enc and appends a trailing 0x00, the
// write-side mirror of Reader.NullTerminatedString.
func (w *Writer) NullTerminatedString(s string, enc Encoding) error {
	b, err := enc.Encode(s)
	if err != nil {
		return err
	}
	w.Raw(b)
	w.U8(0)
	return nil
}

// SizedString writes a u32le byte count followed by the encoded bytes.
func (w *Writer) SizedString(s string, enc Encoding) error {
	b, err := enc.Encode(s)
	if err != nil {
		return err
	}
	w.U32(uint32(len(b)))
	w.Raw(b)
	return nil
}
