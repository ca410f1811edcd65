package dds

import (
	"encoding/binary"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

const (
	magic      = "DDS "
	headerSize = 124
	pfSize     = 32

	ddsdCaps       = 0x1
	ddsdHeight     = 0x2
	ddsdWidth      = 0x4
	ddsdPitch      = 0x8
	ddsdPixelFmt   = 0x1000
	ddsdLinearSize = 0x80000

	ddpfAlphaPixels = 0x1
	ddpfFourCC      = 0x4
	ddpfRGB         = 0x40

	ddscapsTexture = 0x1000
)

type pixelFormat struct {
	flags       uint32
	fourCC      [4]byte
	rgbBitCount uint32
	rMask       uint32
	gMask       uint32
	bMask       uint32
	aMask       uint32
}

type header struct {
	flags             uint32
	height            uint32
	width             uint32
	pitchOrLinearSize uint32
	depth             uint32
	mipMapCount       uint32
	pixelFormat       pixelFormat
	caps              uint32
}

// readHeader parses the 128-byte DDS magic+header from the front of buf
// and returns the header plus the offset the pixel payload starts at.
func readHeader(buf []byte) (header, int, error) {
	var h header
	if len(buf) < 4+headerSize {
		return h, 0, xrerr.New(xrerr.Parsing, "dds buffer too short for header: %d bytes", len(buf))
	}
	if string(buf[0:4]) != magic {
		return h, 0, xrerr.New(xrerr.Parsing, "not a dds file: bad magic %q", buf[0:4])
	}
	b := buf[4:]
	if binary.LittleEndian.Uint32(b[0:4]) != headerSize {
		return h, 0, xrerr.New(xrerr.Parsing, "dds header size field is %d, expected %d", binary.LittleEndian.Uint32(b[0:4]), headerSize)
	}
	h.flags = binary.LittleEndian.Uint32(b[4:8])
	h.height = binary.LittleEndian.Uint32(b[8:12])
	h.width = binary.LittleEndian.Uint32(b[12:16])
	h.pitchOrLinearSize = binary.LittleEndian.Uint32(b[16:20])
	h.depth = binary.LittleEndian.Uint32(b[20:24])
	h.mipMapCount = binary.LittleEndian.Uint32(b[24:28])
	// b[28:72] is reserved[11] (44 bytes).
	pf := b[72:104]
	pfFlagsSize := binary.LittleEndian.Uint32(pf[0:4])
	if pfFlagsSize != pfSize {
		return h, 0, xrerr.New(xrerr.Parsing, "dds pixel format size field is %d, expected %d", pfFlagsSize, pfSize)
	}
	h.pixelFormat.flags = binary.LittleEndian.Uint32(pf[4:8])
	copy(h.pixelFormat.fourCC[:], pf[8:12])
	h.pixelFormat.rgbBitCount = binary.LittleEndian.Uint32(pf[12:16])
	h.pixelFormat.rMask = binary.LittleEndian.Uint32(pf[16:20])
	h.pixelFormat.gMask = binary.LittleEndian.Uint32(pf[20:24])
	h.pixelFormat.bMask = binary.LittleEndian.Uint32(pf[24:28])
	h.pixelFormat.aMask = binary.LittleEndian.Uint32(pf[28:32])
	h.caps = binary.LittleEndian.Uint32(b[104:108])
	// b[108:124] is caps2/caps3/caps4/reserved2 (16 bytes), unused here.

	return h, 4 + headerSize, nil
}

func writeHeader(buf []byte, h header) []byte {
	buf = append(buf, magic...)
	var b [headerSize]byte
	binary.LittleEndian.PutUint32(b[0:4], headerSize)
	binary.LittleEndian.PutUint32(b[4:8], h.flags)
	binary.LittleEndian.PutUint32(b[8:12], h.height)
	binary.LittleEndian.PutUint32(b[12:16], h.width)
	binary.LittleEndian.PutUint32(b[16:20], h.pitchOrLinearSize)
	binary.LittleEndian.PutUint32(b[20:24], h.depth)
	binary.LittleEndian.PutUint32(b[24:28], h.mipMapCount)
	pf := b[72:104]
	binary.LittleEndian.PutUint32(pf[0:4], pfSize)
	binary.LittleEndian.PutUint32(pf[4:8], h.pixelFormat.flags)
	copy(pf[8:12], h.pixelFormat.fourCC[:])
	binary.LittleEndian.PutUint32(pf[12:16], h.pixelFormat.rgbBitCount)
	binary.LittleEndian.PutUint32(pf[16:20], h.pixelFormat.rMask)
	binary.LittleEndian.PutUint32(pf[20:24], h.pixelFormat.gMask)
	binary.LittleEndian.PutUint32(pf[24:28], h.pixelFormat.bMask)
	binary.LittleEndian.PutUint32(pf[28:32], h.pixelFormat.aMask)
	binary.LittleEndian.PutUint32(b[104:108], h.caps)
	return append(buf, b[:]...)
}

func headerFor(width, height uint32, format Format) header {
	h := header{
		flags:  ddsdCaps | ddsdHeight | ddsdWidth | ddsdPixelFmt,
		height: height,
		width:  width,
		depth:  1,
		caps:   ddscapsTexture,
	}
	switch format {
	case FormatRGBA8:
		h.flags |= ddsdPitch
		h.pitchOrLinearSize = width * 4
		h.pixelFormat = pixelFormat{
			flags:       ddpfRGB | ddpfAlphaPixels,
			rgbBitCount: 32,
			rMask:       0x00ff0000,
			gMask:       0x0000ff00,
			bMask:       0x000000ff,
			aMask:       0xff000000,
		}
	case FormatDXT1, FormatDXT5:
		h.flags |= ddsdLinearSize
		blockSize := 8
		fourCC := fourCCDXT1
		if format == FormatDXT5 {
			blockSize = 16
			fourCC = fourCCDXT5
		}
		blocksWide := (int(width) + 3) / 4
		blocksHigh := (int(height) + 3) / 4
		h.pitchOrLinearSize = uint32(blocksWide * blocksHigh * blockSize)
		h.pixelFormat = pixelFormat{flags: ddpfFourCC}
		copy(h.pixelFormat.fourCC[:], fourCC)
	}
	return h
}

func formatOf(h header) (Format, error) {
	if h.pixelFormat.flags&ddpfFourCC != 0 {
		switch string(h.pixelFormat.fourCC[:]) {
		case fourCCDXT1:
			return FormatDXT1, nil
		case fourCCDXT5:
			return FormatDXT5, nil
		default:
			return 0, xrerr.New(xrerr.NotImplemented, "dds fourCC %q is not supported", h.pixelFormat.fourCC[:])
		}
	}
	if h.pixelFormat.flags&ddpfRGB != 0 && h.pixelFormat.rgbBitCount == 32 {
		return FormatRGBA8, nil
	}
	return 0, xrerr.New(xrerr.NotImplemented, "dds pixel format (flags=0x%x) is not supported", h.pixelFormat.flags)
}
