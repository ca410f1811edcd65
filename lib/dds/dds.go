package dds

import (
	"image"
	"image/color"
	"io"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// Encode writes img as a DDS surface in format to dst, with no mipmaps.
func Encode(dst io.Writer, img image.Image, format Format) error {
	bounds := img.Bounds()
	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())

	buf := writeHeader(nil, headerFor(width, height, format))

	switch format {
	case FormatRGBA8:
		buf = append(buf, encodeRGBA8(img, bounds)...)
	case FormatDXT1, FormatDXT5:
		buf = append(buf, encodeBlocks(img, bounds, format)...)
	default:
		return xrerr.New(xrerr.NotImplemented, "dds encode: format %v is not supported", format)
	}

	if _, err := dst.Write(buf); err != nil {
		return xrerr.Wrap(xrerr.Io, err, "writing dds surface")
	}
	return nil
}

func encodeRGBA8(img image.Image, bounds image.Rectangle) []byte {
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, 0, w*h*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out = append(out, byte(b>>8), byte(g>>8), byte(r>>8), byte(a>>8))
		}
	}
	return out
}

func encodeBlocks(img image.Image, bounds image.Rectangle, format Format) []byte {
	w, h := bounds.Dx(), bounds.Dy()
	blocksWide, blocksHigh := (w+3)/4, (h+3)/4
	out := make([]byte, 0, blocksWide*blocksHigh*16)

	for by := 0; by < blocksHigh; by++ {
		for bx := 0; bx < blocksWide; bx++ {
			var px [16][4]uint8
			var alpha [16]uint8
			for i := 0; i < 16; i++ {
				dx, dy := i%4, i/4
				x, y := bounds.Min.X+bx*4+dx, bounds.Min.Y+by*4+dy
				if x >= bounds.Max.X {
					x = bounds.Max.X - 1
				}
				if y >= bounds.Max.Y {
					y = bounds.Max.Y - 1
				}
				r, g, b, a := img.At(x, y).RGBA()
				px[i] = [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
				alpha[i] = px[i][3]
			}
			if format == FormatDXT5 {
				ablock := encodeAlphaBlock(alpha)
				out = append(out, ablock[:]...)
			}
			cblock := encodeColorBlock(px)
			out = append(out, cblock[:]...)
		}
	}
	return out
}

// Decode reads a DDS surface from src and returns it as an *image.RGBA
// plus the format it was stored in.
func Decode(src []byte) (*image.RGBA, Format, error) {
	h, payloadStart, err := readHeader(src)
	if err != nil {
		return nil, 0, err
	}
	format, err := formatOf(h)
	if err != nil {
		return nil, 0, err
	}

	bounds := image.Rect(0, 0, int(h.width), int(h.height))
	img := image.NewRGBA(bounds)
	payload := src[payloadStart:]

	switch format {
	case FormatRGBA8:
		decodeRGBA8(img, bounds, payload)
	case FormatDXT1, FormatDXT5:
		decodeBlocks(img, bounds, payload, format)
	default:
		return nil, 0, xrerr.New(xrerr.NotImplemented, "dds decode: format %v is not supported", format)
	}

	return img, format, nil
}

func decodeRGBA8(img *image.RGBA, bounds image.Rectangle, payload []byte) {
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if i+4 > len(payload) {
				return
			}
			b, g, r, a := payload[i], payload[i+1], payload[i+2], payload[i+3]
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
			i += 4
		}
	}
}

func decodeBlocks(img *image.RGBA, bounds image.Rectangle, payload []byte, format Format) {
	w, h := bounds.Dx(), bounds.Dy()
	blocksWide, blocksHigh := (w+3)/4, (h+3)/4
	blockSize := 8
	if format == FormatDXT5 {
		blockSize = 16
	}

	pos := 0
	for by := 0; by < blocksHigh; by++ {
		for bx := 0; bx < blocksWide; bx++ {
			if pos+blockSize > len(payload) {
				return
			}
			var ramp [8]uint8
			var aIndices [16]uint8
			hasAlpha := format == FormatDXT5
			if hasAlpha {
				var ablock [8]byte
				copy(ablock[:], payload[pos:pos+8])
				ramp, aIndices = decodeAlphaBlock(ablock)
				pos += 8
			}
			var cblock [8]byte
			copy(cblock[:], payload[pos:pos+8])
			colors, cIndices := decodeColorBlock(cblock)
			pos += 8

			for i := 0; i < 16; i++ {
				dx, dy := i%4, i/4
				x, y := bounds.Min.X+bx*4+dx, bounds.Min.Y+by*4+dy
				if x >= bounds.Max.X || y >= bounds.Max.Y {
					continue
				}
				c := colors[cIndices[i]]
				a := uint8(255)
				if hasAlpha {
					a = ramp[aIndices[i]]
				}
				img.SetRGBA(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: a})
			}
		}
	}
}
