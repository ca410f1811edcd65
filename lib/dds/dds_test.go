package dds_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/dds"
)

func sampleImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func TestRGBA8RoundTripExact(t *testing.T) {
	original := sampleImage(16, 8)

	var buf bytes.Buffer
	require.NoError(t, dds.Encode(&buf, original, dds.FormatRGBA8))

	decoded, format, err := dds.Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, dds.FormatRGBA8, format)
	require.Equal(t, original.Bounds(), decoded.Bounds())

	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, original.RGBAAt(x, y), decoded.RGBAAt(x, y))
		}
	}
}

func TestDXT5RoundTripDimensions(t *testing.T) {
	original := sampleImage(32, 16)

	var buf bytes.Buffer
	require.NoError(t, dds.Encode(&buf, original, dds.FormatDXT5))

	decoded, format, err := dds.Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, dds.FormatDXT5, format)
	require.Equal(t, 32, decoded.Bounds().Dx())
	require.Equal(t, 16, decoded.Bounds().Dy())
}

func TestDXT1FlatBlockRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 50, B: 10, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, dds.Encode(&buf, img, dds.FormatDXT1))

	decoded, _, err := dds.Decode(buf.Bytes())
	require.NoError(t, err)
	c := decoded.RGBAAt(0, 0)
	require.InDelta(t, 200, int(c.R), 8)
	require.InDelta(t, 50, int(c.G), 8)
	require.InDelta(t, 10, int(c.B), 8)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, _, err := dds.Decode([]byte("not a dds file at all, way too short or wrong"))
	require.Error(t, err)
}
