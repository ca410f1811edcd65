// Package dds implements a minimal DirectDraw Surface container: enough
// of the classic (non-DX10) header to read and write BC1/DXT1, BC3/DXT5,
// and uncompressed RGBA8 surfaces with no mipmaps. Real texture tools
// support far more (cubemaps, volume textures, BC4-7); this codec only
// needs to round-trip the single flat 2D surfaces equipment icons use.
package dds

// Format names a pixel encoding this codec can read or write.
type Format uint8

const (
	FormatDXT1 Format = iota
	FormatDXT5
	FormatRGBA8
)

func (f Format) String() string {
	switch f {
	case FormatDXT1:
		return "DXT1"
	case FormatDXT5:
		return "DXT5"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "unknown"
	}
}

// fourCC values as they appear in the DDS pixel format block.
const (
	fourCCDXT1 = "DXT1"
	fourCCDXT5 = "DXT5"
)
