package icons_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/dds"
	"github.com/xray-forge/xrf-go/lib/icons"
	"github.com/xray-forge/xrf-go/lib/ltx"
)

func sampleDoc() *ltx.Document {
	doc := ltx.NewDocument()

	knife := doc.Section("wpn_knife")
	knife.Set("inv_grid_x", "0")
	knife.Set("inv_grid_y", "0")
	knife.Set("inv_grid_width", "1")
	knife.Set("inv_grid_height", "2")

	pistol := doc.Section("wpn_pistol")
	pistol.Set("inv_grid_x", "1")
	pistol.Set("inv_grid_y", "0")
	pistol.Set("inv_grid_width", "2")
	pistol.Set("inv_grid_height", "1")

	// no inv_grid_* keys at all: must be excluded
	doc.Section("actor")

	return doc
}

func TestCollectDescriptorsSkipsSectionsMissingGridKeys(t *testing.T) {
	doc := sampleDoc()

	descriptors, err := icons.CollectDescriptors(doc)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	byName := map[string]icons.SectionDescriptor{}
	for _, d := range descriptors {
		byName[d.Name] = d
	}
	require.Contains(t, byName, "wpn_knife")
	require.Contains(t, byName, "wpn_pistol")
	require.NotContains(t, byName, "actor")

	x, y, w, h := byName["wpn_pistol"].PixelRect()
	require.Equal(t, uint32(50), x)
	require.Equal(t, uint32(0), y)
	require.Equal(t, uint32(100), w)
	require.Equal(t, uint32(50), h)
}

func TestCollectDescriptorsUsesInheritedGridKeys(t *testing.T) {
	doc := ltx.NewDocument()
	base := doc.Section("inv_base")
	base.Set("inv_grid_x", "3")
	base.Set("inv_grid_y", "3")
	base.Set("inv_grid_width", "1")
	base.Set("inv_grid_height", "1")

	child := doc.Section("wpn_child")
	child.Parents = []string{"inv_base"}

	descriptors, err := icons.CollectDescriptors(doc)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
}

func TestAtlasDimensionsRoundsUpToFour(t *testing.T) {
	descriptors := []icons.SectionDescriptor{
		{Name: "a", X: 0, Y: 0, W: 1, H: 1}, // 50x50
		{Name: "b", X: 1, Y: 0, W: 1, H: 1}, // ends at x=100
	}
	width, height := icons.AtlasDimensions(descriptors)
	require.Equal(t, uint32(100), width)
	require.Equal(t, uint32(52), height)
}

func TestAtlasDimensionsNoOpOnAlreadyAlignedValues(t *testing.T) {
	// A single 2x2-cell rectangle at the origin spans 100x100 pixels, and
	// both dimensions are already multiples of 4, so rounding leaves them
	// as they are instead of padding by another 4.
	width, height := icons.AtlasDimensions([]icons.SectionDescriptor{
		{Name: "solo", X: 0, Y: 0, W: 2, H: 2},
	})
	require.Equal(t, uint32(100), width)
	require.Equal(t, uint32(100), height)
}

func writeFlatDDS(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, dds.Encode(f, img, dds.FormatRGBA8))
}

func TestPackThenUnpackRoundTrip(t *testing.T) {
	doc := sampleDoc()

	inputDir := t.TempDir()
	writeFlatDDS(t, filepath.Join(inputDir, "wpn_knife.dds"), 8, 8, color.RGBA{R: 255, A: 255})
	writeFlatDDS(t, filepath.Join(inputDir, "wpn_pistol.dds"), 8, 8, color.RGBA{G: 255, A: 255})

	var atlasBuf bytes.Buffer
	packSummary, err := icons.Pack(context.Background(), doc, inputDir, &atlasBuf, dds.FormatRGBA8)
	require.NoError(t, err)
	require.Equal(t, 2, packSummary.Packed)
	require.Equal(t, 0, packSummary.Skipped)
	require.Equal(t, uint32(152), packSummary.Width)
	require.Equal(t, uint32(100), packSummary.Height)

	atlas, _, err := dds.Decode(atlasBuf.Bytes())
	require.NoError(t, err)

	outputDir := t.TempDir()
	unpackSummary, err := icons.Unpack(context.Background(), doc, atlas, outputDir, dds.FormatRGBA8)
	require.NoError(t, err)
	require.Equal(t, 2, unpackSummary.Unpacked)
	require.Equal(t, 0, unpackSummary.Skipped)

	knifeRaw, err := os.ReadFile(filepath.Join(outputDir, "wpn_knife.dds"))
	require.NoError(t, err)
	knifeImg, _, err := dds.Decode(knifeRaw)
	require.NoError(t, err)
	require.Equal(t, 50, knifeImg.Bounds().Dx())
	require.Equal(t, 100, knifeImg.Bounds().Dy())
	c := knifeImg.RGBAAt(25, 50)
	require.InDelta(t, 255, int(c.R), 4)
	require.InDelta(t, 0, int(c.G), 4)
}

func TestPackSkipsMissingSourceFile(t *testing.T) {
	doc := sampleDoc()

	inputDir := t.TempDir()
	writeFlatDDS(t, filepath.Join(inputDir, "wpn_knife.dds"), 8, 8, color.RGBA{R: 255, A: 255})
	// wpn_pistol.dds intentionally absent

	var atlasBuf bytes.Buffer
	summary, err := icons.Pack(context.Background(), doc, inputDir, &atlasBuf, dds.FormatRGBA8)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Packed)
	require.Equal(t, 1, summary.Skipped)
}

func TestUnpackSkipsOutOfBoundsSection(t *testing.T) {
	doc := ltx.NewDocument()
	oversized := doc.Section("wpn_oversized")
	oversized.Set("inv_grid_x", "10")
	oversized.Set("inv_grid_y", "10")
	oversized.Set("inv_grid_width", "1")
	oversized.Set("inv_grid_height", "1")

	atlas := image.NewRGBA(image.Rect(0, 0, 64, 64))

	outputDir := t.TempDir()
	summary, err := icons.Unpack(context.Background(), doc, atlas, outputDir, dds.FormatRGBA8)
	require.NoError(t, err)
	require.Equal(t, 0, summary.Unpacked)
	require.Equal(t, 1, summary.Skipped)

	_, err = os.Stat(filepath.Join(outputDir, "wpn_oversized.dds"))
	require.True(t, os.IsNotExist(err))
}
