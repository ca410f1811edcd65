package icons

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"git.lukeshu.com/go/typedsync"
	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"

	"github.com/xray-forge/xrf-go/lib/dds"
	"github.com/xray-forge/xrf-go/lib/ltx"
	"github.com/xray-forge/xrf-go/lib/textui"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// defaultFanOut matches the project-level default for per-file worker
// pools: bounded fan-out for batch archive-style operations.
var defaultFanOut = textui.Tunable(32)

// UnpackSummary reports how many sections were extracted versus skipped
// because their rectangle didn't fit the atlas.
type UnpackSummary struct {
	Unpacked int
	Skipped  int
}

type unpackOutcome struct {
	hit bool
}

// Unpack crops one DDS file per atlas-bound section of doc out of atlas
// and writes it to outputDir/<section>.dds in format. Sections whose
// rectangle doesn't fully fit inside the atlas are logged and skipped,
// not treated as an error.
func Unpack(ctx context.Context, doc *ltx.Document, atlas image.Image, outputDir string, format dds.Format) (UnpackSummary, error) {
	descriptors, err := CollectDescriptors(doc)
	if err != nil {
		return UnpackSummary{}, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return UnpackSummary{}, xrerr.Wrap(xrerr.Io, err, "creating unpack output directory %q", outputDir)
	}

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	var outcomes typedsync.Map[string, unpackOutcome]
	sem := make(chan struct{}, defaultFanOut)

	for _, d := range descriptors {
		d := d
		grp.Go(fmt.Sprintf("unpack-%s", d.Name), func(ctx context.Context) error {
			sem <- struct{}{}
			defer func() { <-sem }()

			hit, err := unpackOne(ctx, atlas, outputDir, d, format)
			if err != nil {
				return err
			}
			outcomes.Store(d.Name, unpackOutcome{hit: hit})
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return UnpackSummary{}, err
	}

	var summary UnpackSummary
	for _, d := range descriptors {
		outcome, _ := outcomes.Load(d.Name)
		if outcome.hit {
			summary.Unpacked++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}

func unpackOne(ctx context.Context, atlas image.Image, outputDir string, d SectionDescriptor, format dds.Format) (bool, error) {
	x, y, w, h := d.PixelRect()
	bounds := atlas.Bounds()

	if int(x+w) > bounds.Dx() || int(y+h) > bounds.Dy() {
		dlog.Infof(ctx, "skip section %q: icon rectangle (%d,%d,%d,%d) is out of atlas bounds (%dx%d)",
			d.Name, x, y, w, h, bounds.Dx(), bounds.Dy())
		return false, nil
	}

	cropRect := image.Rect(bounds.Min.X+int(x), bounds.Min.Y+int(y), bounds.Min.X+int(x+w), bounds.Min.Y+int(y+h))
	crop := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(crop, crop.Bounds(), atlas, cropRect.Min, draw.Src)

	outPath := filepath.Join(outputDir, d.Name+".dds")
	f, err := os.Create(outPath)
	if err != nil {
		return false, xrerr.Wrap(xrerr.Io, err, "creating %q", outPath)
	}
	defer f.Close()

	if err := dds.Encode(f, crop, format); err != nil {
		return false, err
	}
	return true, nil
}
