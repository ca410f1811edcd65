package icons

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"sync"

	"git.lukeshu.com/go/typedsync"
	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	ximagedraw "golang.org/x/image/draw"

	"github.com/xray-forge/xrf-go/lib/dds"
	"github.com/xray-forge/xrf-go/lib/ltx"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// PackSummary reports how many sections were blitted into the atlas
// versus skipped because their source DDS was missing.
type PackSummary struct {
	Width   uint32
	Height  uint32
	Packed  int
	Skipped int
}

type packOutcome struct {
	hit bool
}

// Pack reads one source DDS file per atlas-bound section of doc from
// inputDir/<section>.dds, rescales each to its declared grid rectangle
// with a high-quality filter, and blits it into a freshly sized atlas,
// which is then encoded to dst in format. Sections whose source file
// doesn't exist are logged and skipped, not treated as an error.
func Pack(ctx context.Context, doc *ltx.Document, inputDir string, dst io.Writer, format dds.Format) (PackSummary, error) {
	descriptors, err := CollectDescriptors(doc)
	if err != nil {
		return PackSummary{}, err
	}

	width, height := AtlasDimensions(descriptors)
	atlas := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	var outcomes typedsync.Map[string, packOutcome]
	var mu sync.Mutex
	sem := make(chan struct{}, defaultFanOut)

	for _, d := range descriptors {
		d := d
		grp.Go(fmt.Sprintf("pack-%s", d.Name), func(ctx context.Context) error {
			sem <- struct{}{}
			defer func() { <-sem }()

			hit, err := packOne(ctx, inputDir, d, atlas, &mu)
			if err != nil {
				return err
			}
			outcomes.Store(d.Name, packOutcome{hit: hit})
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return PackSummary{}, err
	}

	if err := dds.Encode(dst, atlas, format); err != nil {
		return PackSummary{}, err
	}

	summary := PackSummary{Width: width, Height: height}
	for _, d := range descriptors {
		outcome, _ := outcomes.Load(d.Name)
		if outcome.hit {
			summary.Packed++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}

func packOne(ctx context.Context, inputDir string, d SectionDescriptor, atlas *image.RGBA, mu *sync.Mutex) (bool, error) {
	srcPath := filepath.Join(inputDir, d.Name+".dds")
	raw, err := os.ReadFile(srcPath)
	if os.IsNotExist(err) {
		dlog.Infof(ctx, "skip section %q: no source icon at %q", d.Name, srcPath)
		return false, nil
	}
	if err != nil {
		return false, xrerr.Wrap(xrerr.Io, err, "reading %q", srcPath)
	}

	src, _, err := dds.Decode(raw)
	if err != nil {
		return false, xrerr.Wrap(xrerr.Parsing, err, "decoding %q", srcPath)
	}

	x, y, w, h := d.PixelRect()
	dstRect := image.Rect(int(x), int(y), int(x+w), int(y+h))

	mu.Lock()
	ximagedraw.CatmullRom.Scale(atlas, dstRect, src, src.Bounds(), draw.Over, nil)
	mu.Unlock()

	return true, nil
}
