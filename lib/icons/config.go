// Package icons packs and unpacks the equipment sprite atlas: a single
// DDS texture whose rectangles are laid out by a system LTX's per-section
// inv_grid_* keys.
package icons

import (
	"strconv"

	"github.com/xray-forge/xrf-go/lib/containers"
	"github.com/xray-forge/xrf-go/lib/ltx"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// GridSquareBase is the pixel size of one grid unit in inv_grid_* keys.
const GridSquareBase = 50

// SectionDescriptor is one atlas-bound section's rectangle, in grid units.
type SectionDescriptor struct {
	Name string
	X    uint32
	Y    uint32
	W    uint32
	H    uint32
}

// PixelRect returns d's rectangle scaled from grid units to pixels.
func (d SectionDescriptor) PixelRect() (x, y, w, h uint32) {
	return d.X * GridSquareBase, d.Y * GridSquareBase, d.W * GridSquareBase, d.H * GridSquareBase
}

// CollectDescriptors scans every section in doc and returns one
// SectionDescriptor for each that declares all four inv_grid_* keys
// (directly or via inheritance). Sections missing any of the four are
// silently excluded, matching get_section_inventory_coordinates.
func CollectDescriptors(doc *ltx.Document) ([]SectionDescriptor, error) {
	var out []SectionDescriptor
	for _, section := range doc.Sections() {
		d, ok, err := descriptorFor(doc, section.Name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func descriptorFor(doc *ltx.Document, name string) (SectionDescriptor, bool, error) {
	x, err := gridValue(doc, name, "inv_grid_x")
	if err != nil || !x.OK {
		return SectionDescriptor{}, false, err
	}
	y, err := gridValue(doc, name, "inv_grid_y")
	if err != nil || !y.OK {
		return SectionDescriptor{}, false, err
	}
	w, err := gridValue(doc, name, "inv_grid_width")
	if err != nil || !w.OK {
		return SectionDescriptor{}, false, err
	}
	h, err := gridValue(doc, name, "inv_grid_height")
	if err != nil || !h.OK {
		return SectionDescriptor{}, false, err
	}
	if w.Val == 0 || h.Val == 0 {
		return SectionDescriptor{}, false, nil
	}
	return SectionDescriptor{Name: name, X: x.Val, Y: y.Val, W: w.Val, H: h.Val}, true, nil
}

// gridValue looks up one inv_grid_* key, returning an unset Optional
// (rather than an error) when the key is absent so callers can tell
// "missing" apart from "present but zero".
func gridValue(doc *ltx.Document, section, key string) (containers.Optional[uint32], error) {
	raw, err := doc.Get(section, key)
	if err != nil {
		if xrerr.Of(err, xrerr.NotFoundChunk) {
			return containers.Optional[uint32]{}, nil
		}
		return containers.Optional[uint32]{}, err
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return containers.Optional[uint32]{}, xrerr.Wrap(xrerr.Parsing, err, "section %q key %q: not a valid grid coordinate", section, key)
	}
	return containers.Optional[uint32]{OK: true, Val: uint32(v)}, nil
}
