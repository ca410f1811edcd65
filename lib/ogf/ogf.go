// Package ogf decodes and encodes OgfFile, the chunked skinned-model
// format. Feature chunks are located by id scan rather than by fixed
// position, since real OGF files vary the order they were written in.
package ogf

import (
	"io"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

const (
	chunkHeader        uint32 = 1
	chunkTexture       uint32 = 2
	chunkBones         uint32 = 13
	chunkChildren      uint32 = 9
	chunkDescription   uint32 = 18
	chunkKinematics    uint32 = 24
	chunkKinematicsOld uint32 = 19
)

// supportedVersion is the only OGF format version this codec understands.
const supportedVersion uint8 = 4

// BoundingBox is an axis-aligned min/max extent.
type BoundingBox struct {
	Min, Max xrbyte.Vec3
}

func readBoundingBox(r *xrbyte.Reader) (BoundingBox, error) {
	var b BoundingBox
	var err error
	if b.Min, err = r.Vec3(); err != nil {
		return b, err
	}
	b.Max, err = r.Vec3()
	return b, err
}

func writeBoundingBox(w *xrbyte.Writer, b BoundingBox) {
	w.Vec3(b.Min).Vec3(b.Max)
}

// Header is the mandatory chunk every OGF file carries.
type Header struct {
	Version        uint8
	ModelType      uint8
	ShaderID       uint16
	BoundingBox    BoundingBox
	BoundingSphere xrbyte.Sphere
}

func readHeader(r *xrbyte.Reader) (Header, error) {
	var h Header
	var err error
	if h.Version, err = r.U8(); err != nil {
		return h, err
	}
	if h.Version != supportedVersion {
		return h, xrerr.New(xrerr.NotImplemented, "ogf version %d, only version %d is supported", h.Version, supportedVersion)
	}
	if h.ModelType, err = r.U8(); err != nil {
		return h, err
	}
	if h.ShaderID, err = r.U16(); err != nil {
		return h, err
	}
	if h.BoundingBox, err = readBoundingBox(r); err != nil {
		return h, err
	}
	h.BoundingSphere, err = r.Sphere()
	return h, err
}

func writeHeader(w *xrbyte.Writer, h Header) {
	w.U8(h.Version).U8(h.ModelType).U16(h.ShaderID)
	writeBoundingBox(w, h.BoundingBox)
	w.Sphere(h.BoundingSphere)
}

// File is a fully decoded OgfFile, including any nested children.
type File struct {
	Header      Header
	Description *Description
	Texture     *Texture
	Bones       []Bone
	Kinematics  *Kinematics
	Children    []File
}

// Read decodes a complete OgfFile from src.
func Read(src chunk.Source) (*File, error) {
	root := chunk.Open(src)
	f, err := readFromReader(root)
	if err != nil {
		return nil, err
	}
	if err := root.AssertEnded("ogf file"); err != nil {
		return nil, err
	}
	return f, nil
}

func readFromReader(root *chunk.Reader) (*File, error) {
	f := &File{}

	headerChunk, err := root.Require(chunkHeader)
	if err != nil {
		return nil, err
	}
	hr, err := headerChunk.PayloadReader()
	if err != nil {
		return nil, err
	}
	if f.Header, err = readHeader(hr); err != nil {
		return nil, err
	}
	if err := headerChunk.AssertEnded("ogf header chunk"); err != nil {
		return nil, err
	}

	if descChunk, ok, err := root.Find(chunkDescription); err != nil {
		return nil, err
	} else if ok {
		dr, err := descChunk.PayloadReader()
		if err != nil {
			return nil, err
		}
		d, err := readDescription(dr)
		if err != nil {
			return nil, err
		}
		if err := descChunk.AssertEnded("ogf description chunk"); err != nil {
			return nil, err
		}
		f.Description = &d
	}

	if texChunk, ok, err := root.Find(chunkTexture); err != nil {
		return nil, err
	} else if ok {
		tr, err := texChunk.PayloadReader()
		if err != nil {
			return nil, err
		}
		t, err := readTexture(tr)
		if err != nil {
			return nil, err
		}
		if err := texChunk.AssertEnded("ogf texture chunk"); err != nil {
			return nil, err
		}
		f.Texture = &t
	}

	if bonesChunk, ok, err := root.Find(chunkBones); err != nil {
		return nil, err
	} else if ok {
		br, err := bonesChunk.PayloadReader()
		if err != nil {
			return nil, err
		}
		if f.Bones, err = readBones(br); err != nil {
			return nil, err
		}
		if err := bonesChunk.AssertEnded("ogf bones chunk"); err != nil {
			return nil, err
		}
	}

	if kinChunk, ok, err := root.Find(chunkKinematics); err != nil {
		return nil, err
	} else if ok {
		kr, err := kinChunk.PayloadReader()
		if err != nil {
			return nil, err
		}
		k, err := readKinematics(kr, chunkKinematics)
		if err != nil {
			return nil, err
		}
		if err := kinChunk.AssertEnded("ogf kinematics chunk"); err != nil {
			return nil, err
		}
		f.Kinematics = &k
	} else if oldChunk, ok, err := root.Find(chunkKinematicsOld); err != nil {
		return nil, err
	} else if ok {
		kr, err := oldChunk.PayloadReader()
		if err != nil {
			return nil, err
		}
		k, err := readKinematics(kr, chunkKinematicsOld)
		if err != nil {
			return nil, err
		}
		if err := oldChunk.AssertEnded("ogf kinematics chunk (old)"); err != nil {
			return nil, err
		}
		f.Kinematics = &k
	}

	if childrenChunk, ok, err := root.Find(chunkChildren); err != nil {
		return nil, err
	} else if ok {
		it := childrenChunk.Children()
		index := uint32(0)
		for it.Next() {
			childChunk := it.Reader()
			if childChunk.ID != index {
				return nil, xrerr.New(xrerr.Invalid, "ogf children chunk: expected index %d, got %d", index, childChunk.ID)
			}
			child, err := readFromReader(childChunk)
			if err != nil {
				return nil, err
			}
			if err := childChunk.AssertEnded("ogf child model"); err != nil {
				return nil, err
			}
			f.Children = append(f.Children, *child)
			index++
		}
		if it.Err() != nil {
			return nil, it.Err()
		}
	}

	// Feature chunks were located by id with Find, which leaves the cursor
	// alone; walk the siblings once so the cursor ends past the last one.
	rest := root.Children()
	for rest.Next() {
	}
	if rest.Err() != nil {
		return nil, rest.Err()
	}

	return f, nil
}

// Write encodes f as a complete OgfFile and writes it to dst.
func Write(dst io.Writer, f *File) error {
	root := chunk.NewWriter()
	if err := writeToWriter(root, f); err != nil {
		return err
	}
	if _, err := dst.Write(root.Bytes()); err != nil {
		return xrerr.Wrap(xrerr.Io, err, "writing ogf file")
	}
	return nil
}

func writeToWriter(root *chunk.Writer, f *File) error {
	hw := xrbyte.NewWriter()
	writeHeader(hw, f.Header)
	headerChunkW := chunk.NewWriter()
	headerChunkW.Raw(hw.Bytes())
	root.Child(chunkHeader, headerChunkW)

	if f.Description != nil {
		dw := xrbyte.NewWriter()
		if err := writeDescription(dw, *f.Description); err != nil {
			return err
		}
		descChunkW := chunk.NewWriter()
		descChunkW.Raw(dw.Bytes())
		root.Child(chunkDescription, descChunkW)
	}

	if f.Texture != nil {
		tw := xrbyte.NewWriter()
		if err := writeTexture(tw, *f.Texture); err != nil {
			return err
		}
		texChunkW := chunk.NewWriter()
		texChunkW.Raw(tw.Bytes())
		root.Child(chunkTexture, texChunkW)
	}

	if len(f.Bones) > 0 {
		bw := xrbyte.NewWriter()
		if err := writeBones(bw, f.Bones); err != nil {
			return err
		}
		bonesChunkW := chunk.NewWriter()
		bonesChunkW.Raw(bw.Bytes())
		root.Child(chunkBones, bonesChunkW)
	}

	if f.Kinematics != nil {
		kw := xrbyte.NewWriter()
		if err := writeKinematics(kw, *f.Kinematics); err != nil {
			return err
		}
		kinChunkW := chunk.NewWriter()
		kinChunkW.Raw(kw.Bytes())
		root.Child(f.Kinematics.SourceChunkID, kinChunkW)
	}

	if len(f.Children) > 0 {
		childrenW := chunk.NewWriter()
		for i := range f.Children {
			childW := chunk.NewWriter()
			if err := writeToWriter(childW, &f.Children[i]); err != nil {
				return err
			}
			childrenW.Child(uint32(i), childW)
		}
		root.Child(chunkChildren, childrenW)
	}

	return nil
}
