// Package omf decodes and encodes OmfFile, the motion-bank format
// paired with OGF skinned models.
package omf

import (
	"io"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

const (
	chunkParameters uint32 = 15
	chunkMotions    uint32 = 14
)

// supportedVersions is the closed set of parameters-chunk versions this
// codec understands; anything else fails NotImplemented.
var supportedVersions = map[uint16]bool{
	3: true,
	4: true,
}

// Parameters is the chunk-15 payload: a format version, the skeleton
// partition into named parts, and the motion definitions that reference
// those parts.
type Parameters struct {
	Version uint16
	Parts   []Part
	Motions []MotionDefinition
}

func readParameters(r *xrbyte.Reader) (Parameters, error) {
	var p Parameters
	var err error
	if p.Version, err = r.U16(); err != nil {
		return p, err
	}
	if !supportedVersions[p.Version] {
		return p, xrerr.New(xrerr.NotImplemented, "omf parameters version %d is not supported", p.Version)
	}
	if p.Parts, err = readParts(r); err != nil {
		return p, err
	}
	p.Motions, err = readMotionDefinitions(r)
	return p, err
}

func writeParameters(w *xrbyte.Writer, p Parameters) error {
	w.U16(p.Version)
	if err := writeParts(w, p.Parts); err != nil {
		return err
	}
	return writeMotionDefinitions(w, p.Motions)
}

// File is a fully decoded OmfFile.
type File struct {
	Parameters Parameters
	Motions    []Motion
}

// Read decodes a complete OmfFile from src.
func Read(src chunk.Source) (*File, error) {
	root := chunk.Open(src)
	f := &File{}

	paramsChunk, err := root.Require(chunkParameters)
	if err != nil {
		return nil, err
	}
	pr, err := paramsChunk.PayloadReader()
	if err != nil {
		return nil, err
	}
	if f.Parameters, err = readParameters(pr); err != nil {
		return nil, err
	}
	if err := paramsChunk.AssertEnded("omf parameters chunk"); err != nil {
		return nil, err
	}

	motionsChunk, err := root.Require(chunkMotions)
	if err != nil {
		return nil, err
	}
	if f.Motions, err = readMotions(motionsChunk); err != nil {
		return nil, err
	}
	if err := motionsChunk.AssertEnded("omf motions chunk"); err != nil {
		return nil, err
	}

	if err := root.AssertEnded("omf file"); err != nil {
		return nil, err
	}
	return f, nil
}

func readMotions(motionsChunk *chunk.Reader) ([]Motion, error) {
	it := motionsChunk.Children()
	if !it.Next() {
		return nil, xrerr.New(xrerr.Invalid, "omf motions chunk: missing count child")
	}
	countReader, err := it.Reader().PayloadReader()
	if err != nil {
		return nil, err
	}
	count, err := countReader.U32()
	if err != nil {
		return nil, err
	}

	var motions []Motion
	for it.Next() {
		mr, err := it.Reader().PayloadReader()
		if err != nil {
			return nil, err
		}
		m, err := readMotion(mr)
		if err != nil {
			return nil, err
		}
		motions = append(motions, m)
	}
	if it.Err() != nil {
		return nil, it.Err()
	}

	if uint32(len(motions)) != count {
		return nil, xrerr.New(xrerr.Invalid, "omf motions count mismatch: declared=%d observed=%d", count, len(motions))
	}
	return motions, nil
}

// Write encodes f as a complete OmfFile and writes it to dst.
func Write(dst io.Writer, f *File) error {
	root := chunk.NewWriter()

	pw := xrbyte.NewWriter()
	if err := writeParameters(pw, f.Parameters); err != nil {
		return err
	}
	paramsChunkW := chunk.NewWriter()
	paramsChunkW.Raw(pw.Bytes())
	root.Child(chunkParameters, paramsChunkW)

	motionsW := chunk.NewWriter()
	countW := xrbyte.NewWriter()
	countW.U32(uint32(len(f.Motions)))
	countChunkW := chunk.NewWriter()
	countChunkW.Raw(countW.Bytes())
	motionsW.Child(0, countChunkW)

	for i, m := range f.Motions {
		mw := xrbyte.NewWriter()
		if err := writeMotion(mw, m); err != nil {
			return err
		}
		motionChunkW := chunk.NewWriter()
		motionChunkW.Raw(mw.Bytes())
		motionsW.Child(uint32(i+1), motionChunkW)
	}
	root.Child(chunkMotions, motionsW)

	if _, err := dst.Write(root.Bytes()); err != nil {
		return xrerr.Wrap(xrerr.Io, err, "writing omf file")
	}
	return nil
}
