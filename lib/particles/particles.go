package particles

import (
	"io"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

const (
	chunkFirstGen uint32 = 2
	chunkEffects  uint32 = 3
	chunkGroups   uint32 = 4
)

// Header is the FirstGen chunk: a format version plus the effect/group
// counts the following chunks are checked against.
type Header struct {
	Version      uint16
	EffectsCount uint32
	GroupsCount  uint32
}

func readHeader(r *xrbyte.Reader) (Header, error) {
	var h Header
	var err error
	if h.Version, err = r.U16(); err != nil {
		return h, err
	}
	if h.EffectsCount, err = r.U32(); err != nil {
		return h, err
	}
	h.GroupsCount, err = r.U32()
	return h, err
}

func writeHeader(w *xrbyte.Writer, h Header) {
	w.U16(h.Version).U32(h.EffectsCount).U32(h.GroupsCount)
}

// File is a fully decoded ParticlesFile.
type File struct {
	Header  Header
	Effects []Effect
	Groups  []Group
}

// Read decodes a complete ParticlesFile from src.
func Read(src chunk.Source) (*File, error) {
	root := chunk.Open(src)
	f := &File{}

	firstGenChunk, err := root.Require(chunkFirstGen)
	if err != nil {
		return nil, err
	}
	hr, err := firstGenChunk.PayloadReader()
	if err != nil {
		return nil, err
	}
	if f.Header, err = readHeader(hr); err != nil {
		return nil, err
	}
	if err := firstGenChunk.AssertEnded("particles firstgen chunk"); err != nil {
		return nil, err
	}

	if err := f.readEffects(root); err != nil {
		return nil, err
	}
	if err := f.readGroups(root); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) readEffects(root *chunk.Reader) error {
	effectsChunk, ok, err := root.Find(chunkEffects)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	it := effectsChunk.Children()
	for it.Next() {
		effectChunk := it.Reader()
		er, err := effectChunk.PayloadReader()
		if err != nil {
			return err
		}
		e, err := ReadEffect(er)
		if err != nil {
			return err
		}
		if err := effectChunk.AssertEnded("particle effect"); err != nil {
			return err
		}
		f.Effects = append(f.Effects, e)
	}
	if it.Err() != nil {
		return it.Err()
	}

	if uint32(len(f.Effects)) != f.Header.EffectsCount {
		return xrerr.New(xrerr.Invalid, "effect count mismatch: header=%d observed=%d",
			f.Header.EffectsCount, len(f.Effects))
	}
	return nil
}

func (f *File) readGroups(root *chunk.Reader) error {
	groupsChunk, ok, err := root.Find(chunkGroups)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	it := groupsChunk.Children()
	for it.Next() {
		groupChunk := it.Reader()
		gr, err := groupChunk.PayloadReader()
		if err != nil {
			return err
		}
		g, err := ReadGroup(gr)
		if err != nil {
			return err
		}
		if err := groupChunk.AssertEnded("particle group"); err != nil {
			return err
		}
		f.Groups = append(f.Groups, g)
	}
	if it.Err() != nil {
		return it.Err()
	}

	if uint32(len(f.Groups)) != f.Header.GroupsCount {
		return xrerr.New(xrerr.Invalid, "group count mismatch: header=%d observed=%d",
			f.Header.GroupsCount, len(f.Groups))
	}
	return nil
}

// Write encodes f as a complete ParticlesFile and writes it to dst.
func Write(dst io.Writer, f *File) error {
	root := chunk.NewWriter()

	hw := xrbyte.NewWriter()
	header := f.Header
	header.EffectsCount = uint32(len(f.Effects))
	header.GroupsCount = uint32(len(f.Groups))
	writeHeader(hw, header)
	firstGenChunkW := chunk.NewWriter()
	firstGenChunkW.Raw(hw.Bytes())
	root.Child(chunkFirstGen, firstGenChunkW)

	if err := writeEffects(root, f.Effects); err != nil {
		return err
	}
	if err := writeGroups(root, f.Groups); err != nil {
		return err
	}

	if _, err := dst.Write(root.Bytes()); err != nil {
		return xrerr.Wrap(xrerr.Io, err, "writing particles file")
	}
	return nil
}

func writeEffects(root *chunk.Writer, effects []Effect) error {
	effectsW := chunk.NewWriter()
	for i, e := range effects {
		ew := xrbyte.NewWriter()
		if err := WriteEffect(ew, e); err != nil {
			return err
		}
		effectChunkW := chunk.NewWriter()
		effectChunkW.Raw(ew.Bytes())
		effectsW.Child(uint32(i), effectChunkW)
	}
	root.Child(chunkEffects, effectsW)
	return nil
}

func writeGroups(root *chunk.Writer, groups []Group) error {
	groupsW := chunk.NewWriter()
	for i, g := range groups {
		gw := xrbyte.NewWriter()
		if err := WriteGroup(gw, g); err != nil {
			return err
		}
		groupChunkW := chunk.NewWriter()
		groupChunkW.Raw(gw.Bytes())
		groupsW.Child(uint32(i), groupChunkW)
	}
	root.Child(chunkGroups, groupsW)
	return nil
}
