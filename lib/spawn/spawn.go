// Package spawn implements the SpawnFile codec: the top-level chunked
// binary container holding a level's ALife object list, patrol routes,
// navigation graph, and artefact spawn points.
package spawn

import (
	"io"

	"github.com/xray-forge/xrf-go/lib/alife"
	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/util"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

const (
	chunkHeader        uint32 = 0
	chunkALife         uint32 = 1
	chunkPatrols       uint32 = 2
	chunkGraphs        uint32 = 3
	chunkArtefactSpawn uint32 = 4
)

// minVersion is the oldest spawn file version this module reads; anything
// older fails Invalid rather than risk silently misparsing a layout this
// codec was never grounded on.
const minVersion = 120

// Header is the SpawnFile's leading chunk: a format version plus the
// object/level counts the following chunks are checked against.
type Header struct {
	Version     uint16
	ObjectCount uint32
	LevelCount  uint8
	GUID        util.UUID
	GraphGUID   util.UUID
}

// File is a fully decoded SpawnFile.
type File struct {
	Header              Header
	Objects             []alife.Object
	Patrols             []alife.Patrol
	Graph               *alife.Graph
	ArtefactSpawnPoints []alife.ArtefactSpawnPoint
}

func readHeader(r *xrbyte.Reader) (Header, error) {
	var h Header
	var err error
	if h.Version, err = r.U16(); err != nil {
		return h, err
	}
	if h.Version < minVersion {
		return h, xrerr.New(xrerr.Invalid, "unsupported spawn file version %d (minimum %d)", h.Version, minVersion)
	}
	if h.ObjectCount, err = r.U32(); err != nil {
		return h, err
	}
	if h.LevelCount, err = r.U8(); err != nil {
		return h, err
	}
	guidBytes, err := r.U128()
	if err != nil {
		return h, err
	}
	h.GUID = util.UUID(guidBytes)
	graphGUIDBytes, err := r.U128()
	if err != nil {
		return h, err
	}
	h.GraphGUID = util.UUID(graphGUIDBytes)
	return h, nil
}

func writeHeader(w *xrbyte.Writer, h Header) {
	w.U16(h.Version)
	w.U32(h.ObjectCount)
	w.U8(h.LevelCount)
	w.U128([16]byte(h.GUID))
	w.U128([16]byte(h.GraphGUID))
}

// Read decodes a complete SpawnFile from src.
func Read(src chunk.Source) (*File, error) {
	root := chunk.Open(src)
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
	if err := headerChunk.AssertEnded("spawn header chunk"); err != nil {
		return nil, err
	}

	if err := f.readALife(root); err != nil {
		return nil, err
	}
	if err := f.readPatrols(root); err != nil {
		return nil, err
	}
	if err := f.readGraphs(root); err != nil {
		return nil, err
	}
	if err := f.readArtefactSpawn(root); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) readALife(root *chunk.Reader) error {
	alifeChunk, ok, err := root.Find(chunkALife)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	it := alifeChunk.Children()
	for it.Next() {
		objChunk := it.Reader()
		or, err := objChunk.PayloadReader()
		if err != nil {
			return err
		}
		obj, err := alife.ReadObject(or)
		if err != nil {
			return err
		}
		if err := objChunk.AssertEnded("alife object"); err != nil {
			return err
		}
		f.Objects = append(f.Objects, obj)
	}
	if it.Err() != nil {
		return it.Err()
	}

	if uint32(len(f.Objects)) != f.Header.ObjectCount {
		return xrerr.New(xrerr.Invalid, "object count mismatch: header=%d observed=%d",
			f.Header.ObjectCount, len(f.Objects))
	}
	return alife.CheckStoryIDsUnique(f.Objects)
}

func (f *File) readPatrols(root *chunk.Reader) error {
	patrolsChunk, ok, err := root.Find(chunkPatrols)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	it := patrolsChunk.Children()
	for it.Next() {
		patrolChunk := it.Reader()
		p, err := readOnePatrol(patrolChunk)
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		f.Patrols = append(f.Patrols, *p)
	}
	return it.Err()
}

// patrol sub-chunk ids within one patrol entry: name, then points+links.
const (
	chunkPatrolMeta uint32 = 0
	chunkPatrolData uint32 = 1
)

func readOnePatrol(patrolChunk *chunk.Reader) (*alife.Patrol, error) {
	metaChunk, err := patrolChunk.Require(chunkPatrolMeta)
	if err != nil {
		return nil, err
	}
	mr, err := metaChunk.PayloadReader()
	if err != nil {
		return nil, err
	}
	name, err := alife.ReadPatrolMeta(mr)
	if err != nil {
		return nil, err
	}

	dataChunk, err := patrolChunk.Require(chunkPatrolData)
	if err != nil {
		return nil, err
	}
	dr, err := dataChunk.PayloadReader()
	if err != nil {
		return nil, err
	}
	points, links, err := alife.ReadPatrolData(dr)
	if err != nil {
		return nil, err
	}
	return &alife.Patrol{Name: name, Points: points, Links: links}, nil
}

func (f *File) readGraphs(root *chunk.Reader) error {
	graphsChunk, ok, err := root.Find(chunkGraphs)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	gr, err := graphsChunk.PayloadReader()
	if err != nil {
		return err
	}
	g, err := alife.ReadGraph(gr)
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	f.Graph = g
	return nil
}

func (f *File) readArtefactSpawn(root *chunk.Reader) error {
	spawnChunk, ok, err := root.Find(chunkArtefactSpawn)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	ar, err := spawnChunk.PayloadReader()
	if err != nil {
		return err
	}
	declaredCount := uint32(ar.Remaining() / artefactSpawnPointStrideRef)
	points, err := alife.ReadArtefactSpawnPoints(ar, declaredCount)
	if err != nil {
		return err
	}
	f.ArtefactSpawnPoints = points
	return nil
}

// artefactSpawnPointStrideRef mirrors alife's private record stride; the
// artefact chunk carries no separate declared count field of its own, so
// the count is derived from the payload size.
const artefactSpawnPointStrideRef = 20

// Write encodes f as a complete SpawnFile and writes it to dst.
func Write(dst io.Writer, f *File) error {
	root := chunk.NewWriter()

	hw := xrbyte.NewWriter()
	header := f.Header
	header.ObjectCount = uint32(len(f.Objects))
	writeHeader(hw, header)
	headerChunkW := chunk.NewWriter()
	headerChunkW.Raw(hw.Bytes())
	root.Child(chunkHeader, headerChunkW)

	if err := writeALife(root, f.Objects); err != nil {
		return err
	}
	if err := writePatrols(root, f.Patrols); err != nil {
		return err
	}
	if f.Graph != nil {
		if err := writeGraphs(root, f.Graph); err != nil {
			return err
		}
	}
	if len(f.ArtefactSpawnPoints) > 0 {
		aw := xrbyte.NewWriter()
		alife.WriteArtefactSpawnPoints(aw, f.ArtefactSpawnPoints)
		spawnChunkW := chunk.NewWriter()
		spawnChunkW.Raw(aw.Bytes())
		root.Child(chunkArtefactSpawn, spawnChunkW)
	}

	_, err := dst.Write(root.Bytes())
	if err != nil {
		return xrerr.Wrap(xrerr.Io, err, "writing spawn file")
	}
	return nil
}

func writeALife(root *chunk.Writer, objects []alife.Object) error {
	alifeW := chunk.NewWriter()
	for i, obj := range objects {
		ow := xrbyte.NewWriter()
		if err := alife.WriteObject(ow, obj); err != nil {
			return err
		}
		objW := chunk.NewWriter()
		objW.Raw(ow.Bytes())
		alifeW.Child(uint32(i), objW)
	}
	root.Child(chunkALife, alifeW)
	return nil
}

func writePatrols(root *chunk.Writer, patrols []alife.Patrol) error {
	if len(patrols) == 0 {
		return nil
	}
	patrolsW := chunk.NewWriter()
	for i, p := range patrols {
		metaW := xrbyte.NewWriter()
		if err := metaW.NullTerminatedString(p.Name, xrbyte.CP1251); err != nil {
			return err
		}
		metaChunkW := chunk.NewWriter()
		metaChunkW.Raw(metaW.Bytes())

		dataW := xrbyte.NewWriter()
		if err := alife.WritePatrolData(dataW, &p); err != nil {
			return err
		}
		dataChunkW := chunk.NewWriter()
		dataChunkW.Raw(dataW.Bytes())

		patrolW := chunk.NewWriter()
		patrolW.Child(chunkPatrolMeta, metaChunkW)
		patrolW.Child(chunkPatrolData, dataChunkW)

		patrolsW.Child(uint32(i), patrolW)
	}
	root.Child(chunkPatrols, patrolsW)
	return nil
}

func writeGraphs(root *chunk.Writer, g *alife.Graph) error {
	gw := xrbyte.NewWriter()
	if err := alife.WriteGraph(gw, g); err != nil {
		return err
	}
	graphsW := chunk.NewWriter()
	graphsW.Raw(gw.Bytes())
	root.Child(chunkGraphs, graphsW)
	return nil
}
