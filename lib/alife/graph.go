package alife

import (
	"github.com/xray-forge/xrf-go/lib/containers"
	"github.com/xray-forge/xrf-go/lib/util"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// Level is one member of the level graph's level table.
type Level struct {
	ID     uint8
	Name   string
	Offset xrbyte.Vec3
	GUID   util.UUID
}

// Vertex is one node of the level graph: a level-local point, a
// game-global point, and a packed (level id, vertex id) identifier.
type Vertex struct {
	LevelPoint   xrbyte.Vec3
	GamePoint    xrbyte.Vec3
	LevelID      uint8
	VertexID     uint32 // 24-bit value packed with LevelID on the wire
	NeighborEdge []uint32
}

// Graph is the level-navigation graph: levels plus vertices. VerticesCount
// in the header must equal len(Vertices) (checked by Validate).
type Graph struct {
	VerticesCount uint32
	Levels        []Level
	Vertices      []Vertex
}

// Validate checks the vertex-count invariant the header declares and that
// no two levels share a GUID.
func (g *Graph) Validate() error {
	if uint32(len(g.Vertices)) != g.VerticesCount {
		return xrerr.New(xrerr.Invalid, "graph vertex count mismatch: header=%d observed=%d",
			g.VerticesCount, len(g.Vertices))
	}

	seen := containers.NewSet[util.UUID]()
	dupes := containers.NewSet[util.UUID]()
	for _, lvl := range g.Levels {
		if seen.Has(lvl.GUID) {
			dupes.Insert(lvl.GUID)
		}
		seen.Insert(lvl.GUID)
	}
	if len(dupes) > 0 {
		return xrerr.New(xrerr.Invalid, "duplicate level GUIDs: %v", dupes.Sorted())
	}
	return nil
}

// ReadGraph reads a Graph from its chunk payload: header (vertex count,
// level count), the level table, then the vertex table.
func ReadGraph(r *xrbyte.Reader) (*Graph, error) {
	g := &Graph{}
	var err error
	if g.VerticesCount, err = r.U32(); err != nil {
		return nil, err
	}
	levelCount, err := r.U8()
	if err != nil {
		return nil, err
	}
	g.Levels = make([]Level, levelCount)
	for i := range g.Levels {
		lvl := &g.Levels[i]
		if lvl.ID, err = r.U8(); err != nil {
			return nil, err
		}
		if lvl.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
			return nil, err
		}
		if lvl.Offset, err = r.Vec3(); err != nil {
			return nil, err
		}
		guidBytes, err := r.U128()
		if err != nil {
			return nil, err
		}
		lvl.GUID = util.UUID(guidBytes)
	}

	g.Vertices = make([]Vertex, g.VerticesCount)
	for i := range g.Vertices {
		v := &g.Vertices[i]
		if v.LevelPoint, err = r.Vec3(); err != nil {
			return nil, err
		}
		if v.GamePoint, err = r.Vec3(); err != nil {
			return nil, err
		}
		packed, err := r.U32()
		if err != nil {
			return nil, err
		}
		v.LevelID = uint8(packed >> 24)
		v.VertexID = packed & 0x00FF_FFFF

		neighborCount, err := r.U8()
		if err != nil {
			return nil, err
		}
		v.NeighborEdge = make([]uint32, neighborCount)
		for j := range v.NeighborEdge {
			if v.NeighborEdge[j], err = r.U32(); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// WriteGraph is the symmetric serializer for ReadGraph.
func WriteGraph(w *xrbyte.Writer, g *Graph) error {
	w.U32(uint32(len(g.Vertices)))
	w.U8(uint8(len(g.Levels)))
	for _, lvl := range g.Levels {
		w.U8(lvl.ID)
		if err := w.NullTerminatedString(lvl.Name, xrbyte.CP1251); err != nil {
			return err
		}
		w.Vec3(lvl.Offset)
		w.U128([16]byte(lvl.GUID))
	}
	for _, v := range g.Vertices {
		w.Vec3(v.LevelPoint)
		w.Vec3(v.GamePoint)
		packed := uint32(v.LevelID)<<24 | (v.VertexID & 0x00FF_FFFF)
		w.U32(packed)
		w.U8(uint8(len(v.NeighborEdge)))
		for _, e := range v.NeighborEdge {
			w.U32(e)
		}
	}
	return nil
}
