package alife

import (
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// PatrolPoint is one named waypoint of a patrol route.
type PatrolPoint struct {
	Name          string
	Position      xrbyte.Vec3
	Flags         uint32
	LevelVertexID uint32
	GameVertexID  uint16
}

// PatrolLink connects two points of the same patrol by index, with a
// traversal weight.
type PatrolLink struct {
	From   uint32
	To     uint32
	Weight float32
}

// Patrol is a named route: ordered points plus a link graph between their
// indices.
type Patrol struct {
	Name   string
	Points []PatrolPoint
	Links  []PatrolLink
}

// Validate checks that every link references a point index within this
// patrol's own point list.
func (p *Patrol) Validate() error {
	n := uint32(len(p.Points))
	for _, link := range p.Links {
		if link.From >= n || link.To >= n {
			return xrerr.New(xrerr.Invalid, "patrol %q link references out-of-range point (from=%d to=%d count=%d)",
				p.Name, link.From, link.To, n)
		}
	}
	return nil
}

func readPatrolPoint(r *xrbyte.Reader) (PatrolPoint, error) {
	var p PatrolPoint
	var err error
	if p.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return p, err
	}
	if p.Position, err = r.Vec3(); err != nil {
		return p, err
	}
	if p.Flags, err = r.U32(); err != nil {
		return p, err
	}
	if p.LevelVertexID, err = r.U32(); err != nil {
		return p, err
	}
	if p.GameVertexID, err = r.U16(); err != nil {
		return p, err
	}
	return p, nil
}

func writePatrolPoint(w *xrbyte.Writer, p PatrolPoint) error {
	if err := w.NullTerminatedString(p.Name, xrbyte.CP1251); err != nil {
		return err
	}
	w.Vec3(p.Position)
	w.U32(p.Flags)
	w.U32(p.LevelVertexID)
	w.U16(p.GameVertexID)
	return nil
}

func readPatrolLink(r *xrbyte.Reader) (PatrolLink, error) {
	var l PatrolLink
	var err error
	if l.From, err = r.U32(); err != nil {
		return l, err
	}
	if l.To, err = r.U32(); err != nil {
		return l, err
	}
	if l.Weight, err = r.F32(); err != nil {
		return l, err
	}
	return l, nil
}

func writePatrolLink(w *xrbyte.Writer, l PatrolLink) {
	w.U32(l.From)
	w.U32(l.To)
	w.F32(l.Weight)
}

// ReadPatrolMeta reads a patrol's name from its Meta sub-chunk.
func ReadPatrolMeta(r *xrbyte.Reader) (string, error) {
	return r.NullTerminatedString(xrbyte.CP1251)
}

// ReadPatrolData reads a patrol's points and links from its Data sub-chunk:
// a point count, that many points, a link count, then that many links.
func ReadPatrolData(r *xrbyte.Reader) ([]PatrolPoint, []PatrolLink, error) {
	pointCount, err := r.U32()
	if err != nil {
		return nil, nil, err
	}
	points := make([]PatrolPoint, pointCount)
	for i := range points {
		if points[i], err = readPatrolPoint(r); err != nil {
			return nil, nil, err
		}
	}

	linkCount, err := r.U32()
	if err != nil {
		return nil, nil, err
	}
	links := make([]PatrolLink, linkCount)
	for i := range links {
		if links[i], err = readPatrolLink(r); err != nil {
			return nil, nil, err
		}
	}
	return points, links, nil
}

// WritePatrolData is the symmetric serializer for ReadPatrolData.
func WritePatrolData(w *xrbyte.Writer, p *Patrol) error {
	w.U32(uint32(len(p.Points)))
	for _, pt := range p.Points {
		if err := writePatrolPoint(w, pt); err != nil {
			return err
		}
	}
	w.U32(uint32(len(p.Links)))
	for _, l := range p.Links {
		writePatrolLink(w, l)
	}
	return nil
}
