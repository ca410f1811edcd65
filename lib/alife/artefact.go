package alife

import (
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// artefactSpawnPointStride is the on-disk size of one ArtefactSpawnPoint
// record: Vec3 (12) + LevelVertexID u32 (4) + Distance f32 (4).
const artefactSpawnPointStride = 20

// ArtefactSpawnPoint is a fixed-layout record describing where an
// artefact may spawn.
type ArtefactSpawnPoint struct {
	Position      xrbyte.Vec3
	LevelVertexID uint32
	Distance      float32
}

// ReadArtefactSpawnPoints reads every record in the chunk payload, given
// the declared record count; the chunk's byte size must be an exact
// multiple of the record stride matching that count.
func ReadArtefactSpawnPoints(r *xrbyte.Reader, declaredCount uint32) ([]ArtefactSpawnPoint, error) {
	remaining := r.Remaining()
	if remaining%artefactSpawnPointStride != 0 {
		return nil, xrerr.New(xrerr.Invalid, "artefact spawn chunk size %d not a multiple of record stride %d",
			remaining, artefactSpawnPointStride)
	}
	observedCount := uint32(remaining / artefactSpawnPointStride)
	if observedCount != declaredCount {
		return nil, xrerr.New(xrerr.Invalid, "artefact spawn point count mismatch: declared=%d observed=%d",
			declaredCount, observedCount)
	}

	points := make([]ArtefactSpawnPoint, declaredCount)
	for i := range points {
		p := &points[i]
		var err error
		if p.Position, err = r.Vec3(); err != nil {
			return nil, err
		}
		if p.LevelVertexID, err = r.U32(); err != nil {
			return nil, err
		}
		if p.Distance, err = r.F32(); err != nil {
			return nil, err
		}
	}
	return points, nil
}

// WriteArtefactSpawnPoints is the symmetric serializer.
func WriteArtefactSpawnPoints(w *xrbyte.Writer, points []ArtefactSpawnPoint) {
	for _, p := range points {
		w.Vec3(p.Position)
		w.U32(p.LevelVertexID)
		w.F32(p.Distance)
	}
}

// RestrictorShapeKind is the tag byte selecting a restrictor variant.
type RestrictorShapeKind uint8

const (
	RestrictorSphere RestrictorShapeKind = 0
	RestrictorBox    RestrictorShapeKind = 1
)

// RestrictorShape is one shape in a restrictor's shape list: either a
// bounding sphere or a 4-vec3 box, selected by Kind.
type RestrictorShape struct {
	Kind   RestrictorShapeKind
	Sphere xrbyte.Sphere
	Box    xrbyte.Box
}

// ReadRestrictorShapes reads the declared count of tagged shape records.
func ReadRestrictorShapes(r *xrbyte.Reader, count uint32) ([]RestrictorShape, error) {
	shapes := make([]RestrictorShape, count)
	for i := range shapes {
		tag, err := r.U8()
		if err != nil {
			return nil, err
		}
		shapes[i].Kind = RestrictorShapeKind(tag)
		switch shapes[i].Kind {
		case RestrictorSphere:
			if shapes[i].Sphere, err = r.Sphere(); err != nil {
				return nil, err
			}
		case RestrictorBox:
			if shapes[i].Box, err = r.Box(); err != nil {
				return nil, err
			}
		default:
			return nil, xrerr.New(xrerr.NotImplemented, "restrictor shape tag %d", tag)
		}
	}
	return shapes, nil
}

// WriteRestrictorShapes is the symmetric serializer, emitting the tag byte
// ahead of each shape's fields.
func WriteRestrictorShapes(w *xrbyte.Writer, shapes []RestrictorShape) error {
	for _, s := range shapes {
		w.U8(uint8(s.Kind))
		switch s.Kind {
		case RestrictorSphere:
			w.Sphere(s.Sphere)
		case RestrictorBox:
			w.Box(s.Box)
		default:
			return xrerr.New(xrerr.NotImplemented, "restrictor shape tag %d", s.Kind)
		}
	}
	return nil
}
