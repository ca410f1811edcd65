// Package particles implements the ParticlesFile codec: effects built from
// a closed set of typed actions, each carrying a particle domain (the
// geometric region it samples from), plus named groups of effect
// references.
package particles

import (
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// DomainKind is the tag byte selecting a Domain variant.
type DomainKind uint8

const (
	DomainPoint DomainKind = iota
	DomainLine
	DomainTriangle
	DomainPlane
	DomainBox
	DomainSphere
	DomainCylinder
	DomainCone
	DomainBlob
	DomainDisc
)

func (k DomainKind) String() string {
	switch k {
	case DomainPoint:
		return "point"
	case DomainLine:
		return "line"
	case DomainTriangle:
		return "triangle"
	case DomainPlane:
		return "plane"
	case DomainBox:
		return "box"
	case DomainSphere:
		return "sphere"
	case DomainCylinder:
		return "cylinder"
	case DomainCone:
		return "cone"
	case DomainBlob:
		return "blob"
	case DomainDisc:
		return "disc"
	default:
		return "unknown"
	}
}

// Domain is the tagged geometric region an action samples from; only the
// fields relevant to Kind are meaningful.
type Domain struct {
	Kind DomainKind

	P1, P2, P3 xrbyte.Vec3 // Point/Line/Triangle/Plane point, Box min, Cylinder/Cone/Blob/Disc center
	Normal     xrbyte.Vec3 // Plane/Disc
	Axis       xrbyte.Vec3 // Cylinder/Cone
	Radius     float32     // Sphere/Cylinder/Cone/Blob/Disc
	Height     float32     // Cylinder/Cone
}

func ReadDomain(r *xrbyte.Reader) (Domain, error) {
	var d Domain
	tag, err := r.U8()
	if err != nil {
		return d, err
	}
	d.Kind = DomainKind(tag)

	switch d.Kind {
	case DomainPoint:
		d.P1, err = r.Vec3()
	case DomainLine:
		if d.P1, err = r.Vec3(); err != nil {
			return d, err
		}
		d.P2, err = r.Vec3()
	case DomainTriangle:
		if d.P1, err = r.Vec3(); err != nil {
			return d, err
		}
		if d.P2, err = r.Vec3(); err != nil {
			return d, err
		}
		d.P3, err = r.Vec3()
	case DomainPlane:
		if d.P1, err = r.Vec3(); err != nil {
			return d, err
		}
		d.Normal, err = r.Vec3()
	case DomainBox:
		if d.P1, err = r.Vec3(); err != nil {
			return d, err
		}
		d.P2, err = r.Vec3()
	case DomainSphere:
		if d.P1, err = r.Vec3(); err != nil {
			return d, err
		}
		d.Radius, err = r.F32()
	case DomainCylinder, DomainCone:
		if d.P1, err = r.Vec3(); err != nil {
			return d, err
		}
		if d.Axis, err = r.Vec3(); err != nil {
			return d, err
		}
		if d.Radius, err = r.F32(); err != nil {
			return d, err
		}
		d.Height, err = r.F32()
	case DomainBlob:
		if d.P1, err = r.Vec3(); err != nil {
			return d, err
		}
		d.Radius, err = r.F32()
	case DomainDisc:
		if d.P1, err = r.Vec3(); err != nil {
			return d, err
		}
		if d.Normal, err = r.Vec3(); err != nil {
			return d, err
		}
		d.Radius, err = r.F32()
	default:
		return d, xrerr.New(xrerr.NotImplemented, "particle domain tag %d", tag)
	}
	return d, err
}

func WriteDomain(w *xrbyte.Writer, d Domain) error {
	w.U8(uint8(d.Kind))
	switch d.Kind {
	case DomainPoint:
		w.Vec3(d.P1)
	case DomainLine:
		w.Vec3(d.P1).Vec3(d.P2)
	case DomainTriangle:
		w.Vec3(d.P1).Vec3(d.P2).Vec3(d.P3)
	case DomainPlane:
		w.Vec3(d.P1).Vec3(d.Normal)
	case DomainBox:
		w.Vec3(d.P1).Vec3(d.P2)
	case DomainSphere:
		w.Vec3(d.P1).F32(d.Radius)
	case DomainCylinder, DomainCone:
		w.Vec3(d.P1).Vec3(d.Axis).F32(d.Radius).F32(d.Height)
	case DomainBlob:
		w.Vec3(d.P1).F32(d.Radius)
	case DomainDisc:
		w.Vec3(d.P1).Vec3(d.Normal).F32(d.Radius)
	default:
		return xrerr.New(xrerr.NotImplemented, "particle domain tag %d", uint8(d.Kind))
	}
	return nil
}
