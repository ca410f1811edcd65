package xrbyte

import "fmt"

// Vec3 is a 3D vector of little-endian f32 components.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// RGB is a 3-channel f32 color.
type RGB struct {
	R, G, B float32
}

// Sphere is a bounding sphere: center + radius.
type Sphere struct {
	Center Vec3
	Radius float32
}

// Box is 4 packed vec3s, the layout of an ALife restrictor box shape,
// which is read and written whole. OGF bounding boxes do not use this
// type; they carry their own min/max pair.
type Box [4]Vec3

func (b Box) Min() Vec3 { return b[0] }
func (b Box) Max() Vec3 { return b[1] }
