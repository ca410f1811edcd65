package ogf

import "github.com/xray-forge/xrf-go/lib/xrbyte"

// Bone is one entry of the skeleton: a name, its parent's name (empty for
// roots), a 3x3 rotation basis as three row vectors, a translation, and a
// half-extent used for bone-local bounding volumes.
type Bone struct {
	Name      string
	Parent    string
	Rotation  [3]xrbyte.Vec3
	Translate xrbyte.Vec3
	HalfSize  xrbyte.Vec3
}

func readBone(r *xrbyte.Reader) (Bone, error) {
	var b Bone
	var err error
	if b.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return b, err
	}
	if b.Parent, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return b, err
	}
	for i := range b.Rotation {
		if b.Rotation[i], err = r.Vec3(); err != nil {
			return b, err
		}
	}
	if b.Translate, err = r.Vec3(); err != nil {
		return b, err
	}
	b.HalfSize, err = r.Vec3()
	return b, err
}

func writeBone(w *xrbyte.Writer, b Bone) error {
	if err := w.NullTerminatedString(b.Name, xrbyte.CP1251); err != nil {
		return err
	}
	if err := w.NullTerminatedString(b.Parent, xrbyte.CP1251); err != nil {
		return err
	}
	for _, v := range b.Rotation {
		w.Vec3(v)
	}
	w.Vec3(b.Translate).Vec3(b.HalfSize)
	return nil
}

func readBones(r *xrbyte.Reader) ([]Bone, error) {
	count, err := r.U32()
	if err != nil {
		return nil, err
	}
	bones := make([]Bone, 0, count)
	for i := uint32(0); i < count; i++ {
		b, err := readBone(r)
		if err != nil {
			return nil, err
		}
		bones = append(bones, b)
	}
	return bones, nil
}

func writeBones(w *xrbyte.Writer, bones []Bone) error {
	w.U32(uint32(len(bones)))
	for _, b := range bones {
		if err := writeBone(w, b); err != nil {
			return err
		}
	}
	return nil
}
