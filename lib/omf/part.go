package omf

import "github.com/xray-forge/xrf-go/lib/xrbyte"

// BoneRef names one bone by its index into the model's flat bone list.
type BoneRef struct {
	Name  string
	Index uint32
}

// Part is a named subset of a skeleton's bones, used to group motions by
// the body region they animate (e.g. torso, legs).
type Part struct {
	Name  string
	Bones []BoneRef
}

func readPart(r *xrbyte.Reader) (Part, error) {
	var p Part
	var err error
	if p.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return p, err
	}
	count, err := r.U16()
	if err != nil {
		return p, err
	}
	for i := uint16(0); i < count; i++ {
		var bone BoneRef
		if bone.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
			return p, err
		}
		if bone.Index, err = r.U32(); err != nil {
			return p, err
		}
		p.Bones = append(p.Bones, bone)
	}
	return p, nil
}

func writePart(w *xrbyte.Writer, p Part) error {
	if err := w.NullTerminatedString(p.Name, xrbyte.CP1251); err != nil {
		return err
	}
	w.U16(uint16(len(p.Bones)))
	for _, bone := range p.Bones {
		if err := w.NullTerminatedString(bone.Name, xrbyte.CP1251); err != nil {
			return err
		}
		w.U32(bone.Index)
	}
	return nil
}

func readParts(r *xrbyte.Reader) ([]Part, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	parts := make([]Part, 0, count)
	for i := uint16(0); i < count; i++ {
		p, err := readPart(r)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func writeParts(w *xrbyte.Writer, parts []Part) error {
	w.U16(uint16(len(parts)))
	for _, p := range parts {
		if err := writePart(w, p); err != nil {
			return err
		}
	}
	return nil
}
