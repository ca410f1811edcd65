package omf

import "github.com/xray-forge/xrf-go/lib/xrbyte"

// MotionDefinition references one motion record by name and says which
// part (or, with BoneOrPart's high bit unset, which single bone) it
// animates. The remaining fields are authoring-time blend parameters.
type MotionDefinition struct {
	Name       string
	BoneOrPart uint16
	Speed      float32
	Power      float32
	Accrue     float32
	Falloff    float32
	Flags      uint32
}

func readMotionDefinition(r *xrbyte.Reader) (MotionDefinition, error) {
	var m MotionDefinition
	var err error
	if m.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return m, err
	}
	if m.BoneOrPart, err = r.U16(); err != nil {
		return m, err
	}
	if m.Speed, err = r.F32(); err != nil {
		return m, err
	}
	if m.Power, err = r.F32(); err != nil {
		return m, err
	}
	if m.Accrue, err = r.F32(); err != nil {
		return m, err
	}
	if m.Falloff, err = r.F32(); err != nil {
		return m, err
	}
	m.Flags, err = r.U32()
	return m, err
}

func writeMotionDefinition(w *xrbyte.Writer, m MotionDefinition) error {
	if err := w.NullTerminatedString(m.Name, xrbyte.CP1251); err != nil {
		return err
	}
	w.U16(m.BoneOrPart).F32(m.Speed).F32(m.Power).F32(m.Accrue).F32(m.Falloff).U32(m.Flags)
	return nil
}

func readMotionDefinitions(r *xrbyte.Reader) ([]MotionDefinition, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	defs := make([]MotionDefinition, 0, count)
	for i := uint16(0); i < count; i++ {
		m, err := readMotionDefinition(r)
		if err != nil {
			return nil, err
		}
		defs = append(defs, m)
	}
	return defs, nil
}

func writeMotionDefinitions(w *xrbyte.Writer, defs []MotionDefinition) error {
	w.U16(uint16(len(defs)))
	for _, m := range defs {
		if err := writeMotionDefinition(w, m); err != nil {
			return err
		}
	}
	return nil
}

// Motion is one per-bone keyframe animation payload, named to match a
// MotionDefinition in the parameters chunk.
type Motion struct {
	Name       string
	Flags      uint32
	BoneOrPart uint16
	Speed      float32
	Power      float32
	Accrue     float32
	Falloff    float32
}

func readMotion(r *xrbyte.Reader) (Motion, error) {
	var m Motion
	var err error
	if m.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return m, err
	}
	if m.Flags, err = r.U32(); err != nil {
		return m, err
	}
	if m.BoneOrPart, err = r.U16(); err != nil {
		return m, err
	}
	if m.Speed, err = r.F32(); err != nil {
		return m, err
	}
	if m.Power, err = r.F32(); err != nil {
		return m, err
	}
	if m.Accrue, err = r.F32(); err != nil {
		return m, err
	}
	m.Falloff, err = r.F32()
	return m, err
}

func writeMotion(w *xrbyte.Writer, m Motion) error {
	if err := w.NullTerminatedString(m.Name, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(m.Flags).U16(m.BoneOrPart).F32(m.Speed).F32(m.Power).F32(m.Accrue).F32(m.Falloff)
	return nil
}
