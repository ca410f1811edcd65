package ogf

import "github.com/xray-forge/xrf-go/lib/xrbyte"

// Kinematics names the motion bank entries (OMF files) this model's
// animations are sourced from. Older files store exactly one reference
// under chunk 19 with no count prefix; newer files store a count-prefixed
// list under chunk 24. SourceChunkID records which shape was read so
// Write can reproduce it exactly.
type Kinematics struct {
	SourceChunkID uint32
	MotionRefs    []string
}

func readKinematics(r *xrbyte.Reader, chunkID uint32) (Kinematics, error) {
	k := Kinematics{SourceChunkID: chunkID}

	if chunkID == chunkKinematics {
		count, err := r.U32()
		if err != nil {
			return k, err
		}
		for i := uint32(0); i < count; i++ {
			ref, err := r.NullTerminatedString(xrbyte.CP1251)
			if err != nil {
				return k, err
			}
			k.MotionRefs = append(k.MotionRefs, ref)
		}
		return k, nil
	}

	ref, err := r.NullTerminatedString(xrbyte.CP1251)
	if err != nil {
		return k, err
	}
	k.MotionRefs = []string{ref}
	return k, nil
}

func writeKinematics(w *xrbyte.Writer, k Kinematics) error {
	if k.SourceChunkID == chunkKinematics {
		w.U32(uint32(len(k.MotionRefs)))
		for _, ref := range k.MotionRefs {
			if err := w.NullTerminatedString(ref, xrbyte.CP1251); err != nil {
				return err
			}
		}
		return nil
	}
	return w.NullTerminatedString(k.MotionRefs[0], xrbyte.CP1251)
}
