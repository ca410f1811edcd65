package particles

import (
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// Effect is a named, ordered sequence of actions.
type Effect struct {
	Name    string
	Actions []Action
}

// ReadEffect reads one effect record: a name, an action count, then that
// many action records.
func ReadEffect(r *xrbyte.Reader) (Effect, error) {
	var e Effect
	var err error
	if e.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return e, err
	}
	count, err := r.U32()
	if err != nil {
		return e, err
	}
	for i := uint32(0); i < count; i++ {
		a, err := ReadAction(r)
		if err != nil {
			return e, err
		}
		e.Actions = append(e.Actions, a)
	}
	if uint32(len(e.Actions)) != count {
		return e, xrerr.New(xrerr.Invalid, "effect %q: action count mismatch: declared=%d observed=%d",
			e.Name, count, len(e.Actions))
	}
	return e, nil
}

// WriteEffect is the symmetric serializer for ReadEffect.
func WriteEffect(w *xrbyte.Writer, e Effect) error {
	if err := w.NullTerminatedString(e.Name, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(uint32(len(e.Actions)))
	for _, a := range e.Actions {
		if err := WriteAction(w, a); err != nil {
			return err
		}
	}
	return nil
}

// GroupEffect is one ordered reference to an effect within a group, with
// per-group overrides of the effect's own timing.
type GroupEffect struct {
	Name         string
	TimeStart    float32
	ActionsIndex uint32
	OnPlayChild  string
	FlagsInherit uint32
}

func readGroupEffect(r *xrbyte.Reader) (GroupEffect, error) {
	var g GroupEffect
	var err error
	if g.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return g, err
	}
	if g.TimeStart, err = r.F32(); err != nil {
		return g, err
	}
	if g.ActionsIndex, err = r.U32(); err != nil {
		return g, err
	}
	if g.OnPlayChild, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return g, err
	}
	g.FlagsInherit, err = r.U32()
	return g, err
}

func writeGroupEffect(w *xrbyte.Writer, g GroupEffect) error {
	if err := w.NullTerminatedString(g.Name, xrbyte.CP1251); err != nil {
		return err
	}
	w.F32(g.TimeStart)
	w.U32(g.ActionsIndex)
	if err := w.NullTerminatedString(g.OnPlayChild, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(g.FlagsInherit)
	return nil
}

// Group is a named, ordered list of effect references with overrides.
type Group struct {
	Name    string
	Effects []GroupEffect
}

// ReadGroup reads one group record: a name, an effect count, then that many
// effect-reference records.
func ReadGroup(r *xrbyte.Reader) (Group, error) {
	var g Group
	var err error
	if g.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return g, err
	}
	count, err := r.U32()
	if err != nil {
		return g, err
	}
	for i := uint32(0); i < count; i++ {
		e, err := readGroupEffect(r)
		if err != nil {
			return g, err
		}
		g.Effects = append(g.Effects, e)
	}
	if uint32(len(g.Effects)) != count {
		return g, xrerr.New(xrerr.Invalid, "group %q: effect count mismatch: declared=%d observed=%d",
			g.Name, count, len(g.Effects))
	}
	return g, nil
}

// WriteGroup is the symmetric serializer for ReadGroup.
func WriteGroup(w *xrbyte.Writer, g Group) error {
	if err := w.NullTerminatedString(g.Name, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(uint32(len(g.Effects)))
	for _, e := range g.Effects {
		if err := writeGroupEffect(w, e); err != nil {
			return err
		}
	}
	return nil
}
