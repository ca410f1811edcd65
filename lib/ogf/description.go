package ogf

import "github.com/xray-forge/xrf-go/lib/xrbyte"

// Description carries the authoring metadata a modelling tool stamped
// into the file: the source file it was converted from, the tool that did
// the conversion, and who last touched it and when.
type Description struct {
	SourceFile string
	Convertor  string
	BuiltAt    uint32
	Creator    string
	CreatedAt  uint32
	Editor     string
	EditedAt   uint32
}

func readDescription(r *xrbyte.Reader) (Description, error) {
	var d Description
	var err error
	if d.SourceFile, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return d, err
	}
	if d.Convertor, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return d, err
	}
	if d.BuiltAt, err = r.U32(); err != nil {
		return d, err
	}
	if d.Creator, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return d, err
	}
	if d.CreatedAt, err = r.U32(); err != nil {
		return d, err
	}
	if d.Editor, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return d, err
	}
	d.EditedAt, err = r.U32()
	return d, err
}

func writeDescription(w *xrbyte.Writer, d Description) error {
	if err := w.NullTerminatedString(d.SourceFile, xrbyte.CP1251); err != nil {
		return err
	}
	if err := w.NullTerminatedString(d.Convertor, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(d.BuiltAt)
	if err := w.NullTerminatedString(d.Creator, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(d.CreatedAt)
	if err := w.NullTerminatedString(d.Editor, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(d.EditedAt)
	return nil
}
