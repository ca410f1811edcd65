package ogf

import "github.com/xray-forge/xrf-go/lib/xrbyte"

// Texture names the diffuse texture and shader a render visual uses.
type Texture struct {
	TextureName string
	ShaderName  string
}

func readTexture(r *xrbyte.Reader) (Texture, error) {
	var t Texture
	var err error
	if t.TextureName, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return t, err
	}
	t.ShaderName, err = r.NullTerminatedString(xrbyte.CP1251)
	return t, err
}

func writeTexture(w *xrbyte.Writer, t Texture) error {
	if err := w.NullTerminatedString(t.TextureName, xrbyte.CP1251); err != nil {
		return err
	}
	return w.NullTerminatedString(t.ShaderName, xrbyte.CP1251)
}
