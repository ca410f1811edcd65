package ltx

import (
	"os"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// FileLoader resolves #include paths against the local filesystem.
type FileLoader struct{}

func (FileLoader) Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MapLoader resolves #include paths from an in-memory fixture set, keyed by
// the same canonicalized path Parse resolves against. Tests build LTX
// fixtures with includes without touching the filesystem.
type MapLoader map[string]string

func (m MapLoader) Load(path string) (string, error) {
	content, ok := m[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return content, nil
}

// ParseFile loads and parses path and every file it transitively includes,
// using the local filesystem.
func ParseFile(path string, opts ParseOptions) (*Document, error) {
	content, err := FileLoader{}.Load(path)
	if err != nil {
		return nil, xrerr.Wrap(xrerr.Io, err, "opening %s", path)
	}
	return Parse(path, content, FileLoader{}, opts)
}
