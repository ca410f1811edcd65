package xrbyte

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// Encoding selects one of the two legacy Windows code pages the engine's
// binary strings are written in. Windows-1251 (Cyrillic) is the
// default for most game data; Windows-1250 (Central European) shows up in
// Western-European translation packs.
type Encoding int

const (
	CP1251 Encoding = iota
	CP1250
)

func (e Encoding) charmap() *charmap.Charmap {
	if e == CP1250 {
		return charmap.Windows1250
	}
	return charmap.Windows1251
}

// Decode converts bytes in the given legacy encoding to a UTF-8 string.
func (e Encoding) Decode(b []byte) (string, error) {
	s, err := e.charmap().NewDecoder().Bytes(b)
	if err != nil {
		return "", xrerr.Wrap(xrerr.Parsing, err, "decoding %v string", e)
	}
	return string(s), nil
}

// Encode converts a UTF-8 string to bytes in the given legacy encoding.
func (e Encoding) Encode(s string) ([]byte, error) {
	b, err := e.charmap().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, xrerr.Wrap(xrerr.Parsing, err, "encoding %v string", e)
	}
	return b, nil
}

func (e Encoding) String() string {
	if e == CP1250 {
		return "windows-1250"
	}
	return "windows-1251"
}
