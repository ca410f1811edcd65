// Package xrerr implements the flat, non-extensible error taxonomy shared by
// every codec in this module. There is exactly one error type; callers
// switch on Kind rather than on Go type.
package xrerr

import (
	"errors"
	"fmt"
)

// Kind is one of the flat error kinds every codec in this module reports.
// It is intentionally not extensible: callers switch on Kind rather than
// chasing down a zoo of bespoke error types.
type Kind int

const (
	Io Kind = iota
	Parsing
	Invalid
	NotFoundChunk
	NotEnded
	NoNullTerminator
	NotImplemented
	Assertion
	TextureProcessing
	Serde
	UnknownLanguage
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "Io"
	case Parsing:
		return "Parsing"
	case Invalid:
		return "Invalid"
	case NotFoundChunk:
		return "NotFoundChunk"
	case NotEnded:
		return "NotEnded"
	case NoNullTerminator:
		return "NoNullTerminator"
	case NotImplemented:
		return "NotImplemented"
	case Assertion:
		return "Assertion"
	case TextureProcessing:
		return "TextureProcessing"
	case Serde:
		return "Serde"
	case UnknownLanguage:
		return "UnknownLanguage"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Position is optional context attached to an Error: a line/column for LTX
// text, or a dotted chunk-id path for binary formats.
type Position struct {
	Line, Col int
	ChunkPath string
}

func (p Position) String() string {
	switch {
	case p.ChunkPath != "":
		return p.ChunkPath
	case p.Line > 0:
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	default:
		return ""
	}
}

func (p Position) isZero() bool {
	return p.Line == 0 && p.ChunkPath == ""
}

// Error is the single result-carrying error type used throughout this
// module. It wraps an optional underlying error and carries a Kind plus an
// optional Position for context.
type Error struct {
	Kind    Kind
	Message string
	Pos     Position
	Err     error
}

func (e *Error) Error() string {
	pos := e.Pos.String()
	switch {
	case pos != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s (at %s): %v", e.Kind, e.Message, pos, e.Err)
	case pos != "":
		return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Message, pos)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, xrerr.New(xrerr.NotFoundChunk, "")) work by
// comparing Kind against that sentinel: any *Error of the same Kind matches.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) WithPos(pos Position) *Error {
	e2 := *e
	e2.Pos = pos
	return &e2
}

func (e *Error) WithLine(line, col int) *Error {
	return e.WithPos(Position{Line: line, Col: col})
}

func (e *Error) WithChunkPath(path string) *Error {
	if e.Pos.isZero() {
		return e.WithPos(Position{ChunkPath: path})
	}
	e2 := *e
	e2.Pos.ChunkPath = path + "/" + e2.Pos.ChunkPath
	return &e2
}

// Of reports whether err is an *Error of the given Kind.
func Of(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
