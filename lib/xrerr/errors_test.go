package xrerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := xrerr.New(xrerr.Invalid, "unsupported version %d", 119)
	assert.EqualError(t, err, "Invalid: unsupported version 119")

	err = err.WithLine(3, 7)
	assert.EqualError(t, err, "Invalid: unsupported version 119 (at 3:7)")
}

func TestErrorWrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk gone")
	err := xrerr.Wrap(xrerr.Io, cause, "reading header")
	assert.EqualError(t, err, "Io: reading header: disk gone")
	assert.ErrorIs(t, err, cause)
}

func TestErrorIsKind(t *testing.T) {
	t.Parallel()

	err := xrerr.New(xrerr.NotFoundChunk, "chunk 0x1 missing")
	assert.True(t, xrerr.Of(err, xrerr.NotFoundChunk))
	assert.False(t, xrerr.Of(err, xrerr.Invalid))
}

func TestChunkPathAccumulates(t *testing.T) {
	t.Parallel()

	err := xrerr.New(xrerr.NotEnded, "2 bytes unread").WithChunkPath("object[3]")
	err = err.WithChunkPath("alife")
	assert.Equal(t, "alife/object[3]", err.Pos.ChunkPath)
}
