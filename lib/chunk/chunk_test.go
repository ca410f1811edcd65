package chunk_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

func writeFile(path string, buf []byte) error {
	return os.WriteFile(path, buf, 0o644)
}

func buildNested(t *testing.T) []byte {
	t.Helper()

	leaf1 := chunk.NewWriter()
	leaf1.Raw([]byte("hello"))

	leaf2 := chunk.NewWriter()
	leaf2.Raw([]byte("world!!!"))

	inner := chunk.NewWriter()
	inner.Child(0x01, leaf1)
	inner.Child(0x02, leaf2)

	var out bytes.Buffer
	require.NoError(t, inner.FlushChunk(&out, 0x1000))
	return out.Bytes()
}

func TestRoundTripNesting(t *testing.T) {
	t.Parallel()

	buf := buildNested(t)
	r := chunk.Open(chunk.NewMemorySource(buf))

	outer, err := r.Require(0x1000)
	require.NoError(t, err)

	c1, err := outer.Require(0x01)
	require.NoError(t, err)
	b1, err := c1.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b1))

	c2, err := outer.Require(0x02)
	require.NoError(t, err)
	b2, err := c2.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "world!!!", string(b2))

	require.NoError(t, outer.AssertEnded("outer"))
	require.NoError(t, r.AssertEnded("root"))
}

func TestChildrenIterationOrder(t *testing.T) {
	t.Parallel()

	buf := buildNested(t)
	r := chunk.Open(chunk.NewMemorySource(buf))
	outer, err := r.Require(0x1000)
	require.NoError(t, err)

	var ids []uint32
	it := outer.Children()
	for it.Next() {
		ids = append(ids, it.Reader().ID)
		_, err := it.Reader().Bytes()
		require.NoError(t, err)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []uint32{0x01, 0x02}, ids)
}

func TestRequireMissingChunk(t *testing.T) {
	t.Parallel()

	buf := buildNested(t)
	r := chunk.Open(chunk.NewMemorySource(buf))
	outer, err := r.Require(0x1000)
	require.NoError(t, err)

	_, err = outer.Require(0x99)
	require.Error(t, err)
	assert.True(t, xrerr.Of(err, xrerr.NotFoundChunk))
}

func TestAssertEndedRejectsUnreadBytes(t *testing.T) {
	t.Parallel()

	buf := buildNested(t)
	r := chunk.Open(chunk.NewMemorySource(buf))
	outer, err := r.Require(0x1000)
	require.NoError(t, err)

	// Read only the first child, leave the second unread.
	_, err = outer.Require(0x01)
	require.NoError(t, err)

	err = outer.AssertEnded("outer")
	require.Error(t, err)
	assert.True(t, xrerr.Of(err, xrerr.NotEnded))
}

func TestCompressedChunkRejected(t *testing.T) {
	t.Parallel()

	leaf := chunk.NewWriter()
	leaf.Raw([]byte("zzz"))

	var out bytes.Buffer
	require.NoError(t, leaf.FlushChunk(&out, 0x8000_0042))

	r := chunk.Open(chunk.NewMemorySource(out.Bytes()))
	it := r.Children()
	require.False(t, it.Next())
	require.Error(t, it.Err())
	assert.True(t, xrerr.Of(it.Err(), xrerr.NotImplemented))
}

func TestOverrunningChildRejected(t *testing.T) {
	t.Parallel()

	// Hand-craft a header claiming a size larger than the remaining buffer.
	buf := []byte{
		0x01, 0x00, 0x00, 0x00, // id
		0xFF, 0x00, 0x00, 0x00, // size = 255, way more than available
		'a', 'b', 'c',
	}
	r := chunk.Open(chunk.NewMemorySource(buf))
	it := r.Children()
	require.False(t, it.Next())
	require.Error(t, it.Err())
	assert.True(t, xrerr.Of(it.Err(), xrerr.Invalid))
}

func TestFindDoesNotMutateParentCursor(t *testing.T) {
	t.Parallel()

	buf := buildNested(t)
	r := chunk.Open(chunk.NewMemorySource(buf))
	outer, err := r.Require(0x1000)
	require.NoError(t, err)

	posBefore := outer.Position()
	_, ok, err := outer.Find(0x02)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, posBefore, outer.Position())
}

func TestOpenFileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := dir + "/test.chunk"

	buf := buildNested(t)
	require.NoError(t, writeFile(path, buf))

	src, closeFn, err := chunk.OpenFile(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	r := chunk.Open(src)
	outer, err := r.Require(0x1000)
	require.NoError(t, err)
	c1, err := outer.Require(0x01)
	require.NoError(t, err)
	b1, err := c1.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b1))
}
