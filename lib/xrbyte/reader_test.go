package xrbyte_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/xrbyte"
)

func TestScalarRoundTrip(t *testing.T) {
	t.Parallel()

	w := xrbyte.NewWriter()
	w.U8(0xAB).U16(0x1234).U24(0x0A0B0C).U32(0xDEADBEEF).U64(0x0102030405060708)
	w.F32(-9.8)
	w.Vec3(xrbyte.Vec3{X: 1, Y: 2, Z: 3})
	w.Sphere(xrbyte.Sphere{Center: xrbyte.Vec3{X: 1}, Radius: 5})

	r := xrbyte.NewReader(w.Bytes())

	u8, err := r.U8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), u8)

	u16, err := r.U16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u24, err := r.U24()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0A0B0C), u24)

	u32, err := r.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.U64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	f32, err := r.F32()
	require.NoError(t, err)
	assert.Equal(t, float32(-9.8), f32)

	v3, err := r.Vec3()
	require.NoError(t, err)
	assert.Equal(t, xrbyte.Vec3{X: 1, Y: 2, Z: 3}, v3)

	sp, err := r.Sphere()
	require.NoError(t, err)
	assert.Equal(t, float32(5), sp.Radius)

	assert.True(t, r.AtEnd())
}

func TestNullTerminatedStringRoundTrip(t *testing.T) {
	t.Parallel()

	w := xrbyte.NewWriter()
	require.NoError(t, w.NullTerminatedString("actor", xrbyte.CP1251))
	require.NoError(t, w.NullTerminatedString("привет", xrbyte.CP1251))

	r := xrbyte.NewReader(w.Bytes())
	s1, err := r.NullTerminatedString(xrbyte.CP1251)
	require.NoError(t, err)
	assert.Equal(t, "actor", s1)

	s2, err := r.NullTerminatedString(xrbyte.CP1251)
	require.NoError(t, err)
	assert.Equal(t, "привет", s2)
}

func TestNullTerminatedStringMissingTerminator(t *testing.T) {
	t.Parallel()

	r := xrbyte.NewReader([]byte{'a', 'b', 'c'})
	_, err := r.NullTerminatedString(xrbyte.CP1251)
	require.Error(t, err)
}

func TestSizedStringRoundTrip(t *testing.T) {
	t.Parallel()

	w := xrbyte.NewWriter()
	require.NoError(t, w.SizedString("esc_bloodsucker_m_stalker_0000", xrbyte.CP1251))

	r := xrbyte.NewReader(w.Bytes())
	s, err := r.SizedString(xrbyte.CP1251)
	require.NoError(t, err)
	assert.Equal(t, "esc_bloodsucker_m_stalker_0000", s)
}
