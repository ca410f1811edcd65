package particles_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/particles"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

func sampleFile() *particles.File {
	return &particles.File{
		Header: particles.Header{Version: 1},
		Effects: []particles.Effect{
			{
				Name: "explosion_fire",
				Actions: []particles.Action{
					{
						Type: particles.ActionGravity,
						Flags: 1,
						Payload: particles.GravityAction{
							Direction: xrbyte.Vec3{X: 0.0, Y: -9.8, Z: 0.0},
						},
					},
					{
						Type:  particles.ActionSpeedLimit,
						Flags: 0,
						Payload: particles.SpeedLimitAction{
							MinSpeed: 0,
							MaxSpeed: 12.5,
						},
					},
				},
			},
			{
				Name: "explosion_smoke",
				Actions: []particles.Action{
					{
						Type:  particles.ActionSink,
						Flags: 0,
						Payload: particles.SinkAction{
							KillInside: 1,
							Position: particles.Domain{
								Kind:   particles.DomainSphere,
								P1:     xrbyte.Vec3{X: 1, Y: 2, Z: 3},
								Radius: 4.5,
							},
						},
					},
				},
			},
		},
		Groups: []particles.Group{
			{
				Name: "explosion",
				Effects: []particles.GroupEffect{
					{Name: "explosion_fire", TimeStart: 0, ActionsIndex: 0, OnPlayChild: "", FlagsInherit: 0},
					{Name: "explosion_smoke", TimeStart: 0.2, ActionsIndex: 1, OnPlayChild: "", FlagsInherit: 0},
				},
			},
		},
	}
}

func TestParticlesFileRoundTrip(t *testing.T) {
	original := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, particles.Write(&buf, original))

	src := chunk.NewMemorySource(buf.Bytes())
	decoded, err := particles.Read(src)
	require.NoError(t, err)

	require.Equal(t, uint16(1), decoded.Header.Version)
	require.Equal(t, uint32(2), decoded.Header.EffectsCount)
	require.Equal(t, uint32(1), decoded.Header.GroupsCount)
	require.Len(t, decoded.Effects, 2)
	require.Equal(t, "explosion_fire", decoded.Effects[0].Name)
	require.Len(t, decoded.Effects[0].Actions, 2)
	require.Len(t, decoded.Groups, 1)
	require.Equal(t, "explosion", decoded.Groups[0].Name)
}

// TestParticleActionGravityRoundTrip exercises the bit-exact gravity
// direction round-trip: {0.0, -9.8, 0.0} must survive write→read unchanged.
func TestParticleActionGravityRoundTrip(t *testing.T) {
	original := particles.Action{
		Type:  particles.ActionGravity,
		Flags: 0,
		Payload: particles.GravityAction{
			Direction: xrbyte.Vec3{X: 0.0, Y: -9.8, Z: 0.0},
		},
	}

	w := xrbyte.NewWriter()
	require.NoError(t, particles.WriteAction(w, original))

	r := xrbyte.NewReader(w.Bytes())
	decoded, err := particles.ReadAction(r)
	require.NoError(t, err)
	require.True(t, r.AtEnd())

	require.Equal(t, particles.ActionGravity, decoded.Type)
	gravity, ok := decoded.Payload.(particles.GravityAction)
	require.True(t, ok)
	require.Equal(t, float32(0.0), gravity.Direction.X)
	require.Equal(t, float32(-9.8), gravity.Direction.Y)
	require.Equal(t, float32(0.0), gravity.Direction.Z)
}

func TestParticlesFileRejectsEffectCountMismatch(t *testing.T) {
	f := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, particles.Write(&buf, f))

	// corrupt the already-written header's effects_count field directly: u16
	// version (2 bytes) is immediately followed by the u32 effects_count.
	raw := buf.Bytes()
	headerPayloadStart := 8 + 2 // chunk header (id,size) + version
	raw[headerPayloadStart] = 99

	src := chunk.NewMemorySource(raw)
	_, err := particles.Read(src)
	require.Error(t, err)
	require.True(t, xrerr.Of(err, xrerr.Invalid))
}

func TestParticlesFileLTXRoundTrip(t *testing.T) {
	original := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, particles.Write(&buf, original))

	src := chunk.NewMemorySource(buf.Bytes())
	decoded, err := particles.Read(src)
	require.NoError(t, err)

	doc := particles.ExportLTX(decoded)
	reimported, err := particles.ImportLTX(doc)
	require.NoError(t, err)

	var roundTripped bytes.Buffer
	require.NoError(t, particles.Write(&roundTripped, reimported))

	require.Equal(t, buf.Bytes(), roundTripped.Bytes())
}

func TestReadActionRejectsUnknownType(t *testing.T) {
	w := xrbyte.NewWriter()
	w.U32(9999).U32(0)
	r := xrbyte.NewReader(w.Bytes())

	_, err := particles.ReadAction(r)
	require.Error(t, err)
	require.True(t, xrerr.Of(err, xrerr.NotImplemented))
}
