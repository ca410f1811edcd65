package omf_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/omf"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

func sampleFile() *omf.File {
	return &omf.File{
		Parameters: omf.Parameters{
			Version: 4,
			Parts: []omf.Part{
				{
					Name: "torso",
					Bones: []omf.BoneRef{
						{Name: "bip01_spine", Index: 0},
						{Name: "bip01_spine1", Index: 1},
					},
				},
			},
			Motions: []omf.MotionDefinition{
				{Name: "idle", BoneOrPart: 0, Speed: 1, Power: 1, Accrue: 0.5, Falloff: 0.5, Flags: 0},
				{Name: "fire", BoneOrPart: 0, Speed: 2, Power: 1, Accrue: 0.1, Falloff: 0.1, Flags: 1},
			},
		},
		Motions: []omf.Motion{
			{Name: "idle", Flags: 0, BoneOrPart: 0, Speed: 1, Power: 1, Accrue: 0.5, Falloff: 0.5},
			{Name: "fire", Flags: 1, BoneOrPart: 0, Speed: 2, Power: 1, Accrue: 0.1, Falloff: 0.1},
		},
	}
}

func TestOmfFileRoundTrip(t *testing.T) {
	original := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, omf.Write(&buf, original))

	src := chunk.NewMemorySource(buf.Bytes())
	decoded, err := omf.Read(src)
	require.NoError(t, err)

	require.Equal(t, uint16(4), decoded.Parameters.Version)
	require.Len(t, decoded.Parameters.Parts, 1)
	require.Equal(t, "torso", decoded.Parameters.Parts[0].Name)
	require.Len(t, decoded.Parameters.Motions, 2)
	require.Len(t, decoded.Motions, 2)
	require.Equal(t, "idle", decoded.Motions[0].Name)
	require.Equal(t, "fire", decoded.Motions[1].Name)
}

func TestOmfFileRejectsUnsupportedVersion(t *testing.T) {
	f := sampleFile()
	f.Parameters.Version = 99

	var buf bytes.Buffer
	require.NoError(t, omf.Write(&buf, f))

	src := chunk.NewMemorySource(buf.Bytes())
	_, err := omf.Read(src)
	require.Error(t, err)
	require.True(t, xrerr.Of(err, xrerr.NotImplemented))
}

func TestOmfFileRejectsMotionCountMismatch(t *testing.T) {
	f := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, omf.Write(&buf, f))

	// corrupt the motions chunk's first child (the u32 count) directly:
	// root = (id,size,payload)+; parameters chunk comes first, then motions;
	// the motions payload's first 8 bytes are the count-child's own header.
	raw := buf.Bytes()
	paramsSize := binary.LittleEndian.Uint32(raw[4:8])
	motionsPayloadStart := 8 + paramsSize + 8
	countFieldOffset := motionsPayloadStart + 8
	raw[countFieldOffset] = 99

	src := chunk.NewMemorySource(raw)
	_, err := omf.Read(src)
	require.Error(t, err)
	require.True(t, xrerr.Of(err, xrerr.Invalid))
}
