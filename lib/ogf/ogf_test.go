package ogf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/ogf"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

func sampleFile() *ogf.File {
	return &ogf.File{
		Header: ogf.Header{
			Version:   4,
			ModelType: 1,
			ShaderID:  7,
			BoundingBox: ogf.BoundingBox{
				Min: xrbyte.Vec3{X: -1, Y: -1, Z: -1},
				Max: xrbyte.Vec3{X: 1, Y: 1, Z: 1},
			},
			BoundingSphere: xrbyte.Sphere{Center: xrbyte.Vec3{}, Radius: 1.5},
		},
		Description: &ogf.Description{
			SourceFile: "models/weapon/wpn_ak74.object",
			Convertor:  "ogf_export",
			BuiltAt:    1000,
			Creator:    "artist",
			CreatedAt:  1001,
			Editor:     "artist",
			EditedAt:   1002,
		},
		Texture: &ogf.Texture{
			TextureName: "weapons\\wpn_ak74",
			ShaderName:  "models\\model",
		},
		Bones: []ogf.Bone{
			{
				Name:      "bip01_spine",
				Parent:    "",
				Rotation:  [3]xrbyte.Vec3{{X: 1}, {Y: 1}, {Z: 1}},
				Translate: xrbyte.Vec3{X: 0, Y: 1, Z: 0},
				HalfSize:  xrbyte.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
			},
		},
		Kinematics: &ogf.Kinematics{
			SourceChunkID: 24,
			MotionRefs:    []string{"wpn_ak74_idle", "wpn_ak74_fire"},
		},
	}
}

func TestOgfFileRoundTrip(t *testing.T) {
	original := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, ogf.Write(&buf, original))

	src := chunk.NewMemorySource(buf.Bytes())
	decoded, err := ogf.Read(src)
	require.NoError(t, err)

	require.Equal(t, uint8(4), decoded.Header.Version)
	require.NotNil(t, decoded.Description)
	require.Equal(t, "models/weapon/wpn_ak74.object", decoded.Description.SourceFile)
	require.NotNil(t, decoded.Texture)
	require.Equal(t, "weapons\\wpn_ak74", decoded.Texture.TextureName)
	require.Len(t, decoded.Bones, 1)
	require.Equal(t, "bip01_spine", decoded.Bones[0].Name)
	require.NotNil(t, decoded.Kinematics)
	require.Equal(t, uint32(24), decoded.Kinematics.SourceChunkID)
	require.Equal(t, []string{"wpn_ak74_idle", "wpn_ak74_fire"}, decoded.Kinematics.MotionRefs)
}

func TestOgfFileRejectsUnsupportedVersion(t *testing.T) {
	f := sampleFile()
	f.Header.Version = 3

	var buf bytes.Buffer
	require.NoError(t, ogf.Write(&buf, f))

	src := chunk.NewMemorySource(buf.Bytes())
	_, err := ogf.Read(src)
	require.Error(t, err)
	require.True(t, xrerr.Of(err, xrerr.NotImplemented))
}

func TestOgfFileOldKinematicsChunkRoundTrip(t *testing.T) {
	f := sampleFile()
	f.Kinematics = &ogf.Kinematics{SourceChunkID: 19, MotionRefs: []string{"wpn_ak74_motions"}}

	var buf bytes.Buffer
	require.NoError(t, ogf.Write(&buf, f))

	src := chunk.NewMemorySource(buf.Bytes())
	decoded, err := ogf.Read(src)
	require.NoError(t, err)
	require.Equal(t, uint32(19), decoded.Kinematics.SourceChunkID)
	require.Equal(t, []string{"wpn_ak74_motions"}, decoded.Kinematics.MotionRefs)
}

func TestOgfFileNestedChildrenRoundTrip(t *testing.T) {
	parent := sampleFile()
	parent.Description = nil
	parent.Texture = nil
	parent.Kinematics = nil
	child := sampleFile()
	child.Description = nil
	child.Texture = nil
	child.Kinematics = nil
	child.Bones = nil
	parent.Children = []ogf.File{*child}

	var buf bytes.Buffer
	require.NoError(t, ogf.Write(&buf, parent))

	src := chunk.NewMemorySource(buf.Bytes())
	decoded, err := ogf.Read(src)
	require.NoError(t, err)
	require.Len(t, decoded.Children, 1)
	require.Equal(t, uint8(4), decoded.Children[0].Header.Version)
}
