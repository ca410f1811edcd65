package spawn_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/alife"
	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/spawn"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

func sampleFile() *spawn.File {
	h1 := &alife.Header{ClsID: alife.ClassScriptActor, Name: "actor", ScriptName: "actor_script", CustomData: "[logic]\nactive = walker"}
	h2 := &alife.Header{ClsID: alife.ClassMonster, Name: "boar_0", ScriptName: "m_boar", StoryID: 42}
	h3 := &alife.Header{ClsID: alife.ClassWeapon, Name: "wpn_ak74"}
	h4 := &alife.Header{ClsID: alife.ClassItemHelmet, Name: "helm_respirator"}
	h5 := &alife.Header{ClsID: alife.ClassClimable, Name: "climable_ladder"}
	h6 := &alife.Header{ClsID: alife.ClassSmartZone, Name: "zone_smart"}
	h7 := &alife.Header{ClsID: alife.ClassCustomZone, Name: "zone_mine_field"}
	return &spawn.File{
		Header: spawn.Header{Version: 128},
		Objects: []alife.Object{
			&alife.ScriptActor{H: h1},
			&alife.Monster{H: h2, Health: 1, Team: 0},
			&alife.Weapon{
				H: h3, Condition: 0.8, AmmoCurrent: 30, AmmoElapsed: 12, WeaponState: 1,
				AddonFlags: 3, AmmoType: 1, ElapsedGrenades: 0,
			},
			&alife.ItemHelmet{H: h4, Condition: 1},
			&alife.Climable{
				H: h5,
				Shape: []alife.RestrictorShape{
					{Kind: alife.RestrictorSphere, Sphere: xrbyte.Sphere{Center: xrbyte.Vec3{X: 1, Y: 2, Z: 3}, Radius: 4}},
				},
				GameMaterial: "metal_ladder",
			},
			&alife.SmartZone{
				H: h6,
				Shape: []alife.RestrictorShape{
					{Kind: alife.RestrictorBox, Box: xrbyte.Box{
						{X: 0, Y: 0, Z: 0}, {X: 10, Y: 10, Z: 10}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0},
					}},
				},
				RestrictorType: 0,
			},
			&alife.CustomZone{
				H: h7,
				Shape: []alife.RestrictorShape{
					{Kind: alife.RestrictorSphere, Sphere: xrbyte.Sphere{Center: xrbyte.Vec3{X: 5, Y: 5, Z: 5}, Radius: 15}},
				},
				RestrictorType: 1, MaxPower: 0.5, OwnerID: 7, EnabledTime: 100, DisabledTime: 200, StartTimeShift: 0,
			},
		},
		Patrols: []alife.Patrol{
			{
				Name: "patrol_0",
				Points: []alife.PatrolPoint{
					{Name: "wp0", Position: xrbyte.Vec3{X: 1, Y: 2, Z: 3}},
					{Name: "wp1", Position: xrbyte.Vec3{X: 4, Y: 5, Z: 6}},
				},
				Links: []alife.PatrolLink{{From: 0, To: 1, Weight: 1}},
			},
		},
	}
}

func TestSpawnFileRoundTrip(t *testing.T) {
	original := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, spawn.Write(&buf, original))

	src := chunk.NewMemorySource(buf.Bytes())
	decoded, err := spawn.Read(src)
	require.NoError(t, err)

	require.Equal(t, uint16(128), decoded.Header.Version)
	require.Equal(t, uint32(7), decoded.Header.ObjectCount)
	require.Len(t, decoded.Objects, 7)
	require.Equal(t, "actor", decoded.Objects[0].Header().Name)
	require.Equal(t, "[logic]\nactive = walker", decoded.Objects[0].Header().CustomData)
	require.Equal(t, "boar_0", decoded.Objects[1].Header().Name)
	require.Len(t, decoded.Patrols, 1)
	require.Equal(t, "patrol_0", decoded.Patrols[0].Name)
	require.Len(t, decoded.Patrols[0].Points, 2)

	weapon, ok := decoded.Objects[2].(*alife.Weapon)
	require.True(t, ok)
	require.Equal(t, uint8(3), weapon.AddonFlags)
	require.Equal(t, uint8(1), weapon.AmmoType)
	require.Equal(t, uint8(0), weapon.ElapsedGrenades)

	customZone, ok := decoded.Objects[6].(*alife.CustomZone)
	require.True(t, ok)
	require.Equal(t, uint32(7), customZone.OwnerID)
	require.Len(t, customZone.Shape, 1)
}

func TestSpawnFileRejectsOldVersion(t *testing.T) {
	f := sampleFile()
	f.Header.Version = 100

	var buf bytes.Buffer
	require.NoError(t, spawn.Write(&buf, f))

	src := chunk.NewMemorySource(buf.Bytes())
	_, err := spawn.Read(src)
	require.Error(t, err)
	require.True(t, xrerr.Of(err, xrerr.Invalid))
}

func TestSpawnFileRejectsDuplicateStoryID(t *testing.T) {
	f := sampleFile()
	f.Objects[0].Header().StoryID = 42 // collides with the monster's story id

	var buf bytes.Buffer
	require.NoError(t, spawn.Write(&buf, f))

	src := chunk.NewMemorySource(buf.Bytes())
	_, err := spawn.Read(src)
	require.Error(t, err)
	require.True(t, xrerr.Of(err, xrerr.Invalid))
}

func TestSpawnFileLTXRoundTrip(t *testing.T) {
	original := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, spawn.Write(&buf, original))

	src := chunk.NewMemorySource(buf.Bytes())
	decoded, err := spawn.Read(src)
	require.NoError(t, err)

	doc := spawn.ExportLTX(decoded)
	reimported, err := spawn.ImportLTX(doc)
	require.NoError(t, err)

	var roundTripped bytes.Buffer
	require.NoError(t, spawn.Write(&roundTripped, reimported))

	require.Equal(t, buf.Bytes(), roundTripped.Bytes())
}

func TestSpawnFileRejectsPatrolLinkOutOfRange(t *testing.T) {
	f := sampleFile()
	f.Patrols[0].Links[0].To = 7

	var buf bytes.Buffer
	require.NoError(t, spawn.Write(&buf, f))

	src := chunk.NewMemorySource(buf.Bytes())
	_, err := spawn.Read(src)
	require.Error(t, err)
	require.True(t, xrerr.Of(err, xrerr.Invalid))
}
