package spawn

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/xray-forge/xrf-go/lib/alife"
	"github.com/xray-forge/xrf-go/lib/ltx"
	"github.com/xray-forge/xrf-go/lib/util"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// ExportLTX renders a decoded SpawnFile as an LTX document: one section per
// object, named by its position so re-import preserves order. Binary →
// ExportLTX → ImportLTX → binary must reproduce the original bytes.
func ExportLTX(f *File) *ltx.Document {
	doc := ltx.NewDocument()

	meta := doc.Section("spawn")
	meta.Set("version", strconv.Itoa(int(f.Header.Version)))
	meta.Set("level_count", strconv.Itoa(int(f.Header.LevelCount)))
	meta.Set("guid", hex.EncodeToString(f.Header.GUID[:]))
	meta.Set("graph_guid", hex.EncodeToString(f.Header.GraphGUID[:]))

	for i, obj := range f.Objects {
		sec := doc.Section(objectSectionName(i))
		exportHeader(sec, obj.Header())
		exportPayload(sec, obj)
	}

	for i, p := range f.Patrols {
		sec := doc.Section(fmt.Sprintf("patrol_%04d", i))
		sec.Set("name", p.Name)
		sec.Set("points", strconv.Itoa(len(p.Points)))
		for j, pt := range p.Points {
			prefix := fmt.Sprintf("point_%d_", j)
			sec.Set(prefix+"name", pt.Name)
			sec.Set(prefix+"position", vec3String(pt.Position))
			sec.Set(prefix+"flags", strconv.FormatUint(uint64(pt.Flags), 10))
			sec.Set(prefix+"level_vertex_id", strconv.FormatUint(uint64(pt.LevelVertexID), 10))
			sec.Set(prefix+"game_vertex_id", strconv.FormatUint(uint64(pt.GameVertexID), 10))
		}
		sec.Set("links", strconv.Itoa(len(p.Links)))
		for j, l := range p.Links {
			prefix := fmt.Sprintf("link_%d_", j)
			sec.Set(prefix+"from", strconv.FormatUint(uint64(l.From), 10))
			sec.Set(prefix+"to", strconv.FormatUint(uint64(l.To), 10))
			sec.Set(prefix+"weight", strconv.FormatFloat(float64(l.Weight), 'g', -1, 32))
		}
	}

	if f.Graph != nil {
		exportGraph(doc, f.Graph)
	}

	if len(f.ArtefactSpawnPoints) > 0 {
		sec := doc.Section("artefact_spawn")
		sec.Set("points", strconv.Itoa(len(f.ArtefactSpawnPoints)))
		for i, p := range f.ArtefactSpawnPoints {
			prefix := fmt.Sprintf("point_%d_", i)
			sec.Set(prefix+"position", vec3String(p.Position))
			sec.Set(prefix+"level_vertex_id", strconv.FormatUint(uint64(p.LevelVertexID), 10))
			sec.Set(prefix+"distance", strconv.FormatFloat(float64(p.Distance), 'g', -1, 32))
		}
	}

	return doc
}

func objectSectionName(i int) string { return fmt.Sprintf("object_%04d", i) }

func exportGraph(doc *ltx.Document, g *alife.Graph) {
	sec := doc.Section("graph")
	sec.Set("levels", strconv.Itoa(len(g.Levels)))
	for i, lvl := range g.Levels {
		prefix := fmt.Sprintf("level_%d_", i)
		sec.Set(prefix+"id", strconv.FormatUint(uint64(lvl.ID), 10))
		sec.Set(prefix+"name", lvl.Name)
		sec.Set(prefix+"offset", vec3String(lvl.Offset))
		sec.Set(prefix+"guid", hex.EncodeToString(lvl.GUID[:]))
	}
	sec.Set("vertices", strconv.Itoa(len(g.Vertices)))
	for i, v := range g.Vertices {
		prefix := fmt.Sprintf("vertex_%d_", i)
		sec.Set(prefix+"level_point", vec3String(v.LevelPoint))
		sec.Set(prefix+"game_point", vec3String(v.GamePoint))
		sec.Set(prefix+"level_id", strconv.FormatUint(uint64(v.LevelID), 10))
		sec.Set(prefix+"vertex_id", strconv.FormatUint(uint64(v.VertexID), 10))
		edges := make([]string, len(v.NeighborEdge))
		for j, e := range v.NeighborEdge {
			edges[j] = strconv.FormatUint(uint64(e), 10)
		}
		sec.Set(prefix+"neighbors", strings.Join(edges, ","))
	}
}

func exportHeader(sec *ltx.Section, h *alife.Header) {
	sec.Set("class", h.ClsID.String())
	sec.Set("name", h.Name)
	sec.Set("script_name", h.ScriptName)
	sec.Set("spawn_flags", fmt.Sprintf("0x%x", h.SpawnFlags))
	sec.Set("update_section", h.UpdateSection)
	sec.Set("spawn_section", h.SpawnSection)
	sec.Set("client_data", hex.EncodeToString(h.ClientData))
	sec.Set("game_vertex_id", strconv.FormatUint(uint64(h.GameVertexID), 10))
	sec.Set("distance", strconv.FormatFloat(float64(h.Distance), 'g', -1, 32))
	sec.Set("direct_control", strconv.FormatUint(uint64(h.DirectControl), 10))
	sec.Set("level_vertex_id", strconv.FormatUint(uint64(h.LevelVertexID), 10))
	sec.Set("flags", fmt.Sprintf("0x%x", h.Flags))
	sec.Set("custom_data", h.CustomData)
	sec.Set("story_id", strconv.FormatUint(uint64(h.StoryID), 10))
	sec.Set("spawn_story_id", strconv.FormatUint(uint64(h.SpawnStoryID), 10))
}

func exportPayload(sec *ltx.Section, obj alife.Object) {
	switch o := obj.(type) {
	case *alife.ScriptActor:
		// no extra payload fields
	case *alife.Item:
		sec.Set("condition", strconv.FormatFloat(float64(o.Condition), 'g', -1, 32))
	case *alife.Weapon:
		sec.Set("condition", strconv.FormatFloat(float64(o.Condition), 'g', -1, 32))
		sec.Set("ammo_current", strconv.FormatUint(uint64(o.AmmoCurrent), 10))
		sec.Set("ammo_elapsed", strconv.FormatUint(uint64(o.AmmoElapsed), 10))
		sec.Set("weapon_state", strconv.FormatUint(uint64(o.WeaponState), 10))
		sec.Set("addon_flags", strconv.FormatUint(uint64(o.AddonFlags), 10))
		sec.Set("ammo_type", strconv.FormatUint(uint64(o.AmmoType), 10))
		sec.Set("elapsed_grenades", strconv.FormatUint(uint64(o.ElapsedGrenades), 10))
	case *alife.Monster:
		sec.Set("health", strconv.FormatFloat(float64(o.Health), 'g', -1, 32))
		sec.Set("team", strconv.FormatUint(uint64(o.Team), 10))
	case *alife.SmartCover:
		sec.Set("description", o.Description)
	case *alife.ItemHelmet:
		sec.Set("condition", strconv.FormatFloat(float64(o.Condition), 'g', -1, 32))
	case *alife.Climable:
		exportShapeList(sec, o.Shape)
		sec.Set("game_material", o.GameMaterial)
	case *alife.SmartZone:
		exportShapeList(sec, o.Shape)
		sec.Set("restrictor_type", strconv.FormatUint(uint64(o.RestrictorType), 10))
	case *alife.CustomZone:
		exportShapeList(sec, o.Shape)
		sec.Set("restrictor_type", strconv.FormatUint(uint64(o.RestrictorType), 10))
		sec.Set("max_power", strconv.FormatFloat(float64(o.MaxPower), 'g', -1, 32))
		sec.Set("owner_id", strconv.FormatUint(uint64(o.OwnerID), 10))
		sec.Set("enabled_time", strconv.FormatUint(uint64(o.EnabledTime), 10))
		sec.Set("disabled_time", strconv.FormatUint(uint64(o.DisabledTime), 10))
		sec.Set("start_time_shift", strconv.FormatUint(uint64(o.StartTimeShift), 10))
	}
}

// exportShapeList writes a restrictor shape list as one "shapes" count plus
// one "shape_<i>_*" record per entry, the same field-group convention used
// elsewhere in this file for variable-length record lists.
func exportShapeList(sec *ltx.Section, shapes []alife.RestrictorShape) {
	sec.Set("shapes", strconv.Itoa(len(shapes)))
	for i, s := range shapes {
		prefix := fmt.Sprintf("shape_%d_", i)
		sec.Set(prefix+"kind", strconv.FormatUint(uint64(s.Kind), 10))
		switch s.Kind {
		case alife.RestrictorSphere:
			sec.Set(prefix+"center", vec3String(s.Sphere.Center))
			sec.Set(prefix+"radius", strconv.FormatFloat(float64(s.Sphere.Radius), 'g', -1, 32))
		case alife.RestrictorBox:
			sec.Set(prefix+"row0", vec3String(s.Box[0]))
			sec.Set(prefix+"row1", vec3String(s.Box[1]))
			sec.Set(prefix+"row2", vec3String(s.Box[2]))
			sec.Set(prefix+"row3", vec3String(s.Box[3]))
		}
	}
}

func importShapeList(sec *ltx.Section) ([]alife.RestrictorShape, error) {
	count, err := importUint(sec, "shapes")
	if err != nil {
		return nil, err
	}
	shapes := make([]alife.RestrictorShape, count)
	for i := range shapes {
		prefix := fmt.Sprintf("shape_%d_", i)
		kind, err := importUint(sec, prefix+"kind")
		if err != nil {
			return nil, err
		}
		shapes[i].Kind = alife.RestrictorShapeKind(kind)
		switch shapes[i].Kind {
		case alife.RestrictorSphere:
			centerStr, _ := sec.Get(prefix + "center")
			if shapes[i].Sphere.Center, err = parseVec3(centerStr); err != nil {
				return nil, err
			}
			radius, err := importFloat(sec, prefix+"radius")
			if err != nil {
				return nil, err
			}
			shapes[i].Sphere.Radius = float32(radius)
		case alife.RestrictorBox:
			row0Str, _ := sec.Get(prefix + "row0")
			if shapes[i].Box[0], err = parseVec3(row0Str); err != nil {
				return nil, err
			}
			row1Str, _ := sec.Get(prefix + "row1")
			if shapes[i].Box[1], err = parseVec3(row1Str); err != nil {
				return nil, err
			}
			row2Str, _ := sec.Get(prefix + "row2")
			if shapes[i].Box[2], err = parseVec3(row2Str); err != nil {
				return nil, err
			}
			row3Str, _ := sec.Get(prefix + "row3")
			if shapes[i].Box[3], err = parseVec3(row3Str); err != nil {
				return nil, err
			}
		default:
			return nil, xrerr.New(xrerr.NotImplemented, "restrictor shape kind %d", kind)
		}
	}
	return shapes, nil
}

// vec3String/parseVec3 use a plain "x y z" encoding rather than Vec3's
// human-readable String(), since the latter's formatting isn't meant to
// round-trip through a parser.
func vec3String(v xrbyte.Vec3) string {
	return fmt.Sprintf("%s %s %s",
		strconv.FormatFloat(float64(v.X), 'g', -1, 32),
		strconv.FormatFloat(float64(v.Y), 'g', -1, 32),
		strconv.FormatFloat(float64(v.Z), 'g', -1, 32))
}

func parseVec3(s string) (xrbyte.Vec3, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return xrbyte.Vec3{}, xrerr.New(xrerr.Invalid, "expected 3 components, got %q", s)
	}
	var v xrbyte.Vec3
	x, err := strconv.ParseFloat(parts[0], 32)
	if err != nil {
		return xrbyte.Vec3{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 32)
	if err != nil {
		return xrbyte.Vec3{}, err
	}
	z, err := strconv.ParseFloat(parts[2], 32)
	if err != nil {
		return xrbyte.Vec3{}, err
	}
	v.X, v.Y, v.Z = float32(x), float32(y), float32(z)
	return v, nil
}

// ImportLTX reverses ExportLTX, rebuilding a SpawnFile from its LTX
// representation.
func ImportLTX(doc *ltx.Document) (*File, error) {
	f := &File{}

	metaSec, ok := doc.LookupSection("spawn")
	if !ok {
		return nil, xrerr.New(xrerr.NotFoundChunk, "missing [spawn] metadata section")
	}
	versionStr, ok := metaSec.Get("version")
	if !ok {
		return nil, xrerr.New(xrerr.NotFoundChunk, "missing spawn.version")
	}
	version, err := strconv.ParseUint(versionStr, 10, 16)
	if err != nil {
		return nil, xrerr.Wrap(xrerr.Invalid, err, "parsing spawn.version %q", versionStr)
	}
	f.Header.Version = uint16(version)

	if levelCountStr, ok := metaSec.Get("level_count"); ok {
		levelCount, err := strconv.ParseUint(levelCountStr, 10, 8)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "parsing spawn.level_count %q", levelCountStr)
		}
		f.Header.LevelCount = uint8(levelCount)
	}
	if guidStr, ok := metaSec.Get("guid"); ok {
		if err := parseUUID(guidStr, &f.Header.GUID); err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "parsing spawn.guid %q", guidStr)
		}
	}
	if graphGUIDStr, ok := metaSec.Get("graph_guid"); ok {
		if err := parseUUID(graphGUIDStr, &f.Header.GraphGUID); err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "parsing spawn.graph_guid %q", graphGUIDStr)
		}
	}

	for i := 0; ; i++ {
		sec, ok := doc.LookupSection(objectSectionName(i))
		if !ok {
			break
		}
		obj, err := importObject(sec)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "importing %s", sec.Name)
		}
		f.Objects = append(f.Objects, obj)
	}
	f.Header.ObjectCount = uint32(len(f.Objects))

	for i := 0; ; i++ {
		sec, ok := doc.LookupSection(fmt.Sprintf("patrol_%04d", i))
		if !ok {
			break
		}
		p, err := importPatrol(sec)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "importing %s", sec.Name)
		}
		f.Patrols = append(f.Patrols, *p)
	}

	if graphSec, ok := doc.LookupSection("graph"); ok {
		g, err := importGraph(graphSec)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "importing graph")
		}
		f.Graph = g
	}

	if spawnSec, ok := doc.LookupSection("artefact_spawn"); ok {
		points, err := importArtefactSpawnPoints(spawnSec)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "importing artefact_spawn")
		}
		f.ArtefactSpawnPoints = points
	}

	return f, nil
}

func importGraph(sec *ltx.Section) (*alife.Graph, error) {
	g := &alife.Graph{}

	levelCount, err := importUint(sec, "levels")
	if err != nil {
		return nil, err
	}
	g.Levels = make([]alife.Level, levelCount)
	for i := range g.Levels {
		prefix := fmt.Sprintf("level_%d_", i)
		lvl := &g.Levels[i]
		id, err := importUint(sec, prefix+"id")
		if err != nil {
			return nil, err
		}
		lvl.ID = uint8(id)
		lvl.Name, _ = sec.Get(prefix + "name")
		offsetStr, _ := sec.Get(prefix + "offset")
		if lvl.Offset, err = parseVec3(offsetStr); err != nil {
			return nil, err
		}
		guidStr, _ := sec.Get(prefix + "guid")
		if err := parseUUID(guidStr, &lvl.GUID); err != nil {
			return nil, err
		}
	}

	vertexCount, err := importUint(sec, "vertices")
	if err != nil {
		return nil, err
	}
	g.VerticesCount = uint32(vertexCount)
	g.Vertices = make([]alife.Vertex, vertexCount)
	for i := range g.Vertices {
		prefix := fmt.Sprintf("vertex_%d_", i)
		v := &g.Vertices[i]
		levelPointStr, _ := sec.Get(prefix + "level_point")
		if v.LevelPoint, err = parseVec3(levelPointStr); err != nil {
			return nil, err
		}
		gamePointStr, _ := sec.Get(prefix + "game_point")
		if v.GamePoint, err = parseVec3(gamePointStr); err != nil {
			return nil, err
		}
		levelID, err := importUint(sec, prefix+"level_id")
		if err != nil {
			return nil, err
		}
		v.LevelID = uint8(levelID)
		vertexID, err := importUint(sec, prefix+"vertex_id")
		if err != nil {
			return nil, err
		}
		v.VertexID = uint32(vertexID)
		neighbors, _ := sec.Get(prefix + "neighbors")
		if neighbors != "" {
			for _, part := range strings.Split(neighbors, ",") {
				edge, err := strconv.ParseUint(part, 10, 32)
				if err != nil {
					return nil, err
				}
				v.NeighborEdge = append(v.NeighborEdge, uint32(edge))
			}
		}
	}

	return g, nil
}

func importArtefactSpawnPoints(sec *ltx.Section) ([]alife.ArtefactSpawnPoint, error) {
	count, err := importUint(sec, "points")
	if err != nil {
		return nil, err
	}
	points := make([]alife.ArtefactSpawnPoint, count)
	for i := range points {
		prefix := fmt.Sprintf("point_%d_", i)
		p := &points[i]
		posStr, _ := sec.Get(prefix + "position")
		if p.Position, err = parseVec3(posStr); err != nil {
			return nil, err
		}
		levelVertexID, err := importUint(sec, prefix+"level_vertex_id")
		if err != nil {
			return nil, err
		}
		p.LevelVertexID = uint32(levelVertexID)
		distance, err := importFloat(sec, prefix+"distance")
		if err != nil {
			return nil, err
		}
		p.Distance = float32(distance)
	}
	return points, nil
}

func parseUUID(s string, dst *util.UUID) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != 16 {
		return xrerr.New(xrerr.Invalid, "expected 16 bytes, got %d", len(b))
	}
	copy(dst[:], b)
	return nil
}

func importUint(sec *ltx.Section, key string) (uint64, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return 0, xrerr.New(xrerr.NotFoundChunk, "missing %s.%s", sec.Name, key)
	}
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, xrerr.Wrap(xrerr.Invalid, err, "parsing %s.%s=%q", sec.Name, key, raw)
	}
	return v, nil
}

func importFloat(sec *ltx.Section, key string) (float64, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return 0, xrerr.New(xrerr.NotFoundChunk, "missing %s.%s", sec.Name, key)
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, xrerr.Wrap(xrerr.Invalid, err, "parsing %s.%s=%q", sec.Name, key, raw)
	}
	return v, nil
}

func importHeader(sec *ltx.Section) (*alife.Header, error) {
	h := &alife.Header{}
	h.Name, _ = sec.Get("name")
	h.ScriptName, _ = sec.Get("script_name")
	h.UpdateSection, _ = sec.Get("update_section")
	h.SpawnSection, _ = sec.Get("spawn_section")
	h.CustomData, _ = sec.Get("custom_data")

	clientDataHex, _ := sec.Get("client_data")
	clientData, err := hex.DecodeString(clientDataHex)
	if err != nil {
		return nil, xrerr.Wrap(xrerr.Invalid, err, "decoding %s.client_data", sec.Name)
	}
	h.ClientData = clientData

	fields := []struct {
		key string
		dst *uint32
	}{
		{"direct_control", &h.DirectControl},
		{"level_vertex_id", &h.LevelVertexID},
		{"story_id", &h.StoryID},
		{"spawn_story_id", &h.SpawnStoryID},
	}
	for _, f := range fields {
		v, err := importUint(sec, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = uint32(v)
	}
	spawnFlags, err := importUint(sec, "spawn_flags")
	if err != nil {
		return nil, err
	}
	h.SpawnFlags = uint32(spawnFlags)
	flags, err := importUint(sec, "flags")
	if err != nil {
		return nil, err
	}
	h.Flags = uint32(flags)
	gameVertexID, err := importUint(sec, "game_vertex_id")
	if err != nil {
		return nil, err
	}
	h.GameVertexID = uint16(gameVertexID)
	distance, err := importFloat(sec, "distance")
	if err != nil {
		return nil, err
	}
	h.Distance = float32(distance)

	return h, nil
}

func importObject(sec *ltx.Section) (alife.Object, error) {
	h, err := importHeader(sec)
	if err != nil {
		return nil, err
	}
	class, ok := sec.Get("class")
	if !ok {
		return nil, xrerr.New(xrerr.NotFoundChunk, "missing %s.class", sec.Name)
	}

	switch class {
	case alife.ClassScriptActor.String():
		h.ClsID = alife.ClassScriptActor
		return &alife.ScriptActor{H: h}, nil
	case alife.ClassItem.String():
		h.ClsID = alife.ClassItem
		cond, err := importFloat(sec, "condition")
		if err != nil {
			return nil, err
		}
		return &alife.Item{H: h, Condition: float32(cond)}, nil
	case alife.ClassWeapon.String():
		h.ClsID = alife.ClassWeapon
		cond, err := importFloat(sec, "condition")
		if err != nil {
			return nil, err
		}
		ammoCur, err := importUint(sec, "ammo_current")
		if err != nil {
			return nil, err
		}
		ammoElapsed, err := importUint(sec, "ammo_elapsed")
		if err != nil {
			return nil, err
		}
		state, err := importUint(sec, "weapon_state")
		if err != nil {
			return nil, err
		}
		addonFlags, err := importUint(sec, "addon_flags")
		if err != nil {
			return nil, err
		}
		ammoType, err := importUint(sec, "ammo_type")
		if err != nil {
			return nil, err
		}
		elapsedGrenades, err := importUint(sec, "elapsed_grenades")
		if err != nil {
			return nil, err
		}
		return &alife.Weapon{
			H: h, Condition: float32(cond),
			AmmoCurrent: uint16(ammoCur), AmmoElapsed: uint16(ammoElapsed), WeaponState: uint8(state),
			AddonFlags: uint8(addonFlags), AmmoType: uint8(ammoType), ElapsedGrenades: uint8(elapsedGrenades),
		}, nil
	case alife.ClassMonster.String():
		h.ClsID = alife.ClassMonster
		health, err := importFloat(sec, "health")
		if err != nil {
			return nil, err
		}
		team, err := importUint(sec, "team")
		if err != nil {
			return nil, err
		}
		return &alife.Monster{H: h, Health: float32(health), Team: uint8(team)}, nil
	case alife.ClassSmartCover.String():
		h.ClsID = alife.ClassSmartCover
		desc, _ := sec.Get("description")
		return &alife.SmartCover{H: h, Description: desc}, nil
	case alife.ClassItemHelmet.String():
		h.ClsID = alife.ClassItemHelmet
		cond, err := importFloat(sec, "condition")
		if err != nil {
			return nil, err
		}
		return &alife.ItemHelmet{H: h, Condition: float32(cond)}, nil
	case alife.ClassClimable.String():
		h.ClsID = alife.ClassClimable
		shape, err := importShapeList(sec)
		if err != nil {
			return nil, err
		}
		material, _ := sec.Get("game_material")
		return &alife.Climable{H: h, Shape: shape, GameMaterial: material}, nil
	case alife.ClassSmartZone.String():
		h.ClsID = alife.ClassSmartZone
		shape, err := importShapeList(sec)
		if err != nil {
			return nil, err
		}
		restrictorType, err := importUint(sec, "restrictor_type")
		if err != nil {
			return nil, err
		}
		return &alife.SmartZone{H: h, Shape: shape, RestrictorType: uint8(restrictorType)}, nil
	case alife.ClassCustomZone.String():
		h.ClsID = alife.ClassCustomZone
		shape, err := importShapeList(sec)
		if err != nil {
			return nil, err
		}
		restrictorType, err := importUint(sec, "restrictor_type")
		if err != nil {
			return nil, err
		}
		maxPower, err := importFloat(sec, "max_power")
		if err != nil {
			return nil, err
		}
		ownerID, err := importUint(sec, "owner_id")
		if err != nil {
			return nil, err
		}
		enabledTime, err := importUint(sec, "enabled_time")
		if err != nil {
			return nil, err
		}
		disabledTime, err := importUint(sec, "disabled_time")
		if err != nil {
			return nil, err
		}
		startTimeShift, err := importUint(sec, "start_time_shift")
		if err != nil {
			return nil, err
		}
		return &alife.CustomZone{
			H: h, Shape: shape, RestrictorType: uint8(restrictorType),
			MaxPower: float32(maxPower), OwnerID: uint32(ownerID),
			EnabledTime: uint32(enabledTime), DisabledTime: uint32(disabledTime),
			StartTimeShift: uint32(startTimeShift),
		}, nil
	default:
		return nil, xrerr.New(xrerr.NotImplemented, "alife class name %q", class)
	}
}

func importPatrol(sec *ltx.Section) (*alife.Patrol, error) {
	p := &alife.Patrol{}
	p.Name, _ = sec.Get("name")

	pointCount, err := importUint(sec, "points")
	if err != nil {
		return nil, err
	}
	p.Points = make([]alife.PatrolPoint, pointCount)
	for i := range p.Points {
		prefix := fmt.Sprintf("point_%d_", i)
		pt := &p.Points[i]
		pt.Name, _ = sec.Get(prefix + "name")
		posStr, _ := sec.Get(prefix + "position")
		if pt.Position, err = parseVec3(posStr); err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "parsing %s%s", prefix, "position")
		}
		flags, err := importUint(sec, prefix+"flags")
		if err != nil {
			return nil, err
		}
		pt.Flags = uint32(flags)
		levelVertexID, err := importUint(sec, prefix+"level_vertex_id")
		if err != nil {
			return nil, err
		}
		pt.LevelVertexID = uint32(levelVertexID)
		gameVertexID, err := importUint(sec, prefix+"game_vertex_id")
		if err != nil {
			return nil, err
		}
		pt.GameVertexID = uint16(gameVertexID)
	}

	linkCount, err := importUint(sec, "links")
	if err != nil {
		return nil, err
	}
	p.Links = make([]alife.PatrolLink, linkCount)
	for i := range p.Links {
		prefix := fmt.Sprintf("link_%d_", i)
		l := &p.Links[i]
		from, err := importUint(sec, prefix+"from")
		if err != nil {
			return nil, err
		}
		l.From = uint32(from)
		to, err := importUint(sec, prefix+"to")
		if err != nil {
			return nil, err
		}
		l.To = uint32(to)
		weight, err := importFloat(sec, prefix+"weight")
		if err != nil {
			return nil, err
		}
		l.Weight = float32(weight)
	}

	return p, nil
}
