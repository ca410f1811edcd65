package particles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xray-forge/xrf-go/lib/ltx"
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// ExportLTX renders a decoded ParticlesFile as an LTX document: one section
// per effect and per group, named by position so re-import preserves order.
// Binary → ExportLTX → ImportLTX → binary must reproduce the original bytes.
func ExportLTX(f *File) *ltx.Document {
	doc := ltx.NewDocument()

	meta := doc.Section("particles")
	meta.Set("version", strconv.Itoa(int(f.Header.Version)))

	for i, e := range f.Effects {
		sec := doc.Section(effectSectionName(i))
		exportEffect(sec, e)
	}
	for i, g := range f.Groups {
		sec := doc.Section(groupSectionName(i))
		exportGroup(sec, g)
	}

	return doc
}

func effectSectionName(i int) string { return fmt.Sprintf("effect_%04d", i) }
func groupSectionName(i int) string  { return fmt.Sprintf("group_%04d", i) }

func exportEffect(sec *ltx.Section, e Effect) {
	sec.Set("name", e.Name)
	sec.Set("actions", strconv.Itoa(len(e.Actions)))
	for i, a := range e.Actions {
		exportAction(sec, fmt.Sprintf("action_%d_", i), a)
	}
}

func exportGroup(sec *ltx.Section, g Group) {
	sec.Set("name", g.Name)
	sec.Set("effects", strconv.Itoa(len(g.Effects)))
	for i, ge := range g.Effects {
		prefix := fmt.Sprintf("effect_%d_", i)
		sec.Set(prefix+"name", ge.Name)
		sec.Set(prefix+"time_start", floatString(ge.TimeStart))
		sec.Set(prefix+"actions_index", strconv.FormatUint(uint64(ge.ActionsIndex), 10))
		sec.Set(prefix+"on_play_child", ge.OnPlayChild)
		sec.Set(prefix+"flags_inherit", fmt.Sprintf("0x%x", ge.FlagsInherit))
	}
}

func exportDomain(sec *ltx.Section, prefix string, d Domain) {
	sec.Set(prefix+"kind", d.Kind.String())
	sec.Set(prefix+"p1", vec3String(d.P1))
	sec.Set(prefix+"p2", vec3String(d.P2))
	sec.Set(prefix+"p3", vec3String(d.P3))
	sec.Set(prefix+"normal", vec3String(d.Normal))
	sec.Set(prefix+"axis", vec3String(d.Axis))
	sec.Set(prefix+"radius", floatString(d.Radius))
	sec.Set(prefix+"height", floatString(d.Height))
}

func exportAction(sec *ltx.Section, prefix string, a Action) {
	sec.Set(prefix+"type", a.Type.String())
	sec.Set(prefix+"flags", fmt.Sprintf("0x%x", a.Flags))

	switch p := a.Payload.(type) {
	case AvoidAction:
		exportDomain(sec, prefix+"domain_", p.Position)
		sec.Set(prefix+"look_ahead", floatString(p.LookAhead))
		sec.Set(prefix+"magnitude", floatString(p.Magnitude))
		sec.Set(prefix+"epsilon", floatString(p.Epsilon))
	case BounceAction:
		exportDomain(sec, prefix+"domain_", p.Position)
		sec.Set(prefix+"one_minus_friction", floatString(p.OneMinusFriction))
		sec.Set(prefix+"resilience", floatString(p.Resilience))
		sec.Set(prefix+"cutoff_sqr", floatString(p.CutoffSqr))
	case CopyVertexAction:
		sec.Set(prefix+"copy_pos", strconv.FormatUint(uint64(p.CopyPos), 10))
	case DampingAction:
		sec.Set(prefix+"damping", vec3String(p.Damping))
		sec.Set(prefix+"v_low_sqr", floatString(p.VLowSqr))
		sec.Set(prefix+"v_high_sqr", floatString(p.VHighSqr))
	case FollowAction:
		exportMagnitudeEpsilonRadius(sec, prefix, p.MagnitudeEpsilonRadius)
	case GravitateAction:
		exportMagnitudeEpsilonRadius(sec, prefix, p.MagnitudeEpsilonRadius)
	case GravityAction:
		sec.Set(prefix+"direction", vec3String(p.Direction))
	case JetAction:
		sec.Set(prefix+"center", vec3String(p.Center))
		exportDomain(sec, prefix+"domain_", p.Acc)
		sec.Set(prefix+"magnitude", floatString(p.Magnitude))
		sec.Set(prefix+"epsilon", floatString(p.Epsilon))
		sec.Set(prefix+"max_radius", floatString(p.MaxRadius))
	case KillOldAction:
		sec.Set(prefix+"age_limit", floatString(p.AgeLimit))
		sec.Set(prefix+"kill_less_than", strconv.FormatUint(uint64(p.KillLessThan), 10))
	case MoveAction:
		// no fields
	case OrbitLineAction:
		exportCenterAxisMagnitudeEpsilonRadius(sec, prefix, p.CenterAxisMagnitudeEpsilonRadius)
	case VortexAction:
		exportCenterAxisMagnitudeEpsilonRadius(sec, prefix, p.CenterAxisMagnitudeEpsilonRadius)
	case OrbitPointAction:
		exportCenterMagnitudeEpsilonRadius(sec, prefix, p.CenterMagnitudeEpsilonRadius)
	case ScatterAction:
		exportCenterMagnitudeEpsilonRadius(sec, prefix, p.CenterMagnitudeEpsilonRadius)
	case RandomAccelerationAction:
		exportDomain(sec, prefix+"domain_", p.GenAcc)
	case RandomDisplaceAction:
		exportDomain(sec, prefix+"domain_", p.GenDisp)
	case RandomVelocityAction:
		exportDomain(sec, prefix+"domain_", p.GenVel)
	case RestoreAction:
		sec.Set(prefix+"time_left", floatString(p.TimeLeft))
	case SinkAction:
		sec.Set(prefix+"kill_inside", strconv.FormatUint(uint64(p.KillInside), 10))
		exportDomain(sec, prefix+"domain_", p.Position)
	case SinkVelocityAction:
		sec.Set(prefix+"kill_inside", strconv.FormatUint(uint64(p.KillInside), 10))
		exportDomain(sec, prefix+"domain_", p.Velocity)
	case SpeedLimitAction:
		sec.Set(prefix+"min_speed", floatString(p.MinSpeed))
		sec.Set(prefix+"max_speed", floatString(p.MaxSpeed))
	case TargetColorAction:
		sec.Set(prefix+"color", vec3String(p.Color))
		sec.Set(prefix+"alpha", floatString(p.Alpha))
		sec.Set(prefix+"scale", floatString(p.Scale))
		sec.Set(prefix+"time_from", floatString(p.TimeFrom))
		sec.Set(prefix+"time_to", floatString(p.TimeTo))
	case TargetRotateAction:
		sec.Set(prefix+"rot", vec3String(p.Rot))
		sec.Set(prefix+"scale", floatString(p.Scale))
	case TargetSizeAction:
		sec.Set(prefix+"size", vec3String(p.Size))
		sec.Set(prefix+"scale", vec3String(p.Scale))
	case TargetVelocityAction:
		sec.Set(prefix+"velocity", vec3String(p.Velocity))
		sec.Set(prefix+"scale", floatString(p.Scale))
	case SourceAction:
		exportDomain(sec, prefix+"position_", p.Position)
		exportDomain(sec, prefix+"velocity_", p.Velocity)
		exportDomain(sec, prefix+"rot_", p.Rot)
		exportDomain(sec, prefix+"size_", p.Size)
		exportDomain(sec, prefix+"color_", p.Color)
		sec.Set(prefix+"alpha", floatString(p.Alpha))
		sec.Set(prefix+"particle_rate", floatString(p.ParticleRate))
		sec.Set(prefix+"age", floatString(p.Age))
		sec.Set(prefix+"age_sigma", floatString(p.AgeSigma))
		sec.Set(prefix+"parent_vel", vec3String(p.ParentVel))
		sec.Set(prefix+"parent_motion", floatString(p.ParentMotion))
	}
}

func exportMagnitudeEpsilonRadius(sec *ltx.Section, prefix string, m MagnitudeEpsilonRadius) {
	sec.Set(prefix+"magnitude", floatString(m.Magnitude))
	sec.Set(prefix+"epsilon", floatString(m.Epsilon))
	sec.Set(prefix+"max_radius", floatString(m.MaxRadius))
}

func exportCenterMagnitudeEpsilonRadius(sec *ltx.Section, prefix string, c CenterMagnitudeEpsilonRadius) {
	sec.Set(prefix+"center", vec3String(c.Center))
	exportMagnitudeEpsilonRadius(sec, prefix, MagnitudeEpsilonRadius{c.Magnitude, c.Epsilon, c.MaxRadius})
}

func exportCenterAxisMagnitudeEpsilonRadius(sec *ltx.Section, prefix string, c CenterAxisMagnitudeEpsilonRadius) {
	sec.Set(prefix+"center", vec3String(c.Center))
	sec.Set(prefix+"axis", vec3String(c.Axis))
	exportMagnitudeEpsilonRadius(sec, prefix, MagnitudeEpsilonRadius{c.Magnitude, c.Epsilon, c.MaxRadius})
}

// floatString/vec3String/parseFloat32/parseVec3 use a plain round-trippable
// encoding, not any type's human-readable String() method.
func floatString(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func parseFloat32(sec *ltx.Section, key string) (float32, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return 0, xrerr.New(xrerr.NotFoundChunk, "missing %s.%s", sec.Name, key)
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, xrerr.Wrap(xrerr.Invalid, err, "parsing %s.%s=%q", sec.Name, key, raw)
	}
	return float32(v), nil
}

func parseUint32(sec *ltx.Section, key string) (uint32, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return 0, xrerr.New(xrerr.NotFoundChunk, "missing %s.%s", sec.Name, key)
	}
	v, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, xrerr.Wrap(xrerr.Invalid, err, "parsing %s.%s=%q", sec.Name, key, raw)
	}
	return uint32(v), nil
}

func vec3String(v xrbyte.Vec3) string {
	return fmt.Sprintf("%s %s %s", floatString(v.X), floatString(v.Y), floatString(v.Z))
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

func domainKindFromString(s string) (DomainKind, bool) {
	for k := DomainPoint; k <= DomainDisc; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func importDomain(sec *ltx.Section, prefix string) (Domain, error) {
	var d Domain
	kindStr, ok := sec.Get(prefix + "kind")
	if !ok {
		return d, xrerr.New(xrerr.NotFoundChunk, "missing %s.%skind", sec.Name, prefix)
	}
	kind, ok := domainKindFromString(kindStr)
	if !ok {
		return d, xrerr.New(xrerr.NotImplemented, "particle domain kind %q", kindStr)
	}
	d.Kind = kind

	var err error
	if p1, ok := sec.Get(prefix + "p1"); ok {
		if d.P1, err = parseVec3(p1); err != nil {
			return d, err
		}
	}
	if p2, ok := sec.Get(prefix + "p2"); ok {
		if d.P2, err = parseVec3(p2); err != nil {
			return d, err
		}
	}
	if p3, ok := sec.Get(prefix + "p3"); ok {
		if d.P3, err = parseVec3(p3); err != nil {
			return d, err
		}
	}
	if normal, ok := sec.Get(prefix + "normal"); ok {
		if d.Normal, err = parseVec3(normal); err != nil {
			return d, err
		}
	}
	if axis, ok := sec.Get(prefix + "axis"); ok {
		if d.Axis, err = parseVec3(axis); err != nil {
			return d, err
		}
	}
	if d.Radius, err = parseFloat32(sec, prefix+"radius"); err != nil {
		return d, err
	}
	if d.Height, err = parseFloat32(sec, prefix+"height"); err != nil {
		return d, err
	}
	return d, nil
}

func importMagnitudeEpsilonRadius(sec *ltx.Section, prefix string) (MagnitudeEpsilonRadius, error) {
	var m MagnitudeEpsilonRadius
	var err error
	if m.Magnitude, err = parseFloat32(sec, prefix+"magnitude"); err != nil {
		return m, err
	}
	if m.Epsilon, err = parseFloat32(sec, prefix+"epsilon"); err != nil {
		return m, err
	}
	m.MaxRadius, err = parseFloat32(sec, prefix+"max_radius")
	return m, err
}

func importCenterMagnitudeEpsilonRadius(sec *ltx.Section, prefix string) (CenterMagnitudeEpsilonRadius, error) {
	var c CenterMagnitudeEpsilonRadius
	centerStr, ok := sec.Get(prefix + "center")
	if !ok {
		return c, xrerr.New(xrerr.NotFoundChunk, "missing %s.%scenter", sec.Name, prefix)
	}
	var err error
	if c.Center, err = parseVec3(centerStr); err != nil {
		return c, err
	}
	m, err := importMagnitudeEpsilonRadius(sec, prefix)
	if err != nil {
		return c, err
	}
	c.Magnitude, c.Epsilon, c.MaxRadius = m.Magnitude, m.Epsilon, m.MaxRadius
	return c, nil
}

func importCenterAxisMagnitudeEpsilonRadius(sec *ltx.Section, prefix string) (CenterAxisMagnitudeEpsilonRadius, error) {
	var c CenterAxisMagnitudeEpsilonRadius
	centerStr, ok := sec.Get(prefix + "center")
	if !ok {
		return c, xrerr.New(xrerr.NotFoundChunk, "missing %s.%scenter", sec.Name, prefix)
	}
	var err error
	if c.Center, err = parseVec3(centerStr); err != nil {
		return c, err
	}
	axisStr, ok := sec.Get(prefix + "axis")
	if !ok {
		return c, xrerr.New(xrerr.NotFoundChunk, "missing %s.%saxis", sec.Name, prefix)
	}
	if c.Axis, err = parseVec3(axisStr); err != nil {
		return c, err
	}
	m, err := importMagnitudeEpsilonRadius(sec, prefix)
	if err != nil {
		return c, err
	}
	c.Magnitude, c.Epsilon, c.MaxRadius = m.Magnitude, m.Epsilon, m.MaxRadius
	return c, nil
}

func actionTypeFromString(s string) (ActionType, bool) {
	for t, name := range actionNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

func importAction(sec *ltx.Section, prefix string) (Action, error) {
	var a Action
	typeStr, ok := sec.Get(prefix + "type")
	if !ok {
		return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%stype", sec.Name, prefix)
	}
	t, ok := actionTypeFromString(typeStr)
	if !ok {
		return a, xrerr.New(xrerr.NotImplemented, "particle action type %q", typeStr)
	}
	a.Type = t

	flags, err := parseUint32(sec, prefix+"flags")
	if err != nil {
		return a, err
	}
	a.Flags = flags

	switch t {
	case ActionAvoid:
		p := AvoidAction{}
		if p.Position, err = importDomain(sec, prefix+"domain_"); err != nil {
			return a, err
		}
		if p.LookAhead, err = parseFloat32(sec, prefix+"look_ahead"); err != nil {
			return a, err
		}
		if p.Magnitude, err = parseFloat32(sec, prefix+"magnitude"); err != nil {
			return a, err
		}
		if p.Epsilon, err = parseFloat32(sec, prefix+"epsilon"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionBounce:
		p := BounceAction{}
		if p.Position, err = importDomain(sec, prefix+"domain_"); err != nil {
			return a, err
		}
		if p.OneMinusFriction, err = parseFloat32(sec, prefix+"one_minus_friction"); err != nil {
			return a, err
		}
		if p.Resilience, err = parseFloat32(sec, prefix+"resilience"); err != nil {
			return a, err
		}
		if p.CutoffSqr, err = parseFloat32(sec, prefix+"cutoff_sqr"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionCopyVertex:
		v, err := parseUint32(sec, prefix+"copy_pos")
		if err != nil {
			return a, err
		}
		a.Payload = CopyVertexAction{CopyPos: v}
	case ActionDamping:
		p := DampingAction{}
		dampingStr, ok := sec.Get(prefix + "damping")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%sdamping", sec.Name, prefix)
		}
		if p.Damping, err = parseVec3(dampingStr); err != nil {
			return a, err
		}
		if p.VLowSqr, err = parseFloat32(sec, prefix+"v_low_sqr"); err != nil {
			return a, err
		}
		if p.VHighSqr, err = parseFloat32(sec, prefix+"v_high_sqr"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionFollow:
		m, err := importMagnitudeEpsilonRadius(sec, prefix)
		if err != nil {
			return a, err
		}
		a.Payload = FollowAction{m}
	case ActionGravitate:
		m, err := importMagnitudeEpsilonRadius(sec, prefix)
		if err != nil {
			return a, err
		}
		a.Payload = GravitateAction{m}
	case ActionGravity:
		dirStr, ok := sec.Get(prefix + "direction")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%sdirection", sec.Name, prefix)
		}
		v, err := parseVec3(dirStr)
		if err != nil {
			return a, err
		}
		a.Payload = GravityAction{Direction: v}
	case ActionJet:
		p := JetAction{}
		centerStr, ok := sec.Get(prefix + "center")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%scenter", sec.Name, prefix)
		}
		if p.Center, err = parseVec3(centerStr); err != nil {
			return a, err
		}
		if p.Acc, err = importDomain(sec, prefix+"domain_"); err != nil {
			return a, err
		}
		if p.Magnitude, err = parseFloat32(sec, prefix+"magnitude"); err != nil {
			return a, err
		}
		if p.Epsilon, err = parseFloat32(sec, prefix+"epsilon"); err != nil {
			return a, err
		}
		if p.MaxRadius, err = parseFloat32(sec, prefix+"max_radius"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionKillOld:
		p := KillOldAction{}
		if p.AgeLimit, err = parseFloat32(sec, prefix+"age_limit"); err != nil {
			return a, err
		}
		if p.KillLessThan, err = parseUint32(sec, prefix+"kill_less_than"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionMove:
		a.Payload = MoveAction{}
	case ActionOrbitLine:
		c, err := importCenterAxisMagnitudeEpsilonRadius(sec, prefix)
		if err != nil {
			return a, err
		}
		a.Payload = OrbitLineAction{c}
	case ActionVortex:
		c, err := importCenterAxisMagnitudeEpsilonRadius(sec, prefix)
		if err != nil {
			return a, err
		}
		a.Payload = VortexAction{c}
	case ActionOrbitPoint:
		c, err := importCenterMagnitudeEpsilonRadius(sec, prefix)
		if err != nil {
			return a, err
		}
		a.Payload = OrbitPointAction{c}
	case ActionScatter:
		c, err := importCenterMagnitudeEpsilonRadius(sec, prefix)
		if err != nil {
			return a, err
		}
		a.Payload = ScatterAction{c}
	case ActionRandomAcceleration:
		d, err := importDomain(sec, prefix+"domain_")
		if err != nil {
			return a, err
		}
		a.Payload = RandomAccelerationAction{GenAcc: d}
	case ActionRandomDisplace:
		d, err := importDomain(sec, prefix+"domain_")
		if err != nil {
			return a, err
		}
		a.Payload = RandomDisplaceAction{GenDisp: d}
	case ActionRandomVelocity:
		d, err := importDomain(sec, prefix+"domain_")
		if err != nil {
			return a, err
		}
		a.Payload = RandomVelocityAction{GenVel: d}
	case ActionRestore:
		v, err := parseFloat32(sec, prefix+"time_left")
		if err != nil {
			return a, err
		}
		a.Payload = RestoreAction{TimeLeft: v}
	case ActionSink:
		p := SinkAction{}
		if p.KillInside, err = parseUint32(sec, prefix+"kill_inside"); err != nil {
			return a, err
		}
		if p.Position, err = importDomain(sec, prefix+"domain_"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionSinkVelocity:
		p := SinkVelocityAction{}
		if p.KillInside, err = parseUint32(sec, prefix+"kill_inside"); err != nil {
			return a, err
		}
		if p.Velocity, err = importDomain(sec, prefix+"domain_"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionSpeedLimit:
		p := SpeedLimitAction{}
		if p.MinSpeed, err = parseFloat32(sec, prefix+"min_speed"); err != nil {
			return a, err
		}
		if p.MaxSpeed, err = parseFloat32(sec, prefix+"max_speed"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionTargetColor:
		p := TargetColorAction{}
		colorStr, ok := sec.Get(prefix + "color")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%scolor", sec.Name, prefix)
		}
		if p.Color, err = parseVec3(colorStr); err != nil {
			return a, err
		}
		if p.Alpha, err = parseFloat32(sec, prefix+"alpha"); err != nil {
			return a, err
		}
		if p.Scale, err = parseFloat32(sec, prefix+"scale"); err != nil {
			return a, err
		}
		if p.TimeFrom, err = parseFloat32(sec, prefix+"time_from"); err != nil {
			return a, err
		}
		if p.TimeTo, err = parseFloat32(sec, prefix+"time_to"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionTargetRotate:
		p := TargetRotateAction{}
		rotStr, ok := sec.Get(prefix + "rot")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%srot", sec.Name, prefix)
		}
		if p.Rot, err = parseVec3(rotStr); err != nil {
			return a, err
		}
		if p.Scale, err = parseFloat32(sec, prefix+"scale"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionTargetSize:
		p := TargetSizeAction{}
		sizeStr, ok := sec.Get(prefix + "size")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%ssize", sec.Name, prefix)
		}
		if p.Size, err = parseVec3(sizeStr); err != nil {
			return a, err
		}
		scaleStr, ok := sec.Get(prefix + "scale")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%sscale", sec.Name, prefix)
		}
		if p.Scale, err = parseVec3(scaleStr); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionTargetVelocity:
		p := TargetVelocityAction{}
		velStr, ok := sec.Get(prefix + "velocity")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%svelocity", sec.Name, prefix)
		}
		if p.Velocity, err = parseVec3(velStr); err != nil {
			return a, err
		}
		if p.Scale, err = parseFloat32(sec, prefix+"scale"); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionSource:
		p := SourceAction{}
		if p.Position, err = importDomain(sec, prefix+"position_"); err != nil {
			return a, err
		}
		if p.Velocity, err = importDomain(sec, prefix+"velocity_"); err != nil {
			return a, err
		}
		if p.Rot, err = importDomain(sec, prefix+"rot_"); err != nil {
			return a, err
		}
		if p.Size, err = importDomain(sec, prefix+"size_"); err != nil {
			return a, err
		}
		if p.Color, err = importDomain(sec, prefix+"color_"); err != nil {
			return a, err
		}
		if p.Alpha, err = parseFloat32(sec, prefix+"alpha"); err != nil {
			return a, err
		}
		if p.ParticleRate, err = parseFloat32(sec, prefix+"particle_rate"); err != nil {
			return a, err
		}
		if p.Age, err = parseFloat32(sec, prefix+"age"); err != nil {
			return a, err
		}
		if p.AgeSigma, err = parseFloat32(sec, prefix+"age_sigma"); err != nil {
			return a, err
		}
		parentVelStr, ok := sec.Get(prefix + "parent_vel")
		if !ok {
			return a, xrerr.New(xrerr.NotFoundChunk, "missing %s.%sparent_vel", sec.Name, prefix)
		}
		if p.ParentVel, err = parseVec3(parentVelStr); err != nil {
			return a, err
		}
		if p.ParentMotion, err = parseFloat32(sec, prefix+"parent_motion"); err != nil {
			return a, err
		}
		a.Payload = p
	default:
		return a, xrerr.New(xrerr.NotImplemented, "particle action type %q", typeStr)
	}

	return a, nil
}

func importEffect(sec *ltx.Section) (Effect, error) {
	var e Effect
	e.Name, _ = sec.Get("name")
	count, err := parseUint32(sec, "actions")
	if err != nil {
		return e, err
	}
	e.Actions = make([]Action, count)
	for i := range e.Actions {
		a, err := importAction(sec, fmt.Sprintf("action_%d_", i))
		if err != nil {
			return e, err
		}
		e.Actions[i] = a
	}
	return e, nil
}

func importGroup(sec *ltx.Section) (Group, error) {
	var g Group
	g.Name, _ = sec.Get("name")
	count, err := parseUint32(sec, "effects")
	if err != nil {
		return g, err
	}
	g.Effects = make([]GroupEffect, count)
	for i := range g.Effects {
		prefix := fmt.Sprintf("effect_%d_", i)
		ge := &g.Effects[i]
		ge.Name, _ = sec.Get(prefix + "name")
		if ge.TimeStart, err = parseFloat32(sec, prefix+"time_start"); err != nil {
			return g, err
		}
		if ge.ActionsIndex, err = parseUint32(sec, prefix+"actions_index"); err != nil {
			return g, err
		}
		ge.OnPlayChild, _ = sec.Get(prefix + "on_play_child")
		if ge.FlagsInherit, err = parseUint32(sec, prefix+"flags_inherit"); err != nil {
			return g, err
		}
	}
	return g, nil
}

// ImportLTX reverses ExportLTX, rebuilding a ParticlesFile from its LTX
// representation.
func ImportLTX(doc *ltx.Document) (*File, error) {
	f := &File{}

	metaSec, ok := doc.LookupSection("particles")
	if !ok {
		return nil, xrerr.New(xrerr.NotFoundChunk, "missing [particles] metadata section")
	}
	versionStr, ok := metaSec.Get("version")
	if !ok {
		return nil, xrerr.New(xrerr.NotFoundChunk, "missing particles.version")
	}
	version, err := strconv.ParseUint(versionStr, 10, 16)
	if err != nil {
		return nil, xrerr.Wrap(xrerr.Invalid, err, "parsing particles.version %q", versionStr)
	}
	f.Header.Version = uint16(version)

	for i := 0; ; i++ {
		sec, ok := doc.LookupSection(effectSectionName(i))
		if !ok {
			break
		}
		e, err := importEffect(sec)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "importing %s", sec.Name)
		}
		f.Effects = append(f.Effects, e)
	}
	f.Header.EffectsCount = uint32(len(f.Effects))

	for i := 0; ; i++ {
		sec, ok := doc.LookupSection(groupSectionName(i))
		if !ok {
			break
		}
		g, err := importGroup(sec)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.Invalid, err, "importing %s", sec.Name)
		}
		f.Groups = append(f.Groups, g)
	}
	f.Header.GroupsCount = uint32(len(f.Groups))

	return f, nil
}
