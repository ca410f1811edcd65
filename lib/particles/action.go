package particles

import (
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// ActionType is the 32-bit tag selecting an action's variant. The set is
// closed: ReadAction fails NotImplemented for anything outside it.
type ActionType uint32

const (
	ActionAvoid ActionType = iota
	ActionBounce
	ActionCopyVertex
	ActionDamping
	ActionFollow
	ActionGravitate
	ActionGravity
	ActionJet
	ActionKillOld
	ActionMove
	ActionOrbitLine
	ActionOrbitPoint
	ActionRandomAcceleration
	ActionRandomDisplace
	ActionRandomVelocity
	ActionRestore
	ActionScatter
	ActionSink
	ActionSinkVelocity
	ActionSpeedLimit
	ActionTargetColor
	ActionTargetRotate
	ActionTargetSize
	ActionTargetVelocity
	ActionVortex
	ActionSource
)

var actionNames = map[ActionType]string{
	ActionAvoid:              "avoid",
	ActionBounce:             "bounce",
	ActionCopyVertex:         "copy_vertex",
	ActionDamping:            "damping",
	ActionFollow:             "follow",
	ActionGravitate:          "gravitate",
	ActionGravity:            "gravity",
	ActionJet:                "jet",
	ActionKillOld:            "kill_old",
	ActionMove:               "move",
	ActionOrbitLine:          "orbit_line",
	ActionOrbitPoint:         "orbit_point",
	ActionRandomAcceleration: "random_acceleration",
	ActionRandomDisplace:     "random_displace",
	ActionRandomVelocity:     "random_velocity",
	ActionRestore:            "restore",
	ActionScatter:            "scatter",
	ActionSink:               "sink",
	ActionSinkVelocity:       "sink_velocity",
	ActionSpeedLimit:         "speed_limit",
	ActionTargetColor:        "target_color",
	ActionTargetRotate:       "target_rotate",
	ActionTargetSize:         "target_size",
	ActionTargetVelocity:     "target_velocity",
	ActionVortex:             "vortex",
	ActionSource:             "source",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return "unknown"
}

// Action is one step of an effect: a type tag, generic flags, and a
// type-specific payload. Payloads that sample a region carry their own
// Domain field rather than the record carrying one unconditionally.
type Action struct {
	Type    ActionType
	Flags   uint32
	Payload ActionPayload
}

// ActionPayload is the type-specific remainder of an action record. Each
// concrete payload type knows its own field layout; dispatch by ActionType
// happens once, in ReadAction/WriteAction.
type ActionPayload interface {
	writePayload(w *xrbyte.Writer)
}

// MoveAction and CopyVertex/KillOld etc. all have distinct shapes below;
// fields are grouped only where the underlying record is genuinely
// identical, not merely similar.

// AvoidAction steers particles away from a domain with a look-ahead time.
type AvoidAction struct {
	Position  Domain
	LookAhead float32
	Magnitude float32
	Epsilon   float32
}

func (p AvoidAction) writePayload(w *xrbyte.Writer) {
	w.F32(p.LookAhead).F32(p.Magnitude).F32(p.Epsilon)
}

// BounceAction reflects particles off a domain surface.
type BounceAction struct {
	Position         Domain
	OneMinusFriction float32
	Resilience       float32
	CutoffSqr        float32
}

func (p BounceAction) writePayload(w *xrbyte.Writer) {
	w.F32(p.OneMinusFriction).F32(p.Resilience).F32(p.CutoffSqr)
}

// CopyVertexAction copies a particle's position from a source vertex.
type CopyVertexAction struct {
	CopyPos uint32
}

func (p CopyVertexAction) writePayload(w *xrbyte.Writer) { w.U32(p.CopyPos) }

// DampingAction scales velocity toward zero outside a speed band.
type DampingAction struct {
	Damping  xrbyte.Vec3
	VLowSqr  float32
	VHighSqr float32
}

func (p DampingAction) writePayload(w *xrbyte.Writer) {
	w.Vec3(p.Damping).F32(p.VLowSqr).F32(p.VHighSqr)
}

// MagnitudeEpsilonRadius is the shared shape of Follow and Gravitate: both
// pull particles toward something implicit (another particle / the system
// center) with a magnitude, a minimum-distance epsilon, and a cutoff radius.
type MagnitudeEpsilonRadius struct {
	Magnitude float32
	Epsilon   float32
	MaxRadius float32
}

func (p MagnitudeEpsilonRadius) writePayload(w *xrbyte.Writer) {
	w.F32(p.Magnitude).F32(p.Epsilon).F32(p.MaxRadius)
}

// FollowAction pulls a particle toward its leader in the same stream.
type FollowAction struct{ MagnitudeEpsilonRadius }

// GravitateAction pulls particles toward the effect's center.
type GravitateAction struct{ MagnitudeEpsilonRadius }

// GravityAction applies a constant directional acceleration.
type GravityAction struct {
	Direction xrbyte.Vec3
}

func (p GravityAction) writePayload(w *xrbyte.Writer) { w.Vec3(p.Direction) }

// JetAction applies a periodic acceleration sampled from a domain.
type JetAction struct {
	Center    xrbyte.Vec3
	Acc       Domain
	Magnitude float32
	Epsilon   float32
	MaxRadius float32
}

func (p JetAction) writePayload(w *xrbyte.Writer) {
	w.F32(p.Magnitude).F32(p.Epsilon).F32(p.MaxRadius)
}

// KillOldAction removes particles past an age threshold.
type KillOldAction struct {
	AgeLimit     float32
	KillLessThan uint32
}

func (p KillOldAction) writePayload(w *xrbyte.Writer) { w.F32(p.AgeLimit).U32(p.KillLessThan) }

// MoveAction advances particles along their velocity; it carries no fields.
type MoveAction struct{}

func (MoveAction) writePayload(w *xrbyte.Writer) {}

// CenterAxisMagnitudeEpsilonRadius is the shared shape of OrbitLine and
// Vortex: both orbit particles around an axis through a center point.
type CenterAxisMagnitudeEpsilonRadius struct {
	Center    xrbyte.Vec3
	Axis      xrbyte.Vec3
	Magnitude float32
	Epsilon   float32
	MaxRadius float32
}

func (p CenterAxisMagnitudeEpsilonRadius) writePayload(w *xrbyte.Writer) {
	w.Vec3(p.Center).Vec3(p.Axis).F32(p.Magnitude).F32(p.Epsilon).F32(p.MaxRadius)
}

// OrbitLineAction orbits particles around a line through Center along Axis.
type OrbitLineAction struct{ CenterAxisMagnitudeEpsilonRadius }

// VortexAction spins particles around a line through Center along Axis.
type VortexAction struct{ CenterAxisMagnitudeEpsilonRadius }

// CenterMagnitudeEpsilonRadius is the shared shape of OrbitPoint and
// Scatter: both act relative to a single center point.
type CenterMagnitudeEpsilonRadius struct {
	Center    xrbyte.Vec3
	Magnitude float32
	Epsilon   float32
	MaxRadius float32
}

func (p CenterMagnitudeEpsilonRadius) writePayload(w *xrbyte.Writer) {
	w.Vec3(p.Center).F32(p.Magnitude).F32(p.Epsilon).F32(p.MaxRadius)
}

// OrbitPointAction orbits particles around a fixed center point.
type OrbitPointAction struct{ CenterMagnitudeEpsilonRadius }

// ScatterAction scatters particles away from a center point.
type ScatterAction struct{ CenterMagnitudeEpsilonRadius }

// RandomAccelerationAction adds a random acceleration sampled from a domain.
type RandomAccelerationAction struct {
	GenAcc Domain
}

func (RandomAccelerationAction) writePayload(w *xrbyte.Writer) {}

// RandomDisplaceAction adds a random position offset sampled from a domain.
type RandomDisplaceAction struct {
	GenDisp Domain
}

func (RandomDisplaceAction) writePayload(w *xrbyte.Writer) {}

// RandomVelocityAction adds a random velocity sampled from a domain.
type RandomVelocityAction struct {
	GenVel Domain
}

func (RandomVelocityAction) writePayload(w *xrbyte.Writer) {}

// RestoreAction resets a particle's remaining lifetime.
type RestoreAction struct {
	TimeLeft float32
}

func (p RestoreAction) writePayload(w *xrbyte.Writer) { w.F32(p.TimeLeft) }

// SinkAction removes particles inside (or outside) a domain.
type SinkAction struct {
	KillInside uint32
	Position   Domain
}

func (SinkAction) writePayload(w *xrbyte.Writer) {}

// SinkVelocityAction removes particles whose velocity enters a domain.
type SinkVelocityAction struct {
	KillInside uint32
	Velocity   Domain
}

func (SinkVelocityAction) writePayload(w *xrbyte.Writer) {}

// SpeedLimitAction clamps particle speed to a [min, max] band.
type SpeedLimitAction struct {
	MinSpeed float32
	MaxSpeed float32
}

func (p SpeedLimitAction) writePayload(w *xrbyte.Writer) { w.F32(p.MinSpeed).F32(p.MaxSpeed) }

// TargetColorAction eases a particle's color toward a target over time.
type TargetColorAction struct {
	Color    xrbyte.Vec3
	Alpha    float32
	Scale    float32
	TimeFrom float32
	TimeTo   float32
}

func (p TargetColorAction) writePayload(w *xrbyte.Writer) {
	w.Vec3(p.Color).F32(p.Alpha).F32(p.Scale).F32(p.TimeFrom).F32(p.TimeTo)
}

// TargetRotateAction eases a particle's rotation toward a target.
type TargetRotateAction struct {
	Rot   xrbyte.Vec3
	Scale float32
}

func (p TargetRotateAction) writePayload(w *xrbyte.Writer) { w.Vec3(p.Rot).F32(p.Scale) }

// TargetSizeAction eases a particle's size toward a target.
type TargetSizeAction struct {
	Size  xrbyte.Vec3
	Scale xrbyte.Vec3
}

func (p TargetSizeAction) writePayload(w *xrbyte.Writer) { w.Vec3(p.Size).Vec3(p.Scale) }

// TargetVelocityAction eases a particle's velocity toward a target.
type TargetVelocityAction struct {
	Velocity xrbyte.Vec3
	Scale    float32
}

func (p TargetVelocityAction) writePayload(w *xrbyte.Writer) { w.Vec3(p.Velocity).F32(p.Scale) }

// SourceAction emits new particles, sampling initial state from five
// domains (position, velocity, rotation, size, color).
type SourceAction struct {
	Position     Domain
	Velocity     Domain
	Rot          Domain
	Size         Domain
	Color        Domain
	Alpha        float32
	ParticleRate float32
	Age          float32
	AgeSigma     float32
	ParentVel    xrbyte.Vec3
	ParentMotion float32
}

func (p SourceAction) writePayload(w *xrbyte.Writer) {
	w.F32(p.Alpha).F32(p.ParticleRate).F32(p.Age).F32(p.AgeSigma)
	w.Vec3(p.ParentVel).F32(p.ParentMotion)
}

// ReadAction reads one action record: type, flags, then the type-specific
// payload dispatched by type. Payloads that sample a region read their
// Domain fields inline, interleaved with their scalar fields in on-disk
// order.
func ReadAction(r *xrbyte.Reader) (Action, error) {
	var a Action
	typeTag, err := r.U32()
	if err != nil {
		return a, err
	}
	a.Type = ActionType(typeTag)

	if a.Flags, err = r.U32(); err != nil {
		return a, err
	}

	switch a.Type {
	case ActionAvoid:
		p := AvoidAction{}
		if p.Position, err = ReadDomain(r); err != nil {
			return a, err
		}
		if p.LookAhead, err = r.F32(); err != nil {
			return a, err
		}
		if p.Magnitude, err = r.F32(); err != nil {
			return a, err
		}
		if p.Epsilon, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionBounce:
		p := BounceAction{}
		if p.Position, err = ReadDomain(r); err != nil {
			return a, err
		}
		if p.OneMinusFriction, err = r.F32(); err != nil {
			return a, err
		}
		if p.Resilience, err = r.F32(); err != nil {
			return a, err
		}
		if p.CutoffSqr, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionCopyVertex:
		v, err := r.U32()
		if err != nil {
			return a, err
		}
		a.Payload = CopyVertexAction{CopyPos: v}
	case ActionDamping:
		p := DampingAction{}
		if p.Damping, err = r.Vec3(); err != nil {
			return a, err
		}
		if p.VLowSqr, err = r.F32(); err != nil {
			return a, err
		}
		if p.VHighSqr, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionFollow:
		m, err := readMagnitudeEpsilonRadius(r)
		if err != nil {
			return a, err
		}
		a.Payload = FollowAction{m}
	case ActionGravitate:
		m, err := readMagnitudeEpsilonRadius(r)
		if err != nil {
			return a, err
		}
		a.Payload = GravitateAction{m}
	case ActionGravity:
		v, err := r.Vec3()
		if err != nil {
			return a, err
		}
		a.Payload = GravityAction{Direction: v}
	case ActionJet:
		p := JetAction{}
		if p.Center, err = r.Vec3(); err != nil {
			return a, err
		}
		if p.Acc, err = ReadDomain(r); err != nil {
			return a, err
		}
		if p.Magnitude, err = r.F32(); err != nil {
			return a, err
		}
		if p.Epsilon, err = r.F32(); err != nil {
			return a, err
		}
		if p.MaxRadius, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionKillOld:
		p := KillOldAction{}
		if p.AgeLimit, err = r.F32(); err != nil {
			return a, err
		}
		if p.KillLessThan, err = r.U32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionMove:
		a.Payload = MoveAction{}
	case ActionOrbitLine:
		c, err := readCenterAxisMagnitudeEpsilonRadius(r)
		if err != nil {
			return a, err
		}
		a.Payload = OrbitLineAction{c}
	case ActionOrbitPoint:
		c, err := readCenterMagnitudeEpsilonRadius(r)
		if err != nil {
			return a, err
		}
		a.Payload = OrbitPointAction{c}
	case ActionRandomAcceleration:
		d, err := ReadDomain(r)
		if err != nil {
			return a, err
		}
		a.Payload = RandomAccelerationAction{GenAcc: d}
	case ActionRandomDisplace:
		d, err := ReadDomain(r)
		if err != nil {
			return a, err
		}
		a.Payload = RandomDisplaceAction{GenDisp: d}
	case ActionRandomVelocity:
		d, err := ReadDomain(r)
		if err != nil {
			return a, err
		}
		a.Payload = RandomVelocityAction{GenVel: d}
	case ActionRestore:
		v, err := r.F32()
		if err != nil {
			return a, err
		}
		a.Payload = RestoreAction{TimeLeft: v}
	case ActionScatter:
		c, err := readCenterMagnitudeEpsilonRadius(r)
		if err != nil {
			return a, err
		}
		a.Payload = ScatterAction{c}
	case ActionSink:
		p := SinkAction{}
		if p.KillInside, err = r.U32(); err != nil {
			return a, err
		}
		if p.Position, err = ReadDomain(r); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionSinkVelocity:
		p := SinkVelocityAction{}
		if p.KillInside, err = r.U32(); err != nil {
			return a, err
		}
		if p.Velocity, err = ReadDomain(r); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionSpeedLimit:
		p := SpeedLimitAction{}
		if p.MinSpeed, err = r.F32(); err != nil {
			return a, err
		}
		if p.MaxSpeed, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionTargetColor:
		p := TargetColorAction{}
		if p.Color, err = r.Vec3(); err != nil {
			return a, err
		}
		if p.Alpha, err = r.F32(); err != nil {
			return a, err
		}
		if p.Scale, err = r.F32(); err != nil {
			return a, err
		}
		if p.TimeFrom, err = r.F32(); err != nil {
			return a, err
		}
		if p.TimeTo, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionTargetRotate:
		p := TargetRotateAction{}
		if p.Rot, err = r.Vec3(); err != nil {
			return a, err
		}
		if p.Scale, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionTargetSize:
		p := TargetSizeAction{}
		if p.Size, err = r.Vec3(); err != nil {
			return a, err
		}
		if p.Scale, err = r.Vec3(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionTargetVelocity:
		p := TargetVelocityAction{}
		if p.Velocity, err = r.Vec3(); err != nil {
			return a, err
		}
		if p.Scale, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	case ActionVortex:
		c, err := readCenterAxisMagnitudeEpsilonRadius(r)
		if err != nil {
			return a, err
		}
		a.Payload = VortexAction{c}
	case ActionSource:
		p := SourceAction{}
		if p.Position, err = ReadDomain(r); err != nil {
			return a, err
		}
		if p.Velocity, err = ReadDomain(r); err != nil {
			return a, err
		}
		if p.Rot, err = ReadDomain(r); err != nil {
			return a, err
		}
		if p.Size, err = ReadDomain(r); err != nil {
			return a, err
		}
		if p.Color, err = ReadDomain(r); err != nil {
			return a, err
		}
		if p.Alpha, err = r.F32(); err != nil {
			return a, err
		}
		if p.ParticleRate, err = r.F32(); err != nil {
			return a, err
		}
		if p.Age, err = r.F32(); err != nil {
			return a, err
		}
		if p.AgeSigma, err = r.F32(); err != nil {
			return a, err
		}
		if p.ParentVel, err = r.Vec3(); err != nil {
			return a, err
		}
		if p.ParentMotion, err = r.F32(); err != nil {
			return a, err
		}
		a.Payload = p
	default:
		return a, xrerr.New(xrerr.NotImplemented, "particle action type %d", typeTag)
	}

	return a, nil
}

func readMagnitudeEpsilonRadius(r *xrbyte.Reader) (MagnitudeEpsilonRadius, error) {
	var m MagnitudeEpsilonRadius
	var err error
	if m.Magnitude, err = r.F32(); err != nil {
		return m, err
	}
	if m.Epsilon, err = r.F32(); err != nil {
		return m, err
	}
	m.MaxRadius, err = r.F32()
	return m, err
}

func readCenterMagnitudeEpsilonRadius(r *xrbyte.Reader) (CenterMagnitudeEpsilonRadius, error) {
	var c CenterMagnitudeEpsilonRadius
	var err error
	if c.Center, err = r.Vec3(); err != nil {
		return c, err
	}
	if c.Magnitude, err = r.F32(); err != nil {
		return c, err
	}
	if c.Epsilon, err = r.F32(); err != nil {
		return c, err
	}
	c.MaxRadius, err = r.F32()
	return c, err
}

func readCenterAxisMagnitudeEpsilonRadius(r *xrbyte.Reader) (CenterAxisMagnitudeEpsilonRadius, error) {
	var c CenterAxisMagnitudeEpsilonRadius
	var err error
	if c.Center, err = r.Vec3(); err != nil {
		return c, err
	}
	if c.Axis, err = r.Vec3(); err != nil {
		return c, err
	}
	if c.Magnitude, err = r.F32(); err != nil {
		return c, err
	}
	if c.Epsilon, err = r.F32(); err != nil {
		return c, err
	}
	c.MaxRadius, err = r.F32()
	return c, err
}

// WriteAction is the symmetric serializer for ReadAction. Domain-carrying
// payloads write their domain fields inline before delegating their
// remaining scalar fields to writePayload.
func WriteAction(w *xrbyte.Writer, a Action) error {
	w.U32(uint32(a.Type)).U32(a.Flags)

	switch p := a.Payload.(type) {
	case AvoidAction:
		if err := WriteDomain(w, p.Position); err != nil {
			return err
		}
	case BounceAction:
		if err := WriteDomain(w, p.Position); err != nil {
			return err
		}
	case JetAction:
		w.Vec3(p.Center)
		if err := WriteDomain(w, p.Acc); err != nil {
			return err
		}
	case RandomAccelerationAction:
		return WriteDomain(w, p.GenAcc)
	case RandomDisplaceAction:
		return WriteDomain(w, p.GenDisp)
	case RandomVelocityAction:
		return WriteDomain(w, p.GenVel)
	case SinkAction:
		w.U32(p.KillInside)
		if err := WriteDomain(w, p.Position); err != nil {
			return err
		}
	case SinkVelocityAction:
		w.U32(p.KillInside)
		if err := WriteDomain(w, p.Velocity); err != nil {
			return err
		}
	case SourceAction:
		if err := WriteDomain(w, p.Position); err != nil {
			return err
		}
		if err := WriteDomain(w, p.Velocity); err != nil {
			return err
		}
		if err := WriteDomain(w, p.Rot); err != nil {
			return err
		}
		if err := WriteDomain(w, p.Size); err != nil {
			return err
		}
		if err := WriteDomain(w, p.Color); err != nil {
			return err
		}
	case nil:
		return xrerr.New(xrerr.NotImplemented, "particle action type %d has no payload", a.Type)
	}

	a.Payload.writePayload(w)
	return nil
}
