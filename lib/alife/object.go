// Package alife implements the persistent-world object layer: the
// heterogeneous, tagged-sum object list a SpawnFile's ALife chunk carries.
package alife

import (
	"github.com/xray-forge/xrf-go/lib/xrbyte"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// ClassID is the 16-bit tag that selects an object's variant. The set is
// closed: ReadObject fails NotImplemented for anything outside it.
type ClassID uint16

const (
	ClassScriptActor ClassID = 0x0001
	ClassItem        ClassID = 0x0002
	ClassWeapon      ClassID = 0x0003
	ClassMonster     ClassID = 0x0004
	ClassSmartCover  ClassID = 0x0005
	ClassItemHelmet  ClassID = 0x0006
	ClassClimable    ClassID = 0x0007
	ClassSmartZone   ClassID = 0x0008
	ClassCustomZone  ClassID = 0x0009
)

func (c ClassID) String() string {
	switch c {
	case ClassScriptActor:
		return "script_actor"
	case ClassItem:
		return "item"
	case ClassWeapon:
		return "weapon"
	case ClassMonster:
		return "monster"
	case ClassSmartCover:
		return "smart_cover"
	case ClassItemHelmet:
		return "item_helmet"
	case ClassClimable:
		return "climable"
	case ClassSmartZone:
		return "smart_zone"
	case ClassCustomZone:
		return "custom_zone"
	default:
		return "unknown"
	}
}

// Header carries the fields every ALife object shares, read before the
// class-specific payload is dispatched.
type Header struct {
	ClsID         ClassID
	Name          string
	ScriptName    string
	SpawnFlags    uint32
	UpdateSection string
	SpawnSection  string
	ClientData    []byte

	GameVertexID  uint16
	Distance      float32
	DirectControl uint32
	LevelVertexID uint32
	Flags         uint32
	CustomData    string
	StoryID       uint32
	SpawnStoryID  uint32
}

// HasStoryID reports whether this object participates in the story-id
// uniqueness invariant: the zero story id means "not tracked".
func (h *Header) HasStoryID() bool {
	return h.StoryID != 0
}

func readHeader(r *xrbyte.Reader) (*Header, error) {
	h := &Header{}
	clsID, err := r.U16()
	if err != nil {
		return nil, err
	}
	h.ClsID = ClassID(clsID)

	if h.Name, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return nil, err
	}
	if h.ScriptName, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return nil, err
	}
	if h.SpawnFlags, err = r.U32(); err != nil {
		return nil, err
	}
	if h.UpdateSection, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return nil, err
	}
	if h.SpawnSection, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return nil, err
	}
	clientDataLen, err := r.U16()
	if err != nil {
		return nil, err
	}
	if h.ClientData, err = r.Slice(int(clientDataLen)); err != nil {
		return nil, err
	}
	if h.GameVertexID, err = r.U16(); err != nil {
		return nil, err
	}
	if h.Distance, err = r.F32(); err != nil {
		return nil, err
	}
	if h.DirectControl, err = r.U32(); err != nil {
		return nil, err
	}
	if h.LevelVertexID, err = r.U32(); err != nil {
		return nil, err
	}
	if h.Flags, err = r.U32(); err != nil {
		return nil, err
	}
	if h.CustomData, err = r.NullTerminatedString(xrbyte.CP1251); err != nil {
		return nil, err
	}
	if h.StoryID, err = r.U32(); err != nil {
		return nil, err
	}
	if h.SpawnStoryID, err = r.U32(); err != nil {
		return nil, err
	}
	return h, nil
}

func writeHeader(w *xrbyte.Writer, h *Header) error {
	w.U16(uint16(h.ClsID))
	if err := w.NullTerminatedString(h.Name, xrbyte.CP1251); err != nil {
		return err
	}
	if err := w.NullTerminatedString(h.ScriptName, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(h.SpawnFlags)
	if err := w.NullTerminatedString(h.UpdateSection, xrbyte.CP1251); err != nil {
		return err
	}
	if err := w.NullTerminatedString(h.SpawnSection, xrbyte.CP1251); err != nil {
		return err
	}
	w.U16(uint16(len(h.ClientData)))
	w.Raw(h.ClientData)
	w.U16(h.GameVertexID)
	w.F32(h.Distance)
	w.U32(h.DirectControl)
	w.U32(h.LevelVertexID)
	w.U32(h.Flags)
	if err := w.NullTerminatedString(h.CustomData, xrbyte.CP1251); err != nil {
		return err
	}
	w.U32(h.StoryID)
	w.U32(h.SpawnStoryID)
	return nil
}

// Object is one ALife entity: the shared header plus a class-specific
// payload. Implementations are the closed set that ReadObject dispatches to.
type Object interface {
	Header() *Header
	WritePayload(w *xrbyte.Writer) error
}

// ReadObject reads one object's header then dispatches to its variant
// reader by class tag; the caller (SpawnFile) is responsible for asserting
// the surrounding chunk was fully consumed.
func ReadObject(r *xrbyte.Reader) (Object, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	switch h.ClsID {
	case ClassScriptActor:
		return &ScriptActor{H: h}, nil
	case ClassItem:
		return readItem(r, h)
	case ClassWeapon:
		return readWeapon(r, h)
	case ClassMonster:
		return readMonster(r, h)
	case ClassSmartCover:
		return readSmartCover(r, h)
	case ClassItemHelmet:
		return readItemHelmet(r, h)
	case ClassClimable:
		return readClimable(r, h)
	case ClassSmartZone:
		return readSmartZone(r, h)
	case ClassCustomZone:
		return readCustomZone(r, h)
	default:
		return nil, xrerr.New(xrerr.NotImplemented, "alife class tag 0x%04x", uint16(h.ClsID))
	}
}

// WriteObject writes an object's header followed by its class-specific
// payload.
func WriteObject(w *xrbyte.Writer, obj Object) error {
	if err := writeHeader(w, obj.Header()); err != nil {
		return err
	}
	return obj.WritePayload(w)
}

// ScriptActor is the bare variant: shared header, no extra payload.
type ScriptActor struct {
	H *Header
}

func (o *ScriptActor) Header() *Header                      { return o.H }
func (o *ScriptActor) WritePayload(w *xrbyte.Writer) error { return nil }

// Item carries a condition fraction in addition to the shared header.
type Item struct {
	H         *Header
	Condition float32
}

func readItem(r *xrbyte.Reader, h *Header) (*Item, error) {
	cond, err := r.F32()
	if err != nil {
		return nil, err
	}
	return &Item{H: h, Condition: cond}, nil
}

func (o *Item) Header() *Header { return o.H }
func (o *Item) WritePayload(w *xrbyte.Writer) error {
	w.F32(o.Condition)
	return nil
}

// Weapon adds ammo counters, a discrete state, and addon/ammo-type bytes
// on top of Item's fields.
type Weapon struct {
	H               *Header
	Condition       float32
	AmmoCurrent     uint16
	AmmoElapsed     uint16
	WeaponState     uint8
	AddonFlags      uint8
	AmmoType        uint8
	ElapsedGrenades uint8
}

func readWeapon(r *xrbyte.Reader, h *Header) (*Weapon, error) {
	cond, err := r.F32()
	if err != nil {
		return nil, err
	}
	ammoCur, err := r.U16()
	if err != nil {
		return nil, err
	}
	ammoElapsed, err := r.U16()
	if err != nil {
		return nil, err
	}
	state, err := r.U8()
	if err != nil {
		return nil, err
	}
	addonFlags, err := r.U8()
	if err != nil {
		return nil, err
	}
	ammoType, err := r.U8()
	if err != nil {
		return nil, err
	}
	elapsedGrenades, err := r.U8()
	if err != nil {
		return nil, err
	}
	return &Weapon{
		H: h, Condition: cond, AmmoCurrent: ammoCur, AmmoElapsed: ammoElapsed, WeaponState: state,
		AddonFlags: addonFlags, AmmoType: ammoType, ElapsedGrenades: elapsedGrenades,
	}, nil
}

func (o *Weapon) Header() *Header { return o.H }
func (o *Weapon) WritePayload(w *xrbyte.Writer) error {
	w.F32(o.Condition)
	w.U16(o.AmmoCurrent)
	w.U16(o.AmmoElapsed)
	w.U8(o.WeaponState)
	w.U8(o.AddonFlags)
	w.U8(o.AmmoType)
	w.U8(o.ElapsedGrenades)
	return nil
}

// Monster adds health and a faction/team byte.
type Monster struct {
	H      *Header
	Health float32
	Team   uint8
}

func readMonster(r *xrbyte.Reader, h *Header) (*Monster, error) {
	health, err := r.F32()
	if err != nil {
		return nil, err
	}
	team, err := r.U8()
	if err != nil {
		return nil, err
	}
	return &Monster{H: h, Health: health, Team: team}, nil
}

func (o *Monster) Header() *Header { return o.H }
func (o *Monster) WritePayload(w *xrbyte.Writer) error {
	w.F32(o.Health)
	w.U8(o.Team)
	return nil
}

// SmartCover adds a cover-shape description string.
type SmartCover struct {
	H           *Header
	Description string
}

func readSmartCover(r *xrbyte.Reader, h *Header) (*SmartCover, error) {
	desc, err := r.NullTerminatedString(xrbyte.CP1251)
	if err != nil {
		return nil, err
	}
	return &SmartCover{H: h, Description: desc}, nil
}

func (o *SmartCover) Header() *Header { return o.H }
func (o *SmartCover) WritePayload(w *xrbyte.Writer) error {
	return w.NullTerminatedString(o.Description, xrbyte.CP1251)
}

// ItemHelmet is Item with no extra payload fields: the class tag alone
// distinguishes it for LTX round-trip and info-dump purposes.
type ItemHelmet struct {
	H         *Header
	Condition float32
}

func readItemHelmet(r *xrbyte.Reader, h *Header) (*ItemHelmet, error) {
	cond, err := r.F32()
	if err != nil {
		return nil, err
	}
	return &ItemHelmet{H: h, Condition: cond}, nil
}

func (o *ItemHelmet) Header() *Header { return o.H }
func (o *ItemHelmet) WritePayload(w *xrbyte.Writer) error {
	w.F32(o.Condition)
	return nil
}

// readShapeList reads a u8-prefixed list of tagged restrictor shapes, the
// format shared by every shape-bearing object class below.
func readShapeList(r *xrbyte.Reader) ([]RestrictorShape, error) {
	count, err := r.U8()
	if err != nil {
		return nil, err
	}
	return ReadRestrictorShapes(r, uint32(count))
}

// writeShapeList is the symmetric serializer for readShapeList.
func writeShapeList(w *xrbyte.Writer, shapes []RestrictorShape) error {
	w.U8(uint8(len(shapes)))
	return WriteRestrictorShapes(w, shapes)
}

// Climable adds a bounding shape list and a surface material name.
type Climable struct {
	H            *Header
	Shape        []RestrictorShape
	GameMaterial string
}

func readClimable(r *xrbyte.Reader, h *Header) (*Climable, error) {
	shape, err := readShapeList(r)
	if err != nil {
		return nil, err
	}
	material, err := r.NullTerminatedString(xrbyte.CP1251)
	if err != nil {
		return nil, err
	}
	return &Climable{H: h, Shape: shape, GameMaterial: material}, nil
}

func (o *Climable) Header() *Header { return o.H }
func (o *Climable) WritePayload(w *xrbyte.Writer) error {
	if err := writeShapeList(w, o.Shape); err != nil {
		return err
	}
	return w.NullTerminatedString(o.GameMaterial, xrbyte.CP1251)
}

// spaceRestrictor is the shape-list-plus-kind-byte payload shared by every
// restrictor-derived zone class; it isn't an Object itself since nothing
// in this format uses a bare restrictor without further zone-specific
// fields.
type spaceRestrictor struct {
	Shape          []RestrictorShape
	RestrictorType uint8
}

func readSpaceRestrictor(r *xrbyte.Reader) (spaceRestrictor, error) {
	shape, err := readShapeList(r)
	if err != nil {
		return spaceRestrictor{}, err
	}
	restrictorType, err := r.U8()
	if err != nil {
		return spaceRestrictor{}, err
	}
	return spaceRestrictor{Shape: shape, RestrictorType: restrictorType}, nil
}

func writeSpaceRestrictor(w *xrbyte.Writer, sr spaceRestrictor) error {
	if err := writeShapeList(w, sr.Shape); err != nil {
		return err
	}
	w.U8(sr.RestrictorType)
	return nil
}

// SmartZone is a bare space restrictor: shared header plus the restrictor
// shape list, no zone-specific fields of its own.
type SmartZone struct {
	H              *Header
	Shape          []RestrictorShape
	RestrictorType uint8
}

func readSmartZone(r *xrbyte.Reader, h *Header) (*SmartZone, error) {
	sr, err := readSpaceRestrictor(r)
	if err != nil {
		return nil, err
	}
	return &SmartZone{H: h, Shape: sr.Shape, RestrictorType: sr.RestrictorType}, nil
}

func (o *SmartZone) Header() *Header { return o.H }
func (o *SmartZone) WritePayload(w *xrbyte.Writer) error {
	return writeSpaceRestrictor(w, spaceRestrictor{Shape: o.Shape, RestrictorType: o.RestrictorType})
}

// CustomZone is a space restrictor with power/ownership/timing fields, the
// base every anomaly- and torrid-style zone in the original format builds
// on.
type CustomZone struct {
	H              *Header
	Shape          []RestrictorShape
	RestrictorType uint8
	MaxPower       float32
	OwnerID        uint32
	EnabledTime    uint32
	DisabledTime   uint32
	StartTimeShift uint32
}

func readCustomZone(r *xrbyte.Reader, h *Header) (*CustomZone, error) {
	sr, err := readSpaceRestrictor(r)
	if err != nil {
		return nil, err
	}
	maxPower, err := r.F32()
	if err != nil {
		return nil, err
	}
	ownerID, err := r.U32()
	if err != nil {
		return nil, err
	}
	enabledTime, err := r.U32()
	if err != nil {
		return nil, err
	}
	disabledTime, err := r.U32()
	if err != nil {
		return nil, err
	}
	startTimeShift, err := r.U32()
	if err != nil {
		return nil, err
	}
	return &CustomZone{
		H: h, Shape: sr.Shape, RestrictorType: sr.RestrictorType,
		MaxPower: maxPower, OwnerID: ownerID, EnabledTime: enabledTime,
		DisabledTime: disabledTime, StartTimeShift: startTimeShift,
	}, nil
}

func (o *CustomZone) Header() *Header { return o.H }
func (o *CustomZone) WritePayload(w *xrbyte.Writer) error {
	if err := writeSpaceRestrictor(w, spaceRestrictor{Shape: o.Shape, RestrictorType: o.RestrictorType}); err != nil {
		return err
	}
	w.F32(o.MaxPower)
	w.U32(o.OwnerID)
	w.U32(o.EnabledTime)
	w.U32(o.DisabledTime)
	w.U32(o.StartTimeShift)
	return nil
}
