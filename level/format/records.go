package format

import (
	"math"

	"github.com/eak1mov/go-libedge/geom"
)

// Legacy constants that must hold in every file.
const (
	legacyClones int16 = -1
	legacyEnergy uint8 = 1

	autoStartOn  uint8 = 2
	autoStartOff uint8 = 0

	darkCubeMarker int16 = -2
	// NoID marks an absent reference in platform sync and button parent fields.
	NoID int16 = -1

	MinZoom = -1
	MaxZoom = 6
)

type Waypoint struct {
	Position   geom.Point3D // absolute
	TravelTime uint16
	PauseTime  uint16
}

type MovingPlatform struct {
	AutoStart bool
	LoopStart uint8 // 0 = no loop, else waypoint index + 1
	FullBlock bool
	Waypoints []Waypoint
}

type BumperSide struct {
	StartDelay int16
	PulseRate  int16
}

type Bumper struct {
	Enabled  bool
	Position geom.Point3D
	North    BumperSide
	East     BumperSide
	South    BumperSide
	West     BumperSide
}

type FallingPlatform struct {
	Position  geom.Point3D
	FloatTime uint16
}

type Checkpoint struct {
	Position geom.Point3D
	RespawnZ int16
	Radius   geom.Size2D
}

// CameraTrigger carries the transition block only when Zoom is -1.
type CameraTrigger struct {
	Position   geom.Point3D
	Zoom       int16
	Radius     geom.Size2D
	Reset      bool
	StartDelay uint16
	Duration   uint16
	AngleOrFOV int16
	SingleUse  bool
	IsAngle    bool
}

type Prism struct {
	Position geom.Point3D
}

type BlockEvent struct {
	Type     BlockEventType
	TargetID int16
	Payload  uint16
}

type Button struct {
	Visibility      ButtonVisibility
	DisableCount    uint8
	Mode            ButtonMode
	ParentID        int16
	SequenceInOrder bool
	ChildrenCount   uint8
	Moving          bool
	PlatformID      int16        // when Moving
	Position        geom.Point3D // when not Moving
	Events          []uint16
}

type KeyEvent struct {
	TimeOffset uint16
	Direction  Direction
	Action     KeyAction
}

// Cube is a holo cube, or a dark cube when Dark is set.
type Cube struct {
	Trigger   geom.Point3D
	Dark      bool
	Radius    geom.Size2D // dark cubes only
	SyncID    int16       // moving platform index or NoID
	Position  geom.Point3D
	KeyEvents []KeyEvent
}

type Resizer struct {
	Position  geom.Point3D
	Visible   bool
	Direction ResizerDirection
}

func readWaypoint(r *Reader) Waypoint {
	return Waypoint{Position: r.Point3D(), TravelTime: r.U16(), PauseTime: r.U16()}
}

func writeWaypoint(w *Writer, p *Waypoint) {
	w.Point3D(p.Position)
	w.U16(p.TravelTime)
	w.U16(p.PauseTime)
}

func readMovingPlatform(r *Reader) MovingPlatform {
	var p MovingPlatform
	p.AutoStart = r.U8() == autoStartOn
	p.LoopStart = r.U8()
	offset := r.Offset()
	if clones := r.I16(); r.err == nil && clones != legacyClones {
		r.Failf(offset, "legacy clones = %d, want = %d", clones, legacyClones)
	}
	p.FullBlock = r.Bool()
	offset = r.Offset()
	count := int(r.U8())
	if r.err == nil && count == 0 {
		r.Failf(offset, "moving platform without waypoints")
	}
	for range count {
		if r.err != nil {
			break
		}
		p.Waypoints = append(p.Waypoints, readWaypoint(r))
	}
	return p
}

func writeMovingPlatform(w *Writer, p *MovingPlatform) {
	if p.AutoStart {
		w.U8(autoStartOn)
	} else {
		w.U8(autoStartOff)
	}
	w.U8(p.LoopStart)
	w.I16(legacyClones)
	w.Bool(p.FullBlock)
	if len(p.Waypoints) == 0 || len(p.Waypoints) > math.MaxUint8 {
		w.fail("moving platform needs 1 to 255 waypoints, has %d", len(p.Waypoints))
	}
	w.U8(uint8(len(p.Waypoints)))
	for i := range p.Waypoints {
		writeWaypoint(w, &p.Waypoints[i])
	}
}

func readBumperSide(r *Reader) BumperSide {
	return BumperSide{StartDelay: r.I16(), PulseRate: r.I16()}
}

func writeBumperSide(w *Writer, s BumperSide) {
	w.I16(s.StartDelay)
	w.I16(s.PulseRate)
}

func readBumper(r *Reader) Bumper {
	var b Bumper
	b.Enabled = r.Bool()
	b.Position = r.Point3D()
	b.North = readBumperSide(r)
	b.East = readBumperSide(r)
	b.South = readBumperSide(r)
	b.West = readBumperSide(r)
	return b
}

func writeBumper(w *Writer, b *Bumper) {
	w.Bool(b.Enabled)
	w.Point3D(b.Position)
	writeBumperSide(w, b.North)
	writeBumperSide(w, b.East)
	writeBumperSide(w, b.South)
	writeBumperSide(w, b.West)
}

func readFallingPlatform(r *Reader) FallingPlatform {
	return FallingPlatform{Position: r.Point3D(), FloatTime: r.U16()}
}

func writeFallingPlatform(w *Writer, p *FallingPlatform) {
	w.Point3D(p.Position)
	w.U16(p.FloatTime)
}

func readCheckpoint(r *Reader) Checkpoint {
	return Checkpoint{Position: r.Point3D(), RespawnZ: r.I16(), Radius: r.Size2D()}
}

func writeCheckpoint(w *Writer, c *Checkpoint) {
	w.Point3D(c.Position)
	w.I16(c.RespawnZ)
	w.Size2D(c.Radius)
}

func readCameraTrigger(r *Reader) CameraTrigger {
	var c CameraTrigger
	c.Position = r.Point3D()
	offset := r.Offset()
	c.Zoom = r.I16()
	if r.err == nil && (c.Zoom < MinZoom || c.Zoom > MaxZoom) {
		r.Failf(offset, "zoom %d outside [%d, %d]", c.Zoom, MinZoom, MaxZoom)
	}
	c.Radius = r.Size2D()
	if c.Zoom == MinZoom {
		c.Reset = r.Bool()
		c.StartDelay = r.U16()
		c.Duration = r.U16()
		c.AngleOrFOV = r.I16()
		c.SingleUse = r.Bool()
		c.IsAngle = r.Bool()
	}
	return c
}

func writeCameraTrigger(w *Writer, c *CameraTrigger) {
	if c.Zoom < MinZoom || c.Zoom > MaxZoom {
		w.fail("camera trigger zoom %d outside [%d, %d]", c.Zoom, MinZoom, MaxZoom)
	}
	w.Point3D(c.Position)
	w.I16(c.Zoom)
	w.Size2D(c.Radius)
	if c.Zoom != MinZoom {
		return
	}
	w.Bool(c.Reset)
	w.U16(c.StartDelay)
	w.U16(c.Duration)
	w.I16(c.AngleOrFOV)
	w.Bool(c.SingleUse)
	w.Bool(c.IsAngle)
}

func readPrism(r *Reader) Prism {
	p := Prism{Position: r.Point3D()}
	offset := r.Offset()
	if energy := r.U8(); r.err == nil && energy != legacyEnergy {
		r.Failf(offset, "legacy energy = %d, want = %d", energy, legacyEnergy)
	}
	return p
}

func writePrism(w *Writer, p *Prism) {
	w.Point3D(p.Position)
	w.U8(legacyEnergy)
}

func readBlockEvent(r *Reader) BlockEvent {
	var e BlockEvent
	e.Type = readEnum(r, "block event type", blockEventTypeCount)
	e.TargetID = r.I16()
	offset := r.Offset()
	e.Payload = r.U16()
	if r.err != nil {
		return e
	}
	switch e.Type {
	case EventAffectBumper:
		if BumperAction(e.Payload) >= bumperActionCount {
			r.Failf(offset, "bumper action: invalid value %d", e.Payload)
		}
	case EventAffectButton:
		if ButtonStart(e.Payload) >= buttonStartCount {
			r.Failf(offset, "button start: invalid value %d", e.Payload)
		}
	}
	return e
}

func writeBlockEvent(w *Writer, e *BlockEvent) {
	checkEnum(w, "block event type", e.Type, blockEventTypeCount)
	switch e.Type {
	case EventAffectBumper:
		checkEnum(w, "bumper action", BumperAction(e.Payload), bumperActionCount)
	case EventAffectButton:
		checkEnum(w, "button start", ButtonStart(e.Payload), buttonStartCount)
	}
	w.U8(uint8(e.Type))
	w.I16(e.TargetID)
	w.U16(e.Payload)
}

func readButton(r *Reader) Button {
	var b Button
	b.Visibility = readEnum(r, "button visibility", buttonVisibilityCount)
	b.DisableCount = r.U8()
	b.Mode = readEnum(r, "button mode", buttonModeCount)
	offset := r.Offset()
	b.ParentID = r.I16()
	b.SequenceInOrder = r.Bool()
	b.ChildrenCount = r.U8()
	b.Moving = r.Bool()
	if b.Moving {
		b.PlatformID = r.I16()
	} else {
		b.Position = r.Point3D()
	}
	count := int(r.U16())
	for range count {
		if r.err != nil {
			break
		}
		b.Events = append(b.Events, r.U16())
	}
	if r.err == nil && b.ParentID >= 0 && (b.Mode != ButtonStayDown || len(b.Events) != 0 || b.ChildrenCount != 0) {
		r.Failf(offset, "sequence child of %d must be stay-down without events or children", b.ParentID)
	}
	return b
}

func writeButton(w *Writer, b *Button) {
	checkEnum(w, "button visibility", b.Visibility, buttonVisibilityCount)
	checkEnum(w, "button mode", b.Mode, buttonModeCount)
	if b.ParentID >= 0 && (b.Mode != ButtonStayDown || len(b.Events) != 0 || b.ChildrenCount != 0) {
		w.fail("sequence child of %d must be stay-down without events or children", b.ParentID)
	}
	w.U8(uint8(b.Visibility))
	w.U8(b.DisableCount)
	w.U8(uint8(b.Mode))
	w.I16(b.ParentID)
	w.Bool(b.SequenceInOrder)
	w.U8(b.ChildrenCount)
	w.Bool(b.Moving)
	if b.Moving {
		w.I16(b.PlatformID)
	} else {
		w.Point3D(b.Position)
	}
	w.Count("button events", len(b.Events))
	for _, e := range b.Events {
		w.U16(e)
	}
}

func readKeyEvent(r *Reader) KeyEvent {
	var e KeyEvent
	e.TimeOffset = r.U16()
	e.Direction = readEnum(r, "key direction", directionCount)
	e.Action = readEnum(r, "key action", keyActionCount)
	return e
}

func writeKeyEvent(w *Writer, e *KeyEvent) {
	checkEnum(w, "key direction", e.Direction, directionCount)
	checkEnum(w, "key action", e.Action, keyActionCount)
	w.U16(e.TimeOffset)
	w.U8(uint8(e.Direction))
	w.U8(uint8(e.Action))
}

func readCube(r *Reader) Cube {
	var c Cube
	c.Trigger = r.Point3D()
	c.SyncID = r.I16()
	if c.SyncID == darkCubeMarker {
		c.Dark = true
		c.Radius = r.Size2D()
		c.SyncID = r.I16()
	}
	count := int(r.U16())
	c.Position = r.Point3D()
	for range count {
		if r.err != nil {
			break
		}
		c.KeyEvents = append(c.KeyEvents, readKeyEvent(r))
	}
	return c
}

func writeCube(w *Writer, c *Cube) {
	w.Point3D(c.Trigger)
	if c.Dark {
		w.I16(darkCubeMarker)
		w.Size2D(c.Radius)
	}
	w.I16(c.SyncID)
	w.Count("key events", len(c.KeyEvents))
	w.Point3D(c.Position)
	for i := range c.KeyEvents {
		writeKeyEvent(w, &c.KeyEvents[i])
	}
}

func readResizer(r *Reader) Resizer {
	var z Resizer
	z.Position = r.Point3D()
	z.Visible = r.Bool()
	z.Direction = readEnum(r, "resizer direction", resizerDirectionCount)
	return z
}

func writeResizer(w *Writer, z *Resizer) {
	checkEnum(w, "resizer direction", z.Direction, resizerDirectionCount)
	w.Point3D(z.Position)
	w.Bool(z.Visible)
	w.U8(uint8(z.Direction))
}
