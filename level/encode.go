package level

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level/format"
)

// Slot is the position of a placed part in the file: its table and its index
// in that table. Holo and dark cubes share one table.
type Slot struct {
	Kind     Kind
	Position geom.Point3D
	Index    int
}

// Encode serializes l. Table indices are assigned in coordinate order, button
// sequences are flattened into parent and child records, and shared events
// are written once. The level is not modified. Errors wrap
// format.ErrInconsistent.
func Encode(l *Level, opts ...Option) ([]byte, error) {
	config := newConfig(opts)
	e, err := plan(l, config)
	if err != nil {
		return nil, err
	}
	config.Logger.Debug("libedge: write tables")
	return e.file.Encode()
}

// WriteFile encodes l and replaces the file at path. Nothing is written when
// encoding fails, and a failed write leaves any existing file untouched.
func WriteFile(path string, l *Level, opts ...Option) error {
	data, err := Encode(l, opts...)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Layout returns the file slot of every placed part. Slots of one kind are
// listed in index order.
func Layout(l *Level, opts ...Option) ([]Slot, error) {
	e, err := plan(l, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return e.slots, nil
}

func inconsistent(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", format.ErrInconsistent, fmt.Sprintf(msg, args...))
}

// encoder carries the table indices assigned during one Encode call.
type encoder struct {
	level  *Level
	config config
	file   *format.File
	slots  []Slot

	platformIDs       map[*MovingPlatform]int16
	platformPositions map[*MovingPlatform]geom.Point3D
	bumperIDs         map[*Bumper]int16
	buttonIDs         map[*Button]int16
	eventIDs          map[BlockEvent]uint16
}

func plan(l *Level, config config) (*encoder, error) {
	e := &encoder{
		level:             l,
		config:            config,
		platformIDs:       make(map[*MovingPlatform]int16),
		platformPositions: make(map[*MovingPlatform]geom.Point3D),
		bumperIDs:         make(map[*Bumper]int16),
		buttonIDs:         make(map[*Button]int16),
		eventIDs:          make(map[BlockEvent]uint16),
	}
	e.file = &format.File{
		Header:    format.Header{ID: l.ID, Name: l.Name, Times: l.Times},
		Collision: l.Static.Collision(),
		Camera:    l.Camera,
		Theme:     l.Theme,
		MusicJava: l.MusicJava,
		Music:     l.Music,
	}

	e.minimap()
	steps := []struct {
		name string
		run  func() error
	}{
		{"markers", e.markers},
		{"assign ids", e.platformsAndBumpers},
		{"flatten sequences", e.buttons},
		{"collect events", e.events},
		{"simple parts", e.simpleParts},
		{"cubes", e.cubes},
	}
	for _, step := range steps {
		config.Logger.Debug("libedge: " + step.name)
		if err := step.run(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *encoder) slot(kind Kind, p geom.Point3D, index int) {
	e.slots = append(e.slots, Slot{Kind: kind, Position: p, Index: index})
}

func (e *encoder) minimap() {
	m := e.level.LegacyMinimap
	if m == nil {
		return
	}
	if want := format.MinimapSize(e.file.Collision.Size()); m.Size() != want {
		e.config.Logger.Debug("libedge: legacy minimap size changed, writing empty one", "size", m.Size(), "want", want)
		return
	}
	e.file.Minimap = m
}

func (e *encoder) markers() error {
	spawns := PartsOf[*SpawnPoint](e.level)
	if len(spawns) != 1 {
		return inconsistent("level has %d spawn points, want 1", len(spawns))
	}
	exits := PartsOf[*ExitPoint](e.level)
	if len(exits) != 1 {
		return inconsistent("level has %d exit points, want 1", len(exits))
	}
	e.file.Spawn = spawns[0].Position
	e.file.Exit = exits[0].Position
	e.slot(KindSpawnPoint, e.file.Spawn, 0)
	e.slot(KindExitPoint, e.file.Exit, 0)
	return nil
}

// assignID gives part the next index of its table and fails when the same
// part is placed twice.
func assignID[T comparable](ids map[T]int16, part T, kind Kind, p geom.Point3D) (int16, error) {
	if _, ok := ids[part]; ok {
		return 0, inconsistent("%v at %v is placed more than once", kind, p)
	}
	if len(ids) > math.MaxInt16 {
		return 0, inconsistent("too many parts of kind %v", kind)
	}
	id := int16(len(ids))
	ids[part] = id
	return id, nil
}

func (e *encoder) platformsAndBumpers() error {
	for _, placed := range PartsOf[*MovingPlatform](e.level) {
		p, anchor := placed.Part, placed.Position
		id, err := assignID(e.platformIDs, p, KindMovingPlatform, anchor)
		if err != nil {
			return err
		}
		e.platformPositions[p] = anchor
		e.slot(KindMovingPlatform, anchor, int(id))

		if len(p.Waypoints) == 0 || p.Waypoints[0].Offset != (geom.Point3D{}) {
			return inconsistent("moving platform at %v must start with a waypoint at offset (0,0,0)", anchor)
		}
		if p.LoopStart < NoLoop || p.LoopStart >= math.MaxUint8 {
			return inconsistent("moving platform at %v: loop start %d out of range", anchor, p.LoopStart)
		}
		raw := format.MovingPlatform{
			AutoStart: p.AutoStart,
			LoopStart: uint8(p.LoopStart + 1),
			FullBlock: p.FullBlock,
			Waypoints: make([]format.Waypoint, len(p.Waypoints)),
		}
		for i, w := range p.Waypoints {
			raw.Waypoints[i] = format.Waypoint{Position: anchor.Add(w.Offset), TravelTime: w.TravelTime, PauseTime: w.PauseTime}
		}
		e.file.MovingPlatforms = append(e.file.MovingPlatforms, raw)
	}

	for _, placed := range PartsOf[*Bumper](e.level) {
		b := placed.Part
		id, err := assignID(e.bumperIDs, b, KindBumper, placed.Position)
		if err != nil {
			return err
		}
		e.slot(KindBumper, placed.Position, int(id))
		e.file.Bumpers = append(e.file.Bumpers, format.Bumper{
			Enabled:  b.Enabled,
			Position: placed.Position,
			North:    b.North,
			East:     b.East,
			South:    b.South,
			West:     b.West,
		})
	}
	return nil
}

// buttons writes the members of every sequence first, parent then children,
// followed by the remaining buttons in coordinate order. Event indices are
// filled in by events once every button has its index.
func (e *encoder) buttons() error {
	positions := make(map[*Button]geom.Point3D)
	var ordinary []*Button
	for _, placed := range PartsOf[*Button](e.level) {
		if _, ok := positions[placed.Part]; ok {
			return inconsistent("button at %v is placed more than once", placed.Position)
		}
		positions[placed.Part] = placed.Position
		ordinary = append(ordinary, placed.Part)
	}

	inSequence := make(map[*Button]bool)
	var order []*Button
	for i, seq := range e.level.Sequences {
		if len(seq.Buttons) < 2 || len(seq.Buttons)-1 > math.MaxUint8 {
			return inconsistent("button sequence %d has %d buttons, want 2 to 256", i, len(seq.Buttons))
		}
		parentID := int16(len(order))
		for j, b := range seq.Buttons {
			p, ok := positions[b]
			switch {
			case !ok:
				return inconsistent("button sequence %d: button %d is not placed", i, j)
			case inSequence[b]:
				return inconsistent("button sequence %d: button at %v already belongs to a sequence", i, p)
			case b.Mode != format.ButtonStayDown:
				return inconsistent("button sequence %d: button at %v must be stay-down", i, p)
			case len(b.Events) != 0:
				return inconsistent("button sequence %d: button at %v has its own events", i, p)
			}
			inSequence[b] = true
			order = append(order, b)

			raw := format.Button{ParentID: parentID, SequenceInOrder: seq.InOrder}
			if j == 0 {
				raw.ParentID = format.NoID
				raw.ChildrenCount = uint8(len(seq.Buttons) - 1)
			}
			if err := e.button(b, p, raw); err != nil {
				return err
			}
		}
	}

	for _, b := range ordinary {
		if inSequence[b] {
			continue
		}
		order = append(order, b)
		if err := e.button(b, positions[b], format.Button{ParentID: format.NoID}); err != nil {
			return err
		}
	}
	return nil
}

// button appends b with the sequence fields already set in raw.
func (e *encoder) button(b *Button, p geom.Point3D, raw format.Button) error {
	id, err := assignID(e.buttonIDs, b, KindButton, p)
	if err != nil {
		return err
	}
	e.slot(KindButton, p, int(id))

	raw.Visibility = b.Visibility
	raw.DisableCount = b.DisableCount
	raw.Mode = b.Mode
	if b.Platform == nil {
		raw.Position = p
	} else {
		platformID, ok := e.platformIDs[b.Platform]
		if !ok {
			return inconsistent("button at %v rides a moving platform that is not placed", p)
		}
		if want := e.platformPositions[b.Platform].Add(geom.Up); p != want {
			return inconsistent("button at %v must be placed on top of its platform at %v", p, want)
		}
		raw.Moving = true
		raw.PlatformID = platformID
	}
	e.file.Buttons = append(e.file.Buttons, raw)
	return nil
}

// buttonEvents returns the events written for button id: the sequence events
// for a sequence parent, the button's own events otherwise.
func (e *encoder) buttonEvents() [][]BlockEvent {
	events := make([][]BlockEvent, len(e.file.Buttons))
	for b, id := range e.buttonIDs {
		events[id] = b.Events
	}
	for _, seq := range e.level.Sequences {
		events[e.buttonIDs[seq.Buttons[0]]] = seq.Events
	}
	return events
}

// events builds the event table in first-seen order over the button table.
func (e *encoder) events() error {
	for i, events := range e.buttonEvents() {
		raw := &e.file.Buttons[i]
		for _, event := range events {
			if event == nil {
				return inconsistent("button %d has a nil event", i)
			}
			id, ok := e.eventIDs[event]
			if !ok {
				rawEvent, err := e.event(event)
				if err != nil {
					return fmt.Errorf("button %d: %w", i, err)
				}
				if len(e.file.BlockEvents) >= math.MaxUint16 {
					return inconsistent("too many block events")
				}
				id = uint16(len(e.file.BlockEvents))
				e.eventIDs[event] = id
				e.file.BlockEvents = append(e.file.BlockEvents, rawEvent)
			}
			raw.Events = append(raw.Events, id)
		}
	}
	return nil
}

func (e *encoder) event(event BlockEvent) (format.BlockEvent, error) {
	raw := format.BlockEvent{Type: event.Type()}
	var ok bool
	switch ev := event.(type) {
	case *AffectMovingPlatform:
		raw.TargetID, ok = e.platformIDs[ev.Platform]
		raw.Payload = ev.TraverseWaypoints
	case *AffectBumper:
		raw.TargetID, ok = e.bumperIDs[ev.Bumper]
		raw.Payload = uint16(ev.Action)
	case *TriggerAchievement:
		raw.TargetID, ok = ev.AchievementID, true
		raw.Payload = ev.Metadata
	case *AffectButton:
		raw.TargetID, ok = e.buttonIDs[ev.Button]
		raw.Payload = uint16(ev.Start)
	default:
		return raw, inconsistent("unknown block event %T", event)
	}
	if !ok {
		return raw, inconsistent("%T targets a part that is not placed", event)
	}
	return raw, nil
}

func (e *encoder) simpleParts() error {
	for p, part := range e.level.Parts() {
		switch part := part.(type) {
		case *FallingPlatform:
			e.slot(KindFallingPlatform, p, len(e.file.FallingPlatforms))
			e.file.FallingPlatforms = append(e.file.FallingPlatforms, format.FallingPlatform{Position: p, FloatTime: part.FloatTime})
		case *Checkpoint:
			e.slot(KindCheckpoint, p, len(e.file.Checkpoints))
			e.file.Checkpoints = append(e.file.Checkpoints, format.Checkpoint{Position: p, RespawnZ: part.RespawnZ, Radius: part.Radius})
		case *CameraTrigger:
			if part.Zoom < format.MinZoom || part.Zoom > format.MaxZoom {
				return inconsistent("camera trigger at %v: zoom %d outside [%d, %d]", p, part.Zoom, format.MinZoom, format.MaxZoom)
			}
			e.slot(KindCameraTrigger, p, len(e.file.CameraTriggers))
			e.file.CameraTriggers = append(e.file.CameraTriggers, format.CameraTrigger{
				Position:   p,
				Zoom:       part.Zoom,
				Radius:     part.Radius,
				Reset:      part.Reset,
				StartDelay: part.StartDelay,
				Duration:   part.Duration,
				AngleOrFOV: part.AngleOrFOV,
				SingleUse:  part.SingleUse,
				IsAngle:    part.IsAngle,
			})
		case *Prism:
			e.slot(KindPrism, p, len(e.file.Prisms))
			e.file.Prisms = append(e.file.Prisms, format.Prism{Position: p})
		case *Resizer:
			e.slot(KindResizer, p, len(e.file.Resizers))
			e.file.Resizers = append(e.file.Resizers, format.Resizer{Position: p, Visible: part.Visible, Direction: part.Direction})
		}
	}
	return nil
}

func (e *encoder) cubes() error {
	for p, part := range e.level.Parts() {
		var raw format.Cube
		var motion *CubeMotion
		switch part := part.(type) {
		case *HoloCube:
			motion = &part.CubeMotion
		case *DarkCube:
			motion = &part.CubeMotion
			raw.Dark = true
			raw.Radius = part.Radius
		default:
			continue
		}
		raw.Trigger = p
		raw.Position = p.Add(motion.CubeOffset)
		raw.KeyEvents = motion.KeyEvents
		raw.SyncID = format.NoID
		if motion.Sync != nil {
			id, ok := e.platformIDs[motion.Sync]
			if !ok {
				return inconsistent("%v at %v syncs with a moving platform that is not placed", part.Kind(), p)
			}
			raw.SyncID = id
		}
		e.slot(part.Kind(), p, len(e.file.Cubes))
		e.file.Cubes = append(e.file.Cubes, raw)
	}
	return nil
}
