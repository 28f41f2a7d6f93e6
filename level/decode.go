package level

import (
	"fmt"
	"os"
	"slices"

	"github.com/eak1mov/go-libedge/dynmap"
	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level/format"
	"github.com/eak1mov/go-libedge/voxel"
)

// ReadFile reads and decodes the level file at path.
func ReadFile(path string, opts ...Option) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Decode parses a level file. Every table index in the file is resolved to
// the referenced part, and parent/child button records are regrouped into
// button sequences. Errors wrap format.ErrCorrupt.
func Decode(data []byte, opts ...Option) (*Level, error) {
	config := newConfig(opts)

	config.Logger.Debug("libedge: decode tables", "size", len(data))
	f, err := format.Decode(data)
	if err != nil {
		return nil, err
	}

	l := &Level{
		ID:            f.Header.ID,
		Name:          f.Header.Name,
		Times:         f.Header.Times,
		Theme:         f.Theme,
		MusicJava:     f.MusicJava,
		Music:         f.Music,
		Camera:        f.Camera,
		Static:        voxel.FromCollision(f.Collision),
		Dynamic:       dynmap.New[Part](f.Header.Size),
		LegacyMinimap: f.Minimap,
	}

	config.Logger.Debug("libedge: resolve references")
	d := decoder{file: f, level: l}
	d.readPlatforms()
	d.readBumpers()
	for _, raw := range f.FallingPlatforms {
		l.Place(raw.Position, &FallingPlatform{FloatTime: raw.FloatTime})
	}
	for _, raw := range f.Checkpoints {
		l.Place(raw.Position, &Checkpoint{RespawnZ: raw.RespawnZ, Radius: raw.Radius})
	}
	for _, raw := range f.CameraTriggers {
		l.Place(raw.Position, &CameraTrigger{
			Zoom:       raw.Zoom,
			Radius:     raw.Radius,
			Reset:      raw.Reset,
			StartDelay: raw.StartDelay,
			Duration:   raw.Duration,
			AngleOrFOV: raw.AngleOrFOV,
			SingleUse:  raw.SingleUse,
			IsAngle:    raw.IsAngle,
		})
	}
	for _, raw := range f.Prisms {
		l.Place(raw.Position, &Prism{})
	}
	d.readButtons()

	config.Logger.Debug("libedge: rebuild sequences")
	d.readSequences()

	d.placeButtons()
	d.readCubes()
	for _, raw := range f.Resizers {
		l.Place(raw.Position, &Resizer{Visible: raw.Visible, Direction: raw.Direction})
	}
	l.Place(f.Spawn, &SpawnPoint{})
	l.Place(f.Exit, &ExitPoint{})

	config.Logger.Debug("libedge: decoded", "parts", l.Dynamic.Len(), "sequences", len(l.Sequences))
	return l, nil
}

// decoder holds the parts in file order while indices are resolved.
// format.Decode has already checked that every index is in range.
type decoder struct {
	file  *format.File
	level *Level

	platforms         []*MovingPlatform
	platformPositions []geom.Point3D
	bumpers           []*Bumper
	buttons           []*Button
	events            []BlockEvent
}

func (d *decoder) readPlatforms() {
	for _, raw := range d.file.MovingPlatforms {
		anchor := raw.Waypoints[0].Position
		p := &MovingPlatform{
			AutoStart: raw.AutoStart,
			LoopStart: int(raw.LoopStart) - 1,
			FullBlock: raw.FullBlock,
			Waypoints: make([]Waypoint, len(raw.Waypoints)),
		}
		for i, w := range raw.Waypoints {
			p.Waypoints[i] = Waypoint{Offset: w.Position.Sub(anchor), TravelTime: w.TravelTime, PauseTime: w.PauseTime}
		}
		d.platforms = append(d.platforms, p)
		d.platformPositions = append(d.platformPositions, anchor)
		d.level.Place(anchor, p)
	}
}

func (d *decoder) readBumpers() {
	for _, raw := range d.file.Bumpers {
		b := &Bumper{Enabled: raw.Enabled, North: raw.North, East: raw.East, South: raw.South, West: raw.West}
		d.bumpers = append(d.bumpers, b)
		d.level.Place(raw.Position, b)
	}
}

// readButtons creates every button first so that events can point at them, then
// resolves events and attaches them.
func (d *decoder) readButtons() {
	d.buttons = make([]*Button, len(d.file.Buttons))
	for i, raw := range d.file.Buttons {
		d.buttons[i] = &Button{Visibility: raw.Visibility, DisableCount: raw.DisableCount, Mode: raw.Mode}
		if raw.Moving {
			d.buttons[i].Platform = d.platforms[raw.PlatformID]
		}
	}

	d.events = make([]BlockEvent, len(d.file.BlockEvents))
	for i, raw := range d.file.BlockEvents {
		switch raw.Type {
		case format.EventAffectMovingPlatform:
			d.events[i] = &AffectMovingPlatform{Platform: d.platforms[raw.TargetID], TraverseWaypoints: raw.Payload}
		case format.EventAffectBumper:
			d.events[i] = &AffectBumper{Bumper: d.bumpers[raw.TargetID], Action: BumperAction(raw.Payload)}
		case format.EventTriggerAchievement:
			d.events[i] = &TriggerAchievement{AchievementID: raw.TargetID, Metadata: raw.Payload}
		case format.EventAffectButton:
			d.events[i] = &AffectButton{Button: d.buttons[raw.TargetID], Start: ButtonStart(raw.Payload)}
		}
	}

	for i, raw := range d.file.Buttons {
		for _, e := range raw.Events {
			d.buttons[i].Events = append(d.buttons[i].Events, d.events[e])
		}
	}
}

// readSequences groups every button with children and its children, in file
// order, and moves the parent's events to the sequence.
func (d *decoder) readSequences() {
	children := make([][]*Button, len(d.buttons))
	for i, raw := range d.file.Buttons {
		if raw.ParentID != format.NoID {
			children[raw.ParentID] = append(children[raw.ParentID], d.buttons[i])
		}
	}
	for i, raw := range d.file.Buttons {
		if raw.ChildrenCount == 0 {
			continue
		}
		parent := d.buttons[i]
		d.level.Sequences = append(d.level.Sequences, &ButtonSequence{
			Buttons: slices.Concat([]*Button{parent}, children[i]),
			InOrder: raw.SequenceInOrder,
			Events:  parent.Events,
		})
		parent.Events = nil
	}
}

func (d *decoder) placeButtons() {
	for i, raw := range d.file.Buttons {
		position := raw.Position
		if raw.Moving {
			position = d.platformPositions[raw.PlatformID].Add(geom.Up)
		}
		d.level.Place(position, d.buttons[i])
	}
}

func (d *decoder) readCubes() {
	for _, raw := range d.file.Cubes {
		motion := CubeMotion{CubeOffset: raw.Position.Sub(raw.Trigger), KeyEvents: raw.KeyEvents}
		if raw.SyncID != format.NoID {
			motion.Sync = d.platforms[raw.SyncID]
		}
		if raw.Dark {
			d.level.Place(raw.Trigger, &DarkCube{CubeMotion: motion, Radius: raw.Radius})
		} else {
			d.level.Place(raw.Trigger, &HoloCube{CubeMotion: motion})
		}
	}
}
