// Package format implements the on-disk layout of level files: a byte cursor,
// the packed bit grids, the header with its derived fields, and every entity
// table with cross references kept as plain table indices.
package format

import (
	"fmt"
	"math"

	"github.com/eak1mov/go-libedge/geom"
)

// Camera is the level-wide camera setting. AngleOrFOV and IsAngle are stored
// only when Zoom is negative.
type Camera struct {
	Zoom       int16
	AngleOrFOV int16
	IsAngle    bool
}

// File is a level file as flat tables. Tables reference each other by index:
// block events and buttons into MovingPlatforms, Bumpers and Buttons, buttons
// into BlockEvents, cubes into MovingPlatforms.
type File struct {
	Header    Header
	Minimap   *BitCube // nil encodes as zeros
	Collision *BitCube
	Spawn     geom.Point3D
	Camera    Camera
	Exit      geom.Point3D

	MovingPlatforms  []MovingPlatform
	Bumpers          []Bumper
	FallingPlatforms []FallingPlatform
	Checkpoints      []Checkpoint
	CameraTriggers   []CameraTrigger
	Prisms           []Prism
	BlockEvents      []BlockEvent
	Buttons          []Button
	Cubes            []Cube
	Resizers         []Resizer

	Theme     Theme
	MusicJava MusicJava
	Music     Music
}

func readTable[T any](r *Reader, section string, read func(*Reader) T) []T {
	r.Section(section)
	count := int(r.U16())
	items := make([]T, 0, min(count, r.Remaining()))
	for range count {
		if r.err != nil {
			break
		}
		items = append(items, read(r))
	}
	return items
}

func writeTable[T any](w *Writer, section string, items []T, write func(*Writer, *T)) {
	w.Count(section, len(items))
	for i := range items {
		write(w, &items[i])
	}
}

// readRemovedTable reads the count of a table the game no longer supports.
func readRemovedTable(r *Reader, section string) {
	r.Section(section)
	offset := r.Offset()
	if count := r.U16(); r.err == nil && count != 0 {
		r.Failf(offset, "%d entries in removed table", count)
	}
}

// Decode parses and validates a complete level file.
func Decode(data []byte) (*File, error) {
	r := NewReader(data)
	f := &File{}

	f.Header = readHeader(r)

	r.Section("minimap")
	f.Minimap = r.BitCube(f.Header.MinimapSize())
	r.Section("collision")
	f.Collision = r.BitCube(f.Header.Size)

	r.Section("spawn")
	offset := r.Offset()
	f.Spawn = r.Point3D()
	if r.err == nil && f.Spawn.Z < SpawnMinZ {
		r.Failf(offset, "spawn z = %d below %d", f.Spawn.Z, SpawnMinZ)
	}

	r.Section("camera")
	f.Camera.Zoom = r.I16()
	if f.Camera.Zoom < 0 {
		f.Camera.AngleOrFOV = r.I16()
		f.Camera.IsAngle = r.Bool()
	}

	r.Section("exit")
	f.Exit = r.Point3D()

	f.MovingPlatforms = readTable(r, "moving platforms", readMovingPlatform)
	f.Bumpers = readTable(r, "bumpers", readBumper)
	f.FallingPlatforms = readTable(r, "falling platforms", readFallingPlatform)
	f.Checkpoints = readTable(r, "checkpoints", readCheckpoint)
	f.CameraTriggers = readTable(r, "camera triggers", readCameraTrigger)

	offset = r.Offset()
	f.Prisms = readTable(r, "prisms", readPrism)
	if r.err == nil && len(f.Prisms) != int(f.Header.PrismCount) {
		r.Failf(offset, "%d prisms, header says %d", len(f.Prisms), f.Header.PrismCount)
	}

	readRemovedTable(r, "fans")
	f.BlockEvents = readTable(r, "block events", readBlockEvent)
	f.Buttons = readTable(r, "buttons", readButton)
	f.Cubes = readTable(r, "cubes", readCube)
	f.Resizers = readTable(r, "resizers", readResizer)
	readRemovedTable(r, "mini blocks")

	r.Section("trailer")
	f.Theme = readEnum(r, "theme", themeCount)
	f.MusicJava = readEnum(r, "legacy music", musicJavaCount)
	f.Music = readEnum(r, "music", musicCount)

	if err := r.Err(); err != nil {
		return nil, err
	}

	var err error
	f.checkReferences(func(section, format string, args ...any) {
		if err == nil {
			err = corruptf(section, format, args...)
		}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Encode serializes the file. The derived header fields and the prism count are
// recomputed from Collision and Prisms; the File itself is not modified.
func (f *File) Encode() ([]byte, error) {
	if f.Collision == nil {
		return nil, inconsistentf("missing collision grid")
	}
	if size := f.Collision.Size(); size.Y < 1 || size.X+size.Y+2*size.Z > math.MaxUint16 {
		return nil, inconsistentf("size %v does not fit the header", size)
	}
	header := f.Header
	header.Size = f.Collision.Size()
	header.PrismCount = uint16(len(f.Prisms))
	header.derive()

	if !header.Times.increasing() {
		return nil, inconsistentf("times %v are not strictly increasing", header.Times)
	}
	if f.Spawn.Z < SpawnMinZ {
		return nil, inconsistentf("spawn z = %d below %d", f.Spawn.Z, SpawnMinZ)
	}

	minimap := f.Minimap
	if minimap == nil {
		minimap = NewBitCube(header.MinimapSize())
	}
	if minimap.Size() != header.MinimapSize() {
		return nil, inconsistentf("minimap size %v, want %v", minimap.Size(), header.MinimapSize())
	}

	var err error
	f.checkReferences(func(section, format string, args ...any) {
		if err == nil {
			err = fmt.Errorf("%w: %s: %s", ErrInconsistent, section, fmt.Sprintf(format, args...))
		}
	})
	if err != nil {
		return nil, err
	}

	w := NewWriter()
	f.write(w, &header, minimap)
	return w.Bytes()
}

func (f *File) write(w *Writer, header *Header, minimap *BitCube) {
	writeHeader(w, header)
	w.BitCube(minimap)
	w.BitCube(f.Collision)
	w.Point3D(f.Spawn)
	w.I16(f.Camera.Zoom)
	if f.Camera.Zoom < 0 {
		w.I16(f.Camera.AngleOrFOV)
		w.Bool(f.Camera.IsAngle)
	}
	w.Point3D(f.Exit)

	writeTable(w, "moving platforms", f.MovingPlatforms, writeMovingPlatform)
	writeTable(w, "bumpers", f.Bumpers, writeBumper)
	writeTable(w, "falling platforms", f.FallingPlatforms, writeFallingPlatform)
	writeTable(w, "checkpoints", f.Checkpoints, writeCheckpoint)
	writeTable(w, "camera triggers", f.CameraTriggers, writeCameraTrigger)
	writeTable(w, "prisms", f.Prisms, writePrism)
	w.U16(0) // fans
	writeTable(w, "block events", f.BlockEvents, writeBlockEvent)
	writeTable(w, "buttons", f.Buttons, writeButton)
	writeTable(w, "cubes", f.Cubes, writeCube)
	writeTable(w, "resizers", f.Resizers, writeResizer)
	w.U16(0) // mini blocks

	checkEnum(w, "theme", f.Theme, themeCount)
	checkEnum(w, "legacy music", f.MusicJava, musicJavaCount)
	checkEnum(w, "music", f.Music, musicCount)
	w.U8(uint8(f.Theme))
	w.U8(uint8(f.MusicJava))
	w.U8(uint8(f.Music))
}

// checkReferences reports every table index that points nowhere and every
// button sequence whose parent and children disagree.
func (f *File) checkReferences(fail func(section, format string, args ...any)) {
	platforms := len(f.MovingPlatforms)
	inRange := func(id int16, n int) bool { return id >= 0 && int(id) < n }

	for i, e := range f.BlockEvents {
		switch e.Type {
		case EventAffectMovingPlatform:
			if !inRange(e.TargetID, platforms) {
				fail("block events", "entry %d: moving platform %d of %d", i, e.TargetID, platforms)
			}
		case EventAffectBumper:
			if !inRange(e.TargetID, len(f.Bumpers)) {
				fail("block events", "entry %d: bumper %d of %d", i, e.TargetID, len(f.Bumpers))
			}
		case EventAffectButton:
			if !inRange(e.TargetID, len(f.Buttons)) {
				fail("block events", "entry %d: button %d of %d", i, e.TargetID, len(f.Buttons))
			}
		}
	}

	children := make([]int, len(f.Buttons))
	for i, b := range f.Buttons {
		if b.Moving && !inRange(b.PlatformID, platforms) {
			fail("buttons", "entry %d: moving platform %d of %d", i, b.PlatformID, platforms)
		}
		for _, e := range b.Events {
			if int(e) >= len(f.BlockEvents) {
				fail("buttons", "entry %d: block event %d of %d", i, e, len(f.BlockEvents))
			}
		}
		if b.ParentID == NoID {
			continue
		}
		if !inRange(b.ParentID, len(f.Buttons)) {
			fail("buttons", "entry %d: parent %d of %d", i, b.ParentID, len(f.Buttons))
			continue
		}
		children[b.ParentID]++
	}
	for i, b := range f.Buttons {
		if int(b.ChildrenCount) != children[i] {
			fail("buttons", "entry %d: %d children, found %d", i, b.ChildrenCount, children[i])
		}
	}

	for i, c := range f.Cubes {
		if c.SyncID != NoID && !inRange(c.SyncID, platforms) {
			fail("cubes", "entry %d: moving platform %d of %d", i, c.SyncID, platforms)
		}
	}
}
