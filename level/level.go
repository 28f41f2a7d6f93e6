// Package level is the object model of a level: a static block map, the
// interactive parts placed in a sparse dynamic map, and the button sequences
// and events that link them. Decode and Encode convert between this model and
// the flat file layout of package format.
package level

import (
	"iter"

	"github.com/eak1mov/go-libedge/dynmap"
	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level/format"
	"github.com/eak1mov/go-libedge/voxel"
)

type Level struct {
	ID        int32
	Name      string
	Times     Times // S+, S, A, B, C thresholds, strictly increasing
	Theme     Theme
	MusicJava MusicJava
	Music     Music
	Camera    Camera

	Static    *voxel.StaticMap
	Dynamic   *dynmap.Map[Part]
	Sequences []*ButtonSequence

	// LegacyMinimap is kept from a decoded file and written back when its
	// size still matches the level. Nil encodes as an empty grid.
	LegacyMinimap *format.BitCube
}

// New returns an empty level with the spawn and exit points placed.
func New(id int32, spawn, exit geom.Point3D) *Level {
	l := &Level{
		ID:        id,
		Times:     Times{1, 2, 3, 4, 5},
		Theme:     format.ThemeWhite,
		MusicJava: format.MusicJavaMenus,
		Music:     format.MusicKakkoi,
		Camera:    Camera{Zoom: format.MinZoom},
		Static:    voxel.NewStaticMap(geom.Size3D{X: 1, Y: 1, Z: 1}),
		Dynamic:   dynmap.New[Part](geom.Size3D{X: 1, Y: 1, Z: 1}),
	}
	l.Place(spawn, &SpawnPoint{})
	l.Place(exit, &ExitPoint{})
	return l
}

// Size is the size of the static map.
func (l *Level) Size() geom.Size3D {
	return l.Static.Size()
}

func (l *Level) SetBlock(p geom.Point3D, b voxel.Block) error {
	return l.Static.Set(p, b)
}

// Place adds part at p. Several parts may share a cell.
func (l *Level) Place(p geom.Point3D, part Part) {
	l.Dynamic.Insert(p, part)
}

// Remove removes part from p and reports whether it was there.
func (l *Level) Remove(p geom.Point3D, part Part) bool {
	return l.Dynamic.RemoveFunc(p, func(q Part) bool { return q == part }) > 0
}

// Parts iterates over every placed part in coordinate order.
func (l *Level) Parts() iter.Seq2[geom.Point3D, Part] {
	return l.Dynamic.All()
}

// Placed is a part together with the position it is placed at.
type Placed[T Part] struct {
	Position geom.Point3D
	Part     T
}

// PartsOf returns every placed part of type T in coordinate order.
func PartsOf[T Part](l *Level) []Placed[T] {
	var parts []Placed[T]
	for p, part := range l.Dynamic.All() {
		if t, ok := part.(T); ok {
			parts = append(parts, Placed[T]{p, t})
		}
	}
	return parts
}

// SpawnPoint returns the position of the first spawn point.
func (l *Level) SpawnPoint() (geom.Point3D, bool) {
	return first[*SpawnPoint](l)
}

// SetSpawnPoint moves the spawn point to p, removing any other.
func (l *Level) SetSpawnPoint(p geom.Point3D) {
	removeAll[*SpawnPoint](l)
	l.Place(p, &SpawnPoint{})
}

func (l *Level) ExitPoint() (geom.Point3D, bool) {
	return first[*ExitPoint](l)
}

func (l *Level) SetExitPoint(p geom.Point3D) {
	removeAll[*ExitPoint](l)
	l.Place(p, &ExitPoint{})
}

func first[T Part](l *Level) (geom.Point3D, bool) {
	for p, part := range l.Dynamic.All() {
		if _, ok := part.(T); ok {
			return p, true
		}
	}
	return geom.Point3D{}, false
}

func removeAll[T Part](l *Level) {
	for _, placed := range PartsOf[T](l) {
		l.Dynamic.RemoveFunc(placed.Position, func(q Part) bool {
			_, ok := q.(T)
			return ok
		})
	}
}

// WaypointPosition returns the absolute position of waypoint i of a platform
// placed at p.
func (mp *MovingPlatform) WaypointPosition(p geom.Point3D, i int) geom.Point3D {
	return p.Add(mp.Waypoints[i].Offset)
}
