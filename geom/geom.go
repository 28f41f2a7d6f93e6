// Package geom provides integer points and sizes shared by the level packages.
package geom

import "fmt"

type Point3D struct {
	X int
	Y int
	Z int
}

// Up is one unit along the Z axis.
var Up = Point3D{X: 0, Y: 0, Z: 1}

func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

type Size3D struct {
	X int
	Y int
	Z int
}

func (s Size3D) Volume() int {
	return s.X * s.Y * s.Z
}

// Contains reports whether p lies in the box [0, s).
func (s Size3D) Contains(p Point3D) bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 && p.X < s.X && p.Y < s.Y && p.Z < s.Z
}

func (s Size3D) String() string {
	return fmt.Sprintf("%dx%dx%d", s.X, s.Y, s.Z)
}

type Size2D struct {
	X int
	Y int
}
