// Package dynmap provides a sparse 3D container that keeps any number of values
// per cell and accepts negative coordinates.
package dynmap

import (
	"iter"
	"slices"

	"github.com/eak1mov/go-libedge/geom"
)

// Map stores values by logical coordinate. The backing grid covers the box
// [-offset, -offset+extent) and grows on insert; lookups outside it are empty.
type Map[T any] struct {
	offset geom.Point3D // backing index of logical (0,0,0)
	extent geom.Size3D
	cells  [][]T
	count  int
}

// New returns an empty map whose backing grid covers [0, size).
func New[T any](size geom.Size3D) *Map[T] {
	return &Map[T]{extent: size, cells: make([][]T, size.Volume())}
}

// Offset is the backing index of the logical origin on each axis.
func (m *Map[T]) Offset() geom.Point3D {
	return m.offset
}

// Extent is the size of the backing grid.
func (m *Map[T]) Extent() geom.Size3D {
	return m.extent
}

// Len is the number of stored values.
func (m *Map[T]) Len() int {
	return m.count
}

func (m *Map[T]) cell(p geom.Point3D) (int, bool) {
	q := p.Add(m.offset)
	if !m.extent.Contains(q) {
		return 0, false
	}
	return (q.X*m.extent.Y+q.Y)*m.extent.Z + q.Z, true
}

// Get returns the values at p in insertion order. The slice must not be modified.
func (m *Map[T]) Get(p geom.Point3D) []T {
	if i, ok := m.cell(p); ok {
		return m.cells[i]
	}
	return nil
}

// Insert appends v to the values at p, growing the grid when needed.
func (m *Map[T]) Insert(p geom.Point3D, v T) {
	i, ok := m.cell(p)
	if !ok {
		m.grow(p)
		i, _ = m.cell(p)
	}
	m.cells[i] = append(m.cells[i], v)
	m.count++
}

// grow pads the grid on every axis where p falls outside it. Padding on the
// negative side shifts the offset by the same amount so stored coordinates
// stay reachable.
func (m *Map[T]) grow(p geom.Point3D) {
	q := p.Add(m.offset)
	low := geom.Point3D{X: max(0, -q.X), Y: max(0, -q.Y), Z: max(0, -q.Z)}
	high := geom.Point3D{
		X: max(0, q.X-m.extent.X+1),
		Y: max(0, q.Y-m.extent.Y+1),
		Z: max(0, q.Z-m.extent.Z+1),
	}
	grown := &Map[T]{
		offset: m.offset.Add(low),
		extent: geom.Size3D{
			X: m.extent.X + low.X + high.X,
			Y: m.extent.Y + low.Y + high.Y,
			Z: m.extent.Z + low.Z + high.Z,
		},
		count: m.count,
	}
	grown.cells = make([][]T, grown.extent.Volume())
	for x := range m.extent.X {
		for y := range m.extent.Y {
			for z := range m.extent.Z {
				from := (x*m.extent.Y+y)*m.extent.Z + z
				to := ((x+low.X)*grown.extent.Y+(y+low.Y))*grown.extent.Z + (z + low.Z)
				grown.cells[to] = m.cells[from]
			}
		}
	}
	*m = *grown
}

// RemoveFunc removes the values at p for which del returns true and reports
// how many were removed. The grid never shrinks.
func (m *Map[T]) RemoveFunc(p geom.Point3D, del func(T) bool) int {
	i, ok := m.cell(p)
	if !ok {
		return 0
	}
	n := len(m.cells[i])
	m.cells[i] = slices.DeleteFunc(m.cells[i], del)
	if len(m.cells[i]) == 0 {
		m.cells[i] = nil
	}
	removed := n - len(m.cells[i])
	m.count -= removed
	return removed
}

// All iterates over every value ordered by x, then y, then z, and by insertion
// order within a cell.
func (m *Map[T]) All() iter.Seq2[geom.Point3D, T] {
	return func(yield func(geom.Point3D, T) bool) {
		for i, values := range m.cells {
			if len(values) == 0 {
				continue
			}
			q := geom.Point3D{
				X: i / (m.extent.Y * m.extent.Z),
				Y: i / m.extent.Z % m.extent.Y,
				Z: i % m.extent.Z,
			}
			p := q.Sub(m.offset)
			for _, v := range values {
				if !yield(p, v) {
					return
				}
			}
		}
	}
}
