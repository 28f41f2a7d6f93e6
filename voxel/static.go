package voxel

import (
	"errors"
	"fmt"
	"iter"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level/format"
)

var ErrOutOfRange = errors.New("libedge: block coordinate out of range")

// StaticMap is a dense grid of blocks addressed by non-negative coordinates.
// Lookups outside the grid yield the empty block; Set grows the grid.
type StaticMap struct {
	size   geom.Size3D
	blocks []Block // (z*Y + y)*X + x
}

func NewStaticMap(size geom.Size3D) *StaticMap {
	return &StaticMap{size: size, blocks: make([]Block, size.Volume())}
}

// FromCollision builds a map with a full block for every set bit.
func FromCollision(c *format.BitCube) *StaticMap {
	m := NewStaticMap(c.Size())
	for p := range m.points() {
		if c.Get(p) {
			m.blocks[m.index(p)] = Full()
		}
	}
	return m
}

func (m *StaticMap) Size() geom.Size3D {
	return m.size
}

func (m *StaticMap) index(p geom.Point3D) int {
	return (p.Z*m.size.Y+p.Y)*m.size.X + p.X
}

// points iterates over the grid in storage order.
func (m *StaticMap) points() iter.Seq[geom.Point3D] {
	return func(yield func(geom.Point3D) bool) {
		for z := range m.size.Z {
			for y := range m.size.Y {
				for x := range m.size.X {
					if !yield(geom.Point3D{X: x, Y: y, Z: z}) {
						return
					}
				}
			}
		}
	}
}

func (m *StaticMap) Get(p geom.Point3D) Block {
	if !m.size.Contains(p) {
		return Empty()
	}
	return m.blocks[m.index(p)]
}

// Set stores b at p, extending the grid when p lies beyond it.
func (m *StaticMap) Set(p geom.Point3D, b Block) error {
	if p.X < 0 || p.Y < 0 || p.Z < 0 {
		return fmt.Errorf("%w: %v", ErrOutOfRange, p)
	}
	if !m.size.Contains(p) {
		m.Resize(geom.Size3D{X: max(m.size.X, p.X+1), Y: max(m.size.Y, p.Y+1), Z: max(m.size.Z, p.Z+1)})
	}
	m.blocks[m.index(p)] = b
	return nil
}

// Fill sets every block in the half-open box [from, to).
func (m *StaticMap) Fill(from, to geom.Point3D, b Block) error {
	if from.X < 0 || from.Y < 0 || from.Z < 0 {
		return fmt.Errorf("%w: %v", ErrOutOfRange, from)
	}
	if to.X <= from.X || to.Y <= from.Y || to.Z <= from.Z {
		return nil
	}
	m.Resize(geom.Size3D{X: to.X, Y: to.Y, Z: to.Z})
	for z := from.Z; z < to.Z; z++ {
		for y := from.Y; y < to.Y; y++ {
			for x := from.X; x < to.X; x++ {
				m.blocks[m.index(geom.Point3D{X: x, Y: y, Z: z})] = b
			}
		}
	}
	return nil
}

// Resize extends the grid to at least size, adding empty blocks on the east,
// south and top faces. Dimensions are never reduced.
func (m *StaticMap) Resize(size geom.Size3D) {
	size = geom.Size3D{X: max(m.size.X, size.X), Y: max(m.size.Y, size.Y), Z: max(m.size.Z, size.Z)}
	if size == m.size {
		return
	}
	m.reshape(size, geom.Point3D{})
}

// Padding is the number of blocks added on each face of the grid.
// Negative values remove blocks from that face.
type Padding struct {
	West, East   int // -X, +X
	North, South int // -Y, +Y
	Bottom, Top  int // -Z, +Z
}

// Pad grows or crops the grid on each face. Blocks keep their position
// relative to each other, so coordinates shift by the west, north and bottom
// padding.
func (m *StaticMap) Pad(p Padding) {
	size := geom.Size3D{
		X: max(0, m.size.X+p.West+p.East),
		Y: max(0, m.size.Y+p.North+p.South),
		Z: max(0, m.size.Z+p.Bottom+p.Top),
	}
	m.reshape(size, geom.Point3D{X: p.West, Y: p.North, Z: p.Bottom})
}

// reshape copies the grid into a new one of the given size, moving the block
// at p to p+shift and dropping blocks that fall outside.
func (m *StaticMap) reshape(size geom.Size3D, shift geom.Point3D) {
	resized := NewStaticMap(size)
	for p := range m.points() {
		q := p.Add(shift)
		if size.Contains(q) {
			resized.blocks[resized.index(q)] = m.blocks[m.index(p)]
		}
	}
	*m = *resized
}

// Collision projects the grid to its collision bits.
func (m *StaticMap) Collision() *format.BitCube {
	c := format.NewBitCube(m.size)
	for p := range m.points() {
		if m.blocks[m.index(p)].Collision {
			c.Set(p, true)
		}
	}
	return c
}

// Bounds returns the smallest box holding every non-empty block.
// The size is zero when the map is empty.
func (m *StaticMap) Bounds() (geom.Point3D, geom.Size3D) {
	lo := geom.Point3D{X: m.size.X, Y: m.size.Y, Z: m.size.Z}
	hi := geom.Point3D{X: -1, Y: -1, Z: -1}
	for p := range m.points() {
		if m.blocks[m.index(p)].IsEmpty() {
			continue
		}
		lo = geom.Point3D{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = geom.Point3D{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	if hi.X < 0 {
		return geom.Point3D{}, geom.Size3D{}
	}
	return lo, geom.Size3D{X: hi.X - lo.X + 1, Y: hi.Y - lo.Y + 1, Z: hi.Z - lo.Z + 1}
}

// Visible iterates over the visible blocks in storage order (z, then y, then x).
func (m *StaticMap) Visible() iter.Seq2[geom.Point3D, Block] {
	return func(yield func(geom.Point3D, Block) bool) {
		for p := range m.points() {
			if b := m.blocks[m.index(p)]; b.Visible && !yield(p, b) {
				return
			}
		}
	}
}

func (m *StaticMap) Equal(other *StaticMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.size != other.size {
		return false
	}
	for i := range m.blocks {
		if m.blocks[i] != other.blocks[i] {
			return false
		}
	}
	return true
}
