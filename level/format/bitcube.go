package format

import (
	"fmt"

	"github.com/eak1mov/go-libedge/geom"
)

// BitCube is a dense 3D grid of bits, used by the collision and minimap grids.
//
// On disk every z layer is stored as ceil(x*y/8) bytes: bits in row-major order
// (y-major, x-minor), most significant bit first, the last byte padded with zeros.
type BitCube struct {
	size geom.Size3D
	bits []bool // (z*size.Y + y)*size.X + x
}

func NewBitCube(size geom.Size3D) *BitCube {
	return &BitCube{size: size, bits: make([]bool, size.Volume())}
}

func (c *BitCube) Size() geom.Size3D {
	return c.size
}

// Get returns false for points outside the cube.
func (c *BitCube) Get(p geom.Point3D) bool {
	if !c.size.Contains(p) {
		return false
	}
	return c.bits[c.index(p)]
}

func (c *BitCube) Set(p geom.Point3D, value bool) {
	if !c.size.Contains(p) {
		panic(fmt.Sprintf("libedge: bit %v outside cube %v", p, c.size))
	}
	c.bits[c.index(p)] = value
}

// Count returns the number of set bits.
func (c *BitCube) Count() int {
	n := 0
	for _, b := range c.bits {
		if b {
			n++
		}
	}
	return n
}

func (c *BitCube) Equal(other *BitCube) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.size != other.size {
		return false
	}
	for i := range c.bits {
		if c.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

func (c *BitCube) index(p geom.Point3D) int {
	return (p.Z*c.size.Y+p.Y)*c.size.X + p.X
}

func LayerLength(size geom.Size3D) int {
	return (size.X*size.Y + 7) / 8
}

func PackedLength(size geom.Size3D) int {
	return LayerLength(size) * size.Z
}

func (c *BitCube) Pack() []byte {
	layerBits := c.size.X * c.size.Y
	layerLength := LayerLength(c.size)
	data := make([]byte, PackedLength(c.size))
	for z := range c.size.Z {
		layer := data[z*layerLength : (z+1)*layerLength]
		for i, bit := range c.bits[z*layerBits : (z+1)*layerBits] {
			if bit {
				layer[i/8] |= 0x80 >> (i % 8)
			}
		}
	}
	return data
}

// UnpackBitCube is the inverse of Pack. Padding bits are ignored.
func UnpackBitCube(data []byte, size geom.Size3D) (*BitCube, error) {
	if len(data) != PackedLength(size) {
		return nil, fmt.Errorf("%w: bit cube %v needs %d bytes, got %d", ErrCorrupt, size, PackedLength(size), len(data))
	}
	cube := NewBitCube(size)
	layerBits := size.X * size.Y
	layerLength := LayerLength(size)
	for z := range size.Z {
		layer := data[z*layerLength : (z+1)*layerLength]
		bits := cube.bits[z*layerBits : (z+1)*layerBits]
		for i := range bits {
			bits[i] = layer[i/8]&(0x80>>(i%8)) != 0
		}
	}
	return cube, nil
}

func (r *Reader) BitCube(size geom.Size3D) *BitCube {
	data := r.Bytes(PackedLength(size))
	if r.err != nil {
		return nil
	}
	cube, _ := UnpackBitCube(data, size)
	return cube
}

func (w *Writer) BitCube(c *BitCube) {
	w.WriteBytes(c.Pack())
}
