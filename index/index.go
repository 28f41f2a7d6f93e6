// Package index provides a flat binary placement index of level parts.
package index

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"io"
	"math/bits"
	"slices"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level"
	"github.com/google/hilbert"
)

// Item represents a single record in the index, mapping a placed part (X, Y, Z,
// Kind) to its index (Slot) in the table of that kind in the level file.
// It is designed to be easily portable to other languages and utilities.
type Item struct {
	X    int32
	Y    int32
	Z    int32
	Kind uint32
	Slot uint32
}

func (i Item) Position() geom.Point3D {
	return geom.Point3D{X: int(i.X), Y: int(i.Y), Z: int(i.Z)}
}

func (i Item) PartKind() level.Kind {
	return level.Kind(i.Kind)
}

// FromLevel lists every placed part of l with its file slot. Items are ordered
// along a Hilbert curve over the (x, y) plane, then by z, kind and slot, so
// parts close on the map stay close in the index.
func FromLevel(l *level.Level) ([]Item, error) {
	slots, err := level.Layout(l)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}

	minX, minY := slots[0].Position.X, slots[0].Position.Y
	maxX, maxY := minX, minY
	for _, s := range slots {
		minX, maxX = min(minX, s.Position.X), max(maxX, s.Position.X)
		minY, maxY = min(minY, s.Position.Y), max(maxY, s.Position.Y)
	}
	side := 1 << bits.Len(uint(max(maxX-minX, maxY-minY)))
	h, err := hilbert.NewHilbert(side)
	if err != nil {
		return nil, err
	}

	type coded struct {
		code int
		item Item
	}
	items := make([]coded, 0, len(slots))
	for _, s := range slots {
		code, err := h.MapInverse(s.Position.X-minX, s.Position.Y-minY)
		if err != nil {
			return nil, err
		}
		items = append(items, coded{code, Item{
			X:    int32(s.Position.X),
			Y:    int32(s.Position.Y),
			Z:    int32(s.Position.Z),
			Kind: uint32(s.Kind),
			Slot: uint32(s.Index),
		}})
	}
	slices.SortFunc(items, func(a, b coded) int {
		return cmp.Or(
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.item.Z, b.item.Z),
			cmp.Compare(a.item.Kind, b.item.Kind),
			cmp.Compare(a.item.Slot, b.item.Slot),
		)
	})

	result := make([]Item, len(items))
	for i, c := range items {
		result[i] = c.item
	}
	return result, nil
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	count := len(indexData) / binary.Size(Item{})
	items := make([]Item, count)

	err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}
