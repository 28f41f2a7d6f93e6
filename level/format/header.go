package format

import (
	"math"

	"github.com/eak1mov/go-libedge/geom"
)

// Times are the medal thresholds S+, S, A, B and C; they must be strictly increasing.
type Times [5]uint16

const (
	minimapMarker = 10
	// SpawnMinZ is the lowest allowed spawn height.
	SpawnMinZ = -20
)

// Header is the fixed prefix of a level file. Only ID, Name, Times, PrismCount
// and Size are primary; the remaining fields are derived from Size and kept for
// compatibility with existing tooling.
type Header struct {
	ID         int32
	Name       string
	Times      Times
	PrismCount uint16
	Size       geom.Size3D

	SizeSum       uint16 // x + y
	SizeSumZ      uint16 // x + y + 2z
	MinimapWidth  uint16 // (x + y + 9) / 10
	MinimapLength uint16 // (x + y + 2z + 9) / 10
	MinimapMarker uint8  // always 10
	LastRow       uint16 // y - 1
	Reserved      uint16 // always 0
}

func NewHeader(id int32, name string, times Times, prismCount uint16, size geom.Size3D) Header {
	header := Header{ID: id, Name: name, Times: times, PrismCount: prismCount, Size: size}
	header.derive()
	return header
}

func (h *Header) derive() {
	h.SizeSum = uint16(h.Size.X + h.Size.Y)
	h.SizeSumZ = h.SizeSum + uint16(2*h.Size.Z)
	h.MinimapWidth = (h.SizeSum + 9) / 10
	h.MinimapLength = (h.SizeSumZ + 9) / 10
	h.MinimapMarker = minimapMarker
	h.LastRow = uint16(h.Size.Y - 1)
	h.Reserved = 0
}

// MinimapSize returns the dimensions of the legacy minimap grid.
func (h *Header) MinimapSize() geom.Size3D {
	return geom.Size3D{X: int(h.MinimapWidth), Y: int(h.MinimapLength), Z: 1}
}

// MinimapSize returns the legacy minimap dimensions derived from a level size.
func MinimapSize(size geom.Size3D) geom.Size3D {
	h := Header{Size: size}
	h.derive()
	return h.MinimapSize()
}

func (t Times) increasing() bool {
	for i := 1; i < len(t); i++ {
		if t[i-1] >= t[i] {
			return false
		}
	}
	return true
}

func readHeader(r *Reader) Header {
	var h Header
	r.Section("header")
	h.ID = r.I32()

	offset := r.Offset()
	nameLength := r.I32()
	if nameLength < 0 {
		r.Failf(offset, "negative name length %d", nameLength)
	}
	h.Name = r.String(int(nameLength))

	offset = r.Offset()
	for i := range h.Times {
		h.Times[i] = r.U16()
	}
	if r.err == nil && !h.Times.increasing() {
		r.Failf(offset, "times %v are not strictly increasing", h.Times)
	}

	h.PrismCount = r.U16()
	h.Size = r.Size3D()

	var want Header
	want.Size = h.Size
	want.derive()

	check := func(name string, got, want uint16) {
		offset := r.Offset() - 2
		if r.err == nil && got != want {
			r.Failf(offset, "%s = %d, want = %d", name, got, want)
		}
	}
	h.SizeSum = r.U16()
	check("size sum", h.SizeSum, want.SizeSum)
	h.SizeSumZ = r.U16()
	check("size sum with z", h.SizeSumZ, want.SizeSumZ)
	h.MinimapWidth = r.U16()
	check("minimap width", h.MinimapWidth, want.MinimapWidth)
	h.MinimapLength = r.U16()
	check("minimap length", h.MinimapLength, want.MinimapLength)

	offset = r.Offset()
	h.MinimapMarker = r.U8()
	if r.err == nil && h.MinimapMarker != minimapMarker {
		r.Failf(offset, "minimap marker = %d, want = %d", h.MinimapMarker, minimapMarker)
	}
	h.LastRow = r.U16()
	check("last row", h.LastRow, want.LastRow)
	h.Reserved = r.U16()
	check("reserved", h.Reserved, 0)
	return h
}

func writeHeader(w *Writer, h *Header) {
	w.I32(h.ID)
	if len(h.Name) > math.MaxInt32 {
		w.fail("name too long")
	}
	w.I32(int32(len(h.Name)))
	w.String(h.Name)
	for _, t := range h.Times {
		w.U16(t)
	}
	w.U16(h.PrismCount)
	w.Size3D(h.Size)
	w.U16(h.SizeSum)
	w.U16(h.SizeSumZ)
	w.U16(h.MinimapWidth)
	w.U16(h.MinimapLength)
	w.U8(h.MinimapMarker)
	w.U16(h.LastRow)
	w.U16(h.Reserved)
}

// SerializeHeader writes the header fields as they are, without re-deriving them.
func SerializeHeader(header *Header) []byte {
	w := NewWriter()
	writeHeader(w, header)
	return w.buf
}

// DeserializeHeader reads and validates a header from the start of buffer.
func DeserializeHeader(buffer []byte) (*Header, error) {
	r := NewReader(buffer)
	header := readHeader(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return &header, nil
}
