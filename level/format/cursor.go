package format

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/eak1mov/go-libedge/geom"
)

// Reader is a little-endian cursor over a level file.
// The first failure is sticky: later reads return zero values and Err reports it.
type Reader struct {
	data    []byte
	offset  int
	section string
	err     error
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data, section: "file"}
}

// Section names the part of the file being read; it is reported by CorruptError.
func (r *Reader) Section(name string) {
	r.section = name
}

func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

func (r *Reader) Err() error {
	return r.err
}

// Failf records a corruption of the field starting at offset.
func (r *Reader) Failf(offset int, format string, args ...any) {
	if r.err != nil {
		return
	}
	r.err = &CorruptError{Section: r.section, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Remaining() < n {
		r.err = &CorruptError{
			Section: r.section,
			Offset:  r.offset,
			Reason:  fmt.Sprintf("need %d bytes, %d left", n, r.Remaining()),
			Err:     io.ErrUnexpectedEOF,
		}
		return nil
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b
}

func (r *Reader) U8() uint8 {
	b := r.next(1)
	if len(b) < 1 {
		return 0
	}
	return b[0]
}

func (r *Reader) U16() uint16 {
	b := r.next(2)
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) U32() uint32 {
	b := r.next(4)
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) U64() uint64 {
	b := r.next(8)
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *Reader) I16() int16 {
	return int16(r.U16())
}

func (r *Reader) I32() int32 {
	return int32(r.U32())
}

func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

// Bool reads a u8 flag; any non-zero value is true.
func (r *Reader) Bool() bool {
	return r.U8() != 0
}

func (r *Reader) Bytes(n int) []byte {
	return r.next(n)
}

func (r *Reader) String(n int) string {
	return string(r.next(n))
}

func (r *Reader) Point3D() geom.Point3D {
	x := r.I16()
	y := r.I16()
	z := r.I16()
	return geom.Point3D{X: int(x), Y: int(y), Z: int(z)}
}

// Size3D reads z:u8 followed by x:u16 and y:u16.
func (r *Reader) Size3D() geom.Size3D {
	z := r.U8()
	x := r.U16()
	y := r.U16()
	return geom.Size3D{X: int(x), Y: int(y), Z: int(z)}
}

func (r *Reader) Size2D() geom.Size2D {
	x := r.U8()
	y := r.U8()
	return geom.Size2D{X: int(x), Y: int(y)}
}

// Writer appends little-endian fields to a growable buffer.
// Values that do not fit their on-disk width make Bytes fail with ErrInconsistent.
type Writer struct {
	buf []byte
	err error
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 1024)}
}

func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) fail(format string, args ...any) {
	if w.err == nil {
		w.err = inconsistentf(format, args...)
	}
}

func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) U16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) U64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) I16(v int16) {
	w.U16(uint16(v))
}

func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) String(s string) {
	w.buf = append(w.buf, s...)
}

// Count writes a u16 table length.
func (w *Writer) Count(name string, n int) {
	if n > math.MaxUint16 {
		w.fail("%s: %d entries do not fit in u16", name, n)
	}
	w.U16(uint16(n))
}

func (w *Writer) Point3D(p geom.Point3D) {
	for _, v := range []int{p.X, p.Y, p.Z} {
		if v < math.MinInt16 || v > math.MaxInt16 {
			w.fail("point %v does not fit in i16", p)
		}
	}
	w.I16(int16(p.X))
	w.I16(int16(p.Y))
	w.I16(int16(p.Z))
}

func (w *Writer) Size3D(s geom.Size3D) {
	if s.X < 0 || s.X > math.MaxUint16 || s.Y < 0 || s.Y > math.MaxUint16 || s.Z < 0 || s.Z > math.MaxUint8 {
		w.fail("size %v does not fit in z:u8 x:u16 y:u16", s)
	}
	w.U8(uint8(s.Z))
	w.U16(uint16(s.X))
	w.U16(uint16(s.Y))
}

func (w *Writer) Size2D(s geom.Size2D) {
	if s.X < 0 || s.X > math.MaxUint8 || s.Y < 0 || s.Y > math.MaxUint8 {
		w.fail("size %v does not fit in u8", s)
	}
	w.U8(uint8(s.X))
	w.U8(uint8(s.Y))
}
