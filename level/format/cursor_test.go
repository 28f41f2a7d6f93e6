package format_test

import (
	"errors"
	"io"
	"testing"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level/format"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	w := format.NewWriter()
	w.U8(0xAB)
	w.U16(0xBEEF)
	w.U32(0xDEADBEEF)
	w.U64(0x0123456789ABCDEF)
	w.I16(-2)
	w.I32(-100500)
	w.F32(0.5)
	w.Bool(true)
	w.String("edge")
	w.Point3D(geom.Point3D{X: -1, Y: 2, Z: -3})
	w.Size3D(geom.Size3D{X: 300, Y: 2, Z: 7})
	w.Size2D(geom.Size2D{X: 8, Y: 9})
	data, err := w.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB, 0xEF, 0xBE}, data[:3])

	r := format.NewReader(data)
	require.Equal(t, uint8(0xAB), r.U8())
	require.Equal(t, uint16(0xBEEF), r.U16())
	require.Equal(t, uint32(0xDEADBEEF), r.U32())
	require.Equal(t, uint64(0x0123456789ABCDEF), r.U64())
	require.Equal(t, int16(-2), r.I16())
	require.Equal(t, int32(-100500), r.I32())
	require.Equal(t, float32(0.5), r.F32())
	require.True(t, r.Bool())
	require.Equal(t, "edge", r.String(4))
	require.Equal(t, geom.Point3D{X: -1, Y: 2, Z: -3}, r.Point3D())
	require.Equal(t, geom.Size3D{X: 300, Y: 2, Z: 7}, r.Size3D())
	require.Equal(t, geom.Size2D{X: 8, Y: 9}, r.Size2D())
	require.NoError(t, r.Err())
	require.Equal(t, 0, r.Remaining())
}

func TestReaderStickyError(t *testing.T) {
	r := format.NewReader([]byte{1, 2, 3})
	r.Section("test")
	require.Equal(t, uint16(0x0201), r.U16())
	require.Equal(t, uint16(0), r.U16())
	require.Equal(t, uint8(0), r.U8())

	err := r.Err()
	require.Truef(t, errors.Is(err, io.ErrUnexpectedEOF), "%v", err)
	var corrupt *format.CorruptError
	require.True(t, errors.As(err, &corrupt))
	require.Equal(t, "test", corrupt.Section)
	require.Equal(t, 2, corrupt.Offset)
}

func TestWriterRangeErrors(t *testing.T) {
	for name, write := range map[string]func(*format.Writer){
		"Point3D": func(w *format.Writer) { w.Point3D(geom.Point3D{X: 40000}) },
		"Size3D":  func(w *format.Writer) { w.Size3D(geom.Size3D{X: 1, Y: 1, Z: 256}) },
		"Size2D":  func(w *format.Writer) { w.Size2D(geom.Size2D{X: -1}) },
		"Count":   func(w *format.Writer) { w.Count("table", 70000) },
	} {
		t.Run(name, func(t *testing.T) {
			w := format.NewWriter()
			write(w)
			_, err := w.Bytes()
			require.Truef(t, errors.Is(err, format.ErrInconsistent), "%v", err)
		})
	}
}
