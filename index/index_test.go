package index_test

import (
	"bytes"
	"testing"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/index"
	"github.com/eak1mov/go-libedge/internal"
	"github.com/eak1mov/go-libedge/level"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/hilbert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadAll(t *testing.T) {
	items := []index.Item{
		{X: 0, Y: 0, Z: 1, Kind: uint32(level.KindSpawnPoint), Slot: 0},
		{X: -3, Y: 7, Z: 2, Kind: uint32(level.KindPrism), Slot: 4},
		{X: 100, Y: 200, Z: 30, Kind: uint32(level.KindButton), Slot: 65535},
	}

	var buf bytes.Buffer
	require.NoError(t, index.WriteAll(items, &buf))
	require.Equal(t, 3*20, buf.Len())

	got, err := index.ReadAll(buf.Bytes())
	require.NoError(t, err)
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("ReadAll() mismatch (-want+got):\n%v", diff)
	}
}

func TestFromLevel(t *testing.T) {
	l := internal.DemoLevel()

	items, err := index.FromLevel(l)
	require.NoError(t, err)

	slots, err := level.Layout(l)
	require.NoError(t, err)

	var fromSlots []index.Item
	for _, s := range slots {
		fromSlots = append(fromSlots, index.Item{
			X:    int32(s.Position.X),
			Y:    int32(s.Position.Y),
			Z:    int32(s.Position.Z),
			Kind: uint32(s.Kind),
			Slot: uint32(s.Index),
		})
	}
	less := func(a, b index.Item) bool {
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Slot < b.Slot
	}
	if diff := cmp.Diff(fromSlots, items, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("FromLevel() items mismatch (-want+got):\n%v", diff)
	}

	// The demo level spans 0..15 on both axes.
	h, err := hilbert.NewHilbert(16)
	require.NoError(t, err)
	prev := -1
	for _, item := range items {
		code, err := h.MapInverse(int(item.X), int(item.Y))
		require.NoError(t, err)
		if code < prev {
			t.Fatalf("item %+v out of Hilbert order", item)
		}
		prev = code
	}
}

func TestFromLevelStacked(t *testing.T) {
	l := level.New(1, geom.Point3D{X: -2, Y: 0, Z: 1}, geom.Point3D{X: 5, Y: 5, Z: 1})
	l.Place(geom.Point3D{X: 1, Y: 1, Z: 3}, &level.Prism{})
	l.Place(geom.Point3D{X: 1, Y: 1, Z: 2}, &level.Prism{})

	items, err := index.FromLevel(l)
	require.NoError(t, err)
	require.Len(t, items, 4)

	var prisms []index.Item
	for _, item := range items {
		if item.PartKind() == level.KindPrism {
			prisms = append(prisms, item)
		}
	}
	want := []index.Item{
		{X: 1, Y: 1, Z: 2, Kind: uint32(level.KindPrism), Slot: 0},
		{X: 1, Y: 1, Z: 3, Kind: uint32(level.KindPrism), Slot: 1},
	}
	if diff := cmp.Diff(want, prisms); diff != "" {
		t.Errorf("FromLevel() prisms mismatch (-want+got):\n%v", diff)
	}
	require.Equal(t, geom.Point3D{X: 1, Y: 1, Z: 2}, prisms[0].Position())
}

func TestFromLevelInvalid(t *testing.T) {
	l := level.New(1, geom.Point3D{}, geom.Point3D{Z: 1})
	l.Place(geom.Point3D{X: 2}, &level.SpawnPoint{})

	_, err := index.FromLevel(l)
	require.Error(t, err)
}
