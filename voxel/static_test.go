package voxel_test

import (
	"errors"
	"math"
	"testing"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level/format"
	"github.com/eak1mov/go-libedge/voxel"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func p(x, y, z int) geom.Point3D {
	return geom.Point3D{X: x, Y: y, Z: z}
}

func TestThemeResolve(t *testing.T) {
	for _, tc := range []struct {
		ref   voxel.ThemeRef
		level format.Theme
		want  format.Theme
	}{
		{voxel.InheritTheme(), format.ThemeDarkGray, format.ThemeDarkGray},
		{voxel.FixedTheme(format.ThemeBlack), format.ThemeWhite, format.ThemeBlack},
		{voxel.DarkerTheme(1), format.ThemeWhite, format.ThemeLightGray},
		{voxel.DarkerTheme(1), format.ThemeBlack, format.ThemeWhite},
		{voxel.DarkerTheme(6), format.ThemeLightGray, format.ThemeBlack},
	} {
		if got := tc.ref.Resolve(tc.level); got != tc.want {
			t.Errorf("%v.Resolve(%v) = %v, want = %v", tc.ref, tc.level, got, tc.want)
		}
	}
}

func TestHeightResolve(t *testing.T) {
	if got, want := voxel.DefaultHeight().Resolve(0), float32(0.5); got != want {
		t.Errorf("Resolve(0) = %v, want = %v", got, want)
	}
	if got, want := voxel.DefaultHeight().Resolve(3), float32(1); got != want {
		t.Errorf("Resolve(3) = %v, want = %v", got, want)
	}
	if got, want := voxel.FixedHeight(0.25).Resolve(0), float32(0.25); got != want {
		t.Errorf("Resolve(0) = %v, want = %v", got, want)
	}

	for _, h := range []float32{-0.1, 1.5, float32(math.NaN())} {
		require.Panicsf(t, func() { voxel.FixedHeight(h) }, "FixedHeight(%v)", h)
	}
}

func TestStaticMapSetGrows(t *testing.T) {
	m := voxel.NewStaticMap(geom.Size3D{X: 2, Y: 2, Z: 1})
	if err := m.Set(p(1, 1, 0), voxel.Full()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := m.Set(p(4, 0, 2), voxel.Half()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if diff := cmp.Diff(geom.Size3D{X: 5, Y: 2, Z: 3}, m.Size()); diff != "" {
		t.Errorf("Size() mismatch (-want+got):\n%v", diff)
	}
	if got := m.Get(p(1, 1, 0)); got != voxel.Full() {
		t.Errorf("Get(1,1,0) = %v, want full block", got)
	}
	if got := m.Get(p(4, 0, 2)); got != voxel.Half() {
		t.Errorf("Get(4,0,2) = %v, want half block", got)
	}
	if got := m.Get(p(-1, 0, 0)); !got.IsEmpty() {
		t.Errorf("Get(-1,0,0) = %v, want empty block", got)
	}
	if err := m.Set(p(0, -1, 0), voxel.Full()); !errors.Is(err, voxel.ErrOutOfRange) {
		t.Errorf("Set(0,-1,0) error = %v, want ErrOutOfRange", err)
	}
}

func TestStaticMapResizeNeverShrinks(t *testing.T) {
	m := voxel.NewStaticMap(geom.Size3D{X: 4, Y: 4, Z: 4})
	_ = m.Set(p(3, 3, 3), voxel.Full())
	m.Resize(geom.Size3D{X: 2, Y: 6, Z: 1})
	if diff := cmp.Diff(geom.Size3D{X: 4, Y: 6, Z: 4}, m.Size()); diff != "" {
		t.Errorf("Size() mismatch (-want+got):\n%v", diff)
	}
	if got := m.Get(p(3, 3, 3)); got != voxel.Full() {
		t.Errorf("block lost on resize")
	}
}

func TestStaticMapPad(t *testing.T) {
	m := voxel.NewStaticMap(geom.Size3D{X: 2, Y: 2, Z: 2})
	_ = m.Set(p(1, 1, 1), voxel.Full())
	_ = m.Set(p(0, 0, 0), voxel.Half())
	m.Pad(voxel.Padding{West: 2, North: 1, Bottom: -1, Top: 2})
	if diff := cmp.Diff(geom.Size3D{X: 4, Y: 3, Z: 3}, m.Size()); diff != "" {
		t.Errorf("Size() mismatch (-want+got):\n%v", diff)
	}
	if got := m.Get(p(3, 2, 0)); got != voxel.Full() {
		t.Errorf("Get(3,2,0) = %v, want full block", got)
	}
	if got, want := m.Collision().Count(), 1; got != want {
		t.Errorf("Collision().Count() = %v, want = %v", got, want)
	}
}

func TestStaticMapFillAndBounds(t *testing.T) {
	m := voxel.NewStaticMap(geom.Size3D{X: 1, Y: 1, Z: 1})
	if err := m.Fill(p(2, 3, 0), p(6, 5, 2), voxel.Full()); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	_ = m.Set(p(3, 3, 1), voxel.Empty())

	origin, size := m.Bounds()
	if diff := cmp.Diff(p(2, 3, 0), origin); diff != "" {
		t.Errorf("Bounds() origin mismatch (-want+got):\n%v", diff)
	}
	if diff := cmp.Diff(geom.Size3D{X: 4, Y: 2, Z: 2}, size); diff != "" {
		t.Errorf("Bounds() size mismatch (-want+got):\n%v", diff)
	}
	if got, want := m.Collision().Count(), 4*2*2-1; got != want {
		t.Errorf("Collision().Count() = %v, want = %v", got, want)
	}

	_, size = voxel.NewStaticMap(geom.Size3D{X: 3, Y: 3, Z: 3}).Bounds()
	if diff := cmp.Diff(geom.Size3D{}, size); diff != "" {
		t.Errorf("Bounds() of empty map mismatch (-want+got):\n%v", diff)
	}
}

func TestStaticMapCollisionRoundTrip(t *testing.T) {
	cube := format.NewBitCube(geom.Size3D{X: 3, Y: 2, Z: 2})
	cube.Set(p(0, 0, 0), true)
	cube.Set(p(2, 1, 1), true)

	m := voxel.FromCollision(cube)
	if !m.Collision().Equal(cube) {
		t.Errorf("FromCollision(cube).Collision() != cube")
	}

	var visible []geom.Point3D
	for q, b := range m.Visible() {
		if b != voxel.Full() {
			t.Errorf("block at %v = %v, want full block", q, b)
		}
		visible = append(visible, q)
	}
	if diff := cmp.Diff([]geom.Point3D{p(0, 0, 0), p(2, 1, 1)}, visible); diff != "" {
		t.Errorf("Visible() mismatch (-want+got):\n%v", diff)
	}
}

func TestStaticMapEqual(t *testing.T) {
	a := voxel.NewStaticMap(geom.Size3D{X: 2, Y: 1, Z: 1})
	b := voxel.NewStaticMap(geom.Size3D{X: 2, Y: 1, Z: 1})
	if !a.Equal(b) {
		t.Errorf("empty maps differ")
	}
	_ = b.Set(p(1, 0, 0), voxel.Block{Visible: true, Theme: voxel.DarkerTheme(2)})
	if a.Equal(b) {
		t.Errorf("maps with different blocks are equal")
	}
}
