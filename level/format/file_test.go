package format_test

import (
	"errors"
	"testing"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level/format"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func p(x, y, z int) geom.Point3D {
	return geom.Point3D{X: x, Y: y, Z: z}
}

func sampleFile() *format.File {
	size := geom.Size3D{X: 10, Y: 6, Z: 3}
	collision := format.NewBitCube(size)
	for y := range size.Y {
		for x := range size.X {
			collision.Set(p(x, y, 0), true)
		}
	}
	header := format.NewHeader(7, "sample", format.Times{10, 20, 30, 40, 50}, 1, size)
	minimap := format.NewBitCube(header.MinimapSize())
	minimap.Set(p(1, 0, 0), true)

	return &format.File{
		Header:    header,
		Minimap:   minimap,
		Collision: collision,
		Spawn:     p(1, 1, 1),
		Camera:    format.Camera{Zoom: -1, AngleOrFOV: 30, IsAngle: true},
		Exit:      p(8, 4, 1),
		MovingPlatforms: []format.MovingPlatform{{
			AutoStart: true,
			LoopStart: 1,
			FullBlock: true,
			Waypoints: []format.Waypoint{
				{Position: p(3, 3, 1), TravelTime: 0, PauseTime: 5},
				{Position: p(3, 3, 2), TravelTime: 10, PauseTime: 5},
			},
		}},
		Bumpers: []format.Bumper{{
			Enabled:  true,
			Position: p(5, 1, 1),
			North:    format.BumperSide{StartDelay: -1, PulseRate: -1},
			East:     format.BumperSide{StartDelay: 4, PulseRate: 20},
			South:    format.BumperSide{StartDelay: -1, PulseRate: -1},
			West:     format.BumperSide{StartDelay: -1, PulseRate: -1},
		}},
		FallingPlatforms: []format.FallingPlatform{{Position: p(6, 2, 0), FloatTime: 12}},
		Checkpoints:      []format.Checkpoint{{Position: p(4, 4, 1), RespawnZ: 1, Radius: geom.Size2D{X: 1, Y: 2}}},
		CameraTriggers: []format.CameraTrigger{
			{Position: p(2, 2, 1), Zoom: 3, Radius: geom.Size2D{X: 2, Y: 2}},
			{Position: p(7, 2, 1), Zoom: -1, Radius: geom.Size2D{X: 1, Y: 1}, Reset: true, StartDelay: 2, Duration: 30, AngleOrFOV: 22, SingleUse: true},
		},
		Prisms: []format.Prism{{Position: p(9, 5, 1)}},
		BlockEvents: []format.BlockEvent{
			{Type: format.EventAffectMovingPlatform, TargetID: 0},
			{Type: format.EventAffectBumper, TargetID: 0, Payload: uint16(format.BumperStop)},
			{Type: format.EventTriggerAchievement, TargetID: 3},
			{Type: format.EventAffectButton, TargetID: 0, Payload: uint16(format.ButtonStartUp)},
		},
		Buttons: []format.Button{
			{Visibility: format.ButtonVisible, Mode: format.ButtonStayDown, ParentID: format.NoID, SequenceInOrder: true, ChildrenCount: 2, Position: p(0, 5, 1), Events: []uint16{0, 1}},
			{Visibility: format.ButtonVisible, Mode: format.ButtonStayDown, ParentID: 0, Position: p(1, 5, 1)},
			{Visibility: format.ButtonVisible, Mode: format.ButtonStayDown, ParentID: 0, Moving: true, PlatformID: 0},
			{Visibility: format.ButtonSemiTransparent, DisableCount: 1, Mode: format.ButtonToggle, ParentID: format.NoID, Position: p(2, 5, 1), Events: []uint16{2, 3}},
		},
		Cubes: []format.Cube{
			{Trigger: p(1, 2, 1), SyncID: format.NoID, Position: p(1, 3, 1), KeyEvents: []format.KeyEvent{
				{TimeOffset: 0, Direction: format.DirectionEast, Action: format.KeyDown},
				{TimeOffset: 8, Direction: format.DirectionEast, Action: format.KeyUp},
			}},
			{Trigger: p(2, 2, 1), Dark: true, Radius: geom.Size2D{X: 2, Y: 3}, SyncID: 0, Position: p(2, 3, 1)},
		},
		Resizers:  []format.Resizer{{Position: p(4, 1, 1), Visible: true, Direction: format.ResizerGrow}},
		Theme:     format.ThemeDarkGray,
		MusicJava: format.MusicJavaEdge,
		Music:     format.MusicKakkoi,
	}
}

func TestFileRoundTrip(t *testing.T) {
	file := sampleFile()
	data, err := file.Encode()
	require.NoError(t, err)

	decoded, err := format.Decode(data)
	require.NoError(t, err)
	if diff := cmp.Diff(file, decoded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Decode(Encode(file)) mismatch (-want+got):\n%v", diff)
	}

	again, err := decoded.Encode()
	require.NoError(t, err)
	if diff := cmp.Diff(data, again); diff != "" {
		t.Errorf("re-encode mismatch (-want+got):\n%v", diff)
	}
}

func TestFileEncodeDerivesHeader(t *testing.T) {
	file := sampleFile()
	file.Header.PrismCount = 40
	file.Header.SizeSum = 1
	file.Minimap = nil

	data, err := file.Encode()
	require.NoError(t, err)
	require.Equal(t, uint16(40), file.Header.PrismCount)

	decoded, err := format.Decode(data)
	require.NoError(t, err)
	require.Equal(t, uint16(1), decoded.Header.PrismCount)
	require.Equal(t, uint16(16), decoded.Header.SizeSum)
	require.Equal(t, 0, decoded.Minimap.Count())
}

func TestFileTrailingBytes(t *testing.T) {
	data, err := sampleFile().Encode()
	require.NoError(t, err)
	_, err = format.Decode(append(data, 1, 2, 3))
	require.NoError(t, err)
}

func TestFileTruncated(t *testing.T) {
	data, err := sampleFile().Encode()
	require.NoError(t, err)
	for _, n := range []int{0, 10, len(data) / 2, len(data) - 1} {
		_, err := format.Decode(data[:n])
		require.Truef(t, errors.Is(err, format.ErrCorrupt), "Decode(data[:%d]) = %v", n, err)
	}
}

func TestFileEncodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*format.File)
	}{
		{"Times", func(f *format.File) { f.Header.Times[4] = 1 }},
		{"SpawnZ", func(f *format.File) { f.Spawn.Z = -21 }},
		{"MinimapSize", func(f *format.File) { f.Minimap = format.NewBitCube(geom.Size3D{X: 1, Y: 1, Z: 1}) }},
		{"EventTarget", func(f *format.File) { f.BlockEvents[1].TargetID = 5 }},
		{"ButtonEvent", func(f *format.File) { f.Buttons[3].Events[0] = 9 }},
		{"BumperAction", func(f *format.File) { f.BlockEvents[1].Payload = 7 }},
		{"ButtonStart", func(f *format.File) { f.BlockEvents[3].Payload = 9 }},
		{"ButtonPlatform", func(f *format.File) { f.Buttons[2].PlatformID = 1 }},
		{"ChildrenCount", func(f *format.File) { f.Buttons[0].ChildrenCount = 3 }},
		{"ChildMode", func(f *format.File) { f.Buttons[1].Mode = format.ButtonToggle }},
		{"CubeSync", func(f *format.File) { f.Cubes[1].SyncID = 2 }},
		{"Zoom", func(f *format.File) { f.CameraTriggers[0].Zoom = 7 }},
		{"NoWaypoints", func(f *format.File) { f.MovingPlatforms[0].Waypoints = nil }},
		{"Theme", func(f *format.File) { f.Theme = 4 }},
		{"Position", func(f *format.File) { f.Prisms[0].Position.X = 1 << 16 }},
		{"ZeroHeight", func(f *format.File) { f.Collision = format.NewBitCube(geom.Size3D{X: 4, Y: 0, Z: 1}) }},
		{"SizeSumOverflow", func(f *format.File) { f.Collision = format.NewBitCube(geom.Size3D{X: 65534, Y: 1, Z: 1}) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			file := sampleFile()
			tc.mutate(file)
			_, err := file.Encode()
			require.Truef(t, errors.Is(err, format.ErrInconsistent), "%v", err)
		})
	}
}

func TestFileDecodeCorruption(t *testing.T) {
	data, err := sampleFile().Encode()
	require.NoError(t, err)

	// Trailer is theme, legacy music, music.
	theme := len(data) - 3
	bad := append([]byte(nil), data...)
	bad[theme] = 4
	_, err = format.Decode(bad)
	var corrupt *format.CorruptError
	require.True(t, errors.As(err, &corrupt), "%v", err)
	require.Equal(t, "trailer", corrupt.Section)
	require.Equal(t, theme, corrupt.Offset)

	// Mini blocks count precedes the trailer.
	bad = append([]byte(nil), data...)
	bad[theme-2] = 1
	_, err = format.Decode(bad)
	require.True(t, errors.As(err, &corrupt), "%v", err)
	require.Equal(t, "mini blocks", corrupt.Section)
}
