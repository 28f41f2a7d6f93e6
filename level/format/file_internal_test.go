package format

import (
	"errors"
	"testing"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/stretchr/testify/require"
)

// encodeUnchecked writes f without the reference checks Encode performs.
func encodeUnchecked(t *testing.T, f *File) []byte {
	t.Helper()
	header := f.Header
	header.Size = f.Collision.Size()
	header.PrismCount = uint16(len(f.Prisms))
	header.derive()
	w := NewWriter()
	f.write(w, &header, NewBitCube(header.MinimapSize()))
	data, err := w.Bytes()
	require.NoError(t, err)
	return data
}

func minimalFile() *File {
	return &File{
		Header:    NewHeader(1, "", Times{1, 2, 3, 4, 5}, 0, geom.Size3D{}),
		Collision: NewBitCube(geom.Size3D{X: 2, Y: 2, Z: 1}),
		Camera:    Camera{Zoom: 2},
		MovingPlatforms: []MovingPlatform{{
			Waypoints: []Waypoint{{Position: geom.Point3D{X: 1}}},
		}},
	}
}

func TestDecodeRejectsDanglingReferences(t *testing.T) {
	for _, tc := range []struct {
		name    string
		section string
		mutate  func(*File)
	}{
		{"EventPlatform", "block events", func(f *File) {
			f.BlockEvents = []BlockEvent{{Type: EventAffectMovingPlatform, TargetID: 1}}
		}},
		{"EventBumper", "block events", func(f *File) {
			f.BlockEvents = []BlockEvent{{Type: EventAffectBumper, TargetID: 0}}
		}},
		{"EventButton", "block events", func(f *File) {
			f.BlockEvents = []BlockEvent{{Type: EventAffectButton, TargetID: -3}}
		}},
		{"ButtonEvent", "buttons", func(f *File) {
			f.Buttons = []Button{{ParentID: NoID, Events: []uint16{0}}}
		}},
		{"ButtonPlatform", "buttons", func(f *File) {
			f.Buttons = []Button{{ParentID: NoID, Moving: true, PlatformID: 1}}
		}},
		{"ButtonParent", "buttons", func(f *File) {
			f.Buttons = []Button{{ParentID: NoID}, {Mode: ButtonStayDown, ParentID: 4}}
		}},
		{"ChildrenCount", "buttons", func(f *File) {
			f.Buttons = []Button{{ParentID: NoID, ChildrenCount: 1}}
		}},
		{"CubeSync", "cubes", func(f *File) {
			f.Cubes = []Cube{{SyncID: 3}}
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := minimalFile()
			tc.mutate(f)
			_, err := Decode(encodeUnchecked(t, f))
			require.Truef(t, errors.Is(err, ErrCorrupt), "%v", err)
			var corrupt *CorruptError
			require.True(t, errors.As(err, &corrupt))
			require.Equal(t, tc.section, corrupt.Section)
		})
	}
}

func TestDecodeRejectsLegacyFields(t *testing.T) {
	data := encodeUnchecked(t, minimalFile())
	f, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, f.MovingPlatforms, 1)

	// The minimal file has a 2x2x1 grid and a 1x1x1 minimap: the moving
	// platform table starts after header, 1+1 grid bytes, spawn, camera, exit.
	start := len(SerializeHeader(&f.Header)) + 2 + 6 + 2 + 6
	require.Equal(t, byte(1), data[start])

	clones := start + 2 + 2
	bad := append([]byte(nil), data...)
	bad[clones] = 0
	_, err = Decode(bad)
	require.Truef(t, errors.Is(err, ErrCorrupt), "%v", err)

	count := clones + 2 + 1
	bad = append([]byte(nil), data...)
	bad[count] = 0
	_, err = Decode(bad)
	require.Truef(t, errors.Is(err, ErrCorrupt), "%v", err)
}

func TestDecodeRejectsInvalidRecords(t *testing.T) {
	// Offsets near the end of the file are counted back from the tail:
	// mini blocks count (2) and trailer (3), preceded by one u16 count per
	// empty table.
	const tail = 5

	for _, tc := range []struct {
		name    string
		section string
		mutate  func(*File)
		patch   func(data []byte) []byte
	}{
		{"SpawnBelowMinimum", "spawn", nil, func(data []byte) []byte {
			z := len(SerializeHeader(&minimalFile().Header)) + 2 + 4
			data[z], data[z+1] = 0xeb, 0xff // -21
			return data
		}},
		{"CameraTriggerZoom", "camera triggers", func(f *File) {
			f.CameraTriggers = []CameraTrigger{{Zoom: 2}}
		}, func(data []byte) []byte {
			// Trigger record: position, zoom, radius; then six empty counts.
			zoom := len(data) - tail - 6*2 - 2 - 2
			require.Equal(t, byte(2), data[zoom])
			data[zoom] = 7
			return data
		}},
		{"PrismEnergy", "prisms", func(f *File) {
			f.Prisms = []Prism{{}}
		}, func(data []byte) []byte {
			energy := len(data) - tail - 5*2 - 1
			require.Equal(t, legacyEnergy, data[energy])
			data[energy] = 0
			return data
		}},
		{"PrismCount", "prisms", func(f *File) {
			f.Prisms = []Prism{{}}
		}, func(data []byte) []byte {
			// id, name length, times
			const prismCount = 4 + 4 + 10
			require.Equal(t, byte(1), data[prismCount])
			data[prismCount] = 2
			return data
		}},
		{"FanCount", "fans", nil, func(data []byte) []byte {
			data[len(data)-tail-5*2] = 1
			return data
		}},
		{"ChildMode", "buttons", withSequence, func(data []byte) []byte {
			data[childRecord(data)+2] = uint8(ButtonToggle)
			return data
		}},
		{"ChildChildren", "buttons", withSequence, func(data []byte) []byte {
			data[childRecord(data)+6] = 1
			return data
		}},
		{"ChildEvents", "buttons", withSequence, func(data []byte) []byte {
			end := childRecord(data) + 16
			data[end-2] = 1
			return append(data[:end:end], append([]byte{0, 0}, data[end:]...)...)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := minimalFile()
			if tc.mutate != nil {
				tc.mutate(f)
			}
			data := encodeUnchecked(t, f)
			_, err := Decode(data)
			require.NoError(t, err)

			_, err = Decode(tc.patch(append([]byte(nil), data...)))
			require.Truef(t, errors.Is(err, ErrCorrupt), "%v", err)
			var corrupt *CorruptError
			require.True(t, errors.As(err, &corrupt))
			require.Equal(t, tc.section, corrupt.Section)
		})
	}
}

// withSequence adds a two-button sequence whose child is the last button.
func withSequence(f *File) {
	f.Buttons = []Button{
		{Mode: ButtonStayDown, ParentID: NoID, ChildrenCount: 1},
		{Mode: ButtonStayDown, ParentID: 0, Position: geom.Point3D{X: 1}},
	}
}

// childRecord returns the offset of the last button record of a file built
// by withSequence. A static button record is 16 bytes and is followed by the
// cubes, resizers and mini blocks counts and the trailer.
func childRecord(data []byte) int {
	return len(data) - 3 - 3*2 - 16
}
