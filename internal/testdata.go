package internal

import (
	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level"
	"github.com/eak1mov/go-libedge/level/format"
	"github.com/eak1mov/go-libedge/voxel"
)

func pt(x, y, z int) geom.Point3D {
	return geom.Point3D{X: x, Y: y, Z: z}
}

// MinimalFile is a 1x1x1 level with one full block, spawn and exit at the
// origin and no parts.
func MinimalFile() []byte {
	return []byte{
		// id, name length, times
		0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00, 0x05, 0x00,
		// prism count, size (z, x, y)
		0x00, 0x00,
		0x01, 0x01, 0x00, 0x01, 0x00,
		// derived size fields
		0x02, 0x00, 0x04, 0x00, 0x01, 0x00, 0x01, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x00,
		// minimap, collision
		0x00,
		0x80,
		// spawn, camera (zoom -1, fov 0, not an angle), exit
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xff, 0xff, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		// twelve empty tables
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		// theme, legacy music, music
		0x00, 0x00, 0x00,
	}
}

// DemoLevel builds a small level that uses every kind of part, shared
// events and a button sequence.
func DemoLevel() *level.Level {
	l := level.New(9992, pt(8, 8, 6), pt(14, 2, 1))
	l.Name = "demo level"
	l.Music = format.MusicPad
	l.Times = level.Times{20, 30, 40, 50, 60}

	must(l.Static.Fill(pt(0, 0, 0), pt(16, 16, 1), voxel.Full()))
	must(l.Static.Fill(pt(6, 4, 0), pt(13, 7, 1), voxel.Empty()))
	must(l.SetBlock(pt(6, 0, 1), voxel.Full()))
	must(l.SetBlock(pt(6, 1, 2), voxel.Full()))
	for z := range 4 {
		must(l.SetBlock(pt(2, 12, z), voxel.Full()))
	}

	for y := 4; y <= 6; y++ {
		l.Place(pt(8, y, 1), &level.FallingPlatform{FloatTime: 10})
		l.Place(pt(5, y-2, 1), &level.Prism{})
	}
	side := level.BumperSide{StartDelay: 10, PulseRate: 10}
	bumper := &level.Bumper{Enabled: true, North: side, East: side, South: side, West: side}
	l.Place(pt(10, 1, 1), bumper)
	l.Place(pt(4, 12, 1), &level.Resizer{Visible: true, Direction: format.ResizerShrink})
	l.Place(pt(4, 13, 1), &level.Resizer{Visible: true, Direction: format.ResizerGrow})
	l.Place(pt(6, 1, 3), &level.CameraTrigger{Zoom: -1, Duration: 30, AngleOrFOV: 100, IsAngle: true})
	l.Place(pt(6, 1, 1), &level.CameraTrigger{Zoom: -1, Reset: true, Duration: 30})
	l.Place(pt(3, 9, 1), &level.CameraTrigger{Zoom: 4, Radius: geom.Size2D{X: 2, Y: 1}})
	l.Place(pt(12, 12, 1), &level.Checkpoint{RespawnZ: 1, Radius: geom.Size2D{X: 1, Y: 1}})

	square := &level.MovingPlatform{
		LoopStart: 0,
		FullBlock: true,
		Waypoints: []level.Waypoint{
			{Offset: pt(0, 0, 0), TravelTime: 25, PauseTime: 5},
			{Offset: pt(4, 0, 0), TravelTime: 25, PauseTime: 5},
			{Offset: pt(4, 4, 0), TravelTime: 25, PauseTime: 5},
			{Offset: pt(0, 4, 0), TravelTime: 25, PauseTime: 5},
		},
	}
	l.Place(pt(0, 0, 2), square)
	lift := &level.MovingPlatform{
		LoopStart: level.NoLoop,
		FullBlock: true,
		Waypoints: []level.Waypoint{
			{Offset: pt(0, 0, 0), TravelTime: 5, PauseTime: 5},
			{Offset: pt(0, 2, 0), TravelTime: 5, PauseTime: 10},
			{Offset: pt(0, 1, 0), TravelTime: 5, PauseTime: 5},
			{Offset: pt(0, 0, 1), TravelTime: 5, PauseTime: 5},
		},
	}
	l.Place(pt(0, 2, 3), lift)

	startSquare := &level.AffectMovingPlatform{Platform: square}
	l.Place(pt(1, 1, 1), &level.Button{Visibility: format.ButtonVisible, Mode: format.ButtonToggle, Events: []level.BlockEvent{startSquare}})
	l.Place(pt(1, 3, 1), &level.Button{Visibility: format.ButtonVisible, Mode: format.ButtonToggle, Events: []level.BlockEvent{
		&level.AffectMovingPlatform{Platform: lift, TraverseWaypoints: 2},
	}})
	l.Place(pt(0, 0, 3), &level.Button{Visibility: format.ButtonSemiTransparent, Mode: format.ButtonStayUp, Platform: square})

	sequence := &level.ButtonSequence{InOrder: true, Events: []level.BlockEvent{
		&level.AffectBumper{Bumper: bumper, Action: format.BumperStop},
		startSquare,
		&level.TriggerAchievement{AchievementID: 5, Metadata: 1},
	}}
	for x := 10; x <= 12; x++ {
		b := &level.Button{Visibility: format.ButtonVisible, Mode: format.ButtonStayDown, DisableCount: 1}
		sequence.Buttons = append(sequence.Buttons, b)
		l.Place(pt(x, 10, 1), b)
	}
	l.Sequences = append(l.Sequences, sequence)
	l.Place(pt(13, 10, 1), &level.Button{Visibility: format.ButtonInvisible, Mode: format.ButtonStayUp, Events: []level.BlockEvent{
		&level.AffectButton{Button: sequence.Buttons[0], Start: format.ButtonStartUp},
	}})

	l.Place(pt(3, 2, 1), &level.DarkCube{
		CubeMotion: level.CubeMotion{
			CubeOffset: pt(1, 6, 1),
			KeyEvents: []level.KeyEvent{
				{TimeOffset: 100, Direction: format.DirectionWest, Action: format.KeyDown},
				{TimeOffset: 120, Direction: format.DirectionWest, Action: format.KeyUp},
				{TimeOffset: 160, Direction: format.DirectionNorth, Action: format.KeyDown},
				{TimeOffset: 190, Direction: format.DirectionNorth, Action: format.KeyUp},
				{TimeOffset: 8000, Direction: format.DirectionWest, Action: format.KeyUp},
			},
		},
		Radius: geom.Size2D{X: 8, Y: 8},
	})
	l.Place(pt(14, 14, 1), &level.HoloCube{CubeMotion: level.CubeMotion{
		CubeOffset: pt(0, -2, 0),
		Sync:       square,
		KeyEvents:  []level.KeyEvent{{TimeOffset: 10, Direction: format.DirectionSouth, Action: format.KeyDown}},
	}})
	return l
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
