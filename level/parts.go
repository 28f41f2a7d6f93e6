package level

import (
	"fmt"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level/format"
)

type (
	Theme            = format.Theme
	MusicJava        = format.MusicJava
	Music            = format.Music
	Times            = format.Times
	Camera           = format.Camera
	ButtonVisibility = format.ButtonVisibility
	ButtonMode       = format.ButtonMode
	ResizerDirection = format.ResizerDirection
	BlockEventType   = format.BlockEventType
	BumperAction     = format.BumperAction
	ButtonStart      = format.ButtonStart
	BumperSide       = format.BumperSide
	KeyEvent         = format.KeyEvent
)

// Kind identifies the variant of a Part.
type Kind uint8

const (
	KindMovingPlatform Kind = iota
	KindBumper
	KindFallingPlatform
	KindCheckpoint
	KindCameraTrigger
	KindPrism
	KindButton
	KindHoloCube
	KindDarkCube
	KindResizer
	KindSpawnPoint
	KindExitPoint
)

var kindNames = [...]string{
	"moving_platform", "bumper", "falling_platform", "checkpoint", "camera_trigger", "prism",
	"button", "holo_cube", "dark_cube", "resizer", "spawn_point", "exit_point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Part is an interactive element placed in the dynamic map. The map key is
// its position; parts do not store it themselves.
type Part interface {
	Kind() Kind
	part()
}

// NoLoop is the MovingPlatform.LoopStart of a platform that stops at its
// last waypoint.
const NoLoop = -1

// Waypoint is a stop on a platform path, relative to the platform position.
type Waypoint struct {
	Offset     geom.Point3D
	TravelTime uint16
	PauseTime  uint16
}

// MovingPlatform follows its waypoints. The first waypoint must have a zero
// offset: the platform starts where it is placed.
type MovingPlatform struct {
	AutoStart bool
	LoopStart int // waypoint index to continue from after the last one, or NoLoop
	FullBlock bool
	Waypoints []Waypoint
}

type Bumper struct {
	Enabled bool
	North   BumperSide // -Y
	East    BumperSide
	South   BumperSide
	West    BumperSide
}

type FallingPlatform struct {
	FloatTime uint16
}

type Checkpoint struct {
	RespawnZ int16
	Radius   geom.Size2D
}

// CameraTrigger changes the camera zoom. Zoom -1 switches to a free camera
// and enables the remaining fields.
type CameraTrigger struct {
	Zoom       int16
	Radius     geom.Size2D
	Reset      bool
	StartDelay uint16
	Duration   uint16
	AngleOrFOV int16
	SingleUse  bool
	IsAngle    bool
}

type Prism struct{}

// Button fires its events when pressed. A button with a Platform rides on it
// and must be placed one block above the platform.
type Button struct {
	Visibility   ButtonVisibility
	DisableCount uint8 // 0 = unlimited
	Mode         ButtonMode
	Platform     *MovingPlatform
	Events       []BlockEvent
}

// CubeMotion is shared by holo and dark cubes: when the player enters the
// trigger cell, a cube appears at the trigger position plus CubeOffset and
// replays KeyEvents. Sync delays the replay until the platform reaches its
// first waypoint.
type CubeMotion struct {
	CubeOffset geom.Point3D
	Sync       *MovingPlatform
	KeyEvents  []KeyEvent
}

type HoloCube struct {
	CubeMotion
}

type DarkCube struct {
	CubeMotion
	Radius geom.Size2D
}

type Resizer struct {
	Visible   bool
	Direction ResizerDirection
}

// SpawnPoint and ExitPoint mark the start and the goal of a level. A level
// has exactly one of each.
type SpawnPoint struct{}

type ExitPoint struct{}

func (*MovingPlatform) Kind() Kind  { return KindMovingPlatform }
func (*Bumper) Kind() Kind          { return KindBumper }
func (*FallingPlatform) Kind() Kind { return KindFallingPlatform }
func (*Checkpoint) Kind() Kind      { return KindCheckpoint }
func (*CameraTrigger) Kind() Kind   { return KindCameraTrigger }
func (*Prism) Kind() Kind           { return KindPrism }
func (*Button) Kind() Kind          { return KindButton }
func (*HoloCube) Kind() Kind        { return KindHoloCube }
func (*DarkCube) Kind() Kind        { return KindDarkCube }
func (*Resizer) Kind() Kind         { return KindResizer }
func (*SpawnPoint) Kind() Kind      { return KindSpawnPoint }
func (*ExitPoint) Kind() Kind       { return KindExitPoint }

func (*MovingPlatform) part()  {}
func (*Bumper) part()          {}
func (*FallingPlatform) part() {}
func (*Checkpoint) part()      {}
func (*CameraTrigger) part()   {}
func (*Prism) part()           {}
func (*Button) part()          {}
func (*HoloCube) part()        {}
func (*DarkCube) part()        {}
func (*Resizer) part()         {}
func (*SpawnPoint) part()      {}
func (*ExitPoint) part()       {}
