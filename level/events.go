package level

import "github.com/eak1mov/go-libedge/level/format"

// BlockEvent is an effect fired by a button or a button sequence. Events are
// shared by identity: attaching one event to several buttons stores it once.
type BlockEvent interface {
	Type() BlockEventType
	blockEvent()
}

// AffectMovingPlatform starts the platform. TraverseWaypoints limits the
// number of waypoints it travels; 0 means all of them.
type AffectMovingPlatform struct {
	Platform          *MovingPlatform
	TraverseWaypoints uint16
}

type AffectBumper struct {
	Bumper *Bumper
	Action BumperAction
}

type TriggerAchievement struct {
	AchievementID int16
	Metadata      uint16
}

// AffectButton re-enables a button; Start is its state when the level starts.
type AffectButton struct {
	Button *Button
	Start  ButtonStart
}

func (*AffectMovingPlatform) Type() BlockEventType { return format.EventAffectMovingPlatform }
func (*AffectBumper) Type() BlockEventType         { return format.EventAffectBumper }
func (*TriggerAchievement) Type() BlockEventType   { return format.EventTriggerAchievement }
func (*AffectButton) Type() BlockEventType         { return format.EventAffectButton }

func (*AffectMovingPlatform) blockEvent() {}
func (*AffectBumper) blockEvent()         {}
func (*TriggerAchievement) blockEvent()   {}
func (*AffectButton) blockEvent()         {}

// ButtonSequence groups buttons that fire Events once all of them are
// pressed, in order when InOrder is set. Members stay placed in the dynamic
// map, must be ButtonStayDown and carry no events of their own.
type ButtonSequence struct {
	Buttons []*Button
	InOrder bool
	Events  []BlockEvent
}
