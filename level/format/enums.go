package format

import "fmt"

type Theme uint8

const (
	ThemeWhite Theme = iota
	ThemeLightGray
	ThemeDarkGray
	ThemeBlack
	themeCount
)

var themeNames = [...]string{"white", "light_gray", "dark_gray", "black"}

func (t Theme) String() string {
	if t < themeCount {
		return themeNames[t]
	}
	return fmt.Sprintf("Theme(%d)", uint8(t))
}

// MusicJava is the soundtrack of the legacy Java port of the game.
type MusicJava uint8

const (
	MusicJavaMenus MusicJava = iota
	MusicJavaBraintonik
	MusicJavaCubeDance
	MusicJavaEssai2
	MusicJavaEssai01
	MusicJavaTest
	MusicJavaMysteryCube
	MusicJavaEdge
	MusicJavaJungle
	MusicJavaRetardTonic
	MusicJavaOldschoolSimon
	MusicJavaPlanant
	musicJavaCount
)

type Music uint8

const (
	MusicTitle Music = iota
	MusicEternity
	MusicQuiet
	MusicPad
	MusicJingle
	MusicTec
	MusicKakkoi
	MusicDark
	MusicSquadron
	MusicEightBits
	MusicPixel
	MusicJupiter
	MusicShame
	MusicDebrief
	MusicSpace
	MusicVoyageGeometrique
	MusicMZone
	MusicR2
	MusicMysteryCube
	MusicDuty
	MusicPerfectCell
	MusicFun
	MusicLol
	MusicLostway
	MusicWallStreet
	musicCount
)

var musicNames = [...]string{
	"title", "eternity", "quiet", "pad", "jingle", "tec", "kakkoi", "dark", "squadron",
	"eight_bits", "pixel", "jupiter", "shame", "debrief", "space", "voyage_geometrique",
	"mzone", "r2", "mystery_cube", "duty", "perfect_cell", "fun", "lol", "lostway", "wall_street",
}

func (m Music) String() string {
	if m < musicCount {
		return musicNames[m]
	}
	return fmt.Sprintf("Music(%d)", uint8(m))
}

type ButtonVisibility uint8

const (
	ButtonInvisible ButtonVisibility = iota
	ButtonVisible
	ButtonSemiTransparent
	buttonVisibilityCount
)

// ButtonMode controls how a button reacts to being pressed.
//   - ButtonToggle pops back up when released and moves affected platforms back.
//   - ButtonStayUp can be pressed multiple times.
//   - ButtonStayDown is pressed once, but can be re-enabled by other buttons.
type ButtonMode uint8

const (
	ButtonToggle ButtonMode = iota
	ButtonStayUp
	ButtonStayDown
	buttonModeCount
)

type ResizerDirection uint8

const (
	ResizerShrink ResizerDirection = iota
	ResizerGrow
	resizerDirectionCount
)

type BlockEventType uint8

const (
	EventAffectMovingPlatform BlockEventType = iota
	EventAffectBumper
	EventTriggerAchievement
	EventAffectButton
	blockEventTypeCount
)

// BumperAction is the payload of an affect-bumper event.
type BumperAction uint16

const (
	BumperStop BumperAction = iota
	BumperStart
	bumperActionCount
)

// ButtonStart is the payload of an affect-button event: the state of the
// targeted button when the level starts.
type ButtonStart uint16

const (
	ButtonStartDown ButtonStart = iota
	ButtonStartUp
	buttonStartCount
)

// Direction of a key event; north is -Y.
type Direction uint8

const (
	DirectionWest Direction = iota
	DirectionEast
	DirectionNorth
	DirectionSouth
	directionCount
)

type KeyAction uint8

const (
	KeyDown KeyAction = iota
	KeyUp
	keyActionCount
)

func readEnum[E ~uint8](r *Reader, name string, count E) E {
	offset := r.Offset()
	v := E(r.U8())
	if r.err == nil && v >= count {
		r.Failf(offset, "%s: invalid value %d", name, uint8(v))
	}
	return v
}

func checkEnum[E ~uint8 | ~uint16](w *Writer, name string, v, count E) {
	if v >= count {
		w.fail("%s: invalid value %d", name, uint16(v))
	}
}
