// Package voxel holds the static part of a level: a dense grid of blocks with
// collision and appearance attributes.
package voxel

import (
	"fmt"

	"github.com/eak1mov/go-libedge/level/format"
)

// ThemeRef selects a block theme relative to the level theme.
// The zero value inherits the level theme.
type ThemeRef struct {
	fixed  bool
	theme  format.Theme
	darker uint8
}

func InheritTheme() ThemeRef {
	return ThemeRef{}
}

func FixedTheme(theme format.Theme) ThemeRef {
	return ThemeRef{fixed: true, theme: theme}
}

// DarkerTheme is n shades darker than the level theme, wrapping around after
// the darkest theme.
func DarkerTheme(n uint8) ThemeRef {
	return ThemeRef{darker: n}
}

// Resolve returns the theme a block is drawn with in a level of the given theme.
func (t ThemeRef) Resolve(level format.Theme) format.Theme {
	if t.fixed {
		return t.theme
	}
	return format.Theme((int(level) + int(t.darker)) % 4)
}

func (t ThemeRef) String() string {
	switch {
	case t.fixed:
		return t.theme.String()
	case t.darker > 0:
		return fmt.Sprintf("darker(%d)", t.darker)
	default:
		return "inherit"
	}
}

// BlockHeight is the visible fraction of a block measured from its top.
// The zero value uses the default height.
type BlockHeight struct {
	fixed bool
	value float32
}

func DefaultHeight() BlockHeight {
	return BlockHeight{}
}

// FixedHeight panics unless 0 <= h <= 1.
func FixedHeight(h float32) BlockHeight {
	if !(h >= 0 && h <= 1) {
		panic(fmt.Sprintf("voxel: block height %v outside [0, 1]", h))
	}
	return BlockHeight{fixed: true, value: h}
}

// Resolve returns the height of a block at layer z: half height on the
// ground layer, full height above it, unless a fixed height is set.
func (h BlockHeight) Resolve(z int) float32 {
	switch {
	case h.fixed:
		return h.value
	case z == 0:
		return 0.5
	default:
		return 1
	}
}

// Block is the attribute set of one voxel. Blocks are values; the zero value
// is the empty block.
type Block struct {
	Collision bool
	Visible   bool
	Theme     ThemeRef
	Height    BlockHeight
}

func Empty() Block {
	return Block{}
}

func Full() Block {
	return Block{Collision: true, Visible: true}
}

func Half() Block {
	return Block{Collision: true, Visible: true, Height: FixedHeight(0.5)}
}

func (b Block) IsEmpty() bool {
	return b == Block{}
}
