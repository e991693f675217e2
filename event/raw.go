// SPDX-License-Identifier: Unlicense OR MIT

// Package event defines the raw input events the core accepts and the
// semantic events the gesture recognizer produces from them. Construction of
// raw events from terminal/web byte streams is delegated to the host; this
// package only carries already-parsed values.
package event

import "github.com/nightisyang/frankentui-sub000/geom"

// Modifiers is a bitfield of active keyboard modifiers.
type Modifiers uint8

const ModNone Modifiers = 0

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Contains reports whether m has all bits of other set.
func (m Modifiers) Contains(other Modifiers) bool { return m&other == other }

// Any reports whether m has any bit of other set.
func (m Modifiers) Any(other Modifiers) bool { return m&other != 0 }

// MouseButton identifies a physical mouse button.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	default:
		panic("unreachable")
	}
}

// MouseEventKind discriminates the shape of a Mouse raw event.
type MouseEventKind uint8

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseDrag
	MouseMoved
)

// KeyEventKind discriminates the shape of a Key raw event.
type KeyEventKind uint8

const (
	KeyPress KeyEventKind = iota
	KeyRelease
	KeyRepeat
)

// KeyCode identifies a key independent of modifiers. Escape uses its ASCII
// control code.
type KeyCode uint32

// Escape is the key code the gesture recognizer treats specially
// (cancellation).
const Escape KeyCode = 0x1b

// Kind discriminates the variant carried by a Raw value.
type Kind uint8

const (
	KindMouse Kind = iota
	KindKey
	KindFocus
	KindTick
	KindResize
)

// Raw is a tagged union of the raw input event variants from spec §3.2.
// Exactly the fields relevant to Kind are meaningful.
type Raw struct {
	Kind Kind

	// Mouse fields.
	MouseKind MouseEventKind
	Button    MouseButton
	Pos       geom.Position

	// Key fields.
	Code      KeyCode
	KeyKind   KeyEventKind
	Modifiers Modifiers

	// Focus field.
	Gained bool

	// Resize fields.
	Width, Height uint16
}

func Mouse(kind MouseEventKind, pos geom.Position, button MouseButton, mods Modifiers) Raw {
	return Raw{Kind: KindMouse, MouseKind: kind, Pos: pos, Button: button, Modifiers: mods}
}

func Key(code KeyCode, kind KeyEventKind, mods Modifiers) Raw {
	return Raw{Kind: KindKey, Code: code, KeyKind: kind, Modifiers: mods}
}

func Focus(gained bool) Raw { return Raw{Kind: KindFocus, Gained: gained} }

func Tick() Raw { return Raw{Kind: KindTick} }

func Resize(width, height uint16) Raw { return Raw{Kind: KindResize, Width: width, Height: height} }
