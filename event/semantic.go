// SPDX-License-Identifier: Unlicense OR MIT

package event

import "github.com/nightisyang/frankentui-sub000/geom"

// SemanticKind discriminates the variant carried by a Semantic value.
type SemanticKind uint8

const (
	SemClick SemanticKind = iota
	SemDoubleClick
	SemTripleClick
	SemDragStart
	SemDragMove
	SemDragEnd
	SemDragCancel
	SemLongPress
	SemChord
)

func (k SemanticKind) String() string {
	switch k {
	case SemClick:
		return "Click"
	case SemDoubleClick:
		return "DoubleClick"
	case SemTripleClick:
		return "TripleClick"
	case SemDragStart:
		return "DragStart"
	case SemDragMove:
		return "DragMove"
	case SemDragEnd:
		return "DragEnd"
	case SemDragCancel:
		return "DragCancel"
	case SemLongPress:
		return "LongPress"
	case SemChord:
		return "Chord"
	default:
		panic("unreachable")
	}
}

// KeyChord is one element of a Chord sequence: a key code paired with the
// modifiers active when it was pressed.
type KeyChord struct {
	Code      KeyCode
	Modifiers Modifiers
}

// Delta is a signed per-axis displacement, used for DragMove.
type Delta struct {
	DX, DY int16
}

// Semantic is a tagged union of the semantic event variants from spec §3.2.
// Only the fields relevant to Kind are meaningful.
type Semantic struct {
	Kind SemanticKind

	Pos    geom.Position
	Button MouseButton

	Start, Current, End geom.Position
	Delta               Delta

	Duration uint32 // milliseconds, for LongPress

	Sequence []KeyChord // non-empty for Chord
}

func Click(pos geom.Position, button MouseButton) Semantic {
	return Semantic{Kind: SemClick, Pos: pos, Button: button}
}

func DoubleClick(pos geom.Position, button MouseButton) Semantic {
	return Semantic{Kind: SemDoubleClick, Pos: pos, Button: button}
}

func TripleClick(pos geom.Position, button MouseButton) Semantic {
	return Semantic{Kind: SemTripleClick, Pos: pos, Button: button}
}

func DragStart(pos geom.Position, button MouseButton) Semantic {
	return Semantic{Kind: SemDragStart, Pos: pos, Button: button}
}

func DragMove(start, current geom.Position, delta Delta) Semantic {
	return Semantic{Kind: SemDragMove, Start: start, Current: current, Delta: delta}
}

func DragEnd(start, end geom.Position) Semantic {
	return Semantic{Kind: SemDragEnd, Start: start, End: end}
}

func DragCancel() Semantic { return Semantic{Kind: SemDragCancel} }

func LongPress(pos geom.Position, durationMs uint32) Semantic {
	return Semantic{Kind: SemLongPress, Pos: pos, Duration: durationMs}
}

func Chord(sequence []KeyChord) Semantic {
	return Semantic{Kind: SemChord, Sequence: sequence}
}
