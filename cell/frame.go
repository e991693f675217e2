// SPDX-License-Identifier: Unlicense OR MIT

// Package cell implements the mutable cell-buffer frame spec §6.4 describes
// as the widget cache's collaborator interface: a writable grid addressed
// by (x, y), each cell carrying a rune and an opaque style key. It is
// grounded on texelation's client.PaneState/Cell pairing of a rune with a
// tcell.Style, generalized from that pane-mirroring cache into a
// general-purpose frame the core never opens a device to back.
package cell

import "github.com/gdamore/tcell/v2"

// Style is the opaque, hashable style key spec §3.5/§6.4 calls for. The
// core never interprets its fields beyond equality and hashing; tcell.Style
// already satisfies both (it is a small comparable struct).
type Style = tcell.Style

// DefaultStyle is the zero-value style applied under graceful degradation.
var DefaultStyle = tcell.StyleDefault

// Cell is one addressable grid position: its rune content and style.
type Cell struct {
	Ch    rune
	Style Style
}

// DegradationLevel names how much of a frame's styling capability is
// available. DegradeNone renders content and style; DegradeNoStyle renders
// content only, with DefaultStyle; the core never chooses this, only a host
// frame does.
type DegradationLevel uint8

const (
	DegradeNone DegradationLevel = iota
	DegradeNoStyle
)

// Rect is a local axis-aligned rectangle of cells, mirroring geom.Rect's
// shape without importing it: cell buffers are addressed in int rather than
// the saturating uint16 used by pane geometry, since a Frame's bounds are
// always small and caller-supplied.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Frame is a mutable, device-less cell buffer. The core writes into it and
// reads it back for dirty-rect blitting; nothing in this package owns a
// terminal or performs I/O.
type Frame struct {
	width, height int
	cells         []Cell
	degradation   DegradationLevel
}

// NewFrame allocates a width x height frame, every cell set to a space with
// DefaultStyle.
func NewFrame(width, height int) *Frame {
	f := &Frame{width: width, height: height, cells: make([]Cell, width*height)}
	for i := range f.cells {
		f.cells[i] = Cell{Ch: ' ', Style: DefaultStyle}
	}
	return f
}

// Width and Height report the frame's dimensions.
func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

// Degradation reports the frame's current degradation level.
func (f *Frame) Degradation() DegradationLevel { return f.degradation }

// SetDegradation sets the frame's degradation level.
func (f *Frame) SetDegradation(level DegradationLevel) { f.degradation = level }

func (f *Frame) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, false
	}
	return y*f.width + x, true
}

// Get returns the cell at (x, y), or the zero Cell if out of bounds.
func (f *Frame) Get(x, y int) Cell {
	i, ok := f.index(x, y)
	if !ok {
		return Cell{}
	}
	return f.cells[i]
}

// Set writes one cell at (x, y). Out-of-bounds writes are silently dropped,
// matching the blitting rule that untouched cells are never written.
func (f *Frame) Set(x, y int, c Cell) {
	i, ok := f.index(x, y)
	if !ok {
		return
	}
	if f.degradation == DegradeNoStyle {
		c.Style = DefaultStyle
	}
	f.cells[i] = c
}

// Fill writes blank cells (space, DefaultStyle) across r, clamped to the
// frame's bounds.
func (f *Frame) Fill(r Rect) {
	f.forEachIn(r, func(x, y int) {
		f.Set(x, y, Cell{Ch: ' ', Style: DefaultStyle})
	})
}

func (f *Frame) forEachIn(r Rect, fn func(x, y int)) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			fn(x, y)
		}
	}
}

// CopyRectFrom blits src's contents at srcRect into dst at (dstX, dstY),
// cell by cell, never writing outside either frame's bounds and never
// touching destination cells the source rect does not cover.
func CopyRectFrom(dst *Frame, dstX, dstY int, src *Frame, srcRect Rect) {
	for dy := 0; dy < srcRect.Height; dy++ {
		for dx := 0; dx < srcRect.Width; dx++ {
			c := src.Get(srcRect.X+dx, srcRect.Y+dy)
			dst.Set(dstX+dx, dstY+dy, c)
		}
	}
}

// WriteString writes s starting at (x, y) along a single row, one rune per
// cell, using style, and returns the number of runes in s. Runes past the
// frame's right edge are dropped; it does not wrap.
func (f *Frame) WriteString(x, y int, s string, style Style) int {
	n := 0
	for _, r := range s {
		f.Set(x+n, y, Cell{Ch: r, Style: style})
		n++
	}
	return n
}
