// SPDX-License-Identifier: Unlicense OR MIT

package help

import (
	"github.com/mattn/go-runewidth"

	"github.com/nightisyang/frankentui-sub000/cell"
)

// Slot is one positioned element of a built Layout: either an entry's row
// or the terminal ellipsis marker.
type Slot struct {
	EntryIndex int // index into the enabled-entry list this slot renders; -1 for the ellipsis slot
	Rect       cell.Rect
	IsEllipsis bool
}

// Layout is the skeleton produced by layout construction: independent of
// entry content, reusable across renders that share a LayoutKey.
type Layout struct {
	Mode        Mode
	Slots       []Slot
	MaxKeyWidth int // Full mode's aligned key column width; unused in Short
}

func keyWidth(s string, kf KeyFormat) int { return runewidth.StringWidth(formatKey(s, kf)) }
func descWidth(s string) int              { return runewidth.StringWidth(s) }

// enabledEntries returns the indices, in original order, of every entry
// that is enabled and not empty.
func enabledEntries(entries []Entry) []int {
	var out []int
	for i, e := range entries {
		if e.Enabled && !e.empty() {
			out = append(out, i)
		}
	}
	return out
}

// buildShortLayout implements spec §4.8's Short construction: walk enabled
// entries, stopping to record an ellipsis slot the moment one would not
// fit.
func buildShortLayout(w Widget, area cell.Rect, enabled []int) Layout {
	layout := Layout{Mode: Short}
	sepWidth := runewidth.StringWidth(w.Separator)
	ellipsisWidth := runewidth.StringWidth(w.Ellipsis)

	x := 0
	for pos, idx := range enabled {
		e := w.Entries[idx]
		slotWidth := keyWidth(e.Key, w.KeyFormat) + 1 + descWidth(e.Desc)
		advance := slotWidth
		if pos > 0 {
			advance += sepWidth
		}
		if x+advance > area.Width {
			ellipsisAdvance := ellipsisWidth
			if pos > 0 {
				ellipsisAdvance += sepWidth
			}
			if x+ellipsisAdvance <= area.Width {
				ex := x
				if pos > 0 {
					ex += sepWidth
				}
				layout.Slots = append(layout.Slots, Slot{
					EntryIndex: -1, IsEllipsis: true,
					Rect: cell.Rect{X: ex, Y: 0, Width: ellipsisWidth, Height: 1},
				})
			}
			break
		}
		sx := x
		if pos > 0 {
			sx += sepWidth
		}
		layout.Slots = append(layout.Slots, Slot{
			EntryIndex: pos,
			Rect:       cell.Rect{X: sx, Y: 0, Width: slotWidth, Height: 1},
		})
		x += advance
	}
	return layout
}

// buildFullLayout implements spec §4.8's Full construction: one row per
// entry, key column aligned to the widest enabled key, dropping entries
// past the available height.
func buildFullLayout(w Widget, area cell.Rect, enabled []int) Layout {
	layout := Layout{Mode: Full}

	maxKeyWidth := 0
	for _, idx := range enabled {
		if kw := keyWidth(w.Entries[idx].Key, w.KeyFormat); kw > maxKeyWidth {
			maxKeyWidth = kw
		}
	}
	layout.MaxKeyWidth = maxKeyWidth

	for pos, idx := range enabled {
		if pos >= area.Height {
			break
		}
		e := w.Entries[idx]
		slotWidth := maxKeyWidth + 2 + descWidth(e.Desc)
		if slotWidth > area.Width {
			slotWidth = area.Width
		}
		layout.Slots = append(layout.Slots, Slot{
			EntryIndex: pos,
			Rect:       cell.Rect{X: 0, Y: pos, Width: slotWidth, Height: 1},
		})
	}
	return layout
}

// BuildLayout dispatches to the mode-appropriate constructor.
func BuildLayout(w Widget, area cell.Rect, enabled []int) Layout {
	if w.Mode == Full {
		return buildFullLayout(w, area, enabled)
	}
	return buildShortLayout(w, area, enabled)
}
