// SPDX-License-Identifier: Unlicense OR MIT

package help

import (
	"github.com/mattn/go-runewidth"

	"github.com/nightisyang/frankentui-sub000/cell"
)

// Render reconciles w against state's cache and blits the result into
// frame at area, following the eight steps of spec §4.8.
func Render(w Widget, area cell.Rect, frame *cell.Frame, state *RenderState) {
	// Step 1.
	if area.Empty() {
		state.Cache = nil
		return
	}

	// Step 2.
	key := layoutKey(w, area, frame.Degradation())

	// Step 3.
	state.EnabledIndices = enabledEntries(w.Entries)
	enabledCount := len(state.EnabledIndices)

	// Steps 4/5: rebuild on cache miss, key mismatch, or count mismatch.
	if state.Cache == nil || state.Cache.Key != key || state.Cache.EnabledCount != enabledCount {
		rebuild(w, area, frame.Degradation(), state, key, enabledCount)
		blit(frame, area, state.Cache)
		return
	}

	// Step 6: walk enabled entries, diffing per-entry content hashes against
	// the cache.
	cacheEntry := state.Cache
	state.dirtyIndices = state.dirtyIndices[:0]
	needsRebuild := false
	for pos, idx := range state.EnabledIndices {
		h := entryHash(w.Entries[idx])
		if pos >= len(cacheEntry.PerEntryHashes) {
			needsRebuild = true
			break
		}
		if h == cacheEntry.PerEntryHashes[pos] {
			continue
		}
		if pos >= len(cacheEntry.Layout.Slots) || !entryFitsSlot(w, w.Entries[idx], cacheEntry.Layout.Slots[pos], cacheEntry.Layout) {
			needsRebuild = true
			break
		}
		state.dirtyIndices = append(state.dirtyIndices, pos)
	}

	if needsRebuild {
		rebuild(w, area, frame.Degradation(), state, key, enabledCount)
		blit(frame, area, state.Cache)
		return
	}

	// Step 7.
	if len(state.dirtyIndices) == 0 {
		state.Counters.Hits++
		state.DirtyRects = state.DirtyRects[:0]
		blit(frame, area, state.Cache)
		return
	}

	// Step 8.
	state.DirtyRects = state.DirtyRects[:0]
	for _, pos := range state.dirtyIndices {
		slot := cacheEntry.Layout.Slots[pos]
		cacheEntry.Buffer.Fill(slot.Rect)
		renderEntrySlot(cacheEntry.Buffer, w, w.Entries[state.EnabledIndices[pos]], slot, cacheEntry.Layout)
		cacheEntry.PerEntryHashes[pos] = entryHash(w.Entries[state.EnabledIndices[pos]])
		state.DirtyRects = append(state.DirtyRects, cell.Rect{
			X: area.X + slot.Rect.X, Y: area.Y + slot.Rect.Y,
			Width: slot.Rect.Width, Height: slot.Rect.Height,
		})
	}
	state.Counters.DirtyUpdates++
	blit(frame, area, state.Cache)
}

func entryFitsSlot(w Widget, e Entry, slot Slot, layout Layout) bool {
	if layout.Mode == Full {
		need := layout.MaxKeyWidth + 2 + descWidth(e.Desc)
		return need <= slot.Rect.Width
	}
	need := keyWidth(e.Key, w.KeyFormat) + 1 + descWidth(e.Desc)
	return need <= slot.Rect.Width
}

func rebuild(w Widget, area cell.Rect, degradation cell.DegradationLevel, state *RenderState, key uint64, enabledCount int) {
	layout := BuildLayout(w, area, state.EnabledIndices)

	if state.Cache != nil {
		state.pool.release(state.Cache.Buffer)
	}
	buf := state.pool.borrow(area.Width, area.Height)
	buf.Fill(cell.Rect{X: 0, Y: 0, Width: area.Width, Height: area.Height})
	buf.SetDegradation(degradation)
	hashes := make([]uint64, len(layout.Slots))
	for pos, slot := range layout.Slots {
		if slot.IsEllipsis {
			buf.WriteString(slot.Rect.X, slot.Rect.Y, w.Ellipsis, w.Styles.Desc)
			continue
		}
		idx := state.EnabledIndices[pos]
		renderEntrySlot(buf, w, w.Entries[idx], slot, layout)
		hashes[pos] = entryHash(w.Entries[idx])
	}

	state.Cache = &Cache{
		Buffer:         buf,
		Layout:         layout,
		Key:            key,
		PerEntryHashes: hashes,
		EnabledCount:   enabledCount,
	}
	state.Counters.Misses++
	state.Counters.LayoutRebuilds++
	state.DirtyRects = state.DirtyRects[:0]
}

func renderEntrySlot(buf *cell.Frame, w Widget, e Entry, slot Slot, layout Layout) {
	if buf.Degradation() != cell.DegradeNone {
		text := formatKey(e.Key, w.KeyFormat) + " " + e.Desc
		buf.WriteString(slot.Rect.X, slot.Rect.Y, text, cell.DefaultStyle)
		return
	}

	keyStr := formatKey(e.Key, w.KeyFormat)
	x := slot.Rect.X
	x += buf.WriteString(x, slot.Rect.Y, keyStr, w.Styles.Key)

	if layout.Mode == Full {
		pad := layout.MaxKeyWidth - runewidth.StringWidth(keyStr) + 2
		for i := 0; i < pad; i++ {
			x += buf.WriteString(x, slot.Rect.Y, " ", w.Styles.Desc)
		}
	} else {
		x += buf.WriteString(x, slot.Rect.Y, " ", w.Styles.Desc)
	}
	buf.WriteString(x, slot.Rect.Y, e.Desc, w.Styles.Desc)
}

// blit copies every layout slot rectangle from the cache buffer into frame
// at area's offset; cells of frame outside these rectangles are never
// written (spec §4.8 "Blitting").
func blit(frame *cell.Frame, area cell.Rect, c *Cache) {
	if c == nil {
		return
	}
	for _, slot := range c.Layout.Slots {
		cell.CopyRectFrom(frame, area.X+slot.Rect.X, area.Y+slot.Rect.Y, c.Buffer, slot.Rect)
	}
}
