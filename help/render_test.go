// SPDX-License-Identifier: Unlicense OR MIT

package help

import (
	"testing"

	"github.com/nightisyang/frankentui-sub000/cell"
)

func threeEntryWidget() Widget {
	return Widget{
		Entries: []Entry{
			{Key: "q", Desc: "quit", Enabled: true},
			{Key: "w", Desc: "write", Enabled: true},
			{Key: "?", Desc: "help", Enabled: true},
		},
		Mode:      Full,
		Styles:    Styles{Key: cell.DefaultStyle, Desc: cell.DefaultStyle, Separator: cell.DefaultStyle},
		Separator: " | ",
		Ellipsis:  "...",
		KeyFormat: Bracketed,
	}
}

// S6: identical consecutive renders must hit the cache with no dirty rects.
func TestRenderIdenticalHits(t *testing.T) {
	w := threeEntryWidget()
	area := cell.Rect{X: 0, Y: 0, Width: 40, Height: 3}
	frame := cell.NewFrame(40, 3)
	state := NewRenderState()

	Render(w, area, frame, state)
	if state.Counters.Misses != 1 || state.Counters.LayoutRebuilds != 1 {
		t.Fatalf("first render: got %+v", state.Counters)
	}

	Render(w, area, frame, state)
	if state.Counters.Hits != 1 {
		t.Fatalf("second identical render: expected a hit, got %+v", state.Counters)
	}
	if len(state.DirtyRects) != 0 {
		t.Fatalf("expected no dirty rects on a hit, got %v", state.DirtyRects)
	}
	if state.Counters.LayoutRebuilds != 1 {
		t.Fatalf("expected no additional layout rebuild, got %+v", state.Counters)
	}
}

// S6 scenario: mutating one entry's desc within its cached slot width
// produces exactly one dirty rect and a dirty_updates increment, not a
// layout rebuild.
func TestRenderSingleDescChangeDirtyRect(t *testing.T) {
	w := threeEntryWidget()
	area := cell.Rect{X: 0, Y: 0, Width: 40, Height: 3}
	frame := cell.NewFrame(40, 3)
	state := NewRenderState()

	Render(w, area, frame, state)

	w.Entries[1].Desc = "save"
	Render(w, area, frame, state)

	if state.Counters.DirtyUpdates != 1 {
		t.Fatalf("expected one dirty update, got %+v", state.Counters)
	}
	if state.Counters.LayoutRebuilds != 1 {
		t.Fatalf("expected no forced layout rebuild, got %+v", state.Counters)
	}
	if len(state.DirtyRects) != 1 {
		t.Fatalf("expected exactly one dirty rect, got %v", state.DirtyRects)
	}
	if state.DirtyRects[0].Y != 1 {
		t.Fatalf("expected dirty rect at row 1, got %+v", state.DirtyRects[0])
	}
}

// Enabled-count changes must force a layout rebuild even though other
// entries are unchanged.
func TestRenderEnabledCountChangeForcesRebuild(t *testing.T) {
	w := threeEntryWidget()
	area := cell.Rect{X: 0, Y: 0, Width: 40, Height: 3}
	frame := cell.NewFrame(40, 3)
	state := NewRenderState()

	Render(w, area, frame, state)
	w.Entries[2].Enabled = false
	Render(w, area, frame, state)

	if state.Counters.LayoutRebuilds != 2 {
		t.Fatalf("expected a forced rebuild on enabled-count change, got %+v", state.Counters)
	}
}

func TestRenderEmptyAreaClearsCache(t *testing.T) {
	w := threeEntryWidget()
	frame := cell.NewFrame(40, 3)
	state := NewRenderState()
	Render(w, cell.Rect{Width: 40, Height: 3}, frame, state)
	if state.Cache == nil {
		t.Fatalf("expected a cache after first render")
	}
	Render(w, cell.Rect{Width: 0, Height: 0}, frame, state)
	if state.Cache != nil {
		t.Fatalf("expected cache cleared on empty area")
	}
}

func TestRenderDegradedConcatenatesKeyAndDesc(t *testing.T) {
	w := Widget{
		Entries:   []Entry{{Key: "q", Desc: "quit", Enabled: true}},
		Mode:      Short,
		Styles:    Styles{Key: cell.DefaultStyle, Desc: cell.DefaultStyle, Separator: cell.DefaultStyle},
		Separator: " | ",
		Ellipsis:  "...",
		KeyFormat: Plain,
	}
	area := cell.Rect{Width: 10, Height: 1}
	frame := cell.NewFrame(10, 1)
	frame.SetDegradation(cell.DegradeNoStyle)
	state := NewRenderState()
	Render(w, area, frame, state)

	want := "q quit"
	for i, r := range want {
		got := frame.Get(i, 0)
		if got.Ch != r {
			t.Fatalf("cell %d: got %q want %q", i, got.Ch, r)
		}
		if got.Style != cell.DefaultStyle {
			t.Fatalf("cell %d: expected DefaultStyle under degradation", i)
		}
	}
}
