// SPDX-License-Identifier: Unlicense OR MIT

package help

import (
	"testing"

	"github.com/nightisyang/frankentui-sub000/cell"
)

func TestBuildShortLayoutEllipsisOnOverflow(t *testing.T) {
	w := Widget{
		Entries: []Entry{
			{Key: "q", Desc: "quit", Enabled: true},
			{Key: "w", Desc: "write-a-very-long-description", Enabled: true},
		},
		Mode:      Short,
		Separator: " | ",
		Ellipsis:  "...",
		KeyFormat: Plain,
	}
	enabled := enabledEntries(w.Entries)
	layout := buildShortLayout(w, cell.Rect{Width: 12, Height: 1}, enabled)

	if len(layout.Slots) == 0 {
		t.Fatalf("expected at least one slot")
	}
	last := layout.Slots[len(layout.Slots)-1]
	if !last.IsEllipsis {
		t.Fatalf("expected overflow to end in an ellipsis slot, got %+v", last)
	}
}

func TestBuildFullLayoutAlignsKeyColumn(t *testing.T) {
	w := Widget{
		Entries: []Entry{
			{Key: "q", Desc: "quit", Enabled: true},
			{Key: "ctrl+c", Desc: "cancel", Enabled: true},
		},
		Mode:      Full,
		KeyFormat: Plain,
	}
	enabled := enabledEntries(w.Entries)
	layout := buildFullLayout(w, cell.Rect{Width: 40, Height: 10}, enabled)

	if layout.MaxKeyWidth != len("ctrl+c") {
		t.Fatalf("expected MaxKeyWidth %d, got %d", len("ctrl+c"), layout.MaxKeyWidth)
	}
	if len(layout.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(layout.Slots))
	}
	for i, s := range layout.Slots {
		if s.Rect.Y != i {
			t.Fatalf("slot %d: expected row %d, got %d", i, i, s.Rect.Y)
		}
	}
}

func TestBuildFullLayoutDropsEntriesPastHeight(t *testing.T) {
	w := Widget{
		Entries: []Entry{
			{Key: "a", Desc: "one", Enabled: true},
			{Key: "b", Desc: "two", Enabled: true},
			{Key: "c", Desc: "three", Enabled: true},
		},
		Mode: Full,
	}
	enabled := enabledEntries(w.Entries)
	layout := buildFullLayout(w, cell.Rect{Width: 40, Height: 2}, enabled)
	if len(layout.Slots) != 2 {
		t.Fatalf("expected layout to drop entries past the available height, got %d slots", len(layout.Slots))
	}
}

func TestEnabledEntriesSkipsDisabledAndEmpty(t *testing.T) {
	entries := []Entry{
		{Key: "a", Desc: "one", Enabled: true},
		{Key: "b", Desc: "two", Enabled: false},
		{},
	}
	got := enabledEntries(entries)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected only index 0 enabled, got %v", got)
	}
}
