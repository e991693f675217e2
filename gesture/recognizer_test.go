// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"testing"
	"time"

	"github.com/nightisyang/frankentui-sub000/event"
	"github.com/nightisyang/frankentui-sub000/geom"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestDoubleClickScenarioS1(t *testing.T) {
	r := New(DefaultConfig())
	pos := geom.Position{X: 5, Y: 5}
	var out []event.Semantic
	out = r.Process(event.Mouse(event.MouseDown, pos, event.ButtonLeft, 0), ms(0), out)
	out = r.Process(event.Mouse(event.MouseUp, pos, event.ButtonLeft, 0), ms(50), out)
	out = r.Process(event.Mouse(event.MouseDown, pos, event.ButtonLeft, 0), ms(100), out)
	out = r.Process(event.Mouse(event.MouseUp, pos, event.ButtonLeft, 0), ms(200), out)

	if len(out) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(out), out)
	}
	if out[0].Kind != event.SemClick {
		t.Fatalf("out[0].Kind = %v, want Click", out[0].Kind)
	}
	if out[1].Kind != event.SemDoubleClick {
		t.Fatalf("out[1].Kind = %v, want DoubleClick", out[1].Kind)
	}
}

func TestTripleClickThenWrap(t *testing.T) {
	r := New(DefaultConfig())
	pos := geom.Position{X: 0, Y: 0}
	var out []event.Semantic
	for i := 0; i < 4; i++ {
		base := ms(i * 100)
		out = r.Process(event.Mouse(event.MouseDown, pos, event.ButtonLeft, 0), base, out)
		out = r.Process(event.Mouse(event.MouseUp, pos, event.ButtonLeft, 0), base+ms(10), out)
	}
	want := []event.SemanticKind{event.SemClick, event.SemDoubleClick, event.SemTripleClick, event.SemClick}
	if len(out) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(out), len(want), out)
	}
	for i, k := range want {
		if out[i].Kind != k {
			t.Fatalf("out[%d].Kind = %v, want %v", i, out[i].Kind, k)
		}
	}
}

func TestDragSuppressesClickScenarioS2(t *testing.T) {
	r := New(DefaultConfig())
	origin := geom.Position{X: 5, Y: 5}
	dragged := geom.Position{X: 10, Y: 5}
	var out []event.Semantic
	out = r.Process(event.Mouse(event.MouseDown, origin, event.ButtonLeft, 0), ms(0), out)
	out = r.Process(event.Mouse(event.MouseDrag, dragged, event.ButtonLeft, 0), ms(50), out)
	out = r.Process(event.Mouse(event.MouseUp, dragged, event.ButtonLeft, 0), ms(100), out)

	if len(out) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(out), out)
	}
	if out[0].Kind != event.SemDragStart {
		t.Fatalf("out[0].Kind = %v, want DragStart", out[0].Kind)
	}
	if out[1].Kind != event.SemDragMove || out[1].Delta != (event.Delta{DX: 5, DY: 0}) {
		t.Fatalf("out[1] = %+v, want DragMove delta (5,0)", out[1])
	}
	if out[2].Kind != event.SemDragEnd {
		t.Fatalf("out[2].Kind = %v, want DragEnd", out[2].Kind)
	}
	for _, e := range out {
		if e.Kind == event.SemClick {
			t.Fatalf("unexpected Click after drag: %+v", out)
		}
	}
}

func TestLongPressFiresOnceUntilNewDown(t *testing.T) {
	r := New(DefaultConfig())
	pos := geom.Position{X: 1, Y: 1}
	var out []event.Semantic
	out = r.Process(event.Mouse(event.MouseDown, pos, event.ButtonLeft, 0), ms(0), out)
	out = r.Process(event.Tick(), ms(600), out)
	out = r.Process(event.Tick(), ms(700), out)
	if len(out) != 1 || out[0].Kind != event.SemLongPress {
		t.Fatalf("got %+v, want exactly one LongPress", out)
	}
}

func TestResetReturnsToIdleWithoutEmission(t *testing.T) {
	r := New(DefaultConfig())
	pos := geom.Position{X: 1, Y: 1}
	var out []event.Semantic
	out = r.Process(event.Mouse(event.MouseDown, pos, event.ButtonLeft, 0), ms(0), out)
	r.Reset()
	if len(out) != 0 {
		t.Fatalf("Reset must not have emitted: %+v", out)
	}
	out = r.Process(event.Mouse(event.MouseUp, pos, event.ButtonLeft, 0), ms(10), out)
	if len(out) != 1 || out[0].Kind != event.SemClick {
		t.Fatalf("after Reset, a fresh down/up should behave as initial: %+v", out)
	}
}

func TestEscapeDuringDragEmitsCancel(t *testing.T) {
	r := New(DefaultConfig())
	origin := geom.Position{X: 0, Y: 0}
	dragged := geom.Position{X: 10, Y: 0}
	var out []event.Semantic
	out = r.Process(event.Mouse(event.MouseDown, origin, event.ButtonLeft, 0), ms(0), out)
	out = r.Process(event.Mouse(event.MouseDrag, dragged, event.ButtonLeft, 0), ms(10), out)
	out = out[:0]
	out = r.Process(event.Key(event.Escape, event.KeyPress, 0), ms(20), out)
	if len(out) != 1 || out[0].Kind != event.SemDragCancel {
		t.Fatalf("got %+v, want exactly one DragCancel", out)
	}
}

func TestFocusLostDuringDragCancelsAndClearsDown(t *testing.T) {
	r := New(DefaultConfig())
	origin := geom.Position{X: 0, Y: 0}
	dragged := geom.Position{X: 10, Y: 0}
	var out []event.Semantic
	out = r.Process(event.Mouse(event.MouseDown, origin, event.ButtonLeft, 0), ms(0), out)
	out = r.Process(event.Mouse(event.MouseDrag, dragged, event.ButtonLeft, 0), ms(10), out)
	out = out[:0]
	out = r.Process(event.Focus(false), ms(20), out)
	if len(out) != 1 || out[0].Kind != event.SemDragCancel {
		t.Fatalf("got %+v, want exactly one DragCancel", out)
	}
	if r.pd.active {
		t.Fatalf("expected mouse-down state cleared after focus loss")
	}
}

func TestChordRequiresTwoModifiedKeys(t *testing.T) {
	r := New(DefaultConfig())
	var out []event.Semantic
	out = r.Process(event.Key(1, event.KeyPress, event.ModCtrl), ms(0), out)
	if len(out) != 0 {
		t.Fatalf("single modified key must not emit a chord: %+v", out)
	}
	out = r.Process(event.Key(2, event.KeyPress, event.ModCtrl), ms(10), out)
	if len(out) != 1 || out[0].Kind != event.SemChord || len(out[0].Sequence) != 2 {
		t.Fatalf("got %+v, want a two-key Chord", out)
	}
}

func TestChordTimeoutClearsWithoutEmission(t *testing.T) {
	r := New(DefaultConfig())
	var out []event.Semantic
	out = r.Process(event.Key(1, event.KeyPress, event.ModCtrl), ms(0), out)
	out = r.Process(event.Tick(), ms(1500), out)
	out = r.Process(event.Key(2, event.KeyPress, event.ModCtrl), ms(1510), out)
	if len(out) != 0 {
		t.Fatalf("expected chord timeout to clear buffer without emission: %+v", out)
	}
}
