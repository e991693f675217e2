// SPDX-License-Identifier: Unlicense OR MIT

// Package gesture folds raw input events into semantic events: click
// multiplicities, drag lifecycle, long-press, and modifier-key chords. It is
// grounded on gioui.org/gesture's Click and Drag state machines, generalized
// to the multi-clock, multi-detector recognizer spec.md §4.1 describes.
package gesture

import (
	"time"

	"github.com/nightisyang/frankentui-sub000/event"
	"github.com/nightisyang/frankentui-sub000/geom"
)

// Config holds the recognizer's timing and distance thresholds. The zero
// value is invalid; use DefaultConfig.
type Config struct {
	MultiClickTimeout    time.Duration
	LongPressThreshold   time.Duration
	DragThreshold        uint32 // Manhattan distance, cells
	ChordTimeout         time.Duration
	SwipeVelocityThresh  float64 // cells/s, carried for host use; not enforced internally
	ClickTolerance       uint32  // Manhattan distance, cells
}

// DefaultConfig returns the thresholds named in spec §4.1.
func DefaultConfig() Config {
	return Config{
		MultiClickTimeout:   300 * time.Millisecond,
		LongPressThreshold:  500 * time.Millisecond,
		DragThreshold:       3,
		ChordTimeout:        1000 * time.Millisecond,
		SwipeVelocityThresh: 50,
		ClickTolerance:      1,
	}
}

type pointerDown struct {
	active  bool
	pos     geom.Position
	button  event.MouseButton
	at      time.Duration
	moved   bool
}

type dragState struct {
	active  bool
	started bool
	origin  geom.Position
	button  event.MouseButton
	last    geom.Position
}

type clickState struct {
	have   bool
	pos    geom.Position
	button event.MouseButton
	at     time.Duration
	count  int
}

type chordState struct {
	buf   []event.KeyChord
	start time.Duration
}

// Recognizer is the stateful, single-threaded gesture processor. It is not
// safe for concurrent use, matching the cooperative scheduling model of
// spec §5.
type Recognizer struct {
	cfg Config

	down clickState // last qualifying click, for multi-click matching
	pd   pointerDown
	drag dragState
	longPressFired bool
	chord chordState

	stats Stats
}

// Stats exposes read-only host instrumentation counters (SPEC_FULL.md
// "Supplemented features").
type Stats struct {
	ClicksRecognized uint64
	DragsStarted     uint64
	ChordsEmitted    uint64
}

// New returns a Recognizer idle in every detector, using cfg.
func New(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg}
}

// Stats returns a snapshot of the recognizer's instrumentation counters.
func (r *Recognizer) Stats() Stats { return r.stats }

// Reset returns every detector to idle without emitting any event.
func (r *Recognizer) Reset() {
	r.pd = pointerDown{}
	r.drag = dragState{}
	r.down = clickState{}
	r.longPressFired = false
	r.chord = chordState{}
}

// Process folds one raw event into zero or more semantic events, appending
// them to out and returning the extended slice. Unrecognized raw event
// variants are dropped silently (spec §4.1 failure semantics).
func (r *Recognizer) Process(raw event.Raw, now time.Duration, out []event.Semantic) []event.Semantic {
	r.checkChordTimeout(now)

	switch raw.Kind {
	case event.KindMouse:
		out = r.processMouse(raw, now, out)
	case event.KindKey:
		out = r.processKey(raw, now, out)
	case event.KindFocus:
		out = r.processFocus(raw, out)
	case event.KindTick:
		out = r.CheckLongPress(now, out)
	}
	return out
}

func (r *Recognizer) processMouse(raw event.Raw, now time.Duration, out []event.Semantic) []event.Semantic {
	switch raw.MouseKind {
	case event.MouseDown:
		r.pd = pointerDown{active: true, pos: raw.Pos, button: raw.Button, at: now}
		r.drag = dragState{active: true, origin: raw.Pos, button: raw.Button, last: raw.Pos}
		r.longPressFired = false
	case event.MouseDrag:
		if !r.drag.active || raw.Button != r.drag.button {
			break
		}
		if r.pd.active {
			r.pd.moved = true
		}
		if !r.drag.started {
			if r.drag.origin.Manhattan(raw.Pos) >= uint32(r.cfg.DragThreshold) {
				r.drag.started = true
				r.drag.last = r.drag.origin
				out = append(out, event.DragStart(r.drag.origin, r.drag.button))
				r.stats.DragsStarted++
			}
		}
		if r.drag.started {
			dx := int16(int32(raw.Pos.X) - int32(r.drag.last.X))
			dy := int16(int32(raw.Pos.Y) - int32(r.drag.last.Y))
			out = append(out, event.DragMove(r.drag.origin, raw.Pos, event.Delta{DX: dx, DY: dy}))
			r.drag.last = raw.Pos
		}
	case event.MouseUp:
		if r.drag.active && r.drag.button == raw.Button {
			wasStarted := r.drag.started
			origin := r.drag.origin
			r.drag = dragState{}
			r.pd = pointerDown{}
			if wasStarted {
				out = append(out, event.DragEnd(origin, raw.Pos))
				break
			}
		}
		out = r.emitClick(raw.Pos, raw.Button, now, out)
		r.pd = pointerDown{}
	case event.MouseMoved:
		if r.pd.active && r.pd.pos != raw.Pos {
			r.pd.moved = true
			r.longPressFired = false
		}
	}
	return out
}

func (r *Recognizer) emitClick(pos geom.Position, button event.MouseButton, now time.Duration, out []event.Semantic) []event.Semantic {
	count := 1
	if r.down.have && r.down.button == button &&
		r.down.pos.Manhattan(pos) <= uint32(r.cfg.ClickTolerance) &&
		now-r.down.at <= r.cfg.MultiClickTimeout &&
		r.down.count < 3 {
		count = r.down.count + 1
	}
	r.down = clickState{have: true, pos: pos, button: button, at: now, count: count}
	r.stats.ClicksRecognized++
	switch count {
	case 1:
		return append(out, event.Click(pos, button))
	case 2:
		return append(out, event.DoubleClick(pos, button))
	default:
		return append(out, event.TripleClick(pos, button))
	}
}

// CheckLongPress is called by the host on a periodic tick to evaluate
// whether the in-progress press has crossed the long-press threshold.
func (r *Recognizer) CheckLongPress(now time.Duration, out []event.Semantic) []event.Semantic {
	if !r.pd.active || r.pd.moved || r.longPressFired {
		return out
	}
	if now-r.pd.at >= r.cfg.LongPressThreshold {
		r.longPressFired = true
		return append(out, event.LongPress(r.pd.pos, uint32((now-r.pd.at).Milliseconds())))
	}
	return out
}

func (r *Recognizer) processKey(raw event.Raw, now time.Duration, out []event.Semantic) []event.Semantic {
	if raw.KeyKind != event.KeyPress {
		return out
	}
	if raw.Code == event.Escape {
		r.chord = chordState{}
		if r.drag.started {
			r.drag = dragState{}
			r.pd = pointerDown{}
			return append(out, event.DragCancel())
		}
		return out
	}
	if !raw.Modifiers.Any(event.ModCtrl | event.ModAlt | event.ModSuper) {
		r.chord = chordState{}
		return out
	}
	kc := event.KeyChord{Code: raw.Code, Modifiers: raw.Modifiers}
	if len(r.chord.buf) == 0 {
		r.chord.buf = []event.KeyChord{kc}
		r.chord.start = now
		return out
	}
	r.chord.buf = append(r.chord.buf, kc)
	seq := r.chord.buf
	r.chord = chordState{}
	r.stats.ChordsEmitted++
	return append(out, event.Chord(seq))
}

func (r *Recognizer) processFocus(raw event.Raw, out []event.Semantic) []event.Semantic {
	if raw.Gained {
		return out
	}
	if r.drag.started {
		r.drag = dragState{}
		r.pd = pointerDown{}
		return append(out, event.DragCancel())
	}
	r.pd = pointerDown{}
	return out
}

func (r *Recognizer) checkChordTimeout(now time.Duration) {
	if len(r.chord.buf) == 0 {
		return
	}
	if now-r.chord.start >= r.cfg.ChordTimeout {
		r.chord = chordState{}
	}
}
