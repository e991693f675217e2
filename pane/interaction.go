// SPDX-License-Identifier: Unlicense OR MIT

package pane

import (
	"fmt"

	"github.com/nightisyang/frankentui-sub000/event"
	"github.com/nightisyang/frankentui-sub000/geom"
)

// InteractionState discriminates the drag/resize machine's current state.
type InteractionState uint8

const (
	Idle InteractionState = iota
	Armed
	Dragging
)

func (s InteractionState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Armed:
		return "Armed"
	case Dragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// InputKind discriminates the event variants the interaction machine accepts.
type InputKind uint8

const (
	PointerDown InputKind = iota
	PointerMove
	PointerUp
	Cancel
	Blur
	KeyboardResize
	WheelNudge
)

// Input is one raw event offered to the interaction machine (spec §4.5).
type Input struct {
	Kind      InputKind
	Sequence  uint64
	PointerId uint64
	Target    Id
	Pos       geom.Position

	// KeyboardResize
	KeyboardUnits int32

	// WheelNudge
	WheelLines int32
}

// NoopReason names why an event produced no state change.
type NoopReason uint8

const (
	ReasonNone NoopReason = iota
	IdleWithoutActiveDrag
	ThresholdNotReached
	PointerMismatch
	TargetMismatch
	BelowHysteresis
	ActiveDragAlreadyInProgress
	ActiveStateDisallowsDiscreteInput
)

// CancelReason names why a Canceled transition occurred.
type CancelReason uint8

const (
	CancelUser CancelReason = iota
	CancelProgrammatic
)

// EffectKind discriminates the outcome attached to a Transition.
type EffectKind uint8

const (
	EffectArmed EffectKind = iota
	EffectKeyboardApplied
	EffectWheelApplied
	EffectNoop
	EffectDragStarted
	EffectDragUpdated
	EffectCommitted
	EffectCanceled
)

// Effect is the payload of a Transition, per spec §4.5.
type Effect struct {
	Kind          EffectKind
	Reason        NoopReason
	CancelReason  CancelReason
	Delta         event.Delta // DragStarted: since arm; DragUpdated: since last update
	TotalDelta    event.Delta // DragStarted/DragUpdated/Committed: since arm
	KeyboardUnits int32
	WheelLines    int32
}

// Transition is the record produced by every call into the machine.
type Transition struct {
	TransitionId uint64
	Sequence     uint64
	From         InteractionState
	To           InteractionState
	Effect       Effect
}

type armedData struct {
	target    Id
	pointerId uint64
	origin    geom.Position
	current   geom.Position
	started   uint64
}

// Interaction is the single-threaded drag/resize interaction lifecycle
// machine described in spec §4.5, grounded on the gesture recognizer's
// explicit-state idiom.
type Interaction struct {
	dragThreshold    uint32 // squared Euclidean distance
	updateHysteresis uint32

	state InteractionState
	armed armedData

	nextTransitionId uint64
}

// NewInteraction returns a machine idle at Idle with the given thresholds.
// Both thresholds must be > 0.
func NewInteraction(dragThreshold, updateHysteresis uint32) (*Interaction, error) {
	if dragThreshold == 0 || updateHysteresis == 0 {
		return nil, fmt.Errorf("pane: interaction thresholds must be > 0")
	}
	return &Interaction{dragThreshold: dragThreshold, updateHysteresis: updateHysteresis}, nil
}

// State reports the machine's current state.
func (m *Interaction) State() InteractionState { return m.state }

func (m *Interaction) validate(in Input) error {
	switch in.Kind {
	case KeyboardResize:
		if in.KeyboardUnits == 0 {
			return fmt.Errorf("pane: KeyboardResize requires a nonzero unit count")
		}
	case WheelNudge:
		if in.WheelLines == 0 {
			return fmt.Errorf("pane: WheelNudge requires a nonzero line count")
		}
	case Cancel, Blur:
		// sequence/pointer_id not required
		return nil
	}
	if in.Kind != Cancel && in.Kind != Blur {
		if in.Sequence == 0 {
			return fmt.Errorf("pane: event sequence must be nonzero")
		}
	}
	if in.Kind == PointerDown || in.Kind == PointerMove || in.Kind == PointerUp {
		if in.PointerId == 0 {
			return fmt.Errorf("pane: pointer events require a nonzero pointer_id")
		}
	}
	return nil
}

// Handle validates and folds one input into the machine, returning the
// resulting Transition. An invalid event is rejected and returns an error
// with no state change.
func (m *Interaction) Handle(in Input) (Transition, error) {
	if err := m.validate(in); err != nil {
		return Transition{}, err
	}
	from := m.state
	m.nextTransitionId++
	tid := m.nextTransitionId

	mk := func(to InteractionState, eff Effect) Transition {
		m.state = to
		return Transition{TransitionId: tid, Sequence: in.Sequence, From: from, To: to, Effect: eff}
	}
	noop := func(reason NoopReason) Transition {
		return Transition{TransitionId: tid, Sequence: in.Sequence, From: from, To: from, Effect: Effect{Kind: EffectNoop, Reason: reason}}
	}

	switch from {
	case Idle:
		switch in.Kind {
		case PointerDown:
			m.armed = armedData{target: in.Target, pointerId: in.PointerId, origin: in.Pos, current: in.Pos, started: in.Sequence}
			return mk(Armed, Effect{Kind: EffectArmed}), nil
		case KeyboardResize:
			return mk(Idle, Effect{Kind: EffectKeyboardApplied, KeyboardUnits: in.KeyboardUnits}), nil
		case WheelNudge:
			return mk(Idle, Effect{Kind: EffectWheelApplied, WheelLines: in.WheelLines}), nil
		default:
			return noop(IdleWithoutActiveDrag), nil
		}

	case Armed, Dragging:
		switch in.Kind {
		case PointerMove:
			if in.PointerId != m.armed.pointerId {
				return noop(PointerMismatch), nil
			}
			if in.Target != m.armed.target {
				return noop(TargetMismatch), nil
			}
			if from == Armed {
				if squaredDist(m.armed.origin, in.Pos) >= m.dragThreshold {
					delta := deltaOf(m.armed.origin, in.Pos)
					m.armed.current = in.Pos
					return mk(Dragging, Effect{Kind: EffectDragStarted, Delta: delta, TotalDelta: delta}), nil
				}
				m.armed.current = in.Pos
				return noop(ThresholdNotReached), nil
			}
			// Dragging
			if squaredDist(m.armed.current, in.Pos) >= m.updateHysteresis {
				delta := deltaOf(m.armed.current, in.Pos)
				m.armed.current = in.Pos
				total := deltaOf(m.armed.origin, in.Pos)
				return mk(Dragging, Effect{Kind: EffectDragUpdated, Delta: delta, TotalDelta: total}), nil
			}
			return noop(BelowHysteresis), nil

		case PointerUp:
			if in.PointerId != m.armed.pointerId {
				return noop(PointerMismatch), nil
			}
			if in.Target != m.armed.target {
				return noop(TargetMismatch), nil
			}
			total := deltaOf(m.armed.origin, in.Pos)
			m.armed = armedData{}
			return mk(Idle, Effect{Kind: EffectCommitted, TotalDelta: total}), nil

		case Cancel, Blur:
			m.armed = armedData{}
			return mk(Idle, Effect{Kind: EffectCanceled, CancelReason: CancelUser}), nil

		case PointerDown:
			return noop(ActiveDragAlreadyInProgress), nil

		case KeyboardResize, WheelNudge:
			return noop(ActiveStateDisallowsDiscreteInput), nil

		default:
			return noop(TargetMismatch), nil
		}
	}
	return noop(IdleWithoutActiveDrag), nil
}

// ForceCancel is the RAII escape hatch: unconditionally transitions to Idle.
// If the machine was non-idle, it emits a synthetic Canceled transition with
// sequence 0 and returns it. If already Idle, it is idempotent: no
// transition is produced and ForceCancel returns nil.
func (m *Interaction) ForceCancel() *Transition {
	from := m.state
	if from == Idle {
		return nil
	}
	m.nextTransitionId++
	tid := m.nextTransitionId
	m.armed = armedData{}
	m.state = Idle
	t := Transition{TransitionId: tid, Sequence: 0, From: from, To: Idle, Effect: Effect{Kind: EffectCanceled, CancelReason: CancelProgrammatic}}
	return &t
}

func squaredDist(a, b geom.Position) uint32 {
	dx := int32(b.X) - int32(a.X)
	dy := int32(b.Y) - int32(a.Y)
	return uint32(dx*dx + dy*dy)
}

// deltaOf returns the signed displacement from -> to.
func deltaOf(from, to geom.Position) event.Delta {
	return event.Delta{DX: int16(int32(to.X) - int32(from.X)), DY: int16(int32(to.Y) - int32(from.Y))}
}
