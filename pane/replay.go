// SPDX-License-Identifier: Unlicense OR MIT

package pane

import (
	"fmt"

	"github.com/nightisyang/frankentui-sub000/geom"
	"github.com/nightisyang/frankentui-sub000/hashutil"
)

// TraceMetadata is the header of a semantic replay trace (spec §6.3).
type TraceMetadata struct {
	SchemaVersion uint16
	Seed          uint64
	StartUnixMs   uint64
	Host          string
	Checksum      uint64
}

const traceSchemaVersion = 1

// Trace is a non-empty ordered stream of interaction inputs that replays
// deterministically through an Interaction machine.
type Trace struct {
	Metadata TraceMetadata
	Events   []Input
}

// ComputeChecksum recomputes the FNV-based mix over the trace's metadata and
// canonical event fields, independent of the stored Metadata.Checksum.
func (tr Trace) ComputeChecksum() uint64 {
	d := hashutil.New()
	d.WriteUint16(tr.Metadata.SchemaVersion)
	d.WriteUint64(tr.Metadata.Seed)
	d.WriteUint64(tr.Metadata.StartUnixMs)
	d.WriteString(tr.Metadata.Host)
	d.WriteUint32(uint32(len(tr.Events)))
	for _, ev := range tr.Events {
		writeInputCanonical(d, ev)
	}
	return d.Sum64()
}

func writeInputCanonical(d *hashutil.Digest, in Input) {
	d.WriteByte(byte(in.Kind))
	d.WriteUint64(in.Sequence)
	d.WriteUint64(in.PointerId)
	d.WriteUint64(uint64(in.Target))
	d.WriteUint16(in.Pos.X)
	d.WriteUint16(in.Pos.Y)
	d.WriteUint32(uint32(in.KeyboardUnits))
	d.WriteUint32(uint32(in.WheelLines))
}

// FinalState is the terminal snapshot of an Interaction machine after a
// replay, sufficient to compare runs for determinism (spec property 17).
type FinalState struct {
	State     InteractionState
	Target    Id
	PointerId uint64
	Origin    geom.Position
	Current   geom.Position
}

func snapshotInteraction(m *Interaction) FinalState {
	return FinalState{
		State:     m.state,
		Target:    m.armed.target,
		PointerId: m.armed.pointerId,
		Origin:    m.armed.origin,
		Current:   m.armed.current,
	}
}

// ReplayResult is the outcome of replaying a Trace through a fresh machine.
type ReplayResult struct {
	TraceChecksum uint64
	Transitions   []Transition
	FinalState    FinalState
}

// Replay validates tr and folds its events through a freshly constructed
// Interaction machine with the given thresholds, per spec §4.6.
func Replay(tr Trace, dragThreshold, updateHysteresis uint32) (*ReplayResult, error) {
	if tr.Metadata.SchemaVersion != traceSchemaVersion {
		return nil, fmt.Errorf("pane: unsupported trace schema version %d", tr.Metadata.SchemaVersion)
	}
	if len(tr.Events) == 0 {
		return nil, fmt.Errorf("pane: trace must carry at least one event")
	}
	var lastSeq uint64
	for i, ev := range tr.Events {
		if ev.Kind != Cancel && ev.Kind != Blur {
			if ev.Sequence == 0 {
				return nil, fmt.Errorf("pane: trace event %d has zero sequence", i)
			}
			if i > 0 && ev.Sequence <= lastSeq {
				return nil, fmt.Errorf("pane: trace event %d sequence %d is not strictly increasing after %d", i, ev.Sequence, lastSeq)
			}
			lastSeq = ev.Sequence
		}
	}
	if got := tr.ComputeChecksum(); got != tr.Metadata.Checksum {
		return nil, fmt.Errorf("pane: trace checksum mismatch: header %d computed %d", tr.Metadata.Checksum, got)
	}

	m, err := NewInteraction(dragThreshold, updateHysteresis)
	if err != nil {
		return nil, err
	}

	transitions := make([]Transition, 0, len(tr.Events))
	for i, ev := range tr.Events {
		t, err := m.Handle(ev)
		if err != nil {
			return nil, fmt.Errorf("pane: trace event %d rejected: %w", i, err)
		}
		transitions = append(transitions, t)
	}

	return &ReplayResult{
		TraceChecksum: tr.Metadata.Checksum,
		Transitions:   transitions,
		FinalState:    snapshotInteraction(m),
	}, nil
}

// DiffKind discriminates one conformance discrepancy produced by
// ReplayFixture.Run.
type DiffKind uint8

const (
	TransitionMismatch DiffKind = iota
	MissingExpectedTransition
	UnexpectedTransition
	FinalStateMismatch
)

// Diff is one conformance discrepancy between an observed and expected
// replay.
type Diff struct {
	Kind     DiffKind
	Index    int
	Expected *Transition
	Actual   *Transition
}

// ReplayFixture pairs a Trace with the transitions and final state it is
// expected to produce.
type ReplayFixture struct {
	Trace               Trace
	ExpectedTransitions []Transition
	ExpectedFinalState  FinalState
}

// FixtureRun is the conformance artifact produced by running a fixture.
type FixtureRun struct {
	Result *ReplayResult
	Diffs  []Diff
	Passed bool
}

// Run replays fx.Trace and compares the result against fx's expectations.
func (fx ReplayFixture) Run(dragThreshold, updateHysteresis uint32) (*FixtureRun, error) {
	result, err := Replay(fx.Trace, dragThreshold, updateHysteresis)
	if err != nil {
		return nil, err
	}

	var diffs []Diff
	n := len(result.Transitions)
	if len(fx.ExpectedTransitions) > n {
		n = len(fx.ExpectedTransitions)
	}
	for i := 0; i < n; i++ {
		var actual, expected *Transition
		if i < len(result.Transitions) {
			a := result.Transitions[i]
			actual = &a
		}
		if i < len(fx.ExpectedTransitions) {
			e := fx.ExpectedTransitions[i]
			expected = &e
		}
		switch {
		case actual == nil && expected != nil:
			diffs = append(diffs, Diff{Kind: MissingExpectedTransition, Index: i, Expected: expected})
		case actual != nil && expected == nil:
			diffs = append(diffs, Diff{Kind: UnexpectedTransition, Index: i, Actual: actual})
		case actual != nil && expected != nil && *actual != *expected:
			diffs = append(diffs, Diff{Kind: TransitionMismatch, Index: i, Expected: expected, Actual: actual})
		}
	}

	if result.FinalState != fx.ExpectedFinalState {
		diffs = append(diffs, Diff{Kind: FinalStateMismatch, Index: n})
	}

	return &FixtureRun{Result: result, Diffs: diffs, Passed: len(diffs) == 0}, nil
}
