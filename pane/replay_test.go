// SPDX-License-Identifier: Unlicense OR MIT

package pane

import (
	"reflect"
	"testing"

	"github.com/nightisyang/frankentui-sub000/geom"
)

func s5Trace() Trace {
	events := []Input{
		{Kind: PointerDown, Sequence: 1, PointerId: 11, Target: 7, Pos: geom.Position{X: 10, Y: 4}},
		{Kind: PointerMove, Sequence: 2, PointerId: 11, Target: 7, Pos: geom.Position{X: 11, Y: 4}},
		{Kind: PointerMove, Sequence: 3, PointerId: 11, Target: 7, Pos: geom.Position{X: 13, Y: 4}},
		{Kind: PointerMove, Sequence: 4, PointerId: 11, Target: 7, Pos: geom.Position{X: 15, Y: 6}},
		{Kind: PointerUp, Sequence: 5, PointerId: 11, Target: 7, Pos: geom.Position{X: 16, Y: 6}},
	}
	tr := Trace{
		Metadata: TraceMetadata{SchemaVersion: traceSchemaVersion, Seed: 42, StartUnixMs: 1000, Host: "test"},
		Events:   events,
	}
	tr.Metadata.Checksum = tr.ComputeChecksum()
	return tr
}

// Property 17: replay is deterministic across runs given the same trace.
func TestReplayDeterministic(t *testing.T) {
	tr := s5Trace()

	r1, err := Replay(tr, 2, 2)
	if err != nil {
		t.Fatalf("Replay 1: %v", err)
	}
	r2, err := Replay(tr, 2, 2)
	if err != nil {
		t.Fatalf("Replay 2: %v", err)
	}
	if !reflect.DeepEqual(r1.Transitions, r2.Transitions) {
		t.Errorf("transitions differ across runs:\n%+v\n%+v", r1.Transitions, r2.Transitions)
	}
	if r1.FinalState != r2.FinalState {
		t.Errorf("final states differ: %+v vs %+v", r1.FinalState, r2.FinalState)
	}
	if r1.FinalState.State != Idle {
		t.Errorf("final state = %v, want Idle", r1.FinalState.State)
	}
}

func TestReplayRejectsChecksumMismatch(t *testing.T) {
	tr := s5Trace()
	tr.Metadata.Checksum ^= 1
	if _, err := Replay(tr, 2, 2); err == nil {
		t.Fatal("expected a checksum mismatch error")
	}
}

func TestReplayRejectsEmptyEvents(t *testing.T) {
	tr := Trace{Metadata: TraceMetadata{SchemaVersion: traceSchemaVersion}}
	tr.Metadata.Checksum = tr.ComputeChecksum()
	if _, err := Replay(tr, 2, 2); err == nil {
		t.Fatal("expected an empty-events error")
	}
}

func TestReplayRejectsNonMonotonicSequence(t *testing.T) {
	tr := s5Trace()
	tr.Events[2].Sequence = tr.Events[1].Sequence
	tr.Metadata.Checksum = tr.ComputeChecksum()
	if _, err := Replay(tr, 2, 2); err == nil {
		t.Fatal("expected a non-monotonic sequence error")
	}
}

func TestReplayFixtureConformance(t *testing.T) {
	tr := s5Trace()
	result, err := Replay(tr, 2, 2)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	fx := ReplayFixture{Trace: tr, ExpectedTransitions: result.Transitions, ExpectedFinalState: result.FinalState}
	run, err := fx.Run(2, 2)
	if err != nil {
		t.Fatalf("fixture run: %v", err)
	}
	if !run.Passed {
		t.Errorf("expected a passing fixture, got diffs: %+v", run.Diffs)
	}

	fx.ExpectedTransitions[0].TransitionId = 9999
	run, err = fx.Run(2, 2)
	if err != nil {
		t.Fatalf("fixture run: %v", err)
	}
	if run.Passed {
		t.Error("expected a mismatch diff after corrupting an expected transition")
	}
	found := false
	for _, d := range run.Diffs {
		if d.Kind == TransitionMismatch && d.Index == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a TransitionMismatch diff at index 0, got %+v", run.Diffs)
	}
}
