// SPDX-License-Identifier: Unlicense OR MIT

package pane

import "fmt"

// TimelineEntry is one recorded mutation in an interaction timeline.
type TimelineEntry struct {
	Sequence    uint64
	OperationId uint64
	Operation   Operation
	BeforeHash  uint64
	AfterHash   uint64
}

// Timeline is the undo/redo log described in spec §4.7. Rebuilding from
// baseline + a prefix of entries is the single source of truth; no inverse
// operations are stored.
type Timeline struct {
	baseline *Snapshot
	entries  []TimelineEntry
	cursor   int
	nextSeq  uint64
}

// NewTimeline returns an empty timeline with no baseline captured yet.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// ApplyAndRecord applies op to tree, recording it in the timeline on
// success. If this is the first recorded mutation, tree's current state is
// captured as the baseline before op is applied. If the cursor is behind
// the end of the entry list (the caller had undone some entries), the redo
// tail is discarded first.
func (tl *Timeline) ApplyAndRecord(tree *Tree, operationId uint64, op Operation) (*Tree, []Id, error) {
	if tl.baseline == nil {
		snap := tree.CanonicalSnapshot()
		tl.baseline = &snap
	}
	if tl.cursor < len(tl.entries) {
		tl.entries = tl.entries[:tl.cursor]
	}

	before := tree.StateHash()
	next, touched, err := ApplyOperation(tree, operationId, op)
	if err != nil {
		return tree, nil, err
	}
	after := next.StateHash()

	tl.nextSeq++
	tl.entries = append(tl.entries, TimelineEntry{
		Sequence: tl.nextSeq, OperationId: operationId, Operation: op,
		BeforeHash: before, AfterHash: after,
	})
	tl.cursor++
	return next, touched, nil
}

// Undo rewinds the cursor by one entry and rebuilds tree from baseline plus
// the remaining prefix. If the cursor is already at 0 it stays there and the
// baseline tree is rebuilt; with nothing recorded yet it returns an error.
func (tl *Timeline) Undo() (*Tree, error) {
	if tl.cursor == 0 {
		return tl.Replay()
	}
	tl.cursor--
	return tl.Replay()
}

// Redo advances the cursor by one entry and rebuilds tree, symmetric to
// Undo. A no-op if the cursor is already at the end of the entry list.
func (tl *Timeline) Redo() (*Tree, error) {
	if tl.cursor >= len(tl.entries) {
		return tl.Replay()
	}
	tl.cursor++
	return tl.Replay()
}

// Replay returns a freshly rebuilt tree from baseline plus entries
// [0, cursor).
func (tl *Timeline) Replay() (*Tree, error) {
	if tl.baseline == nil {
		return nil, fmt.Errorf("pane: timeline has no baseline to replay from")
	}
	tree, err := FromSnapshot(*tl.baseline)
	if err != nil {
		return nil, err
	}
	for i := 0; i < tl.cursor; i++ {
		entry := tl.entries[i]
		next, _, err := ApplyOperation(tree, entry.OperationId, entry.Operation)
		if err != nil {
			return nil, fmt.Errorf("pane: timeline replay failed re-applying entry %d (operation_id=%d): %w", i, entry.OperationId, err)
		}
		tree = next
	}
	return tree, nil
}

// Cursor reports how many entries are currently applied.
func (tl *Timeline) Cursor() int { return tl.cursor }

// Entries returns the full recorded entry list, including any currently
// undone (redo-pending) tail.
func (tl *Timeline) Entries() []TimelineEntry { return tl.entries }

// CanUndo reports whether Undo would change the cursor.
func (tl *Timeline) CanUndo() bool { return tl.cursor > 0 }

// CanRedo reports whether Redo would change the cursor.
func (tl *Timeline) CanRedo() bool { return tl.cursor < len(tl.entries) }
