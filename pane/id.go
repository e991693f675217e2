// SPDX-License-Identifier: Unlicense OR MIT

// Package pane implements the split-tree data model, its transactional
// mutation operations, invariant diagnostics and safe repair, the layout
// solver, the drag/resize interaction lifecycle with deterministic replay,
// and the undo/redo timeline described in spec §3.3-§4.7.
package pane

import "errors"

// Id is a non-zero node identifier. The zero value is invalid and is used as
// a sentinel for "no parent" / "no node".
type Id uint64

// Valid reports whether id is non-zero.
func (id Id) Valid() bool { return id != 0 }

// ErrIdOverflow is returned by the allocator when the next id would wrap
// past the uint64 range (spec §4.2: "overflow surfaces as an error rather
// than wrap").
var ErrIdOverflow = errors.New("pane: id allocator overflow")

// allocId hands out the tree's next id, advancing the watermark. It never
// wraps: once NextId reaches the maximum Id it reports ErrIdOverflow on
// every subsequent call instead of wrapping to 0.
func (t *Tree) allocId() (Id, error) {
	if t.NextId == 0 {
		return 0, ErrIdOverflow
	}
	id := t.NextId
	if id == ^Id(0) {
		t.NextId = 0
	} else {
		t.NextId = id + 1
	}
	return id, nil
}
