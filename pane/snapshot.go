// SPDX-License-Identifier: Unlicense OR MIT

package pane

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nightisyang/frankentui-sub000/hashutil"
)

// Snapshot is the canonical, serializable form of a Tree from spec §6.1:
// nodes sorted ascending by id, ready for round-trip encoding.
type Snapshot struct {
	SchemaVersion uint16            `json:"schema_version"`
	Root          Id                `json:"root"`
	NextId        Id                `json:"next_id"`
	Nodes         []SnapshotNode    `json:"nodes"`
	Extensions    map[string]string `json:"extensions"`
}

// SnapshotNode is one entry of Snapshot.Nodes.
type SnapshotNode struct {
	Id          Id                `json:"id"`
	Parent      *Id               `json:"parent,omitempty"`
	Constraints SnapshotConstraint `json:"constraints"`
	Extensions  map[string]string  `json:"extensions,omitempty"`

	Kind string `json:"kind"` // "leaf" or "split"

	// leaf
	SurfaceKey string `json:"surface_key,omitempty"`

	// split
	SplitAxis  string `json:"axis,omitempty"`
	SplitRatio *SnapshotRatio `json:"ratio,omitempty"`
	First      *Id    `json:"first,omitempty"`
	Second     *Id    `json:"second,omitempty"`
}

// SnapshotRatio is the wire form of a Ratio.
type SnapshotRatio struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// SnapshotConstraint is the wire form of Constraints.
type SnapshotConstraint struct {
	MinWidth    uint16  `json:"min_width"`
	MinHeight   uint16  `json:"min_height"`
	MaxWidth    *uint16 `json:"max_width,omitempty"`
	MaxHeight   *uint16 `json:"max_height,omitempty"`
	Collapsible bool    `json:"collapsible"`
}

// CanonicalSnapshot builds the sorted, serializable snapshot of t.
func (t *Tree) CanonicalSnapshot() Snapshot {
	ids := maps.Keys(t.Nodes)
	slices.Sort(ids)

	nodes := make([]SnapshotNode, 0, len(ids))
	for _, id := range ids {
		n := t.Nodes[id]
		sn := SnapshotNode{
			Id:          id,
			Constraints: snapshotConstraints(n.Constraints),
			Extensions:  n.Extensions,
		}
		if n.Parent != 0 {
			p := n.Parent
			sn.Parent = &p
		}
		switch n.Kind {
		case KindLeaf:
			sn.Kind = "leaf"
			sn.SurfaceKey = n.SurfaceKey
		case KindSplit:
			sn.Kind = "split"
			sn.SplitAxis = axisName(n.Axis)
			sn.SplitRatio = &SnapshotRatio{Numerator: n.Ratio.Num, Denominator: n.Ratio.Den}
			first, second := n.First, n.Second
			sn.First = &first
			sn.Second = &second
		}
		nodes = append(nodes, sn)
	}

	return Snapshot{
		SchemaVersion: t.SchemaVersion,
		Root:          t.Root,
		NextId:        t.NextId,
		Nodes:         nodes,
		Extensions:    t.Extensions,
	}
}

func axisName(a Axis) string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func snapshotConstraints(c Constraints) SnapshotConstraint {
	return SnapshotConstraint{
		MinWidth: c.MinWidth, MinHeight: c.MinHeight,
		MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight,
		Collapsible: c.Collapsible,
	}
}

// StateHash computes the deterministic FNV-style 64-bit fingerprint of t,
// per spec §4.2/§9: identical canonical snapshots hash identically
// regardless of Go map iteration order or process/platform. It delegates to
// the same hashSnapshot routine invariant.go uses for raw (possibly
// malformed) snapshots, so a tree built from a repaired snapshot and the
// repaired snapshot itself always agree.
func (t *Tree) StateHash() uint64 {
	return hashSnapshot(t.CanonicalSnapshot())
}

// writeStringMap mixes a string-keyed map into d in sorted key order so the
// result is independent of Go's randomized map iteration.
func writeStringMap(d *hashutil.Digest, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d.WriteUint32(uint32(len(keys)))
	for _, k := range keys {
		d.WriteString(k)
		d.WriteString(m[k])
	}
}

// SnapshotDiff reports the structural difference between two canonical
// snapshots: ids present only in the after snapshot, ids present only in
// the before snapshot, and ids present in both whose content hash changed.
// This is a debugging/tooling convenience, not used by any invariant check.
type SnapshotDiff struct {
	Added   []Id
	Removed []Id
	Changed []Id
}

// Diff computes the structural difference from before to after.
func (before Snapshot) Diff(after Snapshot) SnapshotDiff {
	beforeById := make(map[Id]SnapshotNode, len(before.Nodes))
	for _, n := range before.Nodes {
		beforeById[n.Id] = n
	}
	afterById := make(map[Id]SnapshotNode, len(after.Nodes))
	for _, n := range after.Nodes {
		afterById[n.Id] = n
	}

	var diff SnapshotDiff
	for id, bn := range beforeById {
		an, ok := afterById[id]
		if !ok {
			diff.Removed = append(diff.Removed, id)
			continue
		}
		if hashSnapshotNode(bn) != hashSnapshotNode(an) {
			diff.Changed = append(diff.Changed, id)
		}
	}
	for id := range afterById {
		if _, ok := beforeById[id]; !ok {
			diff.Added = append(diff.Added, id)
		}
	}

	slices.Sort(diff.Added)
	slices.Sort(diff.Removed)
	slices.Sort(diff.Changed)
	return diff
}

func hashSnapshotNode(n SnapshotNode) uint64 {
	d := hashutil.New()
	hashSnapshotNodeSafe(d, n)
	return d.Sum64()
}

// FromSnapshot materializes a Tree from a Snapshot that is already known to
// be structurally sound (e.g. the output of RepairSafe, or one that passed
// InvariantReport with zero issues). It does not itself validate; callers
// that accept snapshots from an external boundary should run
// InvariantReport (and RepairSafe if needed) first.
func FromSnapshot(snap Snapshot) (*Tree, error) {
	t := &Tree{
		SchemaVersion: snap.SchemaVersion,
		Root:          snap.Root,
		NextId:        snap.NextId,
		Nodes:         make(map[Id]*NodeRecord, len(snap.Nodes)),
		Extensions:    map[string]string{},
	}
	for k, v := range snap.Extensions {
		t.Extensions[k] = v
	}
	for _, n := range snap.Nodes {
		rec := &NodeRecord{Id: n.Id, Extensions: n.Extensions}
		if n.Parent != nil {
			rec.Parent = *n.Parent
		}
		rec.Constraints = Constraints{
			MinWidth: n.Constraints.MinWidth, MinHeight: n.Constraints.MinHeight,
			MaxWidth: n.Constraints.MaxWidth, MaxHeight: n.Constraints.MaxHeight,
			Collapsible: n.Constraints.Collapsible,
		}
		switch n.Kind {
		case "leaf":
			rec.Kind = KindLeaf
			rec.SurfaceKey = n.SurfaceKey
		case "split":
			rec.Kind = KindSplit
			if n.SplitAxis == "vertical" {
				rec.Axis = Vertical
			} else {
				rec.Axis = Horizontal
			}
			if n.SplitRatio != nil {
				rec.Ratio = Ratio{Num: n.SplitRatio.Numerator, Den: n.SplitRatio.Denominator}
			}
			if n.First != nil {
				rec.First = *n.First
			}
			if n.Second != nil {
				rec.Second = *n.Second
			}
		default:
			return nil, fmt.Errorf("pane: unknown node kind %q for node %d", n.Kind, n.Id)
		}
		t.Nodes[n.Id] = rec
	}
	return t, nil
}
