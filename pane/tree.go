// SPDX-License-Identifier: Unlicense OR MIT

package pane

import "fmt"

// SchemaVersion is the current canonical snapshot schema version.
const SchemaVersion uint16 = 1

// Tree is the mutable split-tree data model of spec §3.3. Nodes live in a
// single owning map keyed by id; all structural edges are id references, not
// shared pointers, so consistency is validated rather than assumed (see
// SPEC_FULL.md's design notes).
type Tree struct {
	SchemaVersion uint16
	Root          Id
	NextId        Id
	Nodes         map[Id]*NodeRecord
	Extensions    map[string]string
}

// NewSingleton returns a one-leaf tree with the given surface key, root id
// 1, and next-id watermark 2.
func NewSingleton(surfaceKey string) *Tree {
	root := Id(1)
	return &Tree{
		SchemaVersion: SchemaVersion,
		Root:          root,
		NextId:        2,
		Nodes: map[Id]*NodeRecord{
			root: newLeaf(root, 0, surfaceKey),
		},
		Extensions: map[string]string{},
	}
}

// Clone returns a deep copy of t, suitable as a transaction working copy.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		SchemaVersion: t.SchemaVersion,
		Root:          t.Root,
		NextId:        t.NextId,
		Nodes:         make(map[Id]*NodeRecord, len(t.Nodes)),
		Extensions:    make(map[string]string, len(t.Extensions)),
	}
	for id, n := range t.Nodes {
		c.Nodes[id] = n.clone()
	}
	for k, v := range t.Extensions {
		c.Extensions[k] = v
	}
	return c
}

// Find looks up a leaf by its surface key (SPEC_FULL.md supplemented
// feature). Iteration order is arbitrary but the result is unique since
// surface keys are expected unique by convention; the first match in id
// order is returned for determinism.
func (t *Tree) Find(surfaceKey string) (Id, bool) {
	var best Id
	found := false
	for id, n := range t.Nodes {
		if n.Kind == KindLeaf && n.SurfaceKey == surfaceKey {
			if !found || id < best {
				best = id
				found = true
			}
		}
	}
	return best, found
}

// node returns the node for id, or an error if absent.
func (t *Tree) node(id Id) (*NodeRecord, error) {
	n, ok := t.Nodes[id]
	if !ok {
		return nil, fmt.Errorf("pane: node %d does not exist", id)
	}
	return n, nil
}

// parentOf returns the parent id of id (0 for root), by consulting the
// node's own stored Parent field.
func (t *Tree) parentOf(id Id) Id {
	n, ok := t.Nodes[id]
	if !ok {
		return 0
	}
	return n.Parent
}

// isAncestor reports whether ancestor is a strict ancestor of id.
func (t *Tree) isAncestor(ancestor, id Id) bool {
	cur := t.parentOf(id)
	seen := map[Id]bool{}
	for cur != 0 {
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			return false // cycle guard; invariant violation elsewhere
		}
		seen[cur] = true
		cur = t.parentOf(cur)
	}
	return false
}

// subtreeIds returns id and every descendant of id.
func (t *Tree) subtreeIds(id Id) []Id {
	var out []Id
	var walk func(Id)
	walk = func(cur Id) {
		out = append(out, cur)
		n, ok := t.Nodes[cur]
		if !ok || n.Kind != KindSplit {
			return
		}
		walk(n.First)
		walk(n.Second)
	}
	walk(id)
	return out
}
