// SPDX-License-Identifier: Unlicense OR MIT

package pane

import (
	"fmt"

	"github.com/nightisyang/frankentui-sub000/geom"
)

// LayoutError is returned by Solve when a tree cannot be laid out within a
// viewport under its constraints.
type LayoutError struct {
	Code   string
	NodeId Id
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("pane: layout %s at node %d: %s", e.Code, e.NodeId, e.Reason)
}

// Solve maps every node of t to a rectangle within viewport by recursive
// top-down constraint solving (spec §4.4). It is pure: t is never mutated,
// and it is deterministic for identical inputs.
func Solve(t *Tree, viewport geom.Rect) (map[Id]geom.Rect, error) {
	out := make(map[Id]geom.Rect, len(t.Nodes))
	if err := solveNode(t, t.Root, viewport, out); err != nil {
		return nil, err
	}
	return out, nil
}

func solveNode(t *Tree, id Id, rect geom.Rect, out map[Id]geom.Rect) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	out[id] = rect

	if n.Kind == KindLeaf {
		c := n.Constraints
		if rect.Width < c.MinWidth || (c.MaxWidth != nil && rect.Width > *c.MaxWidth) {
			return &LayoutError{Code: "LeafOutOfBounds", NodeId: id, Reason: "resolved width violates constraints"}
		}
		if rect.Height < c.MinHeight || (c.MaxHeight != nil && rect.Height > *c.MaxHeight) {
			return &LayoutError{Code: "LeafOutOfBounds", NodeId: id, Reason: "resolved height violates constraints"}
		}
		return nil
	}

	first, err := t.node(n.First)
	if err != nil {
		return err
	}
	second, err := t.node(n.Second)
	if err != nil {
		return err
	}

	var extent uint16
	if n.Axis == Horizontal {
		extent = rect.Width
	} else {
		extent = rect.Height
	}

	firstMin, firstMax := axisBounds(first.Constraints, n.Axis)
	secondMin, secondMax := axisBounds(second.Constraints, n.Axis)

	lo := firstMin
	if v := subSatI(extent, secondMax); v > lo {
		lo = v
	}
	hi := firstMax
	if secondMin < extent {
		if v := extent - secondMin; v < hi {
			hi = v
		}
	} else {
		hi = 0
	}
	if lo > hi {
		return &LayoutError{Code: "OverconstrainedSplit", NodeId: id, Reason: "feasibility window is empty"}
	}

	p, q := n.Ratio.Num, n.Ratio.Den
	desired := uint16((uint64(extent) * p) / (p + q))
	firstExtent := clampU16(desired, lo, hi)
	secondExtent := extent - firstExtent

	var firstRect, secondRect geom.Rect
	if n.Axis == Horizontal {
		firstRect = geom.Rect{X: rect.X, Y: rect.Y, Width: firstExtent, Height: rect.Height}
		secondRect = geom.Rect{X: rect.X + firstExtent, Y: rect.Y, Width: secondExtent, Height: rect.Height}
	} else {
		firstRect = geom.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: firstExtent}
		secondRect = geom.Rect{X: rect.X, Y: rect.Y + firstExtent, Width: rect.Width, Height: secondExtent}
	}

	if err := solveNode(t, n.First, firstRect, out); err != nil {
		return err
	}
	return solveNode(t, n.Second, secondRect, out)
}

// axisBounds returns (min, max) along axis for c, treating an absent
// maximum as unbounded (represented by math.MaxUint16).
func axisBounds(c Constraints, axis Axis) (min, max uint16) {
	if axis == Horizontal {
		min = c.MinWidth
		if c.MaxWidth != nil {
			max = *c.MaxWidth
		} else {
			max = 0xFFFF
		}
		return
	}
	min = c.MinHeight
	if c.MaxHeight != nil {
		max = *c.MaxHeight
	} else {
		max = 0xFFFF
	}
	return
}

func subSatI(a, b uint16) uint16 {
	if b >= a {
		return 0
	}
	return a - b
}

func clampU16(v, lo, hi uint16) uint16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
