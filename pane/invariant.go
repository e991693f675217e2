// SPDX-License-Identifier: Unlicense OR MIT

package pane

import (
	"fmt"
	"sort"

	"github.com/nightisyang/frankentui-sub000/hashutil"
)

// Severity classifies an Issue.
type Severity uint8

const (
	SevError Severity = iota
	SevWarning
)

// Diagnostic codes from spec §4.3.
const (
	CodeUnsupportedSchemaVersion     = "UnsupportedSchemaVersion"
	CodeDuplicateNodeId              = "DuplicateNodeId"
	CodeMissingRoot                  = "MissingRoot"
	CodeRootHasParent                = "RootHasParent"
	CodeMissingParent                = "MissingParent"
	CodeMissingChild                 = "MissingChild"
	CodeMultipleParents               = "MultipleParents"
	CodeParentMismatch                = "ParentMismatch"
	CodeSelfReferentialSplit          = "SelfReferentialSplit"
	CodeDuplicateSplitChildren        = "DuplicateSplitChildren"
	CodeInvalidSplitRatio             = "InvalidSplitRatio"
	CodeInvalidConstraint             = "InvalidConstraint"
	CodeCycleDetected                 = "CycleDetected"
	CodeUnreachableNode               = "UnreachableNode"
	CodeNextIdNotGreaterThanExisting  = "NextIdNotGreaterThanExisting"
)

// Issue is one diagnostic produced by InvariantReport.
type Issue struct {
	Code        string
	Severity    Severity
	Repairable  bool
	NodeId      *Id
	RelatedNode *Id
	Message     string
}

func issueNode(code string, sev Severity, repairable bool, node Id, msg string) Issue {
	n := node
	return Issue{Code: code, Severity: sev, Repairable: repairable, NodeId: &n, Message: msg}
}

// InvariantReport emits a deterministic, sorted list of issues found in
// snap. It tolerates malformed input (duplicate ids, dangling references)
// since its purpose is to describe exactly such problems.
func InvariantReport(snap Snapshot) []Issue {
	var issues []Issue

	if snap.SchemaVersion != SchemaVersion {
		issues = append(issues, Issue{
			Code: CodeUnsupportedSchemaVersion, Severity: SevError, Repairable: false,
			Message: fmt.Sprintf("schema version %d is not supported (expected %d)", snap.SchemaVersion, SchemaVersion),
		})
	}

	byId := map[Id][]SnapshotNode{}
	for _, n := range snap.Nodes {
		byId[n.Id] = append(byId[n.Id], n)
	}
	for id, dups := range byId {
		if len(dups) > 1 {
			issues = append(issues, issueNode(CodeDuplicateNodeId, SevError, false, id,
				fmt.Sprintf("node id %d appears %d times", id, len(dups))))
		}
	}

	unique := map[Id]SnapshotNode{}
	for _, n := range snap.Nodes {
		if _, ok := unique[n.Id]; !ok {
			unique[n.Id] = n
		}
	}

	if _, ok := unique[snap.Root]; !snap.Root.Valid() || !ok {
		issues = append(issues, Issue{Code: CodeMissingRoot, Severity: SevError, Repairable: false,
			Message: fmt.Sprintf("root id %d is not present among nodes", snap.Root)})
	} else if root := unique[snap.Root]; root.Parent != nil {
		issues = append(issues, issueNode(CodeRootHasParent, SevError, true, snap.Root,
			"root node must not have a parent"))
	}

	// Referencing-split computation: for each node, which splits claim it
	// as a child.
	referencedBy := map[Id][]Id{}
	for _, n := range unique {
		if n.Kind != "split" {
			continue
		}
		if n.SplitRatio == nil || !validRatioComponents(n.SplitRatio.Numerator, n.SplitRatio.Denominator) {
			issues = append(issues, issueNode(CodeInvalidSplitRatio, SevError,
				n.SplitRatio != nil && n.SplitRatio.Numerator != 0 && n.SplitRatio.Denominator != 0, n.Id,
				"split ratio must be a positive, reduced rational"))
		}
		if n.First == nil || n.Second == nil {
			issues = append(issues, issueNode(CodeMissingChild, SevError, false, n.Id,
				"split is missing a child reference"))
			continue
		}
		if *n.First == n.Id || *n.Second == n.Id {
			issues = append(issues, issueNode(CodeSelfReferentialSplit, SevError, false, n.Id,
				"split references itself as a child"))
		}
		if *n.First == *n.Second {
			issues = append(issues, issueNode(CodeDuplicateSplitChildren, SevError, false, n.Id,
				"split's two children must be distinct"))
		}
		for _, child := range []Id{*n.First, *n.Second} {
			if _, ok := unique[child]; !ok {
				issues = append(issues, issueNode(CodeMissingChild, SevError, false, n.Id,
					fmt.Sprintf("split references nonexistent child %d", child)))
				continue
			}
			referencedBy[child] = append(referencedBy[child], n.Id)
		}
	}

	for id, n := range unique {
		if !n.Constraints.Valid2() {
			issues = append(issues, issueNode(CodeInvalidConstraint, SevError, false, id,
				"max constraint is smaller than min on some axis"))
		}
		refs := referencedBy[id]
		declaredParent := n.Parent
		switch {
		case id == snap.Root:
			// handled above
		case len(refs) == 0:
			issues = append(issues, issueNode(CodeMissingParent, SevError, true, id,
				"non-root node has no split referencing it as a child"))
		case len(refs) > 1:
			issues = append(issues, issueNode(CodeMultipleParents, SevError, false, id,
				fmt.Sprintf("node is referenced as a child by %d splits", len(refs))))
		default:
			if declaredParent == nil || *declaredParent != refs[0] {
				issues = append(issues, issueNode(CodeParentMismatch, SevError, true, id,
					fmt.Sprintf("declared parent does not match the referencing split %d", refs[0])))
			}
		}
	}

	// Cycle detection: walk the computed-parent chain (fall back to
	// referencedBy[id][0] when unique) for every node.
	for id := range unique {
		seen := map[Id]bool{}
		cur := id
		cycle := false
		for {
			if cur == snap.Root {
				break
			}
			refs := referencedBy[cur]
			if len(refs) != 1 {
				break
			}
			parent := refs[0]
			if seen[parent] {
				cycle = true
				break
			}
			seen[parent] = true
			cur = parent
			if len(seen) > len(unique)+1 {
				cycle = true
				break
			}
		}
		if cycle {
			issues = append(issues, issueNode(CodeCycleDetected, SevError, false, id,
				"node's ancestor chain cycles back on itself"))
		}
	}

	// Reachability from root via split children.
	reachable := map[Id]bool{}
	if root, ok := unique[snap.Root]; ok {
		var walk func(Id)
		walk = func(cur Id) {
			if reachable[cur] {
				return
			}
			reachable[cur] = true
			n, ok := unique[cur]
			if !ok || n.Kind != "split" || n.First == nil || n.Second == nil {
				return
			}
			walk(*n.First)
			walk(*n.Second)
		}
		walk(root.Id)
	}
	for id := range unique {
		if !reachable[id] {
			issues = append(issues, issueNode(CodeUnreachableNode, SevWarning, true, id,
				"node is not reachable from root"))
		}
	}

	maxId := Id(0)
	for id := range unique {
		if id > maxId {
			maxId = id
		}
	}
	if snap.NextId <= maxId {
		issues = append(issues, Issue{Code: CodeNextIdNotGreaterThanExisting, Severity: SevError, Repairable: true,
			Message: fmt.Sprintf("next_id %d is not greater than the largest existing id %d", snap.NextId, maxId)})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Code != issues[j].Code {
			return issues[i].Code < issues[j].Code
		}
		ni, nj := issueIdOrZero(issues[i]), issueIdOrZero(issues[j])
		return ni < nj
	})
	return issues
}

func issueIdOrZero(i Issue) Id {
	if i.NodeId == nil {
		return 0
	}
	return *i.NodeId
}

func validRatioComponents(num, den uint64) bool {
	if num == 0 || den == 0 {
		return false
	}
	return gcd(num, den) == 1
}

// Valid2 mirrors Constraints.Valid for the wire SnapshotConstraint form.
func (c SnapshotConstraint) Valid2() bool {
	if c.MaxWidth != nil && *c.MaxWidth < c.MinWidth {
		return false
	}
	if c.MaxHeight != nil && *c.MaxHeight < c.MinHeight {
		return false
	}
	return true
}

// RepairAction names one deterministic fix applied by RepairSafe.
type RepairAction struct {
	Code   string
	NodeId Id
	Detail string
}

// RepairFailure is returned when snap carries at least one non-repairable
// issue.
type RepairFailure struct {
	ReportBefore []Issue
}

func (f *RepairFailure) Error() string {
	return fmt.Sprintf("pane: snapshot has %d non-repairable issue(s)", len(f.ReportBefore))
}

// RepairResult is the outcome of a successful RepairSafe call.
type RepairResult struct {
	BeforeHash   uint64
	AfterHash    uint64
	ReportBefore []Issue
	ReportAfter  []Issue
	Actions      []RepairAction
	Repaired     Snapshot
}

// RepairSafe attempts deterministic, information-preserving fixes for every
// repairable issue in snap (spec §4.3). If any issue is not repairable it
// refuses and returns the pre-repair report. It is idempotent: repairing an
// already-valid snapshot performs zero actions.
func RepairSafe(snap Snapshot) (*RepairResult, error) {
	before := InvariantReport(snap)
	for _, iss := range before {
		if !iss.Repairable {
			return nil, &RepairFailure{ReportBefore: before}
		}
	}

	beforeHash := hashSnapshot(snap)
	repaired := cloneSnapshot(snap)
	var actions []RepairAction

	nodes := map[Id]*SnapshotNode{}
	for i := range repaired.Nodes {
		nodes[repaired.Nodes[i].Id] = &repaired.Nodes[i]
	}

	for _, iss := range before {
		switch iss.Code {
		case CodeRootHasParent:
			if n, ok := nodes[repaired.Root]; ok {
				n.Parent = nil
				actions = append(actions, RepairAction{Code: iss.Code, NodeId: repaired.Root, Detail: "cleared root parent"})
			}
		case CodeInvalidSplitRatio:
			n := nodes[*iss.NodeId]
			if n != nil && n.SplitRatio != nil {
				r := Ratio{Num: n.SplitRatio.Numerator, Den: n.SplitRatio.Denominator}.Reduced()
				n.SplitRatio = &SnapshotRatio{Numerator: r.Num, Denominator: r.Den}
				actions = append(actions, RepairAction{Code: iss.Code, NodeId: *iss.NodeId, Detail: "reduced ratio"})
			}
		case CodeNextIdNotGreaterThanExisting:
			maxId := Id(0)
			for id := range nodes {
				if id > maxId {
					maxId = id
				}
			}
			repaired.NextId = maxId + 1
			actions = append(actions, RepairAction{Code: iss.Code, Detail: "bumped next_id"})
		}
	}

	// Parent-pointer reconciliation for MissingParent/ParentMismatch needs
	// the referencing-split map, recomputed over the (possibly ratio-fixed)
	// repaired nodes.
	referencedBy := map[Id]Id{}
	for _, n := range repaired.Nodes {
		if n.Kind != "split" || n.First == nil || n.Second == nil {
			continue
		}
		referencedBy[*n.First] = n.Id
		referencedBy[*n.Second] = n.Id
	}
	for _, iss := range before {
		if iss.Code != CodeMissingParent && iss.Code != CodeParentMismatch {
			continue
		}
		n := nodes[*iss.NodeId]
		if n == nil {
			continue
		}
		if parent, ok := referencedBy[n.Id]; ok {
			p := parent
			n.Parent = &p
			actions = append(actions, RepairAction{Code: iss.Code, NodeId: n.Id, Detail: fmt.Sprintf("reconciled parent to %d", parent)})
		}
	}

	// Orphan removal for UnreachableNode: drop nodes not reachable from
	// root, recomputed on the repaired node set.
	reachable := map[Id]bool{}
	byId := map[Id]SnapshotNode{}
	for _, n := range repaired.Nodes {
		byId[n.Id] = n
	}
	if root, ok := byId[repaired.Root]; ok {
		var walk func(Id)
		walk = func(cur Id) {
			if reachable[cur] {
				return
			}
			reachable[cur] = true
			n, ok := byId[cur]
			if !ok || n.Kind != "split" || n.First == nil || n.Second == nil {
				return
			}
			walk(*n.First)
			walk(*n.Second)
		}
		walk(root.Id)
	}
	var kept []SnapshotNode
	for _, n := range repaired.Nodes {
		if reachable[n.Id] {
			kept = append(kept, n)
			continue
		}
		actions = append(actions, RepairAction{Code: CodeUnreachableNode, NodeId: n.Id, Detail: "removed orphan node"})
	}
	repaired.Nodes = kept

	sort.Slice(repaired.Nodes, func(i, j int) bool { return repaired.Nodes[i].Id < repaired.Nodes[j].Id })
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Code != actions[j].Code {
			return actions[i].Code < actions[j].Code
		}
		return actions[i].NodeId < actions[j].NodeId
	})

	after := InvariantReport(repaired)
	for _, iss := range after {
		if iss.Severity == SevError {
			return nil, fmt.Errorf("pane: repair left a non-repairable error: %s", iss.Message)
		}
	}

	return &RepairResult{
		BeforeHash:   beforeHash,
		AfterHash:    hashSnapshot(repaired),
		ReportBefore: before,
		ReportAfter:  after,
		Actions:      actions,
		Repaired:     repaired,
	}, nil
}

func cloneSnapshot(snap Snapshot) Snapshot {
	out := snap
	out.Nodes = make([]SnapshotNode, len(snap.Nodes))
	copy(out.Nodes, snap.Nodes)
	for i, n := range out.Nodes {
		if n.Parent != nil {
			p := *n.Parent
			out.Nodes[i].Parent = &p
		}
		if n.SplitRatio != nil {
			r := *n.SplitRatio
			out.Nodes[i].SplitRatio = &r
		}
		if n.First != nil {
			v := *n.First
			out.Nodes[i].First = &v
		}
		if n.Second != nil {
			v := *n.Second
			out.Nodes[i].Second = &v
		}
	}
	out.Extensions = map[string]string{}
	for k, v := range snap.Extensions {
		out.Extensions[k] = v
	}
	return out
}

// hashSnapshot mirrors Tree.StateHash but tolerates the looser, possibly
// malformed shape a raw Snapshot can carry.
func hashSnapshot(snap Snapshot) uint64 {
	nodes := make([]SnapshotNode, len(snap.Nodes))
	copy(nodes, snap.Nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Id < nodes[j].Id })

	d := hashutil.New()
	d.WriteUint16(snap.SchemaVersion)
	d.WriteUint64(uint64(snap.Root))
	d.WriteUint64(uint64(snap.NextId))
	writeStringMap(d, snap.Extensions)
	d.WriteUint32(uint32(len(nodes)))
	for _, n := range nodes {
		hashSnapshotNodeSafe(d, n)
	}
	return d.Sum64()
}

func hashSnapshotNodeSafe(d *hashutil.Digest, n SnapshotNode) {
	d.WriteUint64(uint64(n.Id))
	var parent Id
	if n.Parent != nil {
		parent = *n.Parent
	}
	d.WriteUint64(uint64(parent))
	d.WriteUint16(n.Constraints.MinWidth)
	d.WriteUint16(n.Constraints.MinHeight)
	d.WriteBool(n.Constraints.MaxWidth != nil)
	if n.Constraints.MaxWidth != nil {
		d.WriteUint16(*n.Constraints.MaxWidth)
	}
	d.WriteBool(n.Constraints.MaxHeight != nil)
	if n.Constraints.MaxHeight != nil {
		d.WriteUint16(*n.Constraints.MaxHeight)
	}
	d.WriteBool(n.Constraints.Collapsible)
	writeStringMap(d, n.Extensions)
	d.WriteString(n.Kind)
	switch n.Kind {
	case "leaf":
		d.WriteString(n.SurfaceKey)
	case "split":
		d.WriteString(n.SplitAxis)
		if n.SplitRatio != nil {
			d.WriteUint64(n.SplitRatio.Numerator)
			d.WriteUint64(n.SplitRatio.Denominator)
		} else {
			d.WriteUint64(0)
			d.WriteUint64(0)
		}
		if n.First != nil {
			d.WriteUint64(uint64(*n.First))
		} else {
			d.WriteUint64(0)
		}
		if n.Second != nil {
			d.WriteUint64(uint64(*n.Second))
		} else {
			d.WriteUint64(0)
		}
	}
}
