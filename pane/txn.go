// SPDX-License-Identifier: Unlicense OR MIT

package pane

// Result discriminates whether a journaled operation was applied or
// rejected.
type Result uint8

const (
	Applied Result = iota
	Rejected
)

// JournalEntry records one operation attempted within a transaction.
type JournalEntry struct {
	Sequence    uint64
	OperationId uint64
	Operation   Operation
	Kind        string
	Touched     []Id
	BeforeHash  uint64
	AfterHash   uint64
	Result      Result
	Reason      string
}

// OperationFailure is returned by Transaction.Apply (and by the bare
// ApplyOperation helper) when an operation is rejected. The tree is left
// unchanged; BeforeHash and AfterHash are equal.
type OperationFailure struct {
	OperationId uint64
	Kind        string
	Touched     []Id
	BeforeHash  uint64
	AfterHash   uint64
	Reason      string
}

func (f *OperationFailure) Error() string { return f.Reason }

// Transaction wraps a cloned working copy of a tree and journals every
// attempted operation, applied or rejected, per spec §4.2.
type Transaction struct {
	original *Tree
	working  *Tree
	journal  []JournalEntry
	seq      uint64
}

// Begin clones tree into a working copy and starts a transaction over it.
func Begin(tree *Tree) *Transaction {
	return &Transaction{original: tree, working: tree.Clone()}
}

// Apply attempts op against the working copy, journaling the outcome
// whether it succeeds or fails.
func (tx *Transaction) Apply(operationId uint64, op Operation) (*OperationFailure, error) {
	tx.seq++
	before := tx.working.StateHash()

	scratch := tx.working.Clone()
	touched, err := op.apply(scratch)
	if err != nil {
		entry := JournalEntry{
			Sequence: tx.seq, OperationId: operationId, Operation: op, Kind: op.Kind(),
			Touched: touched, BeforeHash: before, AfterHash: before,
			Result: Rejected, Reason: err.Error(),
		}
		tx.journal = append(tx.journal, entry)
		return &OperationFailure{
			OperationId: operationId, Kind: op.Kind(), Touched: touched,
			BeforeHash: before, AfterHash: before, Reason: err.Error(),
		}, nil
	}

	tx.working = scratch
	after := tx.working.StateHash()
	tx.journal = append(tx.journal, JournalEntry{
		Sequence: tx.seq, OperationId: operationId, Operation: op, Kind: op.Kind(),
		Touched: touched, BeforeHash: before, AfterHash: after, Result: Applied,
	})
	return nil, nil
}

// Journal returns the ordered list of attempted operations, applied and
// rejected alike.
func (tx *Transaction) Journal() []JournalEntry { return tx.journal }

// Commit returns the working copy as the new canonical tree.
func (tx *Transaction) Commit() *Tree { return tx.working }

// Rollback discards the working copy and returns the original tree
// unchanged.
func (tx *Transaction) Rollback() *Tree { return tx.original }

// ApplyOperation is a convenience for a single atomic mutation outside an
// explicit transaction: on success it returns the mutated tree (a fresh
// clone) and the touched-node set; on failure it returns the original tree
// unchanged and an *OperationFailure.
func ApplyOperation(tree *Tree, operationId uint64, op Operation) (*Tree, []Id, error) {
	tx := Begin(tree)
	failure, err := tx.Apply(operationId, op)
	if err != nil {
		return tree, nil, err
	}
	if failure != nil {
		return tree, nil, failure
	}
	entry := tx.journal[len(tx.journal)-1]
	return tx.Commit(), entry.Touched, nil
}
