package editor

import (
	"fmt"

	"github.com/dshills/docstorm/internal/document"
)

// Command is one atomic, replayable edit. Commands are pure data until
// Execute runs; constructing one performs no validation and no mutation.
type Command interface {
	// Execute applies the command against doc, recording structural
	// changes through tx. It runs synchronously to completion.
	Execute(doc *document.Document, tx *Transaction) error

	// Name returns the command's stable name, used in error context and
	// undo records.
	Name() string
}

// Editor applies commands to a document.
type Editor struct {
	doc *document.Document
}

// New creates an editor over doc.
func New(doc *document.Document) *Editor {
	return &Editor{doc: doc}
}

// Document returns the document under edit.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Execute runs commands in order, each synchronously to completion.
// Returns the transaction's change events. On error, execution stops at
// the failing command; commands validate before mutating, so the failing
// command itself has not touched the document.
func (e *Editor) Execute(cmds ...Command) ([]document.ChangeEvent, error) {
	tx := NewTransaction(e.doc)
	for _, cmd := range cmds {
		if err := cmd.Execute(e.doc, tx); err != nil {
			return tx.Events(), fmt.Errorf("%s: %w", cmd.Name(), err)
		}
	}
	return tx.Events(), nil
}

// Transaction records the ordered set of tree mutations performed by one
// command invocation. Each call applies to the document immediately; the
// transaction is a ledger, not a staging area.
type Transaction struct {
	doc    *document.Document
	events []document.ChangeEvent
}

// NewTransaction creates a transaction over doc.
func NewTransaction(doc *document.Document) *Transaction {
	return &Transaction{doc: doc}
}

// Events returns the changes recorded so far, in application order.
func (tx *Transaction) Events() []document.ChangeEvent {
	out := make([]document.ChangeEvent, len(tx.events))
	copy(out, tx.events)
	return out
}

// InsertNodeAt inserts a node at a document-order index.
func (tx *Transaction) InsertNodeAt(i int, n document.Node) error {
	if err := tx.doc.InsertNodeAt(i, n); err != nil {
		return err
	}
	tx.record(document.NodeInserted, n.ID())
	return nil
}

// InsertNodeAfter inserts a node after an existing node.
func (tx *Transaction) InsertNodeAfter(afterID document.NodeID, n document.Node) error {
	if err := tx.doc.InsertNodeAfter(afterID, n); err != nil {
		return err
	}
	tx.record(document.NodeInserted, n.ID())
	return nil
}

// InsertNodeBefore inserts a node before an existing node.
func (tx *Transaction) InsertNodeBefore(beforeID document.NodeID, n document.Node) error {
	if err := tx.doc.InsertNodeBefore(beforeID, n); err != nil {
		return err
	}
	tx.record(document.NodeInserted, n.ID())
	return nil
}

// DeleteNodeAt deletes the node at a document-order index.
func (tx *Transaction) DeleteNodeAt(i int) error {
	n, ok := tx.doc.NodeAt(i)
	if !ok {
		return document.ErrIndexOutOfRange
	}
	if err := tx.doc.DeleteNodeAt(i); err != nil {
		return err
	}
	tx.record(document.NodeRemoved, n.ID())
	return nil
}

// DeleteNode deletes a node by id.
func (tx *Transaction) DeleteNode(id document.NodeID) error {
	if err := tx.doc.DeleteNode(id); err != nil {
		return err
	}
	tx.record(document.NodeRemoved, id)
	return nil
}

// ReplaceNode swaps a node for a new one at the same index.
func (tx *Transaction) ReplaceNode(oldID document.NodeID, n document.Node) error {
	if err := tx.doc.ReplaceNode(oldID, n); err != nil {
		return err
	}
	tx.record(document.NodeReplaced, n.ID())
	return nil
}

// NodeChanged records a content or metadata change made directly to a
// node and notifies document listeners.
func (tx *Transaction) NodeChanged(id document.NodeID) {
	tx.record(document.NodeChanged, id)
	tx.doc.Notify(document.ChangeEvent{Kind: document.NodeChanged, NodeID: id})
}

func (tx *Transaction) record(kind document.ChangeKind, id document.NodeID) {
	tx.events = append(tx.events, document.ChangeEvent{Kind: kind, NodeID: id})
}
