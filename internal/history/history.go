// Package history provides the linear undo/redo log for an editing
// session.
//
// The log is an explicit object owned by its session; two documents
// never share one. It records high-level operation descriptors, not
// low-level tree mutations: each Edit carries an action tag, the
// selection at the time of the action, a serialized payload, and deep
// snapshots of affected nodes. Replaying an inverse is delegated to a
// Replayer (the operations layer), which owns one hand-written inverse
// per action tag.
//
// The undo stack is bounded. Once the cap is exceeded the oldest entry
// is dropped silently, with no warning to the caller.
package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/docstorm/internal/document"
)

// Errors returned by history operations.
var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrUnknownEditAction indicates an edit whose action tag has no
	// registered inverse. The transition halts with both stacks
	// unchanged.
	ErrUnknownEditAction = errors.New("unknown edit action")
)

// Action tags the kind of edit an entry records. Every tag requires its
// own hand-written inverse in the Replayer.
type Action string

// Supported action tags.
const (
	ActionInsertText         Action = "insert-text"
	ActionDeleteRegion       Action = "delete-region"
	ActionDeleteSelection    Action = "delete-selection"
	ActionToggleAttributions Action = "toggle-attributions"
	ActionInsertNode         Action = "insert-node"
	ActionDeleteNode         Action = "delete-node"
	ActionSplitNode          Action = "split-node"
	ActionMergeNodes         Action = "merge-nodes"
	ActionChangeIndent       Action = "change-indent"
	ActionConvertNode        Action = "convert-node"
	ActionPaste              Action = "paste"
	ActionCut                Action = "cut"
)

// Edit is one undoable action: the tag, the selection when it was
// performed, a serialized JSON payload with whatever the inverse needs,
// and deep snapshots of the nodes the action affected.
type Edit struct {
	Action    Action
	Selection document.Selection
	Payload   []byte
	Nodes     []document.Node
	At        time.Time
}

// Replayer executes the tag-specific inverse (undo) or forward (redo)
// transition of an edit. Implemented by the operations layer.
type Replayer interface {
	// ReplayInverse undoes the edit. An unknown tag returns
	// ErrUnknownEditAction without mutating anything.
	ReplayInverse(e *Edit) error

	// ReplayForward re-applies the edit.
	ReplayForward(e *Edit) error

	// RestoreSelection re-selects the recorded range.
	RestoreSelection(sel document.Selection)
}

// DefaultMaxDepth is the default undo stack bound. The reference
// behavior capped at 14; the bound is configurable because nothing in
// the design justifies that exact number.
const DefaultMaxDepth = 14

// Option configures a Log.
type Option func(*Log)

// WithMaxDepth sets the undo stack bound. Values < 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(l *Log) {
		if depth >= 1 {
			l.maxDepth = depth
		}
	}
}

// Log is a two-stack linear undo/redo history. Not a tree: a new push
// clears the redo stack.
type Log struct {
	mu       sync.Mutex
	undo     []*Edit
	redo     []*Edit
	maxDepth int
}

// NewLog creates an empty log.
func NewLog(opts ...Option) *Log {
	l := &Log{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Push records an edit on the undo stack and clears the redo stack.
// The oldest entry is dropped silently once the bound is exceeded.
func (l *Log) Push(e *Edit) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.At.IsZero() {
		e.At = time.Now()
	}
	l.undo = append(l.undo, e)
	if len(l.undo) > l.maxDepth {
		copy(l.undo, l.undo[1:])
		l.undo = l.undo[:l.maxDepth]
	}
	l.redo = nil
}

// Undo re-selects the top edit's recorded range, replays its inverse,
// and moves the record to the redo stack. A failed inverse, including
// ErrUnknownEditAction, leaves both stacks unchanged.
func (l *Log) Undo(r Replayer) error {
	l.mu.Lock()
	if len(l.undo) == 0 {
		l.mu.Unlock()
		return ErrNothingToUndo
	}
	e := l.undo[len(l.undo)-1]
	l.mu.Unlock()

	if err := r.ReplayInverse(e); err != nil {
		return err
	}
	r.RestoreSelection(e.Selection)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, e)
	return nil
}

// Redo replays the top redo edit forward and moves the record back to
// the undo stack. A failed replay leaves both stacks unchanged.
func (l *Log) Redo(r Replayer) error {
	l.mu.Lock()
	if len(l.redo) == 0 {
		l.mu.Unlock()
		return ErrNothingToRedo
	}
	e := l.redo[len(l.redo)-1]
	l.mu.Unlock()

	if err := r.ReplayForward(e); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, e)
	return nil
}

// CanUndo reports whether the undo stack is non-empty.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redo) > 0
}

// UndoDepth returns the number of undoable edits.
func (l *Log) UndoDepth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo)
}

// RedoDepth returns the number of redoable edits.
func (l *Log) RedoDepth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redo)
}

// Clear empties both stacks.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undo = nil
	l.redo = nil
}
