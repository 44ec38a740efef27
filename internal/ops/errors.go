package ops

import "errors"

// Errors returned by editing operations.
var (
	// ErrNoSelection indicates the operation needs a selection and the
	// composer has none.
	ErrNoSelection = errors.New("no active selection")

	// ErrCannotMergeNodes indicates a delete across a node boundary
	// would merge a text node with a non-text node. The caller must
	// convert the node first.
	ErrCannotMergeNodes = errors.New("cannot merge text node with non-text node")

	// ErrNoClipboard indicates a clipboard operation was requested but
	// no clipboard was configured.
	ErrNoClipboard = errors.New("no clipboard configured")
)
