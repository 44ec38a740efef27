package editor

import "errors"

// Errors returned by editor commands.
var (
	// ErrInvalidNodeType indicates a command was applied to a node
	// variant that cannot support the requested operation.
	ErrInvalidNodeType = errors.New("node type cannot support this operation")

	// ErrNodesNotAdjacent indicates a merge of two nodes that are not
	// document-order neighbors.
	ErrNodesNotAdjacent = errors.New("nodes are not adjacent")

	// ErrEmptySelection indicates a command that requires an expanded
	// selection received a collapsed one.
	ErrEmptySelection = errors.New("selection is collapsed")
)
