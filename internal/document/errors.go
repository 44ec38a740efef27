package document

import "errors"

// Errors returned by document operations.
var (
	// ErrNodeNotFound indicates a node id is not present in the document.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDuplicateNode indicates an insert would reuse an existing node id.
	ErrDuplicateNode = errors.New("node id already present")

	// ErrIndexOutOfRange indicates a node index outside the document.
	ErrIndexOutOfRange = errors.New("node index out of range")

	// ErrInvalidPosition indicates a position or selection variant that
	// does not match the node it was applied to.
	ErrInvalidPosition = errors.New("position type does not match node")

	// ErrDanglingReference indicates a recorded position or selection
	// points at a node that no longer exists.
	ErrDanglingReference = errors.New("position references a missing node")
)
