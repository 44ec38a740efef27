package document

import "github.com/google/uuid"

// NodeID uniquely identifies a node for the lifetime of a document.
// Ids are never reused within a session.
type NodeID string

// NewNodeID returns a new process-wide unique node id.
func NewNodeID() NodeID {
	return NodeID(uuid.New().String())
}
