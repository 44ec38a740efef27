package document

// Affinity disambiguates a text offset that has two visual homes, such as
// the boundary of a soft line wrap.
type Affinity uint8

const (
	// AffinityDownstream associates the position with the following content.
	AffinityDownstream Affinity = iota
	// AffinityUpstream associates the position with the preceding content.
	AffinityUpstream
)

// NodePosition is a node-kind-specific pointer to a location within one
// node's content. The variant set is closed: TextPosition for text-family
// nodes and BinaryPosition for nodes without interior structure.
type NodePosition interface {
	isNodePosition()

	// SamePlace reports whether two positions address the same content
	// location, ignoring affinity.
	SamePlace(other NodePosition) bool
}

// TextPosition addresses a byte offset within a text-family node.
type TextPosition struct {
	Offset   int
	Affinity Affinity
}

func (TextPosition) isNodePosition() {}

// SamePlace reports whether other is a TextPosition at the same offset.
func (p TextPosition) SamePlace(other NodePosition) bool {
	o, ok := other.(TextPosition)
	return ok && o.Offset == p.Offset
}

// BinaryPosition addresses a node with no interior: the node is either
// included in a selection or it is not.
type BinaryPosition struct {
	Included bool
}

func (BinaryPosition) isNodePosition() {}

// SamePlace reports whether other is a BinaryPosition with the same
// inclusion state.
func (p BinaryPosition) SamePlace(other NodePosition) bool {
	o, ok := other.(BinaryPosition)
	return ok && o.Included == p.Included
}

// Position points into the document: a node id plus a position within
// that node. A Position becomes invalid when its node is removed; callers
// holding one across an async gap must re-resolve before use.
type Position struct {
	NodeID       NodeID
	NodePosition NodePosition
}

// SamePlace reports whether two positions address the same location,
// ignoring text affinity.
func (p Position) SamePlace(other Position) bool {
	return p.NodeID == other.NodeID &&
		p.NodePosition != nil && other.NodePosition != nil &&
		p.NodePosition.SamePlace(other.NodePosition)
}
