package document

// NodeSelection describes the selected portion of a single node. Like
// NodePosition, the variant set is closed.
type NodeSelection interface {
	isNodeSelection()
}

// TextNodeSelection is a sub-range of a text-family node. Base and Extent
// carry no ordering guarantee.
type TextNodeSelection struct {
	Base   TextPosition
	Extent TextPosition
}

func (TextNodeSelection) isNodeSelection() {}

// Start returns the lower of the two offsets.
func (s TextNodeSelection) Start() int {
	if s.Base.Offset <= s.Extent.Offset {
		return s.Base.Offset
	}
	return s.Extent.Offset
}

// End returns the higher of the two offsets.
func (s TextNodeSelection) End() int {
	if s.Base.Offset >= s.Extent.Offset {
		return s.Base.Offset
	}
	return s.Extent.Offset
}

// IsCollapsed reports whether the selection has no extent.
func (s TextNodeSelection) IsCollapsed() bool {
	return s.Base.Offset == s.Extent.Offset
}

// BinaryNodeSelection marks a binary node as wholly included or excluded.
// Partial selection of a binary node is not representable.
type BinaryNodeSelection struct {
	Included bool
}

func (BinaryNodeSelection) isNodeSelection() {}

// Selection is a base/extent pair of document positions, possibly
// spanning multiple nodes. Base is where the selection began; extent is
// where it currently ends. Neither is guaranteed to be the lexically
// earlier position.
type Selection struct {
	Base   Position
	Extent Position
}

// NewCollapsedSelection returns a selection whose base and extent are the
// same position (a caret).
func NewCollapsedSelection(p Position) Selection {
	return Selection{Base: p, Extent: p}
}

// IsCollapsed reports whether base and extent address the same location.
func (s Selection) IsCollapsed() bool {
	return s.Base.SamePlace(s.Extent)
}

// Normalized returns the selection's endpoints in document order:
// start is the upstream end, end the downstream end. Ordering is computed
// by node index, then within a single node by that node's own position
// ordering. Returns ErrDanglingReference if either node id is absent.
func (s Selection) Normalized(doc *Document) (start, end Position, err error) {
	baseIdx, ok := doc.NodeIndex(s.Base.NodeID)
	if !ok {
		return Position{}, Position{}, ErrDanglingReference
	}
	extentIdx, ok := doc.NodeIndex(s.Extent.NodeID)
	if !ok {
		return Position{}, Position{}, ErrDanglingReference
	}

	if baseIdx < extentIdx {
		return s.Base, s.Extent, nil
	}
	if baseIdx > extentIdx {
		return s.Extent, s.Base, nil
	}

	node, _ := doc.NodeByID(s.Base.NodeID)
	upstream, err := node.UpstreamPosition(s.Base.NodePosition, s.Extent.NodePosition)
	if err != nil {
		return Position{}, Position{}, err
	}
	if upstream.SamePlace(s.Base.NodePosition) {
		return s.Base, s.Extent, nil
	}
	return s.Extent, s.Base, nil
}

// Nodes returns the nodes the selection touches, in document order.
func (s Selection) Nodes(doc *Document) ([]Node, error) {
	return doc.NodesInside(s.Base, s.Extent)
}
