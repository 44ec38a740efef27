package document

// binaryContent implements the position algebra shared by nodes with no
// interior structure: the node is either included in a selection or not.
type binaryContent struct{}

// BeginningPosition returns the not-included position.
func (binaryContent) BeginningPosition() NodePosition {
	return BinaryPosition{Included: false}
}

// EndPosition returns the included position.
func (binaryContent) EndPosition() NodePosition {
	return BinaryPosition{Included: true}
}

// UpstreamPosition returns the not-included position when the two
// disagree; a binary node has only two positions and not-included is the
// upstream one.
func (binaryContent) UpstreamPosition(a, b NodePosition) (NodePosition, error) {
	pa, pb, err := binaryPositions(a, b)
	if err != nil {
		return nil, err
	}
	if !pa.Included {
		return pa, nil
	}
	return pb, nil
}

// DownstreamPosition returns the included position when the two disagree.
func (binaryContent) DownstreamPosition(a, b NodePosition) (NodePosition, error) {
	pa, pb, err := binaryPositions(a, b)
	if err != nil {
		return nil, err
	}
	if pa.Included {
		return pa, nil
	}
	return pb, nil
}

// ComputeSelection includes the node when either endpoint does.
func (binaryContent) ComputeSelection(base, extent NodePosition) (NodeSelection, error) {
	pb, pe, err := binaryPositions(base, extent)
	if err != nil {
		return nil, err
	}
	return BinaryNodeSelection{Included: pb.Included || pe.Included}, nil
}

func binaryPositions(a, b NodePosition) (BinaryPosition, BinaryPosition, error) {
	pa, ok := a.(BinaryPosition)
	if !ok {
		return BinaryPosition{}, BinaryPosition{}, ErrInvalidPosition
	}
	pb, ok := b.(BinaryPosition)
	if !ok {
		return BinaryPosition{}, BinaryPosition{}, ErrInvalidPosition
	}
	return pa, pb, nil
}

// ImageNode is a block-level image reference. Its content lives outside
// the document; selection treats it as an indivisible unit.
type ImageNode struct {
	metadataStore
	binaryContent
	id      NodeID
	url     string
	altText string
}

// NewImageNode creates an image node.
func NewImageNode(id NodeID, url, altText string) *ImageNode {
	return &ImageNode{id: id, url: url, altText: altText}
}

// ID returns the node id.
func (n *ImageNode) ID() NodeID { return n.id }

// URL returns the image source.
func (n *ImageNode) URL() string { return n.url }

// AltText returns the image's alternate text.
func (n *ImageNode) AltText() string { return n.altText }

// CopyContent returns the image URL when the node is included in sel.
// Clipboard transport is plain text, so the URL stands in for the image.
func (n *ImageNode) CopyContent(sel NodeSelection) (string, bool) {
	bs, ok := sel.(BinaryNodeSelection)
	if !ok || !bs.Included {
		return "", false
	}
	return n.url, true
}

// EquivalentContent reports whether other is an image of the same URL and
// alt text.
func (n *ImageNode) EquivalentContent(other Node) bool {
	o, ok := other.(*ImageNode)
	return ok && n.url == o.url && n.altText == o.altText
}

// Copy returns a deep copy of the image node, id included.
func (n *ImageNode) Copy() Node {
	out := NewImageNode(n.id, n.url, n.altText)
	out.replaceMetadata(n.copyMetadata())
	return out
}

// HorizontalRuleNode is a thematic break.
type HorizontalRuleNode struct {
	metadataStore
	binaryContent
	id NodeID
}

// NewHorizontalRuleNode creates a horizontal rule node.
func NewHorizontalRuleNode(id NodeID) *HorizontalRuleNode {
	return &HorizontalRuleNode{id: id}
}

// ID returns the node id.
func (n *HorizontalRuleNode) ID() NodeID { return n.id }

// CopyContent returns the markdown rule marker when included in sel.
func (n *HorizontalRuleNode) CopyContent(sel NodeSelection) (string, bool) {
	bs, ok := sel.(BinaryNodeSelection)
	if !ok || !bs.Included {
		return "", false
	}
	return "---", true
}

// EquivalentContent reports whether other is also a horizontal rule.
func (n *HorizontalRuleNode) EquivalentContent(other Node) bool {
	_, ok := other.(*HorizontalRuleNode)
	return ok
}

// Copy returns a copy of the rule node, id included.
func (n *HorizontalRuleNode) Copy() Node {
	out := NewHorizontalRuleNode(n.id)
	out.replaceMetadata(n.copyMetadata())
	return out
}
