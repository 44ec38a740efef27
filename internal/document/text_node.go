package document

import "github.com/dshills/docstorm/internal/attrtext"

// TextualNode is the capability shared by every text-family node.
// Commands that operate on text accept any TextualNode and fail fast on
// other variants.
type TextualNode interface {
	Node

	// Text returns the node's live attributed text.
	Text() *attrtext.Text

	// SetText replaces the node's attributed text.
	SetText(text *attrtext.Text)
}

// TextNode is a block of attributed text. Positions into a TextNode are
// caret offsets: 0 through Len inclusive.
type TextNode struct {
	metadataStore
	id   NodeID
	text *attrtext.Text
}

// NewTextNode creates a text node. A nil text is treated as empty.
func NewTextNode(id NodeID, text *attrtext.Text) *TextNode {
	if text == nil {
		text = attrtext.New("")
	}
	return &TextNode{id: id, text: text}
}

// ID returns the node id.
func (n *TextNode) ID() NodeID { return n.id }

// Text returns the node's live attributed text.
func (n *TextNode) Text() *attrtext.Text { return n.text }

// SetText replaces the node's attributed text.
func (n *TextNode) SetText(text *attrtext.Text) {
	if text == nil {
		text = attrtext.New("")
	}
	n.text = text
}

// BeginningPosition returns the caret position before the first byte.
func (n *TextNode) BeginningPosition() NodePosition {
	return TextPosition{Offset: 0, Affinity: AffinityDownstream}
}

// EndPosition returns the caret position after the last byte. The offset
// always reflects the current text length.
func (n *TextNode) EndPosition() NodePosition {
	return TextPosition{Offset: n.text.Len(), Affinity: AffinityUpstream}
}

// UpstreamPosition returns whichever position has the lower offset. At
// equal offsets the upstream-affinity position wins.
func (n *TextNode) UpstreamPosition(a, b NodePosition) (NodePosition, error) {
	pa, pb, err := textPositions(a, b)
	if err != nil {
		return nil, err
	}
	if pa.Offset < pb.Offset {
		return pa, nil
	}
	if pb.Offset < pa.Offset {
		return pb, nil
	}
	if pa.Affinity == AffinityUpstream {
		return pa, nil
	}
	return pb, nil
}

// DownstreamPosition returns whichever position has the higher offset. At
// equal offsets the downstream-affinity position wins.
func (n *TextNode) DownstreamPosition(a, b NodePosition) (NodePosition, error) {
	pa, pb, err := textPositions(a, b)
	if err != nil {
		return nil, err
	}
	if pa.Offset > pb.Offset {
		return pa, nil
	}
	if pb.Offset > pa.Offset {
		return pb, nil
	}
	if pa.Affinity == AffinityDownstream {
		return pa, nil
	}
	return pb, nil
}

// ComputeSelection builds the text range between base and extent,
// preserving the given base/extent order.
func (n *TextNode) ComputeSelection(base, extent NodePosition) (NodeSelection, error) {
	pb, pe, err := textPositions(base, extent)
	if err != nil {
		return nil, err
	}
	return TextNodeSelection{Base: pb, Extent: pe}, nil
}

// CopyContent returns the plain text covered by sel.
func (n *TextNode) CopyContent(sel NodeSelection) (string, bool) {
	ts, ok := sel.(TextNodeSelection)
	if !ok {
		return "", false
	}
	start, end := ts.Start(), ts.End()
	if start == end {
		return "", false
	}
	if start < 0 || end > n.text.Len() {
		return "", false
	}
	return n.text.String()[start:end], true
}

// EquivalentContent reports whether other is a text-family node with
// equal attributed text.
func (n *TextNode) EquivalentContent(other Node) bool {
	o, ok := other.(TextualNode)
	return ok && n.text.Equal(o.Text())
}

// Copy returns a deep copy of the node, id included.
func (n *TextNode) Copy() Node {
	out := NewTextNode(n.id, n.text.CopyAll())
	out.replaceMetadata(n.copyMetadata())
	return out
}

// ParagraphNode is a text node with block-level presentation metadata
// (blockType, textAlign). Headers are paragraphs whose blockType says so.
type ParagraphNode struct {
	TextNode
}

// NewParagraphNode creates a paragraph node.
func NewParagraphNode(id NodeID, text *attrtext.Text) *ParagraphNode {
	return &ParagraphNode{TextNode: *NewTextNode(id, text)}
}

// BlockType returns the paragraph's block type, or "" for a plain
// paragraph.
func (n *ParagraphNode) BlockType() string {
	v, ok := n.MetadataValue(MetadataBlockType)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SetBlockType sets the paragraph's block type.
func (n *ParagraphNode) SetBlockType(blockType string) {
	n.SetMetadataValue(MetadataBlockType, blockType)
}

// EquivalentContent reports whether other is a paragraph with the same
// text and the same block type.
func (n *ParagraphNode) EquivalentContent(other Node) bool {
	o, ok := other.(*ParagraphNode)
	if !ok {
		return false
	}
	return n.BlockType() == o.BlockType() && n.text.Equal(o.text)
}

// Copy returns a deep copy of the paragraph, id included.
func (n *ParagraphNode) Copy() Node {
	out := NewParagraphNode(n.id, n.text.CopyAll())
	out.replaceMetadata(n.copyMetadata())
	return out
}

// textPositions asserts both positions are TextPositions.
func textPositions(a, b NodePosition) (TextPosition, TextPosition, error) {
	pa, ok := a.(TextPosition)
	if !ok {
		return TextPosition{}, TextPosition{}, ErrInvalidPosition
	}
	pb, ok := b.(TextPosition)
	if !ok {
		return TextPosition{}, TextPosition{}, ErrInvalidPosition
	}
	return pa, pb, nil
}
