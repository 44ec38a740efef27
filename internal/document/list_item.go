package document

import "github.com/dshills/docstorm/internal/attrtext"

// ListType distinguishes ordered from unordered list items.
type ListType uint8

const (
	// ListUnordered is a bulleted list item.
	ListUnordered ListType = iota
	// ListOrdered is a numbered list item.
	ListOrdered
)

// String returns "ordered" or "unordered".
func (lt ListType) String() string {
	if lt == ListOrdered {
		return "ordered"
	}
	return "unordered"
}

// List indent bounds. Indent beyond MaxListIndent clamps; unindent below
// zero converts the item to a paragraph at the operations layer.
const (
	MinListIndent = 0
	MaxListIndent = 6
)

// ListItemNode is a text node that renders as one item of an ordered or
// unordered list at an indent level between 0 and 6.
type ListItemNode struct {
	TextNode
	listType ListType
	indent   int
}

// NewListItemNode creates a list item. Indent is clamped to the valid
// range.
func NewListItemNode(id NodeID, text *attrtext.Text, listType ListType, indent int) *ListItemNode {
	return &ListItemNode{
		TextNode: *NewTextNode(id, text),
		listType: listType,
		indent:   ClampIndent(indent),
	}
}

// ClampIndent bounds an indent level to [MinListIndent, MaxListIndent].
func ClampIndent(indent int) int {
	if indent < MinListIndent {
		return MinListIndent
	}
	if indent > MaxListIndent {
		return MaxListIndent
	}
	return indent
}

// ListType returns the item's list type.
func (n *ListItemNode) ListType() ListType { return n.listType }

// Indent returns the item's indent level.
func (n *ListItemNode) Indent() int { return n.indent }

// SetIndent sets the indent level, clamped to the valid range.
func (n *ListItemNode) SetIndent(indent int) {
	n.indent = ClampIndent(indent)
}

// EquivalentContent reports whether other is a list item with the same
// type, indent, and text.
func (n *ListItemNode) EquivalentContent(other Node) bool {
	o, ok := other.(*ListItemNode)
	if !ok {
		return false
	}
	return n.listType == o.listType && n.indent == o.indent && n.text.Equal(o.text)
}

// Copy returns a deep copy of the list item, id included.
func (n *ListItemNode) Copy() Node {
	out := NewListItemNode(n.id, n.text.CopyAll(), n.listType, n.indent)
	out.replaceMetadata(n.copyMetadata())
	return out
}
