package editor

import (
	"github.com/dshills/docstorm/internal/document"
)

// InsertNodeAtCommand inserts a node at a document-order index.
type InsertNodeAtCommand struct {
	Index int
	Node  document.Node
}

// Name returns the command name.
func (c *InsertNodeAtCommand) Name() string { return "insert-node-at" }

// Execute inserts the node.
func (c *InsertNodeAtCommand) Execute(_ *document.Document, tx *Transaction) error {
	return tx.InsertNodeAt(c.Index, c.Node)
}

// InsertNodeAfterCommand inserts a node after an existing node.
type InsertNodeAfterCommand struct {
	AfterID document.NodeID
	Node    document.Node
}

// Name returns the command name.
func (c *InsertNodeAfterCommand) Name() string { return "insert-node-after" }

// Execute inserts the node.
func (c *InsertNodeAfterCommand) Execute(_ *document.Document, tx *Transaction) error {
	return tx.InsertNodeAfter(c.AfterID, c.Node)
}

// DeleteNodeCommand removes a node by id.
type DeleteNodeCommand struct {
	NodeID document.NodeID
}

// Name returns the command name.
func (c *DeleteNodeCommand) Name() string { return "delete-node" }

// Execute removes the node.
func (c *DeleteNodeCommand) Execute(_ *document.Document, tx *Transaction) error {
	return tx.DeleteNode(c.NodeID)
}

// ReplaceNodeCommand swaps an existing node for a new one.
type ReplaceNodeCommand struct {
	OldID document.NodeID
	Node  document.Node
}

// Name returns the command name.
func (c *ReplaceNodeCommand) Name() string { return "replace-node" }

// Execute replaces the node.
func (c *ReplaceNodeCommand) Execute(_ *document.Document, tx *Transaction) error {
	return tx.ReplaceNode(c.OldID, c.Node)
}

// SetMetadataCommand sets one metadata value on a node. Unknown keys are
// stored verbatim (opaque pass-through).
type SetMetadataCommand struct {
	NodeID document.NodeID
	Key    string
	Value  any
}

// Name returns the command name.
func (c *SetMetadataCommand) Name() string { return "set-metadata" }

// Execute stores the metadata value.
func (c *SetMetadataCommand) Execute(doc *document.Document, tx *Transaction) error {
	n, ok := doc.NodeByID(c.NodeID)
	if !ok {
		return document.ErrNodeNotFound
	}
	n.SetMetadataValue(c.Key, c.Value)
	tx.NodeChanged(c.NodeID)
	return nil
}

// ChangeListIndentCommand adjusts a list item's indent by Delta, clamped
// to the valid range. Indenting at the maximum level is a no-op.
type ChangeListIndentCommand struct {
	NodeID document.NodeID
	Delta  int
}

// Name returns the command name.
func (c *ChangeListIndentCommand) Name() string { return "change-list-indent" }

// Execute adjusts the indent.
func (c *ChangeListIndentCommand) Execute(doc *document.Document, tx *Transaction) error {
	n, ok := doc.NodeByID(c.NodeID)
	if !ok {
		return document.ErrNodeNotFound
	}
	li, ok := n.(*document.ListItemNode)
	if !ok {
		return ErrInvalidNodeType
	}

	before := li.Indent()
	li.SetIndent(before + c.Delta)
	if li.Indent() != before {
		tx.NodeChanged(c.NodeID)
	}
	return nil
}

// ConvertToParagraphCommand replaces a text-family node with a paragraph
// carrying the same id and text. Metadata moves across unless Metadata
// is non-nil, in which case it replaces the node's metadata wholesale.
type ConvertToParagraphCommand struct {
	NodeID   document.NodeID
	Metadata map[string]any
}

// Name returns the command name.
func (c *ConvertToParagraphCommand) Name() string { return "convert-to-paragraph" }

// Execute converts the node.
func (c *ConvertToParagraphCommand) Execute(doc *document.Document, tx *Transaction) error {
	tn, err := textualNode(doc, c.NodeID)
	if err != nil {
		return err
	}

	p := document.NewParagraphNode(c.NodeID, tn.Text())
	md := c.Metadata
	if md == nil {
		md = tn.Metadata()
	}
	for k, v := range md {
		p.SetMetadataValue(k, v)
	}
	return tx.ReplaceNode(c.NodeID, p)
}

// ConvertToListItemCommand replaces a text-family node with a list item
// carrying the same id and text.
type ConvertToListItemCommand struct {
	NodeID   document.NodeID
	ListType document.ListType
	Indent   int
}

// Name returns the command name.
func (c *ConvertToListItemCommand) Name() string { return "convert-to-list-item" }

// Execute converts the node.
func (c *ConvertToListItemCommand) Execute(doc *document.Document, tx *Transaction) error {
	tn, err := textualNode(doc, c.NodeID)
	if err != nil {
		return err
	}

	li := document.NewListItemNode(c.NodeID, tn.Text(), c.ListType, c.Indent)
	for k, v := range tn.Metadata() {
		li.SetMetadataValue(k, v)
	}
	return tx.ReplaceNode(c.NodeID, li)
}

// textualNode resolves a node id to a text-family node, failing fast on
// absence or a non-text variant.
func textualNode(doc *document.Document, id document.NodeID) (document.TextualNode, error) {
	n, ok := doc.NodeByID(id)
	if !ok {
		return nil, document.ErrNodeNotFound
	}
	tn, ok := n.(document.TextualNode)
	if !ok {
		return nil, ErrInvalidNodeType
	}
	return tn, nil
}
