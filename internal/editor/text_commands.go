package editor

import (
	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
)

// InsertTextCommand splices text into a text-family node at a caret
// position. The inserted run receives Attributions, merging with any
// abutting equal spans.
type InsertTextCommand struct {
	Position     document.Position
	Text         string
	Attributions []attrtext.Attribution
}

// Name returns the command name.
func (c *InsertTextCommand) Name() string { return "insert-text" }

// Execute inserts the text.
func (c *InsertTextCommand) Execute(doc *document.Document, tx *Transaction) error {
	tn, err := textualNode(doc, c.Position.NodeID)
	if err != nil {
		return err
	}
	tp, ok := c.Position.NodePosition.(document.TextPosition)
	if !ok {
		return document.ErrInvalidPosition
	}
	if err := tn.Text().InsertString(c.Text, tp.Offset, c.Attributions...); err != nil {
		return err
	}
	tx.NodeChanged(tn.ID())
	return nil
}

// DeleteRegionCommand removes the caret range [Start, End) from a
// text-family node.
type DeleteRegionCommand struct {
	NodeID document.NodeID
	Start  int
	End    int
}

// Name returns the command name.
func (c *DeleteRegionCommand) Name() string { return "delete-region" }

// Execute removes the region.
func (c *DeleteRegionCommand) Execute(doc *document.Document, tx *Transaction) error {
	tn, err := textualNode(doc, c.NodeID)
	if err != nil {
		return err
	}
	if err := tn.Text().RemoveRegion(c.Start, c.End); err != nil {
		return err
	}
	tx.NodeChanged(c.NodeID)
	return nil
}

// SplitTextNodeCommand splits a text-family node at a caret offset. The
// original node keeps the upstream half; a new node of the same kind,
// with id NewNodeID, receives the downstream half and is inserted after
// it. A list item's type and indent are inherited by the new node.
// Other metadata is copied to the new node only when CopyMetadata is set.
type SplitTextNodeCommand struct {
	NodeID       document.NodeID
	Offset       int
	NewNodeID    document.NodeID
	CopyMetadata bool
}

// Name returns the command name.
func (c *SplitTextNodeCommand) Name() string { return "split-text-node" }

// Execute splits the node.
func (c *SplitTextNodeCommand) Execute(doc *document.Document, tx *Transaction) error {
	tn, err := textualNode(doc, c.NodeID)
	if err != nil {
		return err
	}

	text := tn.Text()
	if c.Offset < 0 || c.Offset > text.Len() {
		return attrtext.ErrOffsetOutOfRange
	}

	upstream, err := text.Copy(0, c.Offset)
	if err != nil {
		return err
	}
	downstream, err := text.Copy(c.Offset, text.Len())
	if err != nil {
		return err
	}

	var newNode document.Node
	switch orig := tn.(type) {
	case *document.ListItemNode:
		newNode = document.NewListItemNode(c.NewNodeID, downstream, orig.ListType(), orig.Indent())
	case *document.ParagraphNode:
		newNode = document.NewParagraphNode(c.NewNodeID, downstream)
	default:
		newNode = document.NewTextNode(c.NewNodeID, downstream)
	}
	if c.CopyMetadata {
		for k, v := range tn.Metadata() {
			newNode.SetMetadataValue(k, v)
		}
	}

	tn.SetText(upstream)
	if err := tx.InsertNodeAfter(c.NodeID, newNode); err != nil {
		return err
	}
	tx.NodeChanged(c.NodeID)
	return nil
}

// MergeTextNodesCommand appends the second node's text onto the first
// and deletes the second. The nodes must be document-order neighbors and
// both text-family; merging a text node with a non-text node fails with
// ErrInvalidNodeType, the caller must convert first.
type MergeTextNodesCommand struct {
	FirstID  document.NodeID
	SecondID document.NodeID
}

// Name returns the command name.
func (c *MergeTextNodesCommand) Name() string { return "merge-text-nodes" }

// Execute merges the nodes.
func (c *MergeTextNodesCommand) Execute(doc *document.Document, tx *Transaction) error {
	first, err := textualNode(doc, c.FirstID)
	if err != nil {
		return err
	}
	second, err := textualNode(doc, c.SecondID)
	if err != nil {
		return err
	}
	after, ok := doc.NodeAfter(c.FirstID)
	if !ok || after.ID() != c.SecondID {
		return ErrNodesNotAdjacent
	}

	first.Text().Append(second.Text())
	if err := tx.DeleteNode(c.SecondID); err != nil {
		return err
	}
	tx.NodeChanged(c.FirstID)
	return nil
}

// ToggleAttributionsCommand toggles attributions over every text-family
// node a selection touches. If any covered character lacks any of the
// attributions, the attributions are added throughout; otherwise they
// are removed throughout. Non-text nodes inside the selection are
// skipped.
type ToggleAttributionsCommand struct {
	Selection    document.Selection
	Attributions []attrtext.Attribution
}

// Name returns the command name.
func (c *ToggleAttributionsCommand) Name() string { return "toggle-attributions" }

// Execute toggles the attributions.
func (c *ToggleAttributionsCommand) Execute(doc *document.Document, tx *Transaction) error {
	if c.Selection.IsCollapsed() {
		return ErrEmptySelection
	}
	ranges, err := textRanges(doc, c.Selection)
	if err != nil {
		return err
	}
	if len(ranges) == 0 {
		return nil
	}

	// First pass: decide direction. Add unless every range already has
	// every attribution throughout.
	allHave := true
	for _, r := range ranges {
		if !r.node.Text().HasAttributionsThroughout(c.Attributions, r.start, r.end-1) {
			allHave = false
			break
		}
	}

	for _, r := range ranges {
		for _, a := range c.Attributions {
			if allHave {
				err = r.node.Text().RemoveAttribution(a, r.start, r.end-1)
			} else {
				err = r.node.Text().AddAttribution(a, r.start, r.end-1)
			}
			if err != nil {
				return err
			}
		}
		tx.NodeChanged(r.node.ID())
	}
	return nil
}

// textRange is a non-empty caret range [start, end) within one
// text-family node.
type textRange struct {
	node  document.TextualNode
	start int
	end   int
}

// textRanges resolves a document selection to the per-node caret ranges
// it covers, in document order, skipping binary nodes and empty ranges.
func textRanges(doc *document.Document, sel document.Selection) ([]textRange, error) {
	start, end, err := sel.Normalized(doc)
	if err != nil {
		return nil, err
	}
	nodes, err := doc.NodesInside(start, end)
	if err != nil {
		return nil, err
	}

	var out []textRange
	for i, n := range nodes {
		tn, ok := n.(document.TextualNode)
		if !ok {
			continue
		}
		so, eo := 0, tn.Text().Len()
		if i == 0 {
			tp, ok := start.NodePosition.(document.TextPosition)
			if !ok {
				return nil, document.ErrInvalidPosition
			}
			so = tp.Offset
		}
		if i == len(nodes)-1 {
			tp, ok := end.NodePosition.(document.TextPosition)
			if !ok {
				return nil, document.ErrInvalidPosition
			}
			eo = tp.Offset
		}
		if eo > so {
			out = append(out, textRange{node: tn, start: so, end: eo})
		}
	}
	return out, nil
}

// DeleteSelectionCommand removes everything an expanded selection
// covers. Partially covered text nodes are trimmed; fully covered
// interior nodes are deleted; a binary endpoint node is deleted only
// when its position marks it included. When both endpoint nodes are
// text-family and survive, the downstream remainder merges into the
// upstream node, which keeps its id.
type DeleteSelectionCommand struct {
	Selection document.Selection
}

// Name returns the command name.
func (c *DeleteSelectionCommand) Name() string { return "delete-selection" }

// Execute deletes the selected content.
func (c *DeleteSelectionCommand) Execute(doc *document.Document, tx *Transaction) error {
	if c.Selection.IsCollapsed() {
		return ErrEmptySelection
	}
	start, end, err := c.Selection.Normalized(doc)
	if err != nil {
		return err
	}

	if start.NodeID == end.NodeID {
		return c.deleteWithinNode(doc, tx, start, end)
	}

	nodes, err := doc.NodesInside(start, end)
	if err != nil {
		return err
	}

	// Validate both endpoint variants before mutating anything.
	if err := validateEndpoint(nodes[0], start.NodePosition); err != nil {
		return err
	}
	if err := validateEndpoint(nodes[len(nodes)-1], end.NodePosition); err != nil {
		return err
	}

	// Interior nodes are fully covered.
	for _, n := range nodes[1 : len(nodes)-1] {
		if err := tx.DeleteNode(n.ID()); err != nil {
			return err
		}
	}

	firstAlive := true
	lastAlive := true

	switch n := nodes[0].(type) {
	case document.TextualNode:
		tp := start.NodePosition.(document.TextPosition)
		if err := n.Text().RemoveRegion(tp.Offset, n.Text().Len()); err != nil {
			return err
		}
		tx.NodeChanged(n.ID())
	default:
		if start.NodePosition.(document.BinaryPosition).Included {
			if err := tx.DeleteNode(n.ID()); err != nil {
				return err
			}
			firstAlive = false
		}
	}

	switch n := nodes[len(nodes)-1].(type) {
	case document.TextualNode:
		tp := end.NodePosition.(document.TextPosition)
		if err := n.Text().RemoveRegion(0, tp.Offset); err != nil {
			return err
		}
		tx.NodeChanged(n.ID())
	default:
		if end.NodePosition.(document.BinaryPosition).Included {
			if err := tx.DeleteNode(n.ID()); err != nil {
				return err
			}
			lastAlive = false
		}
	}

	firstText, firstIsText := nodes[0].(document.TextualNode)
	lastText, lastIsText := nodes[len(nodes)-1].(document.TextualNode)
	if firstAlive && lastAlive && firstIsText && lastIsText {
		firstText.Text().Append(lastText.Text())
		if err := tx.DeleteNode(lastText.ID()); err != nil {
			return err
		}
		tx.NodeChanged(firstText.ID())
	}
	return nil
}

func (c *DeleteSelectionCommand) deleteWithinNode(doc *document.Document, tx *Transaction, start, end document.Position) error {
	n, ok := doc.NodeByID(start.NodeID)
	if !ok {
		return document.ErrNodeNotFound
	}
	switch tn := n.(type) {
	case document.TextualNode:
		sp, ok1 := start.NodePosition.(document.TextPosition)
		ep, ok2 := end.NodePosition.(document.TextPosition)
		if !ok1 || !ok2 {
			return document.ErrInvalidPosition
		}
		if err := tn.Text().RemoveRegion(sp.Offset, ep.Offset); err != nil {
			return err
		}
		tx.NodeChanged(tn.ID())
		return nil
	default:
		sel, err := n.ComputeSelection(start.NodePosition, end.NodePosition)
		if err != nil {
			return err
		}
		if bs, ok := sel.(document.BinaryNodeSelection); ok && bs.Included {
			return tx.DeleteNode(n.ID())
		}
		return nil
	}
}

// validateEndpoint checks a selection endpoint's variant and bounds
// against its node, so a failing delete leaves the document untouched.
func validateEndpoint(n document.Node, p document.NodePosition) error {
	switch tn := n.(type) {
	case document.TextualNode:
		tp, ok := p.(document.TextPosition)
		if !ok {
			return document.ErrInvalidPosition
		}
		if tp.Offset < 0 || tp.Offset > tn.Text().Len() {
			return attrtext.ErrOffsetOutOfRange
		}
	default:
		if _, ok := p.(document.BinaryPosition); !ok {
			return document.ErrInvalidPosition
		}
	}
	return nil
}
