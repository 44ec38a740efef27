package ops

import (
	"errors"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/editor"
	"github.com/dshills/docstorm/internal/history"
	"github.com/dshills/docstorm/internal/selection"
)

// textCaret returns the collapsed caret's textual node, full position,
// and byte offset.
func (o *Operations) textCaret() (document.TextualNode, document.Position, int, error) {
	sel := o.composer.Selection()
	if sel == nil || !sel.IsCollapsed() {
		return nil, document.Position{}, 0, ErrNoSelection
	}
	caret := sel.Extent
	n, ok := o.doc.NodeByID(caret.NodeID)
	if !ok {
		return nil, document.Position{}, 0, document.ErrDanglingReference
	}
	tn, ok := n.(document.TextualNode)
	if !ok {
		return nil, document.Position{}, 0, editor.ErrInvalidNodeType
	}
	tp, ok := caret.NodePosition.(document.TextPosition)
	if !ok {
		return nil, document.Position{}, 0, editor.ErrInvalidNodeType
	}
	return tn, caret, tp.Offset, nil
}

// InsertText types text at the caret, applying the composer's active
// style preferences. An expanded selection is deleted first.
func (o *Operations) InsertText(text string) error {
	sel := o.composer.Selection()
	if sel == nil {
		return ErrNoSelection
	}
	if !sel.IsCollapsed() {
		if err := o.DeleteSelection(); err != nil {
			return err
		}
	}

	_, caret, off, err := o.textCaret()
	if err != nil {
		return err
	}
	before := *o.composer.Selection()
	attrs := o.composer.PreferencesSnapshot()

	if _, err := o.editor.Execute(&editor.InsertTextCommand{
		Position:     caret,
		Text:         text,
		Attributions: attrs,
	}); err != nil {
		return err
	}

	p := newPayload()
	p = pset(p, "nodeId", string(caret.NodeID))
	p = pset(p, "offset", off)
	p = pset(p, "text", text)
	p = setAttributions(p, attrs)
	o.record(history.ActionInsertText, before, p)

	o.setCaret(document.Position{
		NodeID:       caret.NodeID,
		NodePosition: document.TextPosition{Offset: off + len(text)},
	})
	return nil
}

// InsertCharacter types a single character at the caret.
func (o *Operations) InsertCharacter(r rune) error {
	return o.InsertText(string(r))
}

// DeleteUpstream deletes one grapheme cluster before the caret. At a
// node boundary it merges the caret's text node into the previous text
// node; it refuses to delete past the first node of the document, and
// refuses to merge a text node with a non-text node. An expanded
// selection is deleted instead. Returns whether anything changed.
func (o *Operations) DeleteUpstream() (bool, error) {
	sel := o.composer.Selection()
	if sel == nil {
		return false, ErrNoSelection
	}
	if !sel.IsCollapsed() {
		if err := o.DeleteSelection(); err != nil {
			return false, err
		}
		return true, nil
	}

	before := *sel
	caret := sel.Extent
	n, ok := o.doc.NodeByID(caret.NodeID)
	if !ok {
		return false, nil
	}
	if _, isBinary := caret.NodePosition.(document.BinaryPosition); isBinary {
		return o.deleteCaretNode(before, n)
	}

	tn, caretPos, off, err := o.textCaret()
	if err != nil {
		return false, err
	}
	if off > 0 {
		start := selection.PrevGraphemeBoundary(tn.Text().String(), off)
		return o.deleteCharRange(before, caretPos.NodeID, tn, start, off)
	}

	prev, ok := o.doc.NodeBefore(caret.NodeID)
	if !ok {
		return false, nil
	}
	prevText, ok := prev.(document.TextualNode)
	if !ok {
		return false, ErrCannotMergeNodes
	}
	return o.mergeTextNodes(before, prevText, tn)
}

// DeleteDownstream deletes one grapheme cluster after the caret. At the
// end of a node it merges the following text node into the caret's
// node. Boundary rules mirror DeleteUpstream.
func (o *Operations) DeleteDownstream() (bool, error) {
	sel := o.composer.Selection()
	if sel == nil {
		return false, ErrNoSelection
	}
	if !sel.IsCollapsed() {
		if err := o.DeleteSelection(); err != nil {
			return false, err
		}
		return true, nil
	}

	before := *sel
	caret := sel.Extent
	n, ok := o.doc.NodeByID(caret.NodeID)
	if !ok {
		return false, nil
	}
	if _, isBinary := caret.NodePosition.(document.BinaryPosition); isBinary {
		return o.deleteCaretNode(before, n)
	}

	tn, caretPos, off, err := o.textCaret()
	if err != nil {
		return false, err
	}
	if off < tn.Text().Len() {
		end := selection.NextGraphemeBoundary(tn.Text().String(), off)
		return o.deleteCharRange(before, caretPos.NodeID, tn, off, end)
	}

	next, ok := o.doc.NodeAfter(caret.NodeID)
	if !ok {
		return false, nil
	}
	nextText, ok := next.(document.TextualNode)
	if !ok {
		return false, ErrCannotMergeNodes
	}
	return o.mergeTextNodes(before, tn, nextText)
}

func (o *Operations) deleteCharRange(before document.Selection, id document.NodeID, tn document.TextualNode, start, end int) (bool, error) {
	snapshot := tn.Copy()
	if _, err := o.editor.Execute(&editor.DeleteRegionCommand{
		NodeID: id,
		Start:  start,
		End:    end,
	}); err != nil {
		return false, err
	}

	p := newPayload()
	p = pset(p, "nodeId", string(id))
	p = pset(p, "start", start)
	p = pset(p, "end", end)
	o.record(history.ActionDeleteRegion, before, p, snapshot)

	o.setCaret(document.Position{
		NodeID:       id,
		NodePosition: document.TextPosition{Offset: start},
	})
	return true, nil
}

func (o *Operations) mergeTextNodes(before document.Selection, first, second document.TextualNode) (bool, error) {
	boundary := first.Text().Len()
	snapshot := second.Copy()
	if _, err := o.editor.Execute(&editor.MergeTextNodesCommand{
		FirstID:  first.ID(),
		SecondID: second.ID(),
	}); err != nil {
		return false, err
	}

	p := newPayload()
	p = pset(p, "firstId", string(first.ID()))
	p = pset(p, "secondId", string(second.ID()))
	p = pset(p, "offset", boundary)
	o.record(history.ActionMergeNodes, before, p, snapshot)

	o.setCaret(document.Position{
		NodeID:       first.ID(),
		NodePosition: document.TextPosition{Offset: boundary},
	})
	return true, nil
}

// deleteCaretNode removes a binary node the caret sits on.
func (o *Operations) deleteCaretNode(before document.Selection, n document.Node) (bool, error) {
	idx, ok := o.doc.NodeIndex(n.ID())
	if !ok {
		return false, nil
	}
	snapshot := n.Copy()
	if _, err := o.editor.Execute(&editor.DeleteNodeCommand{NodeID: n.ID()}); err != nil {
		return false, err
	}

	p := newPayload()
	p = pset(p, "index", idx)
	o.record(history.ActionDeleteNode, before, p, snapshot)

	if prev, ok := o.doc.NodeAt(idx - 1); ok {
		o.setCaret(caretAtNodeEnd(prev))
	} else if next, ok := o.doc.NodeAt(idx); ok {
		o.setCaret(caretAtNodeStart(next))
	} else {
		o.composer.ClearSelection()
	}
	return true, nil
}

// DeleteSelection deletes the expanded selection's content, trimming the
// endpoint nodes, removing interior nodes, and merging the surviving
// text endpoints. A dangling selection aborts as a no-op.
func (o *Operations) DeleteSelection() error {
	err := o.deleteSelection(history.ActionDeleteSelection)
	if errors.Is(err, document.ErrDanglingReference) {
		return nil
	}
	return err
}

func (o *Operations) deleteSelection(tag history.Action) error {
	sel := o.composer.Selection()
	if sel == nil {
		return ErrNoSelection
	}
	if sel.IsCollapsed() {
		return editor.ErrEmptySelection
	}
	before := *sel

	start, _, err := sel.Normalized(o.doc)
	if err != nil {
		return err
	}
	covered, err := sel.Nodes(o.doc)
	if err != nil {
		return err
	}
	firstIdx, _ := o.doc.NodeIndex(covered[0].ID())

	snapshots := make([]document.Node, len(covered))
	ids := make([]document.NodeID, len(covered))
	for i, n := range covered {
		snapshots[i] = n.Copy()
		ids[i] = n.ID()
	}

	if _, err := o.editor.Execute(&editor.DeleteSelectionCommand{Selection: before}); err != nil {
		return err
	}

	p := newPayload()
	p = pset(p, "firstIndex", firstIdx)
	p = setNodeIDs(p, "nodeIds", ids)
	o.record(tag, before, p, snapshots...)

	o.collapseAfterDeletion(start, firstIdx)
	return nil
}

// collapseAfterDeletion places the caret where the deleted range began.
func (o *Operations) collapseAfterDeletion(start document.Position, firstIdx int) {
	if _, ok := o.doc.NodeByID(start.NodeID); ok {
		if _, isText := start.NodePosition.(document.TextPosition); isText {
			o.setCaret(start)
			return
		}
	}
	if n, ok := o.doc.NodeAt(firstIdx); ok {
		o.setCaret(caretAtNodeStart(n))
		return
	}
	if n, ok := o.doc.LastNode(); ok {
		o.setCaret(caretAtNodeEnd(n))
		return
	}
	o.composer.ClearSelection()
}

// ToggleAttributions toggles styles over the active selection. A
// collapsed selection toggles the composer's insertion preferences
// instead of touching the document.
func (o *Operations) ToggleAttributions(attrs ...attrtext.Attribution) error {
	sel := o.composer.Selection()
	if sel == nil {
		return ErrNoSelection
	}
	if sel.IsCollapsed() {
		for _, a := range attrs {
			o.composer.TogglePreference(a)
		}
		return nil
	}

	before := *sel
	covered, err := before.Nodes(o.doc)
	if err != nil {
		return err
	}
	snapshots := make([]document.Node, len(covered))
	for i, n := range covered {
		snapshots[i] = n.Copy()
	}

	if _, err := o.editor.Execute(&editor.ToggleAttributionsCommand{
		Selection:    before,
		Attributions: attrs,
	}); err != nil {
		return err
	}
	o.record(history.ActionToggleAttributions, before, setAttributions(newPayload(), attrs), snapshots...)
	return nil
}

// caretListItem returns the list item the caret sits in.
func (o *Operations) caretListItem() (*document.ListItemNode, error) {
	tn, _, _, err := o.textCaret()
	if err != nil {
		return nil, err
	}
	li, ok := tn.(*document.ListItemNode)
	if !ok {
		return nil, editor.ErrInvalidNodeType
	}
	return li, nil
}

// IndentListItem indents the caret's list item one level. Indenting at
// the session's indent cap is a no-op.
func (o *Operations) IndentListItem() error {
	li, err := o.caretListItem()
	if err != nil {
		return err
	}
	if li.Indent() >= o.maxListIndent {
		return nil
	}
	before := *o.composer.Selection()
	if _, err := o.editor.Execute(&editor.ChangeListIndentCommand{NodeID: li.ID(), Delta: 1}); err != nil {
		return err
	}

	p := newPayload()
	p = pset(p, "nodeId", string(li.ID()))
	p = pset(p, "delta", 1)
	o.record(history.ActionChangeIndent, before, p)
	return nil
}

// UnindentListItem unindents the caret's list item one level.
// Unindenting at level zero converts the item to a paragraph with the
// same id and text.
func (o *Operations) UnindentListItem() error {
	li, err := o.caretListItem()
	if err != nil {
		return err
	}
	before := *o.composer.Selection()

	if li.Indent() == document.MinListIndent {
		snapshot := li.Copy()
		if _, err := o.editor.Execute(&editor.ConvertToParagraphCommand{NodeID: li.ID()}); err != nil {
			return err
		}
		p := newPayload()
		p = pset(p, "nodeId", string(li.ID()))
		p = pset(p, "target", "paragraph")
		o.record(history.ActionConvertNode, before, p, snapshot)
		return nil
	}

	if _, err := o.editor.Execute(&editor.ChangeListIndentCommand{NodeID: li.ID(), Delta: -1}); err != nil {
		return err
	}
	p := newPayload()
	p = pset(p, "nodeId", string(li.ID()))
	p = pset(p, "delta", -1)
	o.record(history.ActionChangeIndent, before, p)
	return nil
}

// ConvertToListItem converts the caret's text node to a list item of the
// given type, keeping its id and text.
func (o *Operations) ConvertToListItem(listType document.ListType) error {
	tn, caret, _, err := o.textCaret()
	if err != nil {
		return err
	}
	before := *o.composer.Selection()
	snapshot := tn.Copy()

	if _, err := o.editor.Execute(&editor.ConvertToListItemCommand{
		NodeID:   caret.NodeID,
		ListType: listType,
	}); err != nil {
		return err
	}

	p := newPayload()
	p = pset(p, "nodeId", string(caret.NodeID))
	p = pset(p, "target", "listItem")
	p = pset(p, "listType", int(listType))
	p = pset(p, "indent", 0)
	o.record(history.ActionConvertNode, before, p, snapshot)
	return nil
}

// ConvertToParagraph converts the caret's text node to a paragraph,
// keeping its id and text.
func (o *Operations) ConvertToParagraph() error {
	tn, caret, _, err := o.textCaret()
	if err != nil {
		return err
	}
	before := *o.composer.Selection()
	snapshot := tn.Copy()

	if _, err := o.editor.Execute(&editor.ConvertToParagraphCommand{NodeID: caret.NodeID}); err != nil {
		return err
	}

	p := newPayload()
	p = pset(p, "nodeId", string(caret.NodeID))
	p = pset(p, "target", "paragraph")
	o.record(history.ActionConvertNode, before, p, snapshot)
	return nil
}

// InsertBlockNewline splits the caret's node at the caret. Metadata is
// carried onto the new downstream node only when copyMetadata is set.
// The caret moves to the start of the new node.
func (o *Operations) InsertBlockNewline(copyMetadata bool) error {
	sel := o.composer.Selection()
	if sel == nil {
		return ErrNoSelection
	}
	if !sel.IsCollapsed() {
		if err := o.DeleteSelection(); err != nil {
			return err
		}
	}

	_, caret, off, err := o.textCaret()
	if err != nil {
		return err
	}
	before := *o.composer.Selection()
	newID := document.NewNodeID()

	if _, err := o.editor.Execute(&editor.SplitTextNodeCommand{
		NodeID:       caret.NodeID,
		Offset:       off,
		NewNodeID:    newID,
		CopyMetadata: copyMetadata,
	}); err != nil {
		return err
	}

	p := newPayload()
	p = pset(p, "nodeId", string(caret.NodeID))
	p = pset(p, "offset", off)
	p = pset(p, "newNodeId", string(newID))
	p = pset(p, "copyMetadata", copyMetadata)
	o.record(history.ActionSplitNode, before, p)

	o.setCaret(document.Position{
		NodeID:       newID,
		NodePosition: document.TextPosition{Offset: 0},
	})
	return nil
}

// InsertHorizontalRule inserts a horizontal rule after the caret's node.
func (o *Operations) InsertHorizontalRule() error {
	return o.insertBlockNode(document.NewHorizontalRuleNode(document.NewNodeID()))
}

// InsertImage inserts an image node after the caret's node.
func (o *Operations) InsertImage(url, altText string) error {
	return o.insertBlockNode(document.NewImageNode(document.NewNodeID(), url, altText))
}

func (o *Operations) insertBlockNode(n document.Node) error {
	sel := o.composer.Selection()
	if sel == nil {
		return ErrNoSelection
	}
	before := *sel
	if _, ok := o.doc.NodeByID(sel.Extent.NodeID); !ok {
		return nil
	}

	if _, err := o.editor.Execute(&editor.InsertNodeAfterCommand{
		AfterID: sel.Extent.NodeID,
		Node:    n,
	}); err != nil {
		return err
	}

	idx, _ := o.doc.NodeIndex(n.ID())
	p := newPayload()
	p = pset(p, "index", idx)
	o.record(history.ActionInsertNode, before, p, n.Copy())
	return nil
}
