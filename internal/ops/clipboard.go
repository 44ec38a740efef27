package ops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/editor"
	"github.com/dshills/docstorm/internal/history"
)

// Clipboard is the host clipboard. Plain text only; rich formatting is
// not preserved through clipboard transfer.
type Clipboard interface {
	GetText(ctx context.Context) (string, error)
	SetText(ctx context.Context, text string) error
}

// selectionText renders the active selection as plain text. Nodes are
// joined with a blank line, mirroring how Paste splits pieces.
func (o *Operations) selectionText() (string, error) {
	sel := o.composer.Selection()
	if sel == nil || sel.IsCollapsed() {
		return "", ErrNoSelection
	}
	start, end, err := sel.Normalized(o.doc)
	if err != nil {
		return "", err
	}
	nodes, err := sel.Nodes(o.doc)
	if err != nil {
		return "", err
	}

	var pieces []string
	for i, n := range nodes {
		base := n.BeginningPosition()
		extent := n.EndPosition()
		if i == 0 {
			base = start.NodePosition
		}
		if i == len(nodes)-1 {
			extent = end.NodePosition
		}
		ns, err := n.ComputeSelection(base, extent)
		if err != nil {
			continue
		}
		if s, ok := n.CopyContent(ns); ok && s != "" {
			pieces = append(pieces, s)
		}
	}
	return strings.Join(pieces, "\n\n"), nil
}

// CopySelection writes the selection's plain text to the clipboard.
func (o *Operations) CopySelection(ctx context.Context) error {
	if o.clipboard == nil {
		return ErrNoClipboard
	}
	text, err := o.selectionText()
	if err != nil {
		return err
	}
	if err := o.clipboard.SetText(ctx, text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// Cut copies the selection to the clipboard and deletes it.
func (o *Operations) Cut(ctx context.Context) error {
	if err := o.CopySelection(ctx); err != nil {
		return err
	}
	err := o.deleteSelection(history.ActionCut)
	if errors.Is(err, document.ErrDanglingReference) {
		return nil
	}
	return err
}

// Paste reads the clipboard and inserts its text at the caret. The text
// is split on blank lines: the first piece goes into the caret's node,
// interior pieces become new paragraph nodes, and the last piece goes
// into the downstream half of the split. Because clipboard access is
// the one async boundary, the target node id is re-validated after the
// read; a vanished target fails with a descriptive error instead of
// applying against stale state.
func (o *Operations) Paste(ctx context.Context) error {
	if o.clipboard == nil {
		return ErrNoClipboard
	}
	sel := o.composer.Selection()
	if sel == nil {
		return ErrNoSelection
	}
	if !sel.IsCollapsed() {
		if err := o.DeleteSelection(); err != nil {
			return err
		}
	}
	caret := o.composer.Selection().Extent
	tp, ok := caret.NodePosition.(document.TextPosition)
	if !ok {
		return editor.ErrInvalidNodeType
	}

	text, err := o.clipboard.GetText(ctx)
	if err != nil {
		return fmt.Errorf("clipboard read: %w", err)
	}
	if text == "" {
		return nil
	}

	// The document may have mutated during the clipboard read.
	n, ok := o.doc.NodeByID(caret.NodeID)
	if !ok {
		return fmt.Errorf("paste target %s no longer in document: %w",
			caret.NodeID, document.ErrDanglingReference)
	}
	tn, ok := n.(document.TextualNode)
	if !ok {
		return editor.ErrInvalidNodeType
	}
	if tp.Offset > tn.Text().Len() {
		return fmt.Errorf("paste target %s shrank below offset %d: %w",
			caret.NodeID, tp.Offset, attrtext.ErrOffsetOutOfRange)
	}

	before := *o.composer.Selection()
	snapshot := n.Copy()
	pieces := strings.Split(text, "\n\n")

	var tailID document.NodeID
	var interiorIDs []document.NodeID
	if len(pieces) > 1 {
		tailID = document.NewNodeID()
		for range pieces[1 : len(pieces)-1] {
			interiorIDs = append(interiorIDs, document.NewNodeID())
		}
	}

	if err := o.applyPaste(caret.NodeID, tp.Offset, pieces, tailID, interiorIDs); err != nil {
		return err
	}

	p := newPayload()
	p = pset(p, "nodeId", string(caret.NodeID))
	p = pset(p, "offset", tp.Offset)
	p = pset(p, "text", text)
	p = pset(p, "tailId", string(tailID))
	p = setNodeIDs(p, "interiorIds", interiorIDs)
	o.record(history.ActionPaste, before, p, snapshot)

	last := pieces[len(pieces)-1]
	if len(pieces) == 1 {
		o.setCaret(document.Position{
			NodeID:       caret.NodeID,
			NodePosition: document.TextPosition{Offset: tp.Offset + len(last)},
		})
	} else {
		o.setCaret(document.Position{
			NodeID:       tailID,
			NodePosition: document.TextPosition{Offset: len(last)},
		})
	}
	return nil
}

// applyPaste is the synchronous replay body shared by Paste and redo.
func (o *Operations) applyPaste(id document.NodeID, off int, pieces []string, tailID document.NodeID, interiorIDs []document.NodeID) error {
	pos := document.Position{NodeID: id, NodePosition: document.TextPosition{Offset: off}}
	if len(pieces) == 1 {
		_, err := o.editor.Execute(&editor.InsertTextCommand{Position: pos, Text: pieces[0]})
		return err
	}

	cmds := []editor.Command{
		&editor.SplitTextNodeCommand{NodeID: id, Offset: off, NewNodeID: tailID},
	}
	if pieces[0] != "" {
		cmds = append(cmds, &editor.InsertTextCommand{Position: pos, Text: pieces[0]})
	}
	after := id
	for i, pid := range interiorIDs {
		para := document.NewParagraphNode(pid, attrtext.New(pieces[1+i]))
		cmds = append(cmds, &editor.InsertNodeAfterCommand{AfterID: after, Node: para})
		after = pid
	}
	if last := pieces[len(pieces)-1]; last != "" {
		cmds = append(cmds, &editor.InsertTextCommand{
			Position: document.Position{NodeID: tailID, NodePosition: document.TextPosition{Offset: 0}},
			Text:     last,
		})
	}
	_, err := o.editor.Execute(cmds...)
	return err
}
