package ops

import (
	"fmt"
	"strings"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/editor"
	"github.com/dshills/docstorm/internal/history"
)

// Operations implements history.Replayer. Replays go straight to the
// editor so they never record fresh undo entries.

// RestoreSelection re-selects an edit's recorded range.
func (o *Operations) RestoreSelection(sel document.Selection) {
	o.composer.SetSelection(&sel)
}

// Undo reverses the most recent edit.
func (o *Operations) Undo() error { return o.log.Undo(o) }

// Redo re-applies the most recently undone edit.
func (o *Operations) Redo() error { return o.log.Redo(o) }

// ReplayInverse undoes one edit. Snapshots stored on the edit are
// re-copied before insertion so the live tree never aliases the log.
func (o *Operations) ReplayInverse(e *history.Edit) error {
	switch e.Action {
	case history.ActionInsertText:
		off := pint(e.Payload, "offset")
		_, err := o.editor.Execute(&editor.DeleteRegionCommand{
			NodeID: pnode(e.Payload, "nodeId"),
			Start:  off,
			End:    off + len(pstr(e.Payload, "text")),
		})
		return err

	case history.ActionDeleteRegion, history.ActionConvertNode:
		return o.restoreSnapshotNode(e)

	case history.ActionDeleteSelection, history.ActionCut:
		return o.restoreDeletedNodes(e)

	case history.ActionDeleteNode:
		if len(e.Nodes) == 0 {
			return fmt.Errorf("%s edit has no node snapshot", e.Action)
		}
		_, err := o.editor.Execute(&editor.InsertNodeAtCommand{
			Index: pint(e.Payload, "index"),
			Node:  e.Nodes[0].Copy(),
		})
		return err

	case history.ActionInsertNode:
		if len(e.Nodes) == 0 {
			return fmt.Errorf("%s edit has no node snapshot", e.Action)
		}
		_, err := o.editor.Execute(&editor.DeleteNodeCommand{NodeID: e.Nodes[0].ID()})
		return err

	case history.ActionSplitNode:
		_, err := o.editor.Execute(&editor.MergeTextNodesCommand{
			FirstID:  pnode(e.Payload, "nodeId"),
			SecondID: pnode(e.Payload, "newNodeId"),
		})
		return err

	case history.ActionMergeNodes:
		return o.unmergeNodes(e)

	case history.ActionToggleAttributions:
		return o.restoreSnapshotNodes(e)

	case history.ActionChangeIndent:
		_, err := o.editor.Execute(&editor.ChangeListIndentCommand{
			NodeID: pnode(e.Payload, "nodeId"),
			Delta:  -pint(e.Payload, "delta"),
		})
		return err

	case history.ActionPaste:
		return o.unpaste(e)

	default:
		return history.ErrUnknownEditAction
	}
}

// ReplayForward re-applies one edit for redo.
func (o *Operations) ReplayForward(e *history.Edit) error {
	switch e.Action {
	case history.ActionInsertText:
		_, err := o.editor.Execute(&editor.InsertTextCommand{
			Position: document.Position{
				NodeID:       pnode(e.Payload, "nodeId"),
				NodePosition: document.TextPosition{Offset: pint(e.Payload, "offset")},
			},
			Text:         pstr(e.Payload, "text"),
			Attributions: getAttributions(e.Payload),
		})
		return err

	case history.ActionDeleteRegion:
		_, err := o.editor.Execute(&editor.DeleteRegionCommand{
			NodeID: pnode(e.Payload, "nodeId"),
			Start:  pint(e.Payload, "start"),
			End:    pint(e.Payload, "end"),
		})
		return err

	case history.ActionDeleteSelection, history.ActionCut:
		_, err := o.editor.Execute(&editor.DeleteSelectionCommand{Selection: e.Selection})
		return err

	case history.ActionDeleteNode:
		if len(e.Nodes) == 0 {
			return fmt.Errorf("%s edit has no node snapshot", e.Action)
		}
		_, err := o.editor.Execute(&editor.DeleteNodeCommand{NodeID: e.Nodes[0].ID()})
		return err

	case history.ActionInsertNode:
		if len(e.Nodes) == 0 {
			return fmt.Errorf("%s edit has no node snapshot", e.Action)
		}
		_, err := o.editor.Execute(&editor.InsertNodeAtCommand{
			Index: pint(e.Payload, "index"),
			Node:  e.Nodes[0].Copy(),
		})
		return err

	case history.ActionSplitNode:
		_, err := o.editor.Execute(&editor.SplitTextNodeCommand{
			NodeID:       pnode(e.Payload, "nodeId"),
			Offset:       pint(e.Payload, "offset"),
			NewNodeID:    pnode(e.Payload, "newNodeId"),
			CopyMetadata: pbool(e.Payload, "copyMetadata"),
		})
		return err

	case history.ActionMergeNodes:
		_, err := o.editor.Execute(&editor.MergeTextNodesCommand{
			FirstID:  pnode(e.Payload, "firstId"),
			SecondID: pnode(e.Payload, "secondId"),
		})
		return err

	case history.ActionToggleAttributions:
		_, err := o.editor.Execute(&editor.ToggleAttributionsCommand{
			Selection:    e.Selection,
			Attributions: getAttributions(e.Payload),
		})
		return err

	case history.ActionChangeIndent:
		_, err := o.editor.Execute(&editor.ChangeListIndentCommand{
			NodeID: pnode(e.Payload, "nodeId"),
			Delta:  pint(e.Payload, "delta"),
		})
		return err

	case history.ActionConvertNode:
		return o.reconvertNode(e)

	case history.ActionPaste:
		return o.repaste(e)

	default:
		return history.ErrUnknownEditAction
	}
}

// restoreSnapshotNode swaps the live node for its pre-edit snapshot,
// keeping the node id.
func (o *Operations) restoreSnapshotNode(e *history.Edit) error {
	if len(e.Nodes) == 0 {
		return fmt.Errorf("%s edit has no node snapshot", e.Action)
	}
	snapshot := e.Nodes[0]
	_, err := o.editor.Execute(&editor.ReplaceNodeCommand{
		OldID: snapshot.ID(),
		Node:  snapshot.Copy(),
	})
	return err
}

// restoreSnapshotNodes swaps every node a span-level edit covered for
// its pre-edit snapshot. Toggling recomputes direction from current
// state, so the inverse must restore recorded spans, not re-toggle.
func (o *Operations) restoreSnapshotNodes(e *history.Edit) error {
	if len(e.Nodes) == 0 {
		return fmt.Errorf("%s edit has no node snapshots", e.Action)
	}
	cmds := make([]editor.Command, len(e.Nodes))
	for i, snapshot := range e.Nodes {
		cmds[i] = &editor.ReplaceNodeCommand{
			OldID: snapshot.ID(),
			Node:  snapshot.Copy(),
		}
	}
	_, err := o.editor.Execute(cmds...)
	return err
}

// restoreDeletedNodes removes whatever survived a selection deletion and
// re-inserts the recorded snapshots at their original index.
func (o *Operations) restoreDeletedNodes(e *history.Edit) error {
	firstIdx := pint(e.Payload, "firstIndex")
	cmds := make([]editor.Command, 0, 2*len(e.Nodes))
	for _, id := range pnodes(e.Payload, "nodeIds") {
		if _, ok := o.doc.NodeByID(id); ok {
			cmds = append(cmds, &editor.DeleteNodeCommand{NodeID: id})
		}
	}
	for i, snapshot := range e.Nodes {
		cmds = append(cmds, &editor.InsertNodeAtCommand{
			Index: firstIdx + i,
			Node:  snapshot.Copy(),
		})
	}
	_, err := o.editor.Execute(cmds...)
	return err
}

// unmergeNodes splits a merged node back at the recorded boundary and
// restores the second node from its snapshot.
func (o *Operations) unmergeNodes(e *history.Edit) error {
	if len(e.Nodes) == 0 {
		return fmt.Errorf("%s edit has no node snapshot", e.Action)
	}
	firstID := pnode(e.Payload, "firstId")
	boundary := pint(e.Payload, "offset")

	n, ok := o.doc.NodeByID(firstID)
	if !ok {
		return fmt.Errorf("merge source %s: %w", firstID, document.ErrDanglingReference)
	}
	tn, ok := n.(document.TextualNode)
	if !ok {
		return editor.ErrInvalidNodeType
	}

	var cmds []editor.Command
	if mergedLen := tn.Text().Len(); mergedLen > boundary {
		cmds = append(cmds, &editor.DeleteRegionCommand{
			NodeID: firstID,
			Start:  boundary,
			End:    mergedLen,
		})
	}
	cmds = append(cmds, &editor.InsertNodeAfterCommand{
		AfterID: firstID,
		Node:    e.Nodes[0].Copy(),
	})
	_, err := o.editor.Execute(cmds...)
	return err
}

// reconvertNode re-applies a node-kind conversion for redo.
func (o *Operations) reconvertNode(e *history.Edit) error {
	id := pnode(e.Payload, "nodeId")
	if pstr(e.Payload, "target") == "listItem" {
		_, err := o.editor.Execute(&editor.ConvertToListItemCommand{
			NodeID:   id,
			ListType: document.ListType(pint(e.Payload, "listType")),
			Indent:   pint(e.Payload, "indent"),
		})
		return err
	}
	_, err := o.editor.Execute(&editor.ConvertToParagraphCommand{NodeID: id})
	return err
}

// unpaste deletes the nodes a paste created and restores the target
// node from its pre-paste snapshot.
func (o *Operations) unpaste(e *history.Edit) error {
	if len(e.Nodes) == 0 {
		return fmt.Errorf("%s edit has no node snapshot", e.Action)
	}
	var cmds []editor.Command
	if tailID := pnode(e.Payload, "tailId"); tailID != "" {
		if _, ok := o.doc.NodeByID(tailID); ok {
			cmds = append(cmds, &editor.DeleteNodeCommand{NodeID: tailID})
		}
	}
	for _, id := range pnodes(e.Payload, "interiorIds") {
		if _, ok := o.doc.NodeByID(id); ok {
			cmds = append(cmds, &editor.DeleteNodeCommand{NodeID: id})
		}
	}
	snapshot := e.Nodes[0]
	cmds = append(cmds, &editor.ReplaceNodeCommand{
		OldID: snapshot.ID(),
		Node:  snapshot.Copy(),
	})
	_, err := o.editor.Execute(cmds...)
	return err
}

// repaste re-applies a paste with the same created node ids for redo.
func (o *Operations) repaste(e *history.Edit) error {
	id := pnode(e.Payload, "nodeId")
	if _, ok := o.doc.NodeByID(id); !ok {
		return fmt.Errorf("paste target %s no longer in document: %w",
			id, document.ErrDanglingReference)
	}
	pieces := strings.Split(pstr(e.Payload, "text"), "\n\n")
	return o.applyPaste(id, pint(e.Payload, "offset"), pieces,
		pnode(e.Payload, "tailId"), pnodes(e.Payload, "interiorIds"))
}
