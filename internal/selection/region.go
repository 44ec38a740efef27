package selection

import "github.com/dshills/docstorm/internal/document"

// ExpandRegion resolves the two ends of a drag rectangle independently
// and recombines them under the active mode. The raw base/extent labels
// are preserved through expansion: callers must not assume base is the
// lexically earlier position.
//
// Drag direction is decided by vertical comparison of the two raw screen
// offsets. In word or paragraph mode each side is re-expanded and the
// side keeps whichever end of its expansion lies further upstream (for
// the upstream side of the drag) or further downstream (for the
// downstream side).
//
// A drag endpoint landing on a binary node (image, rule) selects the
// node whole regardless of which side of the drag it anchors; binary
// nodes are never partially included. Returns nil when either screen
// offset resolves to nothing.
func ExpandRegion(doc *document.Document, resolver LayoutResolver, baseOffset, extentOffset Offset, mode Mode) *document.Selection {
	basePos, ok := resolver.ResolvePosition(baseOffset)
	if !ok {
		return nil
	}
	extentPos, ok := resolver.ResolvePosition(extentOffset)
	if !ok {
		return nil
	}

	if mode == ModePosition {
		return &document.Selection{Base: basePos, Extent: extentPos}
	}

	baseSel := expandSide(doc, basePos, mode)
	extentSel := expandSide(doc, extentPos, mode)
	if baseSel == nil || extentSel == nil {
		return nil
	}

	downstreamDrag := !baseOffset.Below(extentOffset)
	shared := basePos.NodeID == extentPos.NodeID

	var base, extent document.Position
	var err error
	if downstreamDrag {
		base, err = sideEnd(doc, *baseSel, true, shared)
		if err != nil {
			return nil
		}
		extent, err = sideEnd(doc, *extentSel, false, shared)
	} else {
		base, err = sideEnd(doc, *baseSel, false, shared)
		if err != nil {
			return nil
		}
		extent, err = sideEnd(doc, *extentSel, true, shared)
	}
	if err != nil {
		return nil
	}
	return &document.Selection{Base: base, Extent: extent}
}

// sideEnd returns the upstream or downstream end of one expanded drag
// side. A binary node anchoring one end of a cross-node drag yields its
// included position from either side, so endpoint coverage marks the
// node whole. When both ends share the node the beginning/end pair
// already spans it.
func sideEnd(doc *document.Document, sel document.Selection, upstream, shared bool) (document.Position, error) {
	if !shared {
		node, ok := doc.NodeByID(sel.Base.NodeID)
		if !ok {
			return document.Position{}, document.ErrDanglingReference
		}
		if _, isText := node.(document.TextualNode); !isText {
			return document.Position{NodeID: node.ID(), NodePosition: node.EndPosition()}, nil
		}
	}
	return selectionEnd(doc, sel, upstream)
}

// expandSide expands one drag endpoint under the active mode. Text-family
// nodes expand by the word or paragraph rule; binary nodes expand to the
// whole node.
func expandSide(doc *document.Document, pos document.Position, mode Mode) *document.Selection {
	node, ok := doc.NodeByID(pos.NodeID)
	if !ok {
		return nil
	}
	if _, isText := node.(document.TextualNode); !isText {
		return &document.Selection{
			Base:   document.Position{NodeID: pos.NodeID, NodePosition: node.BeginningPosition()},
			Extent: document.Position{NodeID: pos.NodeID, NodePosition: node.EndPosition()},
		}
	}

	switch mode {
	case ModeWord:
		return ExpandWord(doc, pos)
	case ModeParagraph:
		return ExpandParagraph(doc, pos)
	default:
		sel := document.NewCollapsedSelection(pos)
		return &sel
	}
}

// selectionEnd returns the upstream or downstream end of a single-node
// selection.
func selectionEnd(doc *document.Document, sel document.Selection, upstream bool) (document.Position, error) {
	node, ok := doc.NodeByID(sel.Base.NodeID)
	if !ok {
		return document.Position{}, document.ErrDanglingReference
	}
	var (
		np  document.NodePosition
		err error
	)
	if upstream {
		np, err = node.UpstreamPosition(sel.Base.NodePosition, sel.Extent.NodePosition)
	} else {
		np, err = node.DownstreamPosition(sel.Base.NodePosition, sel.Extent.NodePosition)
	}
	if err != nil {
		return document.Position{}, err
	}
	return document.Position{NodeID: sel.Base.NodeID, NodePosition: np}, nil
}

// PositionBeforeNode returns the caret at the end of the node before id,
// or false at the document's first node.
func PositionBeforeNode(doc *document.Document, id document.NodeID) (document.Position, bool) {
	n, ok := doc.NodeBefore(id)
	if !ok {
		return document.Position{}, false
	}
	return document.Position{NodeID: n.ID(), NodePosition: n.EndPosition()}, true
}

// PositionAfterNode returns the caret at the beginning of the node after
// id, or false at the document's last node.
func PositionAfterNode(doc *document.Document, id document.NodeID) (document.Position, bool) {
	n, ok := doc.NodeAfter(id)
	if !ok {
		return document.Position{}, false
	}
	return document.Position{NodeID: n.ID(), NodePosition: n.BeginningPosition()}, true
}
