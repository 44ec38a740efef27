package document

import (
	"errors"
	"testing"

	"github.com/dshills/docstorm/internal/attrtext"
)

func para(text string) *ParagraphNode {
	return NewParagraphNode(NewNodeID(), attrtext.New(text))
}

func TestNewDocumentIndexesNodes(t *testing.T) {
	a, b := para("a"), para("b")
	doc := New(a, b)

	if doc.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes, got %d", doc.NodeCount())
	}
	if n, ok := doc.NodeByID(a.ID()); !ok || n != Node(a) {
		t.Error("expected to find node a by id")
	}
	if i, ok := doc.NodeIndex(b.ID()); !ok || i != 1 {
		t.Errorf("expected b at index 1, got %d (found=%v)", i, ok)
	}
}

func TestNodeNeighbors(t *testing.T) {
	a, b, c := para("a"), para("b"), para("c")
	doc := New(a, b, c)

	if n, ok := doc.NodeBefore(b.ID()); !ok || n.ID() != a.ID() {
		t.Error("expected a before b")
	}
	if n, ok := doc.NodeAfter(b.ID()); !ok || n.ID() != c.ID() {
		t.Error("expected c after b")
	}
	if _, ok := doc.NodeBefore(a.ID()); ok {
		t.Error("expected no node before the first node")
	}
	if _, ok := doc.NodeAfter(c.ID()); ok {
		t.Error("expected no node after the last node")
	}
	if _, ok := doc.NodeBefore("missing"); ok {
		t.Error("expected no neighbor for unknown id")
	}
}

func TestInsertDeleteReindex(t *testing.T) {
	a, b := para("a"), para("b")
	doc := New(a, b)

	c := para("c")
	if err := doc.InsertNodeAfter(a.ID(), c); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if i, _ := doc.NodeIndex(c.ID()); i != 1 {
		t.Errorf("expected c at index 1, got %d", i)
	}
	if i, _ := doc.NodeIndex(b.ID()); i != 2 {
		t.Errorf("expected b reindexed to 2, got %d", i)
	}

	if err := doc.DeleteNode(c.ID()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := doc.NodeByID(c.ID()); ok {
		t.Error("expected c removed")
	}
	if i, _ := doc.NodeIndex(b.ID()); i != 1 {
		t.Errorf("expected b reindexed to 1, got %d", i)
	}
}

func TestInsertDuplicateIDFails(t *testing.T) {
	a := para("a")
	doc := New(a)

	if err := doc.InsertNodeAt(0, a); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("expected ErrDuplicateNode, got %v", err)
	}
}

func TestReplaceNode(t *testing.T) {
	a, b := para("a"), para("b")
	doc := New(a, b)

	r := NewHorizontalRuleNode(NewNodeID())
	if err := doc.ReplaceNode(a.ID(), r); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if _, ok := doc.NodeByID(a.ID()); ok {
		t.Error("expected old id gone")
	}
	if i, ok := doc.NodeIndex(r.ID()); !ok || i != 0 {
		t.Errorf("expected rule at index 0, got %d (found=%v)", i, ok)
	}
}

func TestNodesInsideUnorderedArguments(t *testing.T) {
	a, b, c := para("a"), para("b"), para("c")
	doc := New(a, b, c)

	p1 := Position{NodeID: c.ID(), NodePosition: TextPosition{Offset: 0}}
	p2 := Position{NodeID: a.ID(), NodePosition: TextPosition{Offset: 1}}

	nodes, err := doc.NodesInside(p1, p2)
	if err != nil {
		t.Fatalf("NodesInside failed: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if nodes[0].ID() != a.ID() || nodes[2].ID() != c.ID() {
		t.Error("expected nodes in document order regardless of argument order")
	}
}

func TestNodesInsideDanglingReference(t *testing.T) {
	a := para("a")
	doc := New(a)

	p1 := Position{NodeID: a.ID(), NodePosition: TextPosition{}}
	p2 := Position{NodeID: "missing", NodePosition: TextPosition{}}

	if _, err := doc.NodesInside(p1, p2); !errors.Is(err, ErrDanglingReference) {
		t.Errorf("expected ErrDanglingReference, got %v", err)
	}
}

func TestRangeBetweenNormalizes(t *testing.T) {
	a, b := para("alpha"), para("beta")
	doc := New(a, b)

	r, err := doc.RangeBetween(
		Position{NodeID: b.ID(), NodePosition: TextPosition{Offset: 2}},
		Position{NodeID: a.ID(), NodePosition: TextPosition{Offset: 4}},
	)
	if err != nil {
		t.Fatalf("RangeBetween failed: %v", err)
	}
	if r.Start.NodeID != a.ID() || r.End.NodeID != b.ID() {
		t.Error("expected range normalized to document order")
	}
}

func TestSelectionNormalizedWithinNode(t *testing.T) {
	a := para("hello")
	doc := New(a)

	sel := Selection{
		Base:   Position{NodeID: a.ID(), NodePosition: TextPosition{Offset: 4}},
		Extent: Position{NodeID: a.ID(), NodePosition: TextPosition{Offset: 1}},
	}
	start, end, err := sel.Normalized(doc)
	if err != nil {
		t.Fatalf("Normalized failed: %v", err)
	}
	if start.NodePosition.(TextPosition).Offset != 1 {
		t.Errorf("expected start offset 1, got %+v", start.NodePosition)
	}
	if end.NodePosition.(TextPosition).Offset != 4 {
		t.Errorf("expected end offset 4, got %+v", end.NodePosition)
	}
}

func TestSelectionCollapsedIgnoresAffinity(t *testing.T) {
	a := para("hello")
	sel := Selection{
		Base:   Position{NodeID: a.ID(), NodePosition: TextPosition{Offset: 2, Affinity: AffinityUpstream}},
		Extent: Position{NodeID: a.ID(), NodePosition: TextPosition{Offset: 2, Affinity: AffinityDownstream}},
	}
	if !sel.IsCollapsed() {
		t.Error("same offset with different affinity should be collapsed")
	}
}

func TestChangeNotification(t *testing.T) {
	a := para("a")
	doc := New(a)

	var got []ChangeEvent
	id := doc.Subscribe(func(events []ChangeEvent) {
		got = append(got, events...)
	})

	b := para("b")
	if err := doc.AppendNode(b); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := doc.DeleteNode(a.ID()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Kind != NodeInserted || got[0].NodeID != b.ID() {
		t.Errorf("expected insert event for b, got %+v", got[0])
	}
	if got[1].Kind != NodeRemoved || got[1].NodeID != a.ID() {
		t.Errorf("expected remove event for a, got %+v", got[1])
	}

	doc.Unsubscribe(id)
	if err := doc.AppendNode(para("c")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if len(got) != 2 {
		t.Error("unsubscribed listener still received events")
	}
}

func TestTextNodeEndPositionTracksLength(t *testing.T) {
	n := NewTextNode(NewNodeID(), attrtext.New("Hello world"))

	end := n.EndPosition().(TextPosition)
	if end.Offset != 11 {
		t.Fatalf("expected end offset 11, got %d", end.Offset)
	}

	if err := n.Text().InsertString("!", 11); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	end = n.EndPosition().(TextPosition)
	if end.Offset != 12 {
		t.Errorf("expected end offset 12 after edit, got %d", end.Offset)
	}
}

func TestTextNodePositionOrdering(t *testing.T) {
	n := NewTextNode(NewNodeID(), attrtext.New("hello"))

	up, err := n.UpstreamPosition(TextPosition{Offset: 3}, TextPosition{Offset: 1})
	if err != nil {
		t.Fatalf("upstream failed: %v", err)
	}
	if up.(TextPosition).Offset != 1 {
		t.Errorf("expected offset 1 upstream, got %+v", up)
	}

	down, err := n.DownstreamPosition(TextPosition{Offset: 3}, TextPosition{Offset: 1})
	if err != nil {
		t.Fatalf("downstream failed: %v", err)
	}
	if down.(TextPosition).Offset != 3 {
		t.Errorf("expected offset 3 downstream, got %+v", down)
	}

	if _, err := n.UpstreamPosition(TextPosition{}, BinaryPosition{}); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition for mixed variants, got %v", err)
	}
}

func TestTextNodeCopyContent(t *testing.T) {
	n := NewTextNode(NewNodeID(), attrtext.New("Hello world"))

	sel, err := n.ComputeSelection(TextPosition{Offset: 6}, TextPosition{Offset: 11})
	if err != nil {
		t.Fatalf("ComputeSelection failed: %v", err)
	}
	got, ok := n.CopyContent(sel)
	if !ok || got != "world" {
		t.Errorf("expected 'world', got %q (ok=%v)", got, ok)
	}

	// Reversed base/extent copies the same content.
	sel, _ = n.ComputeSelection(TextPosition{Offset: 11}, TextPosition{Offset: 6})
	got, ok = n.CopyContent(sel)
	if !ok || got != "world" {
		t.Errorf("expected 'world' from reversed selection, got %q", got)
	}
}

func TestBinaryNodeSelection(t *testing.T) {
	img := NewImageNode(NewNodeID(), "https://example.com/x.png", "x")

	sel, err := img.ComputeSelection(BinaryPosition{Included: false}, BinaryPosition{Included: true})
	if err != nil {
		t.Fatalf("ComputeSelection failed: %v", err)
	}
	bs := sel.(BinaryNodeSelection)
	if !bs.Included {
		t.Error("expected image included when extent includes it")
	}

	content, ok := img.CopyContent(bs)
	if !ok || content != "https://example.com/x.png" {
		t.Errorf("expected URL as content, got %q", content)
	}

	if _, err := img.ComputeSelection(TextPosition{}, BinaryPosition{}); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestEquivalentContent(t *testing.T) {
	a := NewParagraphNode(NewNodeID(), attrtext.New("same"))
	b := NewParagraphNode(NewNodeID(), attrtext.New("same"))
	if !a.EquivalentContent(b) {
		t.Error("paragraphs with equal text should be equivalent")
	}

	b.SetBlockType("header1")
	if a.EquivalentContent(b) {
		t.Error("different block types should not be equivalent")
	}

	li := NewListItemNode(NewNodeID(), attrtext.New("same"), ListUnordered, 0)
	if a.EquivalentContent(li) {
		t.Error("paragraph and list item should not be equivalent")
	}

	r1 := NewHorizontalRuleNode(NewNodeID())
	r2 := NewHorizontalRuleNode(NewNodeID())
	if !r1.EquivalentContent(r2) {
		t.Error("rules should be equivalent")
	}
}

func TestListItemIndentClamp(t *testing.T) {
	li := NewListItemNode(NewNodeID(), attrtext.New("item"), ListOrdered, 9)
	if li.Indent() != MaxListIndent {
		t.Errorf("expected indent clamped to %d, got %d", MaxListIndent, li.Indent())
	}

	li.SetIndent(-1)
	if li.Indent() != MinListIndent {
		t.Errorf("expected indent clamped to %d, got %d", MinListIndent, li.Indent())
	}
}

func TestMetadataPassThrough(t *testing.T) {
	n := para("text")
	n.SetMetadataValue("vendor:custom", 42)
	n.SetMetadataValue(MetadataTextAlign, "center")

	cp := n.Copy()
	if v, ok := cp.MetadataValue("vendor:custom"); !ok || v != 42 {
		t.Error("unknown metadata keys must survive copies verbatim")
	}
	if v, _ := cp.MetadataValue(MetadataTextAlign); v != "center" {
		t.Error("textAlign metadata lost in copy")
	}

	// Metadata() returns a copy, not the live map.
	m := n.Metadata()
	m["vendor:custom"] = 0
	if v, _ := n.MetadataValue("vendor:custom"); v != 42 {
		t.Error("Metadata() must not expose the live map")
	}
}

func TestDocumentEquivalentContent(t *testing.T) {
	d1 := New(para("a"), para("b"))
	d2 := New(para("a"), para("b"))
	if !d1.EquivalentContent(d2) {
		t.Error("documents with equivalent nodes should match")
	}

	d3 := New(para("a"))
	if d1.EquivalentContent(d3) {
		t.Error("different node counts should not match")
	}
}
