package input

import (
	"testing"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/ops"
)

func newSession(t *testing.T, text string) (*Context, *document.Document) {
	t.Helper()
	doc := document.New(document.NewParagraphNode("p1", attrtext.New(text)))
	o := ops.New(doc)
	sel := document.NewCollapsedSelection(document.Position{
		NodeID:       "p1",
		NodePosition: document.TextPosition{Offset: len(text)},
	})
	o.Composer().SetSelection(&sel)
	return NewContext(o), doc
}

func docText(t *testing.T, doc *document.Document, id string) string {
	t.Helper()
	n, ok := doc.NodeByID(document.NodeID(id))
	if !ok {
		t.Fatalf("node %s not found", id)
	}
	return n.(document.TextualNode).Text().String()
}

func TestChainPriorityOrder(t *testing.T) {
	var order []string
	mk := func(name string, result Result) Handler {
		return Handler{Name: name, Fn: func(*Context, Event) Result {
			order = append(order, name)
			return result
		}}
	}

	chain := NewChain()
	chain.Register(Handler{Name: "late", Priority: 300, Fn: mk("late", Handled).Fn})
	chain.Register(Handler{Name: "early", Priority: 100, Fn: mk("early", NotHandled).Fn})
	chain.Register(Handler{Name: "mid", Priority: 200, Fn: mk("mid", NotHandled).Fn})

	if got := chain.Dispatch(nil, Event{}); got != Handled {
		t.Fatalf("expected Handled, got %v", got)
	}
	want := []string{"early", "mid", "late"}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("position %d: expected %q, got %q", i, name, order[i])
		}
	}
}

func TestFirstHandledShortCircuits(t *testing.T) {
	var reachedLast bool
	chain := NewChain(
		Handler{Name: "first", Priority: 1, Fn: func(*Context, Event) Result { return Handled }},
		Handler{Name: "second", Priority: 2, Fn: func(*Context, Event) Result {
			reachedLast = true
			return Handled
		}},
	)
	chain.Dispatch(nil, Event{})
	if reachedLast {
		t.Error("expected chain to stop at first Handled")
	}
}

func TestBlockedStopsWithoutHandling(t *testing.T) {
	var reachedLast bool
	chain := NewChain(
		Handler{Name: "guard", Priority: 1, Fn: func(*Context, Event) Result { return Blocked }},
		Handler{Name: "editing", Priority: 2, Fn: func(*Context, Event) Result {
			reachedLast = true
			return Handled
		}},
	)
	if got := chain.Dispatch(nil, Event{}); got != Blocked {
		t.Errorf("expected Blocked, got %v", got)
	}
	if reachedLast {
		t.Error("expected Blocked to stop the chain")
	}
}

func TestRemoveHandler(t *testing.T) {
	chain := NewChain(
		Handler{Name: "only", Priority: 1, Fn: func(*Context, Event) Result { return Handled }},
	)
	chain.Remove("only")
	if got := chain.Dispatch(nil, Event{}); got != NotHandled {
		t.Errorf("expected NotHandled after removal, got %v", got)
	}
}

func TestTypingThroughChain(t *testing.T) {
	ctx, doc := newSession(t, "Hello")
	chain := StandardChain()

	if got := chain.Dispatch(ctx, KeyEvent('!', 0)); got != Handled {
		t.Fatalf("expected Handled, got %v", got)
	}
	if got := docText(t, doc, "p1"); got != "Hello!" {
		t.Errorf("expected %q, got %q", "Hello!", got)
	}
}

func TestBackspaceThroughChain(t *testing.T) {
	ctx, doc := newSession(t, "Hello")
	chain := StandardChain()

	if got := chain.Dispatch(ctx, CodeEvent(KeyBackspace, 0)); got != Handled {
		t.Fatalf("expected Handled, got %v", got)
	}
	if got := docText(t, doc, "p1"); got != "Hell" {
		t.Errorf("expected %q, got %q", "Hell", got)
	}
}

func TestCtrlChordNotTyped(t *testing.T) {
	ctx, doc := newSession(t, "Hello")
	chain := StandardChain()

	// Ctrl+A selects all; the rune must not be inserted.
	if got := chain.Dispatch(ctx, KeyEvent('a', ModCtrl)); got != Handled {
		t.Fatalf("expected Handled, got %v", got)
	}
	if got := docText(t, doc, "p1"); got != "Hello" {
		t.Errorf("expected text unchanged, got %q", got)
	}
	if sel := ctx.Composer.Selection(); sel == nil || sel.IsCollapsed() {
		t.Error("expected expanded selection after select-all")
	}
}

func TestBoldShortcutTogglesSelection(t *testing.T) {
	ctx, doc := newSession(t, "Hello")
	chain := StandardChain()

	sel := document.Selection{
		Base:   document.Position{NodeID: "p1", NodePosition: document.TextPosition{Offset: 0}},
		Extent: document.Position{NodeID: "p1", NodePosition: document.TextPosition{Offset: 5}},
	}
	ctx.Composer.SetSelection(&sel)

	if got := chain.Dispatch(ctx, KeyEvent('b', ModCtrl)); got != Handled {
		t.Fatalf("expected Handled, got %v", got)
	}
	n, _ := doc.NodeByID("p1")
	spans := n.(document.TextualNode).Text().Spans()
	if len(spans) != 1 || spans[0].Attribution.ID() != "bold" {
		t.Errorf("expected bold span, got %v", spans)
	}
}

func TestUndoShortcut(t *testing.T) {
	ctx, doc := newSession(t, "Hello")
	chain := StandardChain()

	chain.Dispatch(ctx, KeyEvent('!', 0))
	if got := chain.Dispatch(ctx, KeyEvent('z', ModCtrl)); got != Handled {
		t.Fatalf("expected Handled, got %v", got)
	}
	if got := docText(t, doc, "p1"); got != "Hello" {
		t.Errorf("expected %q after undo, got %q", "Hello", got)
	}
}

func TestArrowNavigation(t *testing.T) {
	ctx, _ := newSession(t, "Hello")
	chain := StandardChain()

	if got := chain.Dispatch(ctx, CodeEvent(KeyLeft, 0)); got != Handled {
		t.Fatalf("expected Handled, got %v", got)
	}
	sel := ctx.Composer.Selection()
	tp := sel.Extent.NodePosition.(document.TextPosition)
	if tp.Offset != 4 {
		t.Errorf("expected caret at 4, got %d", tp.Offset)
	}
}

func TestTabOutsideListFallsThrough(t *testing.T) {
	ctx, _ := newSession(t, "Hello")
	chain := StandardChain()

	if got := chain.Dispatch(ctx, CodeEvent(KeyTab, 0)); got != NotHandled {
		t.Errorf("expected NotHandled for tab in a paragraph, got %v", got)
	}
}
