package composer

import (
	"testing"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
)

func caretAt(id document.NodeID, offset int) *document.Selection {
	sel := document.NewCollapsedSelection(document.Position{
		NodeID:       id,
		NodePosition: document.TextPosition{Offset: offset},
	})
	return &sel
}

func TestCollapsedSelectionKeepsPreferences(t *testing.T) {
	c := New()
	c.ActivateStyles(attrtext.Bold)

	c.SetSelection(caretAt("n1", 3))

	if !c.HasPreference(attrtext.Bold) {
		t.Error("collapsed selection should keep preferences")
	}
}

func TestExpandedSelectionClearsPreferences(t *testing.T) {
	c := New()
	c.ActivateStyles(attrtext.Bold, attrtext.Italics)

	sel := document.Selection{
		Base:   document.Position{NodeID: "n1", NodePosition: document.TextPosition{Offset: 0}},
		Extent: document.Position{NodeID: "n1", NodePosition: document.TextPosition{Offset: 4}},
	}
	c.SetSelection(&sel)

	if len(c.PreferencesSnapshot()) != 0 {
		t.Error("expanded selection should clear preferences")
	}
}

func TestTogglePreference(t *testing.T) {
	c := New()

	if active := c.TogglePreference(attrtext.Bold); !active {
		t.Error("first toggle should activate")
	}
	if active := c.TogglePreference(attrtext.Bold); active {
		t.Error("second toggle should deactivate")
	}
}

func TestSelectionIsCopied(t *testing.T) {
	c := New()
	sel := caretAt("n1", 1)
	c.SetSelection(sel)

	// Mutating the caller's copy must not affect composer state.
	sel.Base.NodeID = "other"
	if got := c.Selection(); got == nil || got.Base.NodeID != "n1" {
		t.Error("composer must hold its own copy of the selection")
	}
}

func TestSelectionListeners(t *testing.T) {
	c := New()

	var calls int
	id := c.Subscribe(func(sel *document.Selection) { calls++ })

	c.SetSelection(caretAt("n1", 0))
	c.SetSelection(nil)
	if calls != 2 {
		t.Errorf("expected 2 listener calls, got %d", calls)
	}

	c.Unsubscribe(id)
	c.SetSelection(caretAt("n1", 1))
	if calls != 2 {
		t.Error("unsubscribed listener still called")
	}
}
