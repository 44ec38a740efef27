package input

import (
	"context"
	"errors"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/editor"
	"github.com/dshills/docstorm/internal/ops"
	"github.com/dshills/docstorm/internal/selection"
)

// Stock chain priorities. Shortcuts run before plain editing so Ctrl
// chords are never swallowed as typed text.
const (
	PriorityShortcuts  = 100
	PriorityNavigation = 200
	PriorityEditing    = 300
	PriorityGestures   = 400
)

// StandardChain builds the stock dispatch chain.
func StandardChain() *Chain {
	return NewChain(
		Handler{Name: "shortcuts", Priority: PriorityShortcuts, Fn: HandleShortcuts},
		Handler{Name: "navigation", Priority: PriorityNavigation, Fn: HandleNavigation},
		Handler{Name: "editing", Priority: PriorityEditing, Fn: HandleEditing},
		Handler{Name: "gestures", Priority: PriorityGestures, Fn: HandleGestures},
	)
}

// HandleShortcuts covers the modifier chords: styling, undo/redo,
// select-all, and clipboard transfer.
func HandleShortcuts(ctx *Context, ev Event) Result {
	if ev.Kind != KindKey || ev.Code != KeyRune || !ev.Mod.Has(ModCtrl) {
		return NotHandled
	}

	switch ev.Rune {
	case 'b':
		return report(ctx.Ops.ToggleAttributions(attrtext.Bold))
	case 'i':
		return report(ctx.Ops.ToggleAttributions(attrtext.Italics))
	case 'a':
		if ctx.Ops.SelectAll() {
			return Handled
		}
		return NotHandled
	case 'z':
		if ev.Mod.Has(ModShift) {
			return report(ctx.Ops.Redo())
		}
		return report(ctx.Ops.Undo())
	case 'y':
		return report(ctx.Ops.Redo())
	case 'x':
		return report(ctx.Ops.Cut(context.Background()))
	case 'c':
		return report(ctx.Ops.CopySelection(context.Background()))
	case 'v':
		return report(ctx.Ops.Paste(context.Background()))
	}
	return NotHandled
}

// HandleNavigation covers caret movement keys.
func HandleNavigation(ctx *Context, ev Event) Result {
	if ev.Kind != KindKey {
		return NotHandled
	}

	granularity := ops.GranularityCharacter
	if ev.Mod.Has(ModCtrl) {
		granularity = ops.GranularityWord
	}

	switch ev.Code {
	case KeyLeft:
		if ctx.Ops.MoveCaretUpstream(granularity) {
			return Handled
		}
		return NotHandled
	case KeyRight:
		if ctx.Ops.MoveCaretDownstream(granularity) {
			return Handled
		}
		return NotHandled
	case KeyHome:
		if ctx.Ops.MoveCaretUpstream(ops.GranularityLine) {
			return Handled
		}
		return NotHandled
	case KeyEnd:
		if ctx.Ops.MoveCaretDownstream(ops.GranularityLine) {
			return Handled
		}
		return NotHandled
	}
	return NotHandled
}

// HandleEditing covers typing, deletion, block splitting, and list
// indentation.
func HandleEditing(ctx *Context, ev Event) Result {
	if ev.Kind != KindKey {
		return NotHandled
	}

	switch ev.Code {
	case KeyRune:
		if ev.Mod.Has(ModCtrl) || ev.Mod.Has(ModMeta) {
			return NotHandled
		}
		return report(ctx.Ops.InsertCharacter(ev.Rune))

	case KeyBackspace:
		changed, err := ctx.Ops.DeleteUpstream()
		if err != nil || !changed {
			return NotHandled
		}
		return Handled

	case KeyDelete:
		changed, err := ctx.Ops.DeleteDownstream()
		if err != nil || !changed {
			return NotHandled
		}
		return Handled

	case KeyEnter:
		return report(ctx.Ops.InsertBlockNewline(false))

	case KeyTab:
		var err error
		if ev.Mod.Has(ModShift) {
			err = ctx.Ops.UnindentListItem()
		} else {
			err = ctx.Ops.IndentListItem()
		}
		if errors.Is(err, editor.ErrInvalidNodeType) {
			return NotHandled
		}
		return report(err)
	}
	return NotHandled
}

// HandleGestures covers pointer selection: click places the caret,
// double-click selects the word, triple-click selects the line.
func HandleGestures(ctx *Context, ev Event) Result {
	if ev.Kind != KindPointer {
		return NotHandled
	}

	var ok bool
	switch {
	case ev.Clicks >= 3:
		ok = ctx.Ops.SelectParagraphAt(ev.Offset)
	case ev.Clicks == 2:
		ok = ctx.Ops.SelectWordAt(ev.Offset)
	default:
		ok = ctx.Ops.PlaceCaretAt(ev.Offset)
	}
	if ok {
		return Handled
	}
	return NotHandled
}

// DragSelect resolves a drag rectangle through the chain's context.
// Clicks selects the expansion mode: 2 for word, 3 for paragraph.
func DragSelect(ctx *Context, base, extent selection.Offset, clicks int) Result {
	mode := selection.ModePosition
	switch {
	case clicks >= 3:
		mode = selection.ModeParagraph
	case clicks == 2:
		mode = selection.ModeWord
	}
	if ctx.Ops.SelectRegion(base, extent, mode) {
		return Handled
	}
	return NotHandled
}

// report maps an operation error to a chain result. Failed operations
// surface as "nothing happened" rather than an interruption.
func report(err error) Result {
	if err != nil {
		return NotHandled
	}
	return Handled
}
