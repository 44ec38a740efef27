package input

import "github.com/dshills/docstorm/internal/selection"

// EventKind distinguishes keyboard events from pointer gestures.
type EventKind uint8

const (
	// KindKey is a keyboard event.
	KindKey EventKind = iota
	// KindPointer is a pointer gesture with a screen offset.
	KindPointer
)

// KeyCode identifies a non-printing key.
type KeyCode uint8

const (
	// KeyRune is a printable character carried in Event.Rune.
	KeyRune KeyCode = iota
	// KeyEnter is the return key.
	KeyEnter
	// KeyBackspace deletes upstream of the caret.
	KeyBackspace
	// KeyDelete deletes downstream of the caret.
	KeyDelete
	// KeyTab is the tab key.
	KeyTab
	// KeyLeft is the left arrow.
	KeyLeft
	// KeyRight is the right arrow.
	KeyRight
	// KeyHome moves to the start of the line.
	KeyHome
	// KeyEnd moves to the end of the line.
	KeyEnd
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	// ModShift is the shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl is the control key.
	ModCtrl
	// ModAlt is the alt or option key.
	ModAlt
	// ModMeta is the command or windows key.
	ModMeta
)

// Has reports whether all the given modifiers are held.
func (m Modifier) Has(mod Modifier) bool { return m&mod == mod }

// Event is one key press or pointer gesture.
type Event struct {
	Kind   EventKind
	Code   KeyCode
	Rune   rune
	Mod    Modifier
	Offset selection.Offset
	Clicks int
}

// KeyEvent builds a printable-character event.
func KeyEvent(r rune, mod Modifier) Event {
	return Event{Kind: KindKey, Code: KeyRune, Rune: r, Mod: mod}
}

// CodeEvent builds a non-printing key event.
func CodeEvent(code KeyCode, mod Modifier) Event {
	return Event{Kind: KindKey, Code: code, Mod: mod}
}

// PointerEvent builds a pointer gesture at a screen offset.
func PointerEvent(offset selection.Offset, clicks int) Event {
	return Event{Kind: KindPointer, Offset: offset, Clicks: clicks}
}

// Result is a handler's answer for one event.
type Result uint8

const (
	// NotHandled passes the event to the next handler.
	NotHandled Result = iota
	// Handled consumes the event and stops the chain.
	Handled
	// Blocked stops the chain without consuming the event.
	Blocked
)

// String returns a string representation of the result.
func (r Result) String() string {
	switch r {
	case Handled:
		return "handled"
	case Blocked:
		return "blocked"
	default:
		return "not-handled"
	}
}
