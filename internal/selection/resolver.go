package selection

import "github.com/dshills/docstorm/internal/document"

// Offset is a screen-local point in the rendering collaborator's
// coordinate space. The engine only ever compares offsets; it never
// derives geometry from them.
type Offset struct {
	X float64
	Y float64
}

// Below reports whether o is visually below other, with X as the
// tie-break on the same line.
func (o Offset) Below(other Offset) bool {
	if o.Y != other.Y {
		return o.Y > other.Y
	}
	return o.X > other.X
}

// LayoutResolver maps screen offsets to document positions. Supplied by
// the rendering layer. A false return means the offset hits nothing;
// operations that depended on it are skipped, not failed.
type LayoutResolver interface {
	// ResolvePosition returns the document position at a screen offset.
	ResolvePosition(offset Offset) (document.Position, bool)

	// ResolveNodeAt returns the node under a screen offset.
	ResolveNodeAt(offset Offset) (document.NodeID, bool)
}

// Mode selects how a resolved position or region is expanded.
type Mode uint8

const (
	// ModePosition collapses to the exact resolved position.
	ModePosition Mode = iota
	// ModeWord expands to the surrounding word.
	ModeWord
	// ModeParagraph expands to the enclosing paragraph line.
	ModeParagraph
)
