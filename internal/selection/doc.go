// Package selection resolves gestures into document selections.
//
// The package never computes pixel geometry. Screen offsets are turned
// into document positions by a LayoutResolver supplied by the rendering
// collaborator; this package owns only the expansion rules layered on
// top: collapse to a position, expand to the surrounding word, expand to
// the enclosing paragraph line, and recombine the two ends of a drag
// region.
//
// Word boundaries honor Unicode grapheme clusters, so a multi-byte
// character is never split by an expansion.
package selection
