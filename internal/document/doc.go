// Package document provides the rich-text document model: an ordered
// sequence of typed block nodes with stable ids, plus the position and
// selection types that point into it.
//
// # Node Variants
//
// The node set is closed. Text-family nodes (TextNode, ParagraphNode,
// ListItemNode) carry attributed text and are addressed by a TextPosition
// (byte offset plus affinity). Binary nodes (ImageNode,
// HorizontalRuleNode) have no interior; a BinaryPosition marks them as
// included or not. All variants sit behind the one Node capability
// interface, and operations that receive a position or selection of the
// wrong variant fail with ErrInvalidPosition rather than ignoring it.
//
// # Positions and Selections
//
// A Position pairs a node id with a node-local position. A Selection is a
// base/extent Position pair with no ordering guarantee; document order
// must be computed with Selection.Normalized, never by comparing the pair
// structurally.
//
// # Change Notification
//
// Documents fan change events out synchronously to registered listeners.
// There is no notification runtime; a listener is just a function and the
// caller that mutates the document is the goroutine that delivers events.
package document
