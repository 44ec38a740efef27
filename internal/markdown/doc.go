// Package markdown converts between markdown text and the document node
// tree.
//
// Import parses block and inline markdown with goldmark: headings become
// paragraph nodes with a blockType of header1..header6, list items map
// to list item nodes with indent equal to nesting depth, images and
// thematic breaks become binary nodes, and bold, italics, strikethrough,
// code, and links become attribution spans.
//
// Export is the structural inverse. Round trips are semantically
// equivalent, not byte-identical: whitespace is normalized, ordered list
// markers are renumbered by the renderer, and overlapping spans
// serialize in a fixed precedence order (code, bold, italics,
// strikethrough).
package markdown
