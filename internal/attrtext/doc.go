// Package attrtext provides attributed text: a string paired with
// run-length attribution spans.
//
// An attribution is a named style or semantic tag (bold, italics, a link)
// that holds over a contiguous range of the text. Spans use inclusive,
// 0-based byte offsets. The package maintains one invariant throughout:
// two spans whose attributions can merge never overlap or abut without
// being coalesced into a single span.
//
// Text is a mutable value type. Edits (InsertString, RemoveRegion) shift
// and truncate spans so that attributions stay attached to the characters
// they were applied to. Copies produced by Copy share nothing with the
// source.
package attrtext
