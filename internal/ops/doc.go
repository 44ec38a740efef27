// Package ops exposes the common editing operations as a state machine
// over editor commands: caret movement, insertion, deletion across node
// boundaries, attribution toggling, list indentation, block splitting,
// and clipboard transfer.
//
// Operations is the per-session entry point. It owns the composer
// selection, translates each verb into one or more editor commands,
// and records an undo entry for every document mutation. It also
// implements history.Replayer, supplying the hand-written inverse for
// each action tag.
//
// Everything here is synchronous and single-writer. The one async
// boundary is clipboard access: Paste reads the clipboard, then
// re-validates its target node id before applying, failing with a
// descriptive error when the document changed underneath it.
package ops
