// Package editor provides the transactional command layer over a
// document.
//
// Commands are small, single-purpose, pure-data units; they mutate
// nothing until Execute. Execute receives the live document and a
// Transaction that batches the structural mutations of one command
// invocation. Mutations apply in call order and take effect immediately,
// so later steps of the same command see earlier steps' results.
//
// Every command validates its targets before touching the document: a
// missing node id or a node of the wrong variant fails fast with
// ErrInvalidNodeType or document.ErrNodeNotFound, leaving the document
// untouched.
package editor
