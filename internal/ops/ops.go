package ops

import (
	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/composer"
	"github.com/dshills/docstorm/internal/config"
	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/editor"
	"github.com/dshills/docstorm/internal/history"
	"github.com/dshills/docstorm/internal/selection"
)

// Granularity selects the unit of caret movement.
type Granularity uint8

const (
	// GranularityCharacter moves by one grapheme cluster.
	GranularityCharacter Granularity = iota
	// GranularityWord moves to the nearest word boundary.
	GranularityWord
	// GranularityLine moves to the nearest line boundary.
	GranularityLine
)

// Operations drives a single editing session over one document.
type Operations struct {
	doc           *document.Document
	editor        *editor.Editor
	composer      *composer.Composer
	log           *history.Log
	resolver      selection.LayoutResolver
	clipboard     Clipboard
	maxListIndent int
	defaultAttrs  []string
}

// Option configures an Operations session.
type Option func(*Operations)

// WithComposer supplies a pre-built composer. The default is a fresh one.
func WithComposer(c *composer.Composer) Option {
	return func(o *Operations) { o.composer = c }
}

// WithHistory supplies the session's undo log. The default is a log with
// history.DefaultMaxDepth.
func WithHistory(l *history.Log) Option {
	return func(o *Operations) { o.log = l }
}

// WithResolver supplies the layout resolver consumed by gesture-driven
// selection. Without one, offset-based selection operations are skipped.
func WithResolver(r selection.LayoutResolver) Option {
	return func(o *Operations) { o.resolver = r }
}

// WithClipboard supplies the clipboard used by cut, copy, and paste.
func WithClipboard(cb Clipboard) Option {
	return func(o *Operations) { o.clipboard = cb }
}

// WithConfig sizes the session from loaded configuration: the undo
// log depth, the list indent cap, and the style preferences active at
// session start. Later options may still override the log or composer.
func WithConfig(cfg config.Config) Option {
	return func(o *Operations) {
		o.log = history.NewLog(history.WithMaxDepth(cfg.Editing.MaxUndoDepth))
		o.maxListIndent = document.ClampIndent(cfg.Editing.MaxListIndent)
		o.defaultAttrs = cfg.Editing.DefaultAttributions
	}
}

// New creates an editing session over doc.
func New(doc *document.Document, opts ...Option) *Operations {
	o := &Operations{
		doc:           doc,
		editor:        editor.New(doc),
		maxListIndent: document.MaxListIndent,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.composer == nil {
		o.composer = composer.New()
	}
	if o.log == nil {
		o.log = history.NewLog()
	}
	for _, name := range o.defaultAttrs {
		o.composer.ActivateStyles(attrtext.NamedAttribution(name))
	}
	return o
}

// Document returns the session's document.
func (o *Operations) Document() *document.Document { return o.doc }

// Composer returns the session's composer.
func (o *Operations) Composer() *composer.Composer { return o.composer }

// History returns the session's undo log.
func (o *Operations) History() *history.Log { return o.log }

// record pushes an undo entry. sel is the selection before the action.
func (o *Operations) record(action history.Action, sel document.Selection, payload []byte, nodes ...document.Node) {
	o.log.Push(&history.Edit{
		Action:    action,
		Selection: sel,
		Payload:   payload,
		Nodes:     nodes,
	})
}

// setCaret collapses the composer selection to p.
func (o *Operations) setCaret(p document.Position) {
	sel := document.NewCollapsedSelection(p)
	o.composer.SetSelection(&sel)
}

// caretAtNodeStart returns the caret position at the beginning of n.
func caretAtNodeStart(n document.Node) document.Position {
	return document.Position{NodeID: n.ID(), NodePosition: n.BeginningPosition()}
}

// caretAtNodeEnd returns the caret position at the end of n. For binary
// nodes that is the not-included position, which carries no interior
// offset.
func caretAtNodeEnd(n document.Node) document.Position {
	if tn, ok := n.(document.TextualNode); ok {
		return document.Position{
			NodeID:       n.ID(),
			NodePosition: document.TextPosition{Offset: tn.Text().Len(), Affinity: document.AffinityUpstream},
		}
	}
	return document.Position{NodeID: n.ID(), NodePosition: document.BinaryPosition{}}
}

// MoveCaretUpstream moves the caret toward the document start at the
// given granularity. An expanded selection collapses to its upstream
// end first. Returns false when nothing moved.
func (o *Operations) MoveCaretUpstream(g Granularity) bool {
	sel := o.composer.Selection()
	if sel == nil {
		return false
	}
	if !sel.IsCollapsed() {
		start, _, err := sel.Normalized(o.doc)
		if err != nil {
			return false
		}
		o.setCaret(start)
		return true
	}

	caret := sel.Extent
	n, ok := o.doc.NodeByID(caret.NodeID)
	if !ok {
		return false
	}

	tp, isText := caret.NodePosition.(document.TextPosition)
	tn, isTextual := n.(document.TextualNode)
	if !isText || !isTextual {
		return o.hopToPreviousNode(n)
	}

	text := tn.Text().String()
	switch g {
	case GranularityWord:
		if tp.Offset == 0 {
			return o.hopToPreviousNode(n)
		}
		o.setCaret(document.Position{
			NodeID:       caret.NodeID,
			NodePosition: document.TextPosition{Offset: selection.WordUpstreamBoundary(text, tp.Offset)},
		})
		return true
	case GranularityLine:
		start := lineStart(text, tp.Offset)
		if start == tp.Offset {
			return false
		}
		o.setCaret(document.Position{
			NodeID:       caret.NodeID,
			NodePosition: document.TextPosition{Offset: start},
		})
		return true
	default:
		if tp.Offset == 0 {
			return o.hopToPreviousNode(n)
		}
		o.setCaret(document.Position{
			NodeID:       caret.NodeID,
			NodePosition: document.TextPosition{Offset: selection.PrevGraphemeBoundary(text, tp.Offset)},
		})
		return true
	}
}

// MoveCaretDownstream moves the caret toward the document end at the
// given granularity. An expanded selection collapses to its downstream
// end first. Returns false when nothing moved.
func (o *Operations) MoveCaretDownstream(g Granularity) bool {
	sel := o.composer.Selection()
	if sel == nil {
		return false
	}
	if !sel.IsCollapsed() {
		_, end, err := sel.Normalized(o.doc)
		if err != nil {
			return false
		}
		o.setCaret(end)
		return true
	}

	caret := sel.Extent
	n, ok := o.doc.NodeByID(caret.NodeID)
	if !ok {
		return false
	}

	tp, isText := caret.NodePosition.(document.TextPosition)
	tn, isTextual := n.(document.TextualNode)
	if !isText || !isTextual {
		return o.hopToNextNode(n)
	}

	text := tn.Text().String()
	switch g {
	case GranularityWord:
		if tp.Offset >= len(text) {
			return o.hopToNextNode(n)
		}
		o.setCaret(document.Position{
			NodeID:       caret.NodeID,
			NodePosition: document.TextPosition{Offset: selection.WordDownstreamBoundary(text, tp.Offset)},
		})
		return true
	case GranularityLine:
		end := lineEnd(text, tp.Offset)
		if end == tp.Offset {
			return false
		}
		o.setCaret(document.Position{
			NodeID:       caret.NodeID,
			NodePosition: document.TextPosition{Offset: end, Affinity: document.AffinityUpstream},
		})
		return true
	default:
		if tp.Offset >= len(text) {
			return o.hopToNextNode(n)
		}
		o.setCaret(document.Position{
			NodeID:       caret.NodeID,
			NodePosition: document.TextPosition{Offset: selection.NextGraphemeBoundary(text, tp.Offset)},
		})
		return true
	}
}

func (o *Operations) hopToPreviousNode(n document.Node) bool {
	prev, ok := o.doc.NodeBefore(n.ID())
	if !ok {
		return false
	}
	o.setCaret(caretAtNodeEnd(prev))
	return true
}

func (o *Operations) hopToNextNode(n document.Node) bool {
	next, ok := o.doc.NodeAfter(n.ID())
	if !ok {
		return false
	}
	o.setCaret(caretAtNodeStart(next))
	return true
}

func lineStart(text string, offset int) int {
	for i := offset - 1; i >= 0; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

func lineEnd(text string, offset int) int {
	for i := offset; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return len(text)
}

// SelectAll selects the whole document, from the beginning of the first
// node to the end of the last.
func (o *Operations) SelectAll() bool {
	first, ok := o.doc.FirstNode()
	if !ok {
		return false
	}
	last, _ := o.doc.LastNode()
	sel := document.Selection{
		Base:   caretAtNodeStart(first),
		Extent: caretAtNodeEnd(last),
	}
	o.composer.SetSelection(&sel)
	return true
}

// SelectWordAt expands the word around the resolved screen offset and
// makes it the active selection. Returns false when the resolver misses
// or the target is not text-bearing.
func (o *Operations) SelectWordAt(offset selection.Offset) bool {
	if o.resolver == nil {
		return false
	}
	pos, ok := o.resolver.ResolvePosition(offset)
	if !ok {
		return false
	}
	sel := selection.ExpandWord(o.doc, pos)
	if sel == nil {
		return false
	}
	o.composer.SetSelection(sel)
	return true
}

// SelectParagraphAt expands the enclosing line around the resolved
// screen offset and makes it the active selection.
func (o *Operations) SelectParagraphAt(offset selection.Offset) bool {
	if o.resolver == nil {
		return false
	}
	pos, ok := o.resolver.ResolvePosition(offset)
	if !ok {
		return false
	}
	sel := selection.ExpandParagraph(o.doc, pos)
	if sel == nil {
		return false
	}
	o.composer.SetSelection(sel)
	return true
}

// SelectRegion resolves a drag rectangle into a selection using the
// given expansion mode.
func (o *Operations) SelectRegion(base, extent selection.Offset, mode selection.Mode) bool {
	if o.resolver == nil {
		return false
	}
	sel := selection.ExpandRegion(o.doc, o.resolver, base, extent, mode)
	if sel == nil {
		return false
	}
	o.composer.SetSelection(sel)
	return true
}

// PlaceCaretAt collapses the selection to the resolved screen offset.
func (o *Operations) PlaceCaretAt(offset selection.Offset) bool {
	if o.resolver == nil {
		return false
	}
	pos, ok := o.resolver.ResolvePosition(offset)
	if !ok {
		return false
	}
	o.setCaret(pos)
	return true
}
