package selection

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/docstorm/internal/document"
)

// cluster is one grapheme cluster with its byte range in the node text.
type cluster struct {
	start int
	end   int // exclusive
	str   string
}

// clustersOf segments text into grapheme clusters with byte positions.
func clustersOf(text string) []cluster {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	var out []cluster
	for g.Next() {
		from, to := g.Positions()
		out = append(out, cluster{start: from, end: to, str: g.Str()})
	}
	return out
}

// isWordBreak reports whether a cluster separates words: whitespace or a
// newline.
func isWordBreak(c cluster) bool {
	for _, r := range c.str {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// ExpandWord expands a text position to the maximal surrounding run of
// non-whitespace grapheme clusters. Returns nil if the position's node
// is not text-bearing or the id dangles. A position touching only
// whitespace collapses to itself.
func ExpandWord(doc *document.Document, pos document.Position) *document.Selection {
	node, ok := doc.NodeByID(pos.NodeID)
	if !ok {
		return nil
	}
	tn, ok := node.(document.TextualNode)
	if !ok {
		return nil
	}
	tp, ok := pos.NodePosition.(document.TextPosition)
	if !ok {
		return nil
	}

	text := tn.Text().String()
	if tp.Offset < 0 || tp.Offset > len(text) {
		return nil
	}

	clusters := clustersOf(text)
	start, end := tp.Offset, tp.Offset

	// Walk upstream over word clusters that end at or before the caret.
	for i := len(clusters) - 1; i >= 0; i-- {
		c := clusters[i]
		if c.end > start {
			continue
		}
		if c.end < start || isWordBreak(c) {
			break
		}
		start = c.start
	}
	// Walk downstream over word clusters that begin at or after the caret.
	for _, c := range clusters {
		if c.start < end {
			continue
		}
		if c.start > end || isWordBreak(c) {
			break
		}
		end = c.end
	}

	sel := document.Selection{
		Base: document.Position{
			NodeID:       pos.NodeID,
			NodePosition: document.TextPosition{Offset: start, Affinity: document.AffinityDownstream},
		},
		Extent: document.Position{
			NodeID:       pos.NodeID,
			NodePosition: document.TextPosition{Offset: end, Affinity: document.AffinityUpstream},
		},
	}
	return &sel
}

// ExpandParagraph expands a text position to the full content of the
// enclosing node, or up to embedded newline boundaries when the node
// holds multiple logical lines. Returns nil for non-text nodes.
func ExpandParagraph(doc *document.Document, pos document.Position) *document.Selection {
	node, ok := doc.NodeByID(pos.NodeID)
	if !ok {
		return nil
	}
	tn, ok := node.(document.TextualNode)
	if !ok {
		return nil
	}
	tp, ok := pos.NodePosition.(document.TextPosition)
	if !ok {
		return nil
	}

	text := tn.Text().String()
	if tp.Offset < 0 || tp.Offset > len(text) {
		return nil
	}

	start := 0
	if i := strings.LastIndexByte(text[:tp.Offset], '\n'); i >= 0 {
		start = i + 1
	}
	end := len(text)
	if i := strings.IndexByte(text[tp.Offset:], '\n'); i >= 0 {
		end = tp.Offset + i
	}

	sel := document.Selection{
		Base: document.Position{
			NodeID:       pos.NodeID,
			NodePosition: document.TextPosition{Offset: start, Affinity: document.AffinityDownstream},
		},
		Extent: document.Position{
			NodeID:       pos.NodeID,
			NodePosition: document.TextPosition{Offset: end, Affinity: document.AffinityUpstream},
		},
	}
	return &sel
}
