package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
)

// Parse converts markdown source into a document.
func Parse(source string) (*document.Document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	src := []byte(source)
	root := md.Parser().Parse(gtext.NewReader(src))

	var nodes []document.Node
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch block := n.(type) {
		case *ast.Heading:
			text, spans := inlineContent(block, src)
			p := document.NewParagraphNode(document.NewNodeID(), attrtext.New(text, spans...))
			p.SetBlockType(fmt.Sprintf("header%d", block.Level))
			nodes = append(nodes, p)
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			if img, ok := soleImage(block); ok {
				alt, _ := inlineContent(img, src)
				nodes = append(nodes, document.NewImageNode(
					document.NewNodeID(), string(img.Destination), alt))
				return ast.WalkSkipChildren, nil
			}
			text, spans := inlineContent(block, src)
			nodes = append(nodes, document.NewParagraphNode(
				document.NewNodeID(), attrtext.New(text, spans...)))
			return ast.WalkSkipChildren, nil

		case *ast.List:
			nodes = append(nodes, listItems(block, src, 0)...)
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			nodes = append(nodes, document.NewHorizontalRuleNode(document.NewNodeID()))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown ast: %w", err)
	}
	return document.New(nodes...), nil
}

// listItems flattens a list subtree into list item nodes with indent
// equal to nesting depth.
func listItems(list *ast.List, src []byte, depth int) []document.Node {
	listType := document.ListUnordered
	if list.IsOrdered() {
		listType = document.ListOrdered
	}

	var out []document.Node
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				out = append(out, listItems(nested, src, depth+1)...)
				continue
			}
			text, spans := inlineContent(child, src)
			out = append(out, document.NewListItemNode(
				document.NewNodeID(),
				attrtext.New(text, spans...),
				listType,
				document.ClampIndent(depth),
			))
		}
	}
	return out
}

// soleImage reports whether a paragraph holds exactly one image, making
// it a block-level image.
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	img, ok := p.FirstChild().(*ast.Image)
	if !ok || p.ChildCount() != 1 {
		return nil, false
	}
	return img, true
}

// inlineContent flattens a block's inline children into plain text plus
// attribution spans with inclusive offsets.
func inlineContent(n ast.Node, src []byte) (string, []attrtext.Span) {
	var buf strings.Builder
	var spans []attrtext.Span
	walkInline(n, src, &buf, &spans)
	return buf.String(), spans
}

func walkInline(n ast.Node, src []byte, buf *strings.Builder, spans *[]attrtext.Span) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				buf.WriteByte('\n')
			}

		case *ast.String:
			buf.Write(c.Value)

		case *ast.Emphasis:
			attr := attrtext.Attribution(attrtext.Italics)
			if c.Level >= 2 {
				attr = attrtext.Bold
			}
			spanned(c, src, buf, spans, attr)

		case *extast.Strikethrough:
			spanned(c, src, buf, spans, attrtext.Strikethrough)

		case *ast.CodeSpan:
			start := buf.Len()
			for seg := c.FirstChild(); seg != nil; seg = seg.NextSibling() {
				if t, ok := seg.(*ast.Text); ok {
					buf.Write(t.Segment.Value(src))
				}
			}
			appendSpan(spans, attrtext.Code, start, buf.Len())

		case *ast.Link:
			spanned(c, src, buf, spans, attrtext.LinkAttribution{URL: string(c.Destination)})

		case *ast.Image:
			// Inline images degrade to their alt text.
			walkInline(c, src, buf, spans)

		default:
			walkInline(child, src, buf, spans)
		}
	}
}

// spanned renders a subtree and covers its output with one attribution.
func spanned(n ast.Node, src []byte, buf *strings.Builder, spans *[]attrtext.Span, attr attrtext.Attribution) {
	start := buf.Len()
	walkInline(n, src, buf, spans)
	appendSpan(spans, attr, start, buf.Len())
}

func appendSpan(spans *[]attrtext.Span, attr attrtext.Attribution, start, end int) {
	if end <= start {
		return
	}
	*spans = append(*spans, attrtext.Span{Attribution: attr, Start: start, End: end - 1})
}
