package markdown

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
)

// Serialization opens markers in a fixed precedence order and closes
// them in reverse, so nested spans emit well-formed markdown.
var precedence = map[string]int{
	"code":          0,
	"bold":          1,
	"italics":       2,
	"strikethrough": 3,
	"link":          4,
}

// Option adjusts serialization.
type Option func(*serializer)

type serializer struct {
	hardBreaks bool
}

// WithHardBreaks renders newlines embedded in block text as backslash
// hard breaks instead of soft breaks.
func WithHardBreaks() Option {
	return func(s *serializer) { s.hardBreaks = true }
}

// Serialize renders a document as markdown. Blocks are separated by a
// blank line and the output ends with a newline.
func Serialize(doc *document.Document, opts ...Option) string {
	var s serializer
	for _, opt := range opts {
		opt(&s)
	}
	var blocks []string
	for _, n := range doc.Nodes() {
		switch node := n.(type) {
		case *document.ParagraphNode:
			blocks = append(blocks, headerPrefix(node.BlockType())+inlineMarkdown(node.Text(), s.hardBreaks))
		case *document.ListItemNode:
			marker := "* "
			if node.ListType() == document.ListOrdered {
				marker = "1. "
			}
			indent := strings.Repeat("  ", node.Indent())
			blocks = append(blocks, indent+marker+inlineMarkdown(node.Text(), s.hardBreaks))
		case *document.ImageNode:
			blocks = append(blocks, fmt.Sprintf("![%s](%s)", node.AltText(), node.URL()))
		case *document.HorizontalRuleNode:
			blocks = append(blocks, "---")
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func headerPrefix(blockType string) string {
	level, ok := strings.CutPrefix(blockType, "header")
	if !ok {
		return ""
	}
	n, err := strconv.Atoi(level)
	if err != nil || n < 1 || n > 6 {
		return ""
	}
	return strings.Repeat("#", n) + " "
}

// inlineMarkdown renders attributed text with inline markers placed at
// span boundaries.
func inlineMarkdown(t *attrtext.Text, hardBreaks bool) string {
	opens := map[int][]attrtext.Attribution{}
	closes := map[int][]attrtext.Attribution{}
	v := t.Visit()
	for v.Next() {
		e := v.Event()
		if e.Kind == attrtext.SpanStart {
			opens[e.Offset] = append(opens[e.Offset], e.Attribution)
		} else {
			closes[e.Offset] = append(closes[e.Offset], e.Attribution)
		}
	}

	text := t.String()
	var out strings.Builder
	for i := 0; i < len(text); i++ {
		if attrs, ok := opens[i]; ok {
			sort.SliceStable(attrs, func(a, b int) bool {
				return precedence[attrs[a].ID()] < precedence[attrs[b].ID()]
			})
			for _, a := range attrs {
				out.WriteString(openMarker(a))
			}
		}
		if hardBreaks && text[i] == '\n' {
			out.WriteString("\\\n")
		} else {
			out.WriteByte(text[i])
		}
		if attrs, ok := closes[i]; ok {
			sort.SliceStable(attrs, func(a, b int) bool {
				return precedence[attrs[a].ID()] > precedence[attrs[b].ID()]
			})
			for _, a := range attrs {
				out.WriteString(closeMarker(a))
			}
		}
	}
	return out.String()
}

func openMarker(a attrtext.Attribution) string {
	switch a.ID() {
	case "code":
		return "`"
	case "bold":
		return "**"
	case "italics":
		return "*"
	case "strikethrough":
		return "~~"
	case "link":
		return "["
	default:
		return ""
	}
}

func closeMarker(a attrtext.Attribution) string {
	switch a.ID() {
	case "code":
		return "`"
	case "bold":
		return "**"
	case "italics":
		return "*"
	case "strikethrough":
		return "~~"
	case "link":
		if link, ok := a.(attrtext.LinkAttribution); ok {
			return fmt.Sprintf("](%s)", link.URL)
		}
		return "]"
	default:
		return ""
	}
}
