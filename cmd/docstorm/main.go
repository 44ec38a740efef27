// Package main is the docstorm command line tool. It reads a markdown
// document, loads it into the document engine, and writes it back out,
// optionally dumping the parsed node tree.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/docstorm/internal/config"
	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/markdown"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		dumpTree    bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&dumpTree, "tree", false, "Dump the parsed node tree instead of markdown")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("docstorm %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := markdown.Parse(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if dumpTree {
		dumpNodes(os.Stdout, doc)
		return 0
	}

	var mdOpts []markdown.Option
	if cfg.Markdown.HardWrap {
		mdOpts = append(mdOpts, markdown.WithHardBreaks())
	}
	out := markdown.Serialize(doc, mdOpts...)
	if !cfg.Markdown.TrailingNewline {
		for len(out) > 0 && out[len(out)-1] == '\n' {
			out = out[:len(out)-1]
		}
	}
	fmt.Print(out)
	return 0
}

func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func dumpNodes(w io.Writer, doc *document.Document) {
	for i, n := range doc.Nodes() {
		switch node := n.(type) {
		case *document.ParagraphNode:
			fmt.Fprintf(w, "%3d paragraph %-12s %q spans=%d\n",
				i, node.BlockType(), node.Text().String(), len(node.Text().Spans()))
		case *document.ListItemNode:
			fmt.Fprintf(w, "%3d list-item %s indent=%d %q\n",
				i, node.ListType(), node.Indent(), node.Text().String())
		case *document.ImageNode:
			fmt.Fprintf(w, "%3d image %s\n", i, node.URL())
		case *document.HorizontalRuleNode:
			fmt.Fprintf(w, "%3d horizontal-rule\n", i)
		default:
			fmt.Fprintf(w, "%3d %T\n", i, n)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `docstorm - markdown document engine

Usage:
  docstorm [options] [file]

Reads markdown from file (or stdin), parses it into the document node
tree, and writes markdown back out.

Options:
`)
	flag.PrintDefaults()
}
