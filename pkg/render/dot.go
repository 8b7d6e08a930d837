// Package render generates Graphviz visualizations of a file-reference
// graph: DOT text, plus SVG and PNG rasterizations via goccy/go-graphviz.
package render

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/refgraph/refgraph/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// FullPaths labels nodes with their full path instead of the base name.
	FullPaths bool

	// HighlightCycles draws cycle members with a red outline.
	HighlightCycles bool
}

// ToDOT converts a graph to Graphviz DOT format.
// Nodes are emitted in sorted path order and edges in insertion order,
// so output is deterministic for a given graph.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph refs {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	inCycle := map[string]bool{}
	if opts.HighlightCycles {
		for _, cycle := range g.Cycles() {
			for _, n := range cycle {
				inCycle[n.Key()] = true
			}
		}
	}

	snapshot := g.Snapshot()
	for _, n := range snapshot.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n.Path, opts))}
		if inCycle[strings.ToLower(n.Path)] {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Path, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range snapshot.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(path string, opts Options) string {
	if opts.FullPaths {
		return path
	}
	return filepath.Base(path)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
