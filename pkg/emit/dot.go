package emit

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ardenhollis/structurize/pkg/cfg"
)

// ToDOT renders pool to Graphviz DOT. Loop headers and selection headers are
// filled distinctly from plain blocks, and ladder blocks (synthesized by
// structurization, never present in the original CFG) are drawn dashed.
// Other synthesized helper blocks are drawn like any other block.
func ToDOT(pool *cfg.Pool) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n\n")

	for _, n := range pool.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(dotAttrs(n), ", "))
	}
	buf.WriteString("\n")
	for _, n := range pool.Nodes() {
		for _, s := range n.Succ() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.Name, s.Name)
		}
		if n.SuccBackEdge != nil {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=red, constraint=false];\n", n.Name, n.SuccBackEdge.Name)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func dotAttrs(n *cfg.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", dotLabel(n))}
	switch {
	case n.IsLadder:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case n.Merge == cfg.MergeLoop:
		attrs = append(attrs, "fillcolor=lightyellow")
	case n.Merge == cfg.MergeSelection:
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

func dotLabel(n *cfg.Node) string {
	label := n.Name
	switch n.Merge {
	case cfg.MergeSelection:
		label += fmt.Sprintf("\nmerge: %s", n.SelectionMergeBlock.Name)
	case cfg.MergeLoop:
		if n.LoopMergeBlock != nil {
			label += fmt.Sprintf("\nloop merge: %s", n.LoopMergeBlock.Name)
		} else {
			label += "\ninfinite loop"
		}
	}
	return label
}

// RenderSVG renders a pool directly to SVG via Graphviz, for the CLI's
// `structurize dot --svg` flag.
func RenderSVG(pool *cfg.Pool) ([]byte, error) {
	dot := ToDOT(pool)

	ctx := context.Background()
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
