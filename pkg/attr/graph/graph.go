// Package graph renders classified attribute relations as a Graphviz
// node-link diagram: the subject in the center, attack edges pointing out,
// defend edges pointing in, colored by category.
package graph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/vmoranv/aolachart/pkg/attr"
)

var classColors = map[attr.Class]string{
	attr.ClassSuper:  "#ef4444",
	attr.ClassStrong: "#fb923c",
	attr.ClassWeak:   "#22c55e",
	attr.ClassImmune: "#6b7280",
}

var classEdgeLabels = map[attr.Class]string{
	attr.ClassSuper:  "3x",
	attr.ClassStrong: "2x",
	attr.ClassWeak:   "1/2x",
	attr.ClassImmune: "0x",
}

// graphCategories matches the chart: the normal bucket is excluded to keep
// the diagram readable.
var graphCategories = []attr.Class{attr.ClassSuper, attr.ClassStrong, attr.ClassWeak, attr.ClassImmune}

// ToDOT converts the subject's attack and defend buckets to Graphviz DOT.
// The resulting string renders with [RenderSVG] or [RenderPNG].
func ToDOT(subject attr.Attribute, attack, defend attr.BucketSet) string {
	var buf bytes.Buffer
	buf.WriteString("digraph relations {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	subjectNode := nodeID(subject.ID)
	fmt.Fprintf(&buf, "  %s [label=%q, fillcolor=\"#eef2ff\", penwidth=2];\n", subjectNode, subject.Name)

	seen := map[int]bool{subject.ID: true}
	declare := func(e attr.Entry) {
		if seen[e.ID] {
			return
		}
		seen[e.ID] = true
		fmt.Fprintf(&buf, "  %s [label=%q];\n", nodeID(e.ID), e.Name)
	}

	for _, class := range graphCategories {
		for _, e := range attack[class] {
			declare(e)
			fmt.Fprintf(&buf, "  %s -> %s [color=%q, label=%q, fontsize=10];\n",
				subjectNode, nodeID(e.ID), classColors[class], classEdgeLabels[class])
		}
	}
	for _, class := range graphCategories {
		for _, e := range defend[class] {
			declare(e)
			fmt.Fprintf(&buf, "  %s -> %s [color=%q, label=%q, fontsize=10, style=dashed];\n",
				nodeID(e.ID), subjectNode, classColors[class], classEdgeLabels[class])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string {
	return fmt.Sprintf("attr%d", id)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
		return nil, fmt.Errorf("render %s: %w", strings.ToLower(string(format)), err)
	}
	return buf.Bytes(), nil
}
