package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/render"
)

// pointsPerInch converts map pixels (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures diagram generation.
type Options struct {
	// Free lets Graphviz place nodes instead of pinning computed positions.
	Free bool
	// Detailed appends the node ID and depth to each label.
	Detailed bool
}

var kindAttrs = map[string][]string{
	"root":     {`fillcolor="#1f4e79"`, `fontcolor=white`, `fontname="Helvetica-Bold"`},
	"category": {`fillcolor="#d6e9f8"`, `color="#1f4e79"`},
	"item":     {`fillcolor=white`, `color="#7f8c8d"`},
	"overflow": {`style="rounded,filled,dashed"`, `fillcolor="#f2f2f2"`, `fontcolor="#555555"`},
}

// ToDOT converts a map to Graphviz DOT format. The result can be rendered
// using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(m graph.MindMap, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Free {
		buf.WriteString("  rankdir=TB;\n")
		buf.WriteString("  ranksep=0.5;\n")
		buf.WriteString("  nodesep=0.3;\n")
	} else {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  splines=polyline;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#7f8c8d\"];\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes {
		attrs := []string{"label=" + quote(fmtLabel(n, opts.Detailed))}
		attrs = append(attrs, kindAttrs[n.Kind]...)
		if !opts.Free && n.Width > 0 {
			cx, cy := n.Center(m.Anchor)
			attrs = append(attrs,
				fmt.Sprintf(`pos="%.1f,%.1f!"`, cx, m.Height-cy),
				fmt.Sprintf("width=%.3f", n.Width/pointsPerInch),
				fmt.Sprintf("height=%.3f", n.Height/pointsPerInch),
				"fixedsize=true",
			)
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.Source), quote(e.Target))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// quote returns s as a DOT double-quoted string. Only backslash and quote
// are escaped, newlines become DOT's \n and other control characters become
// spaces.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return fmt.Sprintf("%s\n[%s, depth %d]", n.Label, n.ID, n.Depth)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one so the SVG scales like the native renderer's output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
