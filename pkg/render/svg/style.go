package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Style defines the visual appearance of a map.
type Style interface {
	// RenderDefs writes SVG <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the shape for a single node.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderConnector writes a parent-child connector.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderText writes a node's label.
	RenderText(buf *bytes.Buffer, b Box)
}

// Box contains all data needed to render a single node.
type Box struct {
	ID         string
	Kind       string
	Lines      []string
	X, Y, W, H float64
	CX, CY     float64
}

// Connector is an elbow line from (X1,Y1) down to (X2,Y2).
type Connector struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64
}

type palette struct{ fill, stroke, text string }

// Simple draws flat rounded boxes.
type Simple struct{}

var simpleColors = map[string]palette{
	"root":     {"#1f4e79", "#163a5a", "#ffffff"},
	"category": {"#d6e9f8", "#1f4e79", "#1b2631"},
	"item":     {"#ffffff", "#7f8c8d", "#1b2631"},
	"overflow": {"#f2f2f2", "#95a5a6", "#555555"},
}

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    text { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; }
    .node.overflow rect { stroke-dasharray: 6 4; }
    .node.root text { font-weight: bold; }
    .connector { fill: none; stroke: #95a5a6; stroke-width: 1.5; }
  </style>
`)
}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	p := colorsFor(b.Kind)
	fmt.Fprintf(buf, `    <rect id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" ry="8" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, p.fill, p.stroke)
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	midY := (c.Y1 + c.Y2) / 2
	fmt.Fprintf(buf, `    <path class="connector" data-from="%s" data-to="%s" d="M%.1f,%.1f V%.1f H%.1f V%.1f"/>`+"\n",
		EscapeXML(c.FromID), EscapeXML(c.ToID), c.X1, c.Y1, midY, c.X2, c.Y2)
}

func (Simple) RenderText(buf *bytes.Buffer, b Box) {
	p := colorsFor(b.Kind)
	size := FontSize(b)
	lineHeight := size * 1.25
	startY := b.CY - lineHeight*float64(len(b.Lines)-1)/2

	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">`,
		b.CX, startY, size, p.text)
	for i, line := range b.Lines {
		if i == 0 {
			fmt.Fprintf(buf, `<tspan x="%.1f">%s</tspan>`, b.CX, EscapeXML(line))
			continue
		}
		fmt.Fprintf(buf, `<tspan x="%.1f" dy="%.1f">%s</tspan>`, b.CX, lineHeight, EscapeXML(line))
	}
	buf.WriteString("</text>\n")
}

func colorsFor(kind string) palette {
	if p, ok := simpleColors[kind]; ok {
		return p
	}
	return simpleColors["item"]
}

const (
	fontHeightRatio = 0.3
	fontWidthRatio  = 0.9
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 16.0
)

// FontSize picks a size that fits the longest line and all lines of b.
func FontSize(b Box) float64 {
	longest := 1
	for _, l := range b.Lines {
		longest = max(longest, len([]rune(l)))
	}
	lines := max(1, len(b.Lines))
	byHeight := b.H * fontHeightRatio * 2 / float64(lines)
	byWidth := (b.W * fontWidthRatio) / (float64(longest) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLine shortens line to what fits in width at the minimum font
// size, marking the cut with "..".
func TruncateLine(line string, width float64) string {
	maxChars := max(3, int(width*fontWidthRatio/(fontSizeMin*fontCharWidth)))
	r := []rune(line)
	if len(r) <= maxChars {
		return line
	}
	return string(r[:maxChars-2]) + ".."
}

func splitLabel(label string, width float64) []string {
	lines := strings.Split(label, "\n")
	for i, l := range lines {
		lines[i] = TruncateLine(l, width)
	}
	return lines
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
