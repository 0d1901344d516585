package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/orgmap/pkg/graph"
)

// Margin is the padding around the map.
const Margin = 20.0

const panZoomJS = `
    (function () {
      var svg = document.currentScript.ownerSVGElement || document.querySelector('svg');
      var vb = svg.viewBox.baseVal;
      var drag = null;
      svg.addEventListener('wheel', function (e) {
        e.preventDefault();
        var k = e.deltaY > 0 ? 1.1 : 1 / 1.1;
        var pt = svg.createSVGPoint();
        pt.x = e.clientX; pt.y = e.clientY;
        var p = pt.matrixTransform(svg.getScreenCTM().inverse());
        vb.x = p.x - (p.x - vb.x) * k;
        vb.y = p.y - (p.y - vb.y) * k;
        vb.width *= k; vb.height *= k;
      }, { passive: false });
      svg.addEventListener('mousedown', function (e) { drag = { x: e.clientX, y: e.clientY }; });
      window.addEventListener('mouseup', function () { drag = null; });
      window.addEventListener('mousemove', function (e) {
        if (!drag) return;
        var s = vb.width / svg.clientWidth;
        vb.x -= (e.clientX - drag.x) * s;
        vb.y -= (e.clientY - drag.y) * s;
        drag = { x: e.clientX, y: e.clientY };
      });
    })();`

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	style   Style
	panZoom bool
}

// WithStyle selects a style. Default is [Simple].
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithPanZoom embeds a script for mouse-wheel zoom and drag panning.
func WithPanZoom() Option { return func(r *renderer) { r.panZoom = true } }

// Render draws m as an SVG document. Node order in the output follows the
// map, so identical maps render to identical bytes.
func Render(m graph.MindMap, opts ...Option) []byte {
	r := renderer{style: Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	width := m.Width + 2*Margin
	height := m.Height + 2*Margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if m.Organization != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(m.Organization))
	}
	r.style.RenderDefs(&buf)

	boxes := buildBoxes(m)
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f, %.1f)">`+"\n", Margin, Margin)

	buf.WriteString("   <g class=\"connectors\">\n")
	for _, c := range buildConnectors(m, boxes) {
		r.style.RenderConnector(&buf, c)
	}
	buf.WriteString("   </g>\n")

	for _, n := range m.Nodes {
		b := boxes[n.ID]
		fmt.Fprintf(&buf, "   <g class=\"node %s\">\n", EscapeXML(b.Kind))
		r.style.RenderBox(&buf, b)
		r.style.RenderText(&buf, b)
		buf.WriteString("   </g>\n")
	}
	buf.WriteString("  </g>\n")

	if r.panZoom {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", panZoomJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBoxes(m graph.MindMap) map[string]Box {
	boxes := make(map[string]Box, len(m.Nodes))
	for _, n := range m.Nodes {
		x, y := n.Rect(m.Anchor)
		cx, cy := n.Center(m.Anchor)
		boxes[n.ID] = Box{
			ID:    n.ID,
			Kind:  n.Kind,
			Lines: splitLabel(n.Label, n.Width),
			X:     x, Y: y, W: n.Width, H: n.Height,
			CX: cx, CY: cy,
		}
	}
	return boxes
}

func buildConnectors(m graph.MindMap, boxes map[string]Box) []Connector {
	out := make([]Connector, 0, len(m.Edges))
	for _, e := range m.Edges {
		src, okS := boxes[e.Source]
		dst, okD := boxes[e.Target]
		if !okS || !okD {
			continue
		}
		out = append(out, Connector{
			FromID: e.Source, ToID: e.Target,
			X1: src.CX, Y1: src.Y + src.H,
			X2: dst.CX, Y2: dst.Y,
		})
	}
	return out
}
