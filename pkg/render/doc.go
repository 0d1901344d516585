// Package render turns positioned maps into viewable artifacts.
//
// # Overview
//
// Two renderers consume a [graph.MindMap]:
//
//   - [svg]: draws boxes and elbow connectors at the computed positions.
//     No external tools are needed.
//   - [nodelink]: emits Graphviz DOT and renders it in-process with
//     go-graphviz. Positions can be pinned or left to Graphviz.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	out := svg.Render(m)
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0) // 2x scale
//
// [graph.MindMap]: github.com/matzehuels/orgmap/pkg/graph.MindMap
// [svg]: github.com/matzehuels/orgmap/pkg/render/svg
// [nodelink]: github.com/matzehuels/orgmap/pkg/render/nodelink
package render
