// Package nodelink renders mind maps as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a [graph.MindMap] into Graphviz DOT source. Node styling
// follows the node kind (root, category, item, overflow). By default the
// computed layout is pinned via pos attributes and the neato engine, so the
// diagram matches the native SVG; with [Options.Free] Graphviz's dot engine
// arranges the tree itself.
//
// # Usage
//
//	dot := nodelink.ToDOT(m, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [graph.MindMap]: github.com/matzehuels/orgmap/pkg/graph.MindMap
package nodelink
