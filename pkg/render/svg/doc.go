// Package svg draws a positioned mind map as a standalone SVG document.
//
// # Overview
//
// [Render] places one rounded box per node at its computed position and
// joins parent and child with an elbow connector from the bottom center of
// the parent to the top center of the child. Colors follow the node kind.
// No external tools are involved, so this renderer works everywhere;
// convert the result with [render.ToPDF] or [render.ToPNG] if needed.
//
//	out := svg.Render(m, svg.WithPanZoom())
//
// # Styles
//
// A [Style] controls how boxes, connectors and labels are drawn. [Simple]
// is the default.
//
// [render.ToPDF]: github.com/matzehuels/orgmap/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/orgmap/pkg/render.ToPNG
package svg
