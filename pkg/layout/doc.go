// Package layout assigns 2D coordinates to a map graph.
//
// # Overview
//
// [Compute] produces a layered, top-down tree layout:
//
//  1. Each node's depth is its shortest distance from the root (or from any
//     other source node) along edges.
//  2. Within a layer, nodes keep first-discovery order: grouped by parent,
//     parents in their own layer order. Trees therefore never have crossing
//     edges.
//  3. The top edge of every box is at depth * RankSeparation.
//  4. Horizontal placement is a contour-based tidy tree: sibling subtrees are
//     packed left to right as closely as their contours allow, keeping at
//     least NodeSeparation between neighbouring boxes, and every parent is
//     centered over the span of its children.
//
// Nodes no source can reach are appended as extra roots at depth 0, to the
// right of the main tree.
//
// # Anchors
//
// Coordinates are reported for one anchor of each node's box, recorded in
// [Result.Anchor]. The default, [AnchorTopLeft], matches SVG rect semantics;
// [AnchorCenter] suits renderers that position nodes by their center. After
// layout the leftmost box edge is at x = 0 and the topmost at y = 0.
//
// # Errors
//
// A cyclic edge set yields a LAYOUT_ERROR naming the cycle. Layout never
// fails for disconnected or empty graphs.
//
// # Determinism
//
// Compute depends only on node and edge insertion order and the options, so
// identical input always yields identical coordinates.
package layout
