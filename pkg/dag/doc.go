// Package dag provides the node/edge graph behind an org metadata map.
//
// # Overview
//
// A map is a tree: one root node for the organization, one category node per
// non-empty metadata category and one item node per displayed record (plus at
// most one overflow node per category). This package holds that structure and
// the checks that keep it a tree. It knows nothing about categories or
// records; [github.com/matzehuels/orgmap/pkg/mindmap] decides what goes in.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]. Edge IDs default to [EdgeID] of their endpoints:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "root", Label: "Acme", Kind: dag.KindRoot})
//	g.AddNode(dag.Node{ID: "flows", Label: "Flows\n(1)", Kind: dag.KindCategory})
//	g.AddEdge(dag.Edge{From: "root", To: "flows"}) // ID "root-flows"
//
// [DAG.Validate] checks edge endpoints and acyclicity; [DAG.ValidateTree]
// additionally checks the single-root, single-parent and reachability
// invariants.
//
// # Ordering
//
// Nodes, edges and adjacency lists keep insertion order. Layout relies on
// this: the left-to-right order of a layer is the order in which nodes were
// discovered from their parents, so identical input always yields identical
// positions.
//
// # Node Kinds
//
//   - [KindRoot]: the organization
//   - [KindCategory]: a metadata category with its record count
//   - [KindItem]: a single record
//   - [KindOverflow]: the "... N more" placeholder
//
// Kinds only affect rendering.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Each build creates its own
// graph, so callers normally never share one.
//
// # Related Packages
//
// The [transform] subpackage assigns layers (depths) and finds cycles.
//
// [transform]: github.com/matzehuels/orgmap/pkg/dag/transform
package dag
