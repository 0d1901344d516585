package graph

import (
	"fmt"

	"github.com/matzehuels/orgmap/pkg/dag"
	"github.com/matzehuels/orgmap/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

// Metadata keys shared between the builder and the serializer.
const (
	MetaCount        = "count"        // Node meta: record count of a category
	MetaOrganization = "organization" // Graph meta: organization name
)

// RootNodeID is the ID of the organization node.
const RootNodeID = "root"

// =============================================================================
// MindMap - Positioned Graph
// =============================================================================

// MindMap is the canonical serialization of a positioned map. It is what the
// builder returns, what the server sends, and what caches and snapshot
// stores persist.
type MindMap struct {
	Organization string  `json:"organization,omitempty" bson:"organization,omitempty"`
	Anchor       string  `json:"anchor" bson:"anchor"`
	Width        float64 `json:"width" bson:"width"`
	Height       float64 `json:"height" bson:"height"`
	Nodes        []Node  `json:"nodes" bson:"nodes"`
	Edges        []Edge  `json:"edges" bson:"edges"`
}

// Empty returns a map with no nodes and no edges. Nodes and Edges are empty
// slices so they serialize as [] rather than null.
func Empty() MindMap {
	return MindMap{Anchor: string(layout.AnchorTopLeft), Nodes: []Node{}, Edges: []Edge{}}
}

// IsEmpty reports whether the map has no nodes.
func (m MindMap) IsEmpty() bool { return len(m.Nodes) == 0 }

// Node returns the node with the given ID.
func (m MindMap) Node(id string) (Node, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Children returns the nodes directly below id, in edge order.
func (m MindMap) Children(id string) []Node {
	var out []Node
	for _, e := range m.Edges {
		if e.Source != id {
			continue
		}
		if n, ok := m.Node(e.Target); ok {
			out = append(out, n)
		}
	}
	return out
}

// =============================================================================
// Node and Edge
// =============================================================================

// Node is a positioned map node. X and Y refer to the map's anchor.
type Node struct {
	ID     string  `json:"id" bson:"id"`
	Label  string  `json:"label" bson:"label"`
	Kind   string  `json:"kind" bson:"kind"` // root, category, item or overflow
	Depth  int     `json:"depth" bson:"depth"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Count  int     `json:"count,omitempty" bson:"count,omitempty"` // Category nodes only
}

// Rect returns the top-left corner of n's box, interpreting X and Y
// according to anchor.
func (n Node) Rect(anchor string) (left, top float64) {
	if anchor == string(layout.AnchorCenter) {
		return n.X - n.Width/2, n.Y - n.Height/2
	}
	return n.X, n.Y
}

// Center returns the center of n's box.
func (n Node) Center(anchor string) (x, y float64) {
	l, t := n.Rect(anchor)
	return l + n.Width/2, t + n.Height/2
}

// Edge is a parent→child connection.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// =============================================================================
// DAG ↔ MindMap Conversion
// =============================================================================

// FromDAG combines a graph and its layout into a MindMap. Nodes and edges
// keep graph insertion order. Nodes missing from res keep zero coordinates.
func FromDAG(g *dag.DAG, res *layout.Result) MindMap {
	nodes := g.Nodes()
	edges := g.Edges()
	out := MindMap{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	if org, ok := g.Meta()[MetaOrganization].(string); ok {
		out.Organization = org
	}
	if res != nil {
		out.Anchor = string(res.Anchor)
		out.Width, out.Height = res.Width, res.Height
	}

	for i, n := range nodes {
		node := Node{ID: n.ID, Label: n.Label, Kind: n.Kind.String(), Depth: n.Row}
		if c, ok := n.Meta[MetaCount].(int); ok {
			node.Count = c
		}
		if res != nil {
			p := res.Positions[n.ID]
			node.X, node.Y = p.X, p.Y
			node.Width, node.Height = res.NodeWidth, res.NodeHeight
			node.Depth = res.Depths[n.ID]
		}
		out.Nodes[i] = node
	}
	for i, e := range edges {
		out.Edges[i] = Edge{ID: e.ID, Source: e.From, Target: e.To}
	}
	return out
}

// ToDAG rebuilds the graph structure of m. Positions are dropped; depth is
// kept as the node row and category counts as metadata.
func ToDAG(m MindMap) (*dag.DAG, error) {
	d := dag.New(dag.Metadata{MetaOrganization: m.Organization})

	for _, nj := range m.Nodes {
		kind, ok := dag.ParseNodeKind(nj.Kind)
		if !ok {
			return nil, fmt.Errorf("node %s: unknown kind %q", nj.ID, nj.Kind)
		}
		n := dag.Node{ID: nj.ID, Label: nj.Label, Kind: kind, Row: nj.Depth}
		if nj.Count > 0 {
			n.Meta = dag.Metadata{MetaCount: nj.Count}
		}
		if err := d.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
	}
	for _, ej := range m.Edges {
		if err := d.AddEdge(dag.Edge{ID: ej.ID, From: ej.Source, To: ej.Target}); err != nil {
			return nil, fmt.Errorf("add edge %s: %w", ej.ID, err)
		}
	}
	return d, nil
}

// Validate checks that m is structurally a tree: it decodes into a graph with
// exactly one root, single parents and no cycles. An empty map is valid.
func (m MindMap) Validate() error {
	if m.IsEmpty() {
		if len(m.Edges) > 0 {
			return fmt.Errorf("edges without nodes")
		}
		return nil
	}
	d, err := ToDAG(m)
	if err != nil {
		return err
	}
	return d.ValidateTree()
}
