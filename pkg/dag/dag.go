package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the same
	// ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateEdgeID is returned by [DAG.AddEdge] when an edge with the same
	// ID already exists. Edge IDs are derived from their endpoints, so this also
	// catches repeated source/target pairs.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// Cycles are detected using depth-first search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrNoRoot is returned by [DAG.ValidateTree] when no node, or more than one
	// node, has kind [KindRoot].
	ErrNoRoot = errors.New("graph must have exactly one root node")

	// ErrMultipleParents is returned by [DAG.ValidateTree] when a non-root node
	// does not have exactly one incoming edge.
	ErrMultipleParents = errors.New("non-root node must have exactly one parent")

	// ErrUnreachable is returned by [DAG.ValidateTree] when a node cannot be
	// reached from the root.
	ErrUnreachable = errors.New("node is not reachable from the root")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Metadata maps are never nil after AddNode/AddEdge/New.
type Metadata map[string]any

// NodeKind determines how a node is styled when rendered. It has no effect
// on layout.
type NodeKind int

const (
	// KindItem is a single record inside a category.
	KindItem NodeKind = iota
	// KindRoot is the organization node at the top of the map.
	KindRoot
	// KindCategory groups the records of one category.
	KindCategory
	// KindOverflow stands in for the records beyond the per-category cap.
	KindOverflow
)

var kindNames = map[NodeKind]string{
	KindRoot:     "root",
	KindCategory: "category",
	KindItem:     "item",
	KindOverflow: "overflow",
}

// String returns the lowercase kind name used on the wire.
func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseNodeKind converts a wire kind name back into a NodeKind.
func ParseNodeKind(s string) (NodeKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindItem, false
}

// Node is a vertex of the map. Row carries the depth of a node decoded from a
// positioned map; layout computes depths itself and never writes it.
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display text, may contain newlines
	Kind  NodeKind // Rendering style
	Row   int      // Layer assignment (0 = top)
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// IsRoot reports whether the node is the map root.
func (n Node) IsRoot() bool { return n.Kind == KindRoot }

// Edge is a directed parent→child connection.
type Edge struct {
	ID   string   // Unique identifier, see EdgeID
	From string   // Source node ID
	To   string   // Target node ID
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// EdgeID returns the deterministic identifier for the edge from→to.
func EdgeID(from, to string) string { return from + "-" + to }

// DAG is a directed graph of map nodes. Nodes and edges are kept in insertion
// order so that every traversal, and therefore every layout, is reproducible.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	order    []*Node
	nodes    map[string]*Node
	edges    []Edge
	edgeIDs  map[string]struct{}
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string][]string // nodeID -> parent IDs
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		edgeIDs:  make(map[string]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. An empty edge ID
// is filled in with EdgeID(From, To).
//
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing endpoints
// and ErrDuplicateEdgeID if the ID is already taken.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.ID == "" {
		e.ID = EdgeID(e.From, e.To)
	}
	if _, dup := d.edgeIDs[e.ID]; dup {
		return ErrDuplicateEdgeID
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	d.edgeIDs[e.ID] = struct{}{}
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (d *DAG) Nodes() []*Node { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.order) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes this node has edges to, in edge
// insertion order. The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.order {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Validate checks that every edge connects existing nodes and that the graph
// is acyclic. Returns ErrInvalidEdgeEndpoint or ErrGraphHasCycle.
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		_, okS := d.nodes[e.From]
		_, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
	}
	return d.detectCycles()
}

// ValidateTree checks the stronger mind-map invariant: exactly one root node,
// every other node has in-degree one, there are no cycles and every node is
// reachable from the root.
func (d *DAG) ValidateTree() error {
	if err := d.Validate(); err != nil {
		return err
	}

	var root *Node
	for _, n := range d.order {
		if !n.IsRoot() {
			continue
		}
		if root != nil {
			return ErrNoRoot
		}
		root = n
	}
	if root == nil {
		return ErrNoRoot
	}

	for _, n := range d.order {
		want := 1
		if n == root {
			want = 0
		}
		if len(d.incoming[n.ID]) != want {
			return ErrMultipleParents
		}
	}

	seen := map[string]bool{root.ID: true}
	stack := []string{root.ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range d.outgoing[id] {
			if !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}
	if len(seen) != len(d.order) {
		return ErrUnreachable
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, n := range d.order {
		if color[n.ID] == white {
			dfs(n.ID)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// PosMap creates a position lookup map from a slice of node IDs.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
