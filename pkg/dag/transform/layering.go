package transform

import "github.com/matzehuels/orgmap/pkg/dag"

// Layering is the result of [AssignLayers].
type Layering struct {
	// Layers lists node IDs per depth in first-discovery order.
	Layers [][]string
	// Depth maps each node ID to its layer index.
	Depth map[string]int
	// Parent maps each non-source node to the parent it was discovered from.
	// For a tree this is its only parent.
	Parent map[string]string
}

// AssignLayers assigns every node to a layer equal to its shortest distance
// from a source node, and records the discovery order within each layer.
//
// # Algorithm
//
// A breadth-first search starts from all source nodes (in-degree 0) in graph
// insertion order. Children are enqueued in edge insertion order, so within
// a layer nodes appear grouped by parent, parents in their own layer order.
// This keeps a tree free of edge crossings without any reordering pass.
//
// Nodes that no source reaches (members of a cycle with no entry point) are
// seeded as additional depth-0 nodes after the regular sources, so the
// function always terminates and assigns every node. Callers that require
// acyclicity should check [FindCycle] first.
//
// The graph is only read.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) Layering {
	nodes := g.Nodes()
	l := Layering{
		Depth:  make(map[string]int, len(nodes)),
		Parent: make(map[string]string, len(nodes)),
	}

	var queue []string
	seed := func(id string) {
		l.Depth[id] = 0
		queue = append(queue, id)
	}
	drain := func() {
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]

			d := l.Depth[curr]
			for len(l.Layers) <= d {
				l.Layers = append(l.Layers, nil)
			}
			l.Layers[d] = append(l.Layers[d], curr)

			for _, child := range g.Children(curr) {
				if _, seen := l.Depth[child]; seen {
					continue
				}
				l.Depth[child] = d + 1
				l.Parent[child] = curr
				queue = append(queue, child)
			}
		}
	}

	for _, n := range g.Sources() {
		seed(n.ID)
	}
	drain()
	for _, n := range nodes {
		if _, seen := l.Depth[n.ID]; !seen {
			seed(n.ID)
			drain()
		}
	}

	return l
}
