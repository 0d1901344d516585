package transform

import "github.com/matzehuels/orgmap/pkg/dag"

// FindCycle returns the node IDs along the first directed cycle found, with
// the starting node repeated at the end (a → b → a is [a b a]). Nodes are
// visited in graph insertion order, so the reported cycle is deterministic.
// Returns nil for an acyclic graph.
func FindCycle(g *dag.DAG) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var path, cycle []string

	var dfs func(node string) bool
	dfs = func(node string) bool {
		color[node] = gray
		path = append(path, node)
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				for i := len(path) - 1; i >= 0; i-- {
					if path[i] == child {
						cycle = append(append([]string{}, path[i:]...), child)
						return true
					}
				}
			}
		}
		path = path[:len(path)-1]
		color[node] = black
		return false
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white && dfs(n.ID) {
			return cycle
		}
	}
	return nil
}
