package transform_test

import (
	"fmt"

	"github.com/matzehuels/orgmap/pkg/dag"
	"github.com/matzehuels/orgmap/pkg/dag/transform"
)

func ExampleAssignLayers() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "root", Kind: dag.KindRoot})
	_ = g.AddNode(dag.Node{ID: "flows", Kind: dag.KindCategory})
	_ = g.AddNode(dag.Node{ID: "flows-0"})
	_ = g.AddNode(dag.Node{ID: "flows-more", Kind: dag.KindOverflow})
	_ = g.AddEdge(dag.Edge{From: "root", To: "flows"})
	_ = g.AddEdge(dag.Edge{From: "flows", To: "flows-0"})
	_ = g.AddEdge(dag.Edge{From: "flows", To: "flows-more"})

	l := transform.AssignLayers(g)
	for depth, ids := range l.Layers {
		fmt.Println(depth, ids)
	}
	// Output:
	// 0 [root]
	// 1 [flows]
	// 2 [flows-0 flows-more]
}

func ExampleFindCycle() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	fmt.Println(transform.FindCycle(g))

	_ = g.AddEdge(dag.Edge{From: "b", To: "a"})
	fmt.Println(transform.FindCycle(g))
	// Output:
	// []
	// [a b a]
}
