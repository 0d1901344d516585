package dag_test

import (
	"fmt"

	"github.com/matzehuels/orgmap/pkg/dag"
)

func ExampleDAG_basic() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "root", Label: "Salesforce Org\nAcme", Kind: dag.KindRoot})
	_ = g.AddNode(dag.Node{ID: "flows", Label: "Flows\n(1)", Kind: dag.KindCategory})
	_ = g.AddNode(dag.Node{ID: "flows-0", Label: "Lead_Intake", Kind: dag.KindItem})
	_ = g.AddEdge(dag.Edge{From: "root", To: "flows"})
	_ = g.AddEdge(dag.Edge{From: "flows", To: "flows-0"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Println("Edge:", e.ID)
	}
	fmt.Println("Tree:", g.ValidateTree() == nil)
	// Output:
	// Nodes: 3
	// Edges: 2
	// Edge: root-flows
	// Edge: flows-flows-0
	// Tree: true
}

func ExampleDAG_traversal() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "root", Kind: dag.KindRoot})
	_ = g.AddNode(dag.Node{ID: "objects", Kind: dag.KindCategory})
	_ = g.AddNode(dag.Node{ID: "classes", Kind: dag.KindCategory})
	_ = g.AddEdge(dag.Edge{From: "root", To: "objects"})
	_ = g.AddEdge(dag.Edge{From: "root", To: "classes"})

	fmt.Println("Children of root:", g.Children("root"))
	for _, n := range g.Sources() {
		fmt.Println("Source:", n.ID)
	}
	// Output:
	// Children of root: [objects classes]
	// Source: root
}

func ExampleNodeKind_String() {
	for _, k := range []dag.NodeKind{dag.KindRoot, dag.KindCategory, dag.KindItem, dag.KindOverflow} {
		fmt.Println(k)
	}
	// Output:
	// root
	// category
	// item
	// overflow
}

func ExampleCountLayerCrossings() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddNode(dag.Node{ID: "x"})
	_ = g.AddNode(dag.Node{ID: "y"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "y"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "x"})

	fmt.Println("Crossings:", dag.CountLayerCrossings(g, []string{"a", "b"}, []string{"x", "y"}))
	fmt.Println("After reorder:", dag.CountLayerCrossings(g, []string{"b", "a"}, []string{"x", "y"}))
	// Output:
	// Crossings: 1
	// After reorder: 0
}
