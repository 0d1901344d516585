package transform

import (
	"slices"
	"testing"
)

func TestAssignLayers_Tree(t *testing.T) {
	g := newGraph(t,
		[]string{"root", "objects", "objects-0", "objects-1", "classes", "classes-0"},
		[][2]string{
			{"root", "objects"}, {"objects", "objects-0"}, {"objects", "objects-1"},
			{"root", "classes"}, {"classes", "classes-0"},
		})

	l := AssignLayers(g)

	want := [][]string{
		{"root"},
		{"objects", "classes"},
		{"objects-0", "objects-1", "classes-0"},
	}
	if len(l.Layers) != len(want) {
		t.Fatalf("Layers = %v, want %v", l.Layers, want)
	}
	for i := range want {
		if !slices.Equal(l.Layers[i], want[i]) {
			t.Errorf("Layers[%d] = %v, want %v", i, l.Layers[i], want[i])
		}
	}
	if l.Parent["classes-0"] != "classes" {
		t.Errorf("Parent[classes-0] = %q", l.Parent["classes-0"])
	}
	if _, ok := l.Parent["root"]; ok {
		t.Error("root should have no parent")
	}
	if l.Depth["objects-1"] != 2 {
		t.Errorf("Depth[objects-1] = %d, want 2", l.Depth["objects-1"])
	}
	if n, _ := g.Node("objects-1"); n.Row != 0 {
		t.Errorf("Row = %d, graph should not be modified", n.Row)
	}
}

func TestAssignLayers_ShortestDepth(t *testing.T) {
	// a → b → c and a → c: c sits at depth 1, not 2.
	g := newGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	l := AssignLayers(g)
	if l.Depth["c"] != 1 {
		t.Errorf("Depth[c] = %d, want 1", l.Depth["c"])
	}
}

func TestAssignLayers_DisconnectedSources(t *testing.T) {
	g := newGraph(t, []string{"root", "x", "loose"}, [][2]string{{"root", "x"}})
	l := AssignLayers(g)
	if !slices.Equal(l.Layers[0], []string{"root", "loose"}) {
		t.Errorf("Layers[0] = %v, want [root loose]", l.Layers[0])
	}
}

func TestAssignLayers_UnreachableCycle(t *testing.T) {
	g := newGraph(t, []string{"root", "a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	l := AssignLayers(g)
	if len(l.Depth) != 3 {
		t.Fatalf("Depth covers %d nodes, want 3", len(l.Depth))
	}
	if l.Depth["a"] != 0 || l.Depth["b"] != 1 {
		t.Errorf("Depth = %v", l.Depth)
	}
}

func TestAssignLayers_Empty(t *testing.T) {
	g := newGraph(t, nil, nil)
	if l := AssignLayers(g); len(l.Layers) != 0 {
		t.Errorf("Layers = %v, want empty", l.Layers)
	}
}
