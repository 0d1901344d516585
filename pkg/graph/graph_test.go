package graph

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/orgmap/pkg/dag"
	"github.com/matzehuels/orgmap/pkg/layout"
)

func sampleDAG(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(dag.Metadata{MetaOrganization: "Acme"})
	nodes := []dag.Node{
		{ID: "root", Label: "Salesforce Org\nAcme", Kind: dag.KindRoot},
		{ID: "flows", Label: "Flows\n(11)", Kind: dag.KindCategory, Meta: dag.Metadata{MetaCount: 11}},
		{ID: "flows-0", Label: "Lead_Intake", Kind: dag.KindItem},
		{ID: "flows-more", Label: "... 1 more", Kind: dag.KindOverflow},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range [][2]string{{"root", "flows"}, {"flows", "flows-0"}, {"flows", "flows-more"}} {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestFromDAG(t *testing.T) {
	g := sampleDAG(t)
	res, err := layout.Compute(g, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}
	m := FromDAG(g, res)

	if m.Organization != "Acme" || m.Anchor != "top-left" {
		t.Errorf("header = %q %q", m.Organization, m.Anchor)
	}
	if len(m.Nodes) != 4 || len(m.Edges) != 3 {
		t.Fatalf("got %d nodes, %d edges", len(m.Nodes), len(m.Edges))
	}
	flows, ok := m.Node("flows")
	if !ok || flows.Kind != "category" || flows.Count != 11 || flows.Depth != 1 {
		t.Errorf("flows = %+v", flows)
	}
	if flows.Width != layout.DefaultNodeWidth || flows.Y != 100 {
		t.Errorf("flows geometry = %+v", flows)
	}
	if m.Edges[1].ID != "flows-flows-0" {
		t.Errorf("edge id = %q", m.Edges[1].ID)
	}
	kids := m.Children("flows")
	if len(kids) != 2 || kids[1].Kind != "overflow" {
		t.Errorf("Children(flows) = %+v", kids)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestToDAGRoundTrip(t *testing.T) {
	g := sampleDAG(t)
	res, _ := layout.Compute(g, layout.Options{})
	m := FromDAG(g, res)

	back, err := ToDAG(m)
	if err != nil {
		t.Fatalf("ToDAG() error: %v", err)
	}
	if back.NodeCount() != 4 || back.EdgeCount() != 3 {
		t.Errorf("got %d nodes, %d edges", back.NodeCount(), back.EdgeCount())
	}
	n, _ := back.Node("flows")
	if n.Meta[MetaCount] != 11 || n.Kind != dag.KindCategory || n.Row != 1 {
		t.Errorf("flows = %+v", n)
	}
	if got := FromDAG(back, res); !reflect.DeepEqual(got, m) {
		t.Errorf("round trip differs:\n got %+v\nwant %+v", got, m)
	}
}

func TestToDAGErrors(t *testing.T) {
	tests := []struct {
		name string
		m    MindMap
	}{
		{"unknown kind", MindMap{Nodes: []Node{{ID: "a", Kind: "block"}}}},
		{"duplicate node", MindMap{Nodes: []Node{{ID: "a", Kind: "root"}, {ID: "a", Kind: "item"}}}},
		{"dangling edge", MindMap{Nodes: []Node{{ID: "a", Kind: "root"}}, Edges: []Edge{{ID: "a-b", Source: "a", Target: "b"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToDAG(tt.m); err == nil {
				t.Error("ToDAG() should fail")
			}
			if err := tt.m.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	m := Empty()
	if !m.IsEmpty() || m.Validate() != nil {
		t.Errorf("Empty() = %+v", m)
	}
	data, err := Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"nodes": []`) || !strings.Contains(string(data), `"edges": []`) {
		t.Errorf("empty map should serialize empty arrays: %s", data)
	}
}

func TestFileRoundTrip(t *testing.T) {
	g := sampleDAG(t)
	res, _ := layout.Compute(g, layout.Options{})
	m := FromDAG(g, res)

	path := filepath.Join(t.TempDir(), "map.json")
	if err := WriteFile(m, path); err != nil {
		t.Fatal(err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, m) {
		t.Errorf("file round trip differs")
	}

	a, _ := Marshal(m)
	b, _ := Marshal(back)
	if !bytes.Equal(a, b) {
		t.Error("re-marshaled bytes differ")
	}
	if _, err := Unmarshal([]byte("{")); err == nil {
		t.Error("Unmarshal should reject malformed JSON")
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadFile should fail for missing file")
	}
}

func TestNodeRect(t *testing.T) {
	n := Node{X: 100, Y: 40, Width: 200, Height: 80}
	if l, top := n.Rect("top-left"); l != 100 || top != 40 {
		t.Errorf("Rect(top-left) = %v,%v", l, top)
	}
	if l, top := n.Rect("center"); l != 0 || top != 0 {
		t.Errorf("Rect(center) = %v,%v", l, top)
	}
	if x, y := n.Center("top-left"); x != 200 || y != 80 {
		t.Errorf("Center(top-left) = %v,%v", x, y)
	}
}
