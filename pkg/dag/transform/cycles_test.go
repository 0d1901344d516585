package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/orgmap/pkg/dag"
)

func newGraph(t *testing.T, ids []string, edges [][2]string) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	for _, id := range ids {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestFindCycle(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  []string
	}{
		{"empty", nil, nil, nil},
		{"single node", []string{"a"}, nil, nil},
		{"chain", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, nil},
		{"diamond", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, nil},
		{"two-cycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, []string{"a", "b", "a"}},
		{"triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, []string{"a", "b", "c", "a"}},
		{"self loop", []string{"a"}, [][2]string{{"a", "a"}}, []string{"a", "a"}},
		{"tail into cycle", []string{"root", "b", "c", "d"},
			[][2]string{{"root", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}},
			[]string{"b", "c", "d", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(t, tt.ids, tt.edges)
			got := FindCycle(g)
			if !slices.Equal(got, tt.want) {
				t.Errorf("FindCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}
