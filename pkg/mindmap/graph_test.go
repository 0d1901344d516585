package mindmap

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/orgmap/pkg/dag"
	"github.com/matzehuels/orgmap/pkg/errors"
	"github.com/matzehuels/orgmap/pkg/metadata"
)

func records(names ...string) []metadata.Record {
	out := make([]metadata.Record, len(names))
	for i, n := range names {
		out[i] = metadata.Record{"fullName": n}
	}
	return out
}

func numbered(n int) []metadata.Record {
	out := make([]metadata.Record, n)
	for i := range out {
		out[i] = metadata.Record{"name": fmt.Sprintf("r%d", i)}
	}
	return out
}

func TestBuildGraphEmptyCategoriesOmitted(t *testing.T) {
	g, err := BuildGraph("Acme", []metadata.Category{
		{Key: "objects", Label: "Custom Objects", Items: records("Account")},
		{Key: "flows", Label: "Flows"},
		{Key: "classes", Label: "Apex Classes", Items: []metadata.Record{}},
	}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"flows", "classes"} {
		if _, ok := g.Node(id); ok {
			t.Errorf("empty category %s has a node", id)
		}
	}
	for _, e := range g.Edges() {
		if strings.Contains(e.ID, "flows") || strings.Contains(e.ID, "classes") {
			t.Errorf("edge %s references an empty category", e.ID)
		}
	}
}

func TestBuildGraphTruncation(t *testing.T) {
	tests := []struct {
		items        int
		wantItems    int
		wantOverflow string
	}{
		{1, 1, ""},
		{10, 10, ""},
		{11, 10, "... 1 more"},
		{250, 10, "... 240 more"},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.items), func(t *testing.T) {
			g, err := BuildGraph("", []metadata.Category{{Key: "flows", Label: "Flows", Items: numbered(tt.items)}}, 0)
			if err != nil {
				t.Fatal(err)
			}
			var items, overflow int
			for _, n := range g.Nodes() {
				switch n.Kind {
				case dag.KindItem:
					items++
				case dag.KindOverflow:
					overflow++
					if n.Label != tt.wantOverflow {
						t.Errorf("overflow label = %q, want %q", n.Label, tt.wantOverflow)
					}
				}
			}
			if items != tt.wantItems {
				t.Errorf("items = %d, want %d", items, tt.wantItems)
			}
			if (overflow == 1) != (tt.wantOverflow != "") || overflow > 1 {
				t.Errorf("overflow nodes = %d", overflow)
			}
			cat, _ := g.Node("flows")
			if cat.Label != fmt.Sprintf("Flows\n(%d)", tt.items) {
				t.Errorf("category label = %q", cat.Label)
			}
		})
	}
}

func TestBuildGraphCustomMax(t *testing.T) {
	g, err := BuildGraph("Acme", []metadata.Category{{Key: "flows", Label: "Flows", Items: numbered(5)}}, 3)
	if err != nil {
		t.Fatal(err)
	}
	more, ok := g.Node("flows-more")
	if !ok || more.Label != "... 2 more" {
		t.Errorf("flows-more = %+v, %v", more, ok)
	}
	if n := len(g.Children("flows")); n != 4 {
		t.Errorf("children of flows = %d, want 4", n)
	}
}

func TestBuildGraphIDs(t *testing.T) {
	g, err := BuildGraph("Acme", []metadata.Category{{Key: "classes", Label: "Apex Classes", Items: numbered(12)}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	wantNodes := []string{"root", "classes", "classes-0", "classes-1", "classes-2", "classes-3", "classes-4",
		"classes-5", "classes-6", "classes-7", "classes-8", "classes-9", "classes-more"}
	if !slices.Equal(ids, wantNodes) {
		t.Errorf("node ids = %v", ids)
	}
	edges := g.Edges()
	if edges[0].ID != "root-classes" || edges[1].ID != "classes-classes-0" || edges[len(edges)-1].ID != "classes-classes-more" {
		t.Errorf("edge ids = %v, %v, %v", edges[0].ID, edges[1].ID, edges[len(edges)-1].ID)
	}
	root, _ := g.Node("root")
	if root.Label != "Salesforce Org\nAcme" {
		t.Errorf("root label = %q", root.Label)
	}
}

func TestBuildGraphDefaultOrganization(t *testing.T) {
	g, err := BuildGraph("", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Errorf("got %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	root, _ := g.Node("root")
	if root.Label != "Salesforce Org\nOrganization" {
		t.Errorf("root label = %q", root.Label)
	}
}

func TestBuildGraphUnusualOrganization(t *testing.T) {
	long := strings.Repeat("x", 300)
	tests := []struct {
		org  string
		want string
	}{
		{"Acme\tCorp", "Acme Corp"},
		{"Acme\r\n", "Acme"},
		{"Acme\x00", "Acme"},
		{"  \t", "Organization"},
		{long, strings.Repeat("x", maxOrgNameLength-1) + "…"},
	}
	for _, tt := range tests {
		t.Run(strconv.Quote(tt.org[:min(len(tt.org), 12)]), func(t *testing.T) {
			g, err := BuildGraph(tt.org, []metadata.Category{
				{Key: "objects", Label: "Custom Objects", Items: records("Account")},
			}, 0)
			if err != nil {
				t.Fatalf("BuildGraph() error: %v", err)
			}
			if g.NodeCount() != 3 || g.EdgeCount() != 2 {
				t.Errorf("got %d nodes, %d edges; want 3, 2", g.NodeCount(), g.EdgeCount())
			}
			root, _ := g.Node("root")
			if root.Label != "Salesforce Org\n"+tt.want {
				t.Errorf("root label = %q", root.Label)
			}
		})
	}
}

func TestBuildGraphValidation(t *testing.T) {
	tests := []struct {
		name string
		org  string
		cats []metadata.Category
	}{
		{"duplicate key", "Acme", []metadata.Category{
			{Key: "flows", Label: "Flows", Items: numbered(1)},
			{Key: "flows", Label: "Flows again"},
		}},
		{"reserved key", "Acme", []metadata.Category{{Key: "root", Label: "Root"}}},
		{"bad key", "Acme", []metadata.Category{{Key: "Flows-1", Label: "Flows"}}},
		{"control char in category label", "Acme", []metadata.Category{{Key: "flows", Label: "Flows\t"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGraph(tt.org, tt.cats, 0)
			if !errors.IsValidation(err) {
				t.Errorf("BuildGraph() error = %v, want VALIDATION_ERROR", err)
			}
		})
	}
}

func TestBuildGraphDoesNotMutateInput(t *testing.T) {
	items := records("A", "B")
	cats := []metadata.Category{{Key: "objects", Label: "Custom Objects", Items: items}}
	if _, err := BuildGraph("Acme", cats, 0); err != nil {
		t.Fatal(err)
	}
	if len(items[0]) != 1 || items[0]["fullName"] != "A" {
		t.Errorf("record mutated: %v", items[0])
	}
}

// TestBuildGraphAlwaysTree builds random inputs and checks the tree invariant.
func TestBuildGraphAlwaysTree(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		var cats []metadata.Category
		for _, def := range metadata.Schema {
			cats = append(cats, metadata.Category{Key: def.Key, Label: def.Label, Items: numbered(rng.IntN(15))})
		}
		g, err := BuildGraph("Acme", cats, 1+rng.IntN(12))
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if err := g.ValidateTree(); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}
}
