package nodelink

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/orgmap/pkg/graph"
)

func acmeMap() graph.MindMap {
	m := graph.Empty()
	m.Organization = "Acme"
	m.Width, m.Height = 760, 280
	add := func(id, label, kind string, depth int, x, y float64) {
		m.Nodes = append(m.Nodes, graph.Node{
			ID: id, Label: label, Kind: kind, Depth: depth,
			X: x, Y: y, Width: 200, Height: 80,
		})
	}
	add("root", "Salesforce Org\nAcme", "root", 0, 280, 0)
	add("objects", "Custom Objects\n(2)", "category", 1, 70, 100)
	add("objects-0", "Account__c", "item", 2, 0, 200)
	add("objects-1", "Invoice__c", "item", 2, 280, 200)
	add("classes", "Apex Classes\n(1)", "category", 1, 560, 100)
	add("classes-0", "InvoiceService", "item", 2, 560, 200)
	for _, e := range [][2]string{
		{"root", "objects"}, {"objects", "objects-0"}, {"objects", "objects-1"},
		{"root", "classes"}, {"classes", "classes-0"},
	} {
		m.Edges = append(m.Edges, graph.Edge{ID: e[0] + "-" + e[1], Source: e[0], Target: e[1]})
	}
	return m
}

func TestToDOTContainsGraph(t *testing.T) {
	m := acmeMap()
	for _, opts := range []Options{{}, {Free: true}, {Detailed: true}} {
		t.Run(fmt.Sprintf("%+v", opts), func(t *testing.T) {
			dot := ToDOT(m, opts)
			if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
				t.Fatalf("not a digraph:\n%s", dot)
			}
			for _, n := range m.Nodes {
				if !strings.Contains(dot, fmt.Sprintf("%q [", n.ID)) {
					t.Errorf("missing node %s", n.ID)
				}
			}
			for _, e := range m.Edges {
				if !strings.Contains(dot, fmt.Sprintf("%q -> %q", e.Source, e.Target)) {
					t.Errorf("missing edge %s", e.ID)
				}
			}
		})
	}
}

func TestToDOTPinsPositions(t *testing.T) {
	dot := ToDOT(acmeMap(), Options{})
	if !strings.Contains(dot, "layout=neato") {
		t.Error("pinned layout should select neato")
	}
	// root center (380,40) flipped against height 280
	if !strings.Contains(dot, `pos="380.0,240.0!"`) {
		t.Errorf("root position not pinned:\n%s", dot)
	}

	free := ToDOT(acmeMap(), Options{Free: true})
	if strings.Contains(free, "pos=") || strings.Contains(free, "neato") {
		t.Error("free layout should not pin positions")
	}
}

func TestToDOTLabels(t *testing.T) {
	dot := ToDOT(acmeMap(), Options{})
	if !strings.Contains(dot, `label="Salesforce Org\nAcme"`) {
		t.Errorf("multi-line label not escaped:\n%s", dot)
	}
	if !strings.Contains(ToDOT(acmeMap(), Options{Detailed: true}), "depth 2") {
		t.Error("detailed labels should include depth")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Account", `"Account"`},
		{"Salesforce Org\nAcme", `"Salesforce Org\nAcme"`},
		{`Say "hi"`, `"Say \"hi\""`},
		{`C:\path`, `"C:\\path"`},
		{"Tab\there", `"Tab here"`},
		{"Bell\x07\r", `"Bell "`},
		{"Café ☁", `"Café ☁"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestToDOTControlCharacters(t *testing.T) {
	m := acmeMap()
	m.Nodes[2].Label = "Tab\there\x01"
	dot := ToDOT(m, Options{})
	if !strings.Contains(dot, `label="Tab here "`) {
		t.Errorf("control characters not replaced:\n%s", dot)
	}
	if strings.Contains(dot, `\t`) || strings.Contains(dot, `\x`) || strings.Contains(dot, `\u`) {
		t.Errorf("DOT output contains Go escapes:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(graph.Empty(), Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("empty map produced edges:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(acmeMap(), Options{Free: true}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Account__c") {
		t.Error("SVG missing root element or labels")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Error("SVG without viewBox should be unchanged")
	}
}
