package pipeline

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/orgmap/pkg/cache"
	"github.com/matzehuels/orgmap/pkg/errors"
	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/layout"
	"github.com/matzehuels/orgmap/pkg/metadata"
)

func acmeSource() *metadata.Source {
	return &metadata.Source{
		OrganizationLabel: "Acme",
		CustomObjects:     []metadata.Record{{"fullName": "Account"}, {"fullName": "Contact"}},
		Flows:             []metadata.Record{},
		ApexClasses:       []metadata.Record{{"name": "Foo"}},
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateEngine(t *testing.T) {
	for _, e := range []string{"native", "graphviz"} {
		if err := ValidateEngine(e); err != nil {
			t.Errorf("ValidateEngine(%q) = %v", e, err)
		}
	}
	if err := ValidateEngine("dot"); !errors.Is(err, errors.ErrCodeInvalidEngine) {
		t.Errorf("ValidateEngine(dot) = %v, want INVALID_ENGINE", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg, PNG ,svg,,json", []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetDefaults(t *testing.T) {
	var opts Options
	opts.SetBuildDefaults()
	opts.SetRenderDefaults()

	if opts.MaxItems != 10 {
		t.Errorf("MaxItems = %d, want 10", opts.MaxItems)
	}
	if opts.Layout != layout.DefaultOptions() {
		t.Errorf("Layout = %+v", opts.Layout)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatSVG}) || opts.Engine != EngineNative {
		t.Errorf("render defaults = %v, %s", opts.Formats, opts.Engine)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Engine: EngineGraphviz, PanZoom: true}
	if k := opts.ArtifactKeyOpts(FormatJSON); k.Engine != "" || k.PanZoom {
		t.Errorf("json key should ignore engine: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Engine != EngineGraphviz || k.PanZoom {
		t.Errorf("png key = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); !k.PanZoom {
		t.Errorf("svg key = %+v", k)
	}
}

func TestBuildCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	first, hit, err := r.BuildWithCacheInfo(ctx, acmeSource(), Options{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if hit {
		t.Error("first build should miss the cache")
	}

	second, hit, err := r.BuildWithCacheInfo(ctx, acmeSource(), Options{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !hit {
		t.Error("second build should hit the cache")
	}

	a, _ := graph.Marshal(first)
	b, _ := graph.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Errorf("cached map differs:\n%s\n%s", a, b)
	}

	_, hit, _ = r.BuildWithCacheInfo(ctx, acmeSource(), Options{MaxItems: 1})
	if hit {
		t.Error("different options should miss the cache")
	}
	_, hit, _ = r.BuildWithCacheInfo(ctx, acmeSource(), Options{Refresh: true})
	if hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestBuildNilSource(t *testing.T) {
	m, err := newTestRunner(t).Build(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("Build(nil) error = %v", err)
	}
	if !m.IsEmpty() || m.Nodes == nil || m.Edges == nil {
		t.Errorf("Build(nil) = %+v, want empty map with empty slices", m)
	}
}

func TestBuildInvalidLayout(t *testing.T) {
	_, err := newTestRunner(t).Build(context.Background(), acmeSource(), Options{
		Layout: layout.Options{Anchor: "bottom"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Build() = %v, want INVALID_CONFIG", err)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := Options{Formats: []string{FormatSVG, FormatDOT, FormatJSON}}

	res, err := r.Execute(ctx, acmeSource(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.NodeCount != 6 || res.Stats.EdgeCount != 5 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.MapHash == "" {
		t.Error("MapHash should be set")
	}
	for _, f := range opts.Formats {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), `"root" -> "objects"`) {
		t.Error("DOT artifact missing root edge")
	}
	decoded, err := graph.Unmarshal(res.Artifacts[FormatJSON])
	if err != nil || len(decoded.Nodes) != 6 {
		t.Errorf("JSON artifact decode = %v, %d nodes", err, len(decoded.Nodes))
	}

	again, err := r.Execute(ctx, acmeSource(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.BuildHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want both hits", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts[FormatSVG], res.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs")
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	_, err := newTestRunner(t).Execute(context.Background(), acmeSource(), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderMapPanZoom(t *testing.T) {
	m, err := NewRunner(nil, nil, nil).Build(context.Background(), acmeSource(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Formats: []string{FormatSVG}, PanZoom: true}
	opts.SetRenderDefaults()
	out, err := RenderMap(context.Background(), m, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out[FormatSVG]), "<script") {
		t.Error("pan/zoom SVG should embed a script")
	}
}
