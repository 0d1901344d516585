package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgmap/pkg/cache"
	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/pipeline"
	"github.com/matzehuels/orgmap/pkg/storage"
)

const acmeJSON = `{
  "organizationLabel": "Acme",
  "customObjects": [{"fullName": "Account"}, {"fullName": "Contact"}],
  "flows": [],
  "apexClasses": [{"name": "Foo"}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv := httptest.NewServer(New(runner, storage.NewMemoryStore(), WithLogger(logger)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	body := decode[map[string]string](t, resp)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestBuildMindMap(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/mindmap", acmeJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	m := decode[graph.MindMap](t, resp)
	if len(m.Nodes) != 6 || len(m.Edges) != 5 {
		t.Errorf("got %d nodes, %d edges; want 6, 5", len(m.Nodes), len(m.Edges))
	}
	if n, ok := m.Node("root"); !ok || n.Label != "Salesforce Org\nAcme" {
		t.Errorf("root = %+v", n)
	}
}

func TestBuildNullBody(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/mindmap", "null")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `"nodes":[]`) || !strings.Contains(string(raw), `"edges":[]`) {
		t.Errorf("null body should yield an empty map, got %s", raw)
	}
}

func TestBuildErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed", "/api/mindmap", "{", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad max_items", "/api/mindmap?max_items=x", acmeJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "/api/mindmap/render?format=gif", acmeJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad engine", "/api/mindmap/render?engine=dot", acmeJSON, http.StatusBadRequest, "INVALID_ENGINE"},
		{"default organization", "/api/mindmap", `{"customObjects":[{"fullName":"A"}]}`, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.code == "" {
				return
			}
			body := decode[errorBody](t, resp)
			if body.Code != tt.code || body.Error == "" {
				t.Errorf("error body = %+v, want code %s", body, tt.code)
			}
		})
	}
}

func TestRenderEndpoint(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"dot", "text/vnd.graphviz; charset=utf-8", `"root" -> "objects"`},
		{"json", "application/json", `"nodes"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/api/mindmap/render?format="+tt.format, acmeJSON)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q", ct)
			}
			raw, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(raw), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/maps", acmeJSON)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d", resp.StatusCode)
	}
	snap := decode[storage.Snapshot](t, resp)
	if snap.ID == "" || snap.Organization != "Acme" || len(snap.Map.Nodes) != 6 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if loc := resp.Header.Get("Location"); loc != "/api/maps/"+snap.ID {
		t.Errorf("Location = %q", loc)
	}

	list := decode[[]storage.Summary](t, do(t, http.MethodGet, srv.URL+"/api/maps", ""))
	if len(list) != 1 || list[0].ID != snap.ID {
		t.Errorf("list = %+v", list)
	}

	got := do(t, http.MethodGet, srv.URL+"/api/maps/"+snap.ID, "")
	if got.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", got.StatusCode)
	}

	del := do(t, http.MethodDelete, srv.URL+"/api/maps/"+snap.ID, "")
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", del.StatusCode)
	}

	missing := do(t, http.MethodGet, srv.URL+"/api/maps/"+snap.ID, "")
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("missing status = %d, want 404", missing.StatusCode)
	}
	if body := decode[errorBody](t, missing); body.Code != "NOT_FOUND" {
		t.Errorf("missing code = %s", body.Code)
	}
}

func TestSnapshotInvalidID(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/api/maps/not-a-uuid", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}
