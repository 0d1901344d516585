// Package pkg provides the core libraries for orgmap, a mind-map view of
// Salesforce org metadata.
//
// # Overview
//
// An org's metadata inventory (custom objects, flows, Apex classes and
// triggers, Visualforce pages, Lightning components, profiles, permission
// sets) is folded into a fixed list of categories and drawn as a tree: the
// org at the top, one box per category below it, and up to a configurable
// number of records per category below that.
//
// # Architecture
//
// The data flow:
//
//	Source document (JSON/TOML, file, stdin or URL)
//	         ↓
//	    [metadata] (decode, fold into categories)
//	         ↓
//	    [mindmap] (build the node/edge tree as a [dag])
//	         ↓
//	    [layout] (tidy tree placement)
//	         ↓
//	    [graph] (positioned MindMap, the JSON output boundary)
//	         ↓
//	    [render] (SVG, DOT, PNG, PDF)
//
// [pipeline] runs build and render with caching through [cache]; [storage]
// keeps saved snapshots for the HTTP API.
//
// # Quick Start
//
//	src, _ := metadata.LoadFile("acme.json")
//	m, _ := mindmap.NewBuilder(mindmap.WithMaxItems(10)).Build(src)
//	svg := svg.Render(m)
//
// # Main Packages
//
// ## Core
//
// [metadata] - Source document types, the category schema and loaders.
//
// [dag] - Insertion-ordered node/edge graph with tree validation; the
// [dag/transform] subpackage assigns layers and finds cycles.
//
// [layout] - Tidy tree layout: depth rows, parents centered over children.
//
// [mindmap] - The builder tying categories, graph and layout together.
//
// [graph] - MindMap serialization shared by CLI, server, cache and storage.
//
// ## Rendering
//
// [render/svg] - Native SVG with elbow connectors and optional pan/zoom.
//
// [render/nodelink] - DOT output with pinned positions, drawn by Graphviz.
//
// [render] - SVG to PDF/PNG conversion.
//
// ## Infrastructure
//
// [pipeline] - Build → render orchestration used by the CLI and server.
//
// [cache] - File, Redis and null caches with content-hash keys.
//
// [storage] - Snapshot stores (memory, file, MongoDB).
//
// [config] - TOML configuration.
//
// [errors] - Code-tagged errors and input validation.
//
// [observability] - Hooks for build, render, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example ./... # Examples only
//
// [metadata]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/metadata
// [dag]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/dag/transform
// [layout]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/layout
// [mindmap]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/mindmap
// [graph]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/storage
// [config]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/orgmap/pkg/buildinfo
package pkg
