// Package graph provides the serialization format for positioned org maps.
//
// # Overview
//
// [MindMap] is the output boundary of the builder: a flat list of positioned
// [Node] values and a list of [Edge] values, re-emitted wholesale on every
// build. Presentation layers diff by ID; they never receive partial updates.
//
//	{
//	  "organization": "Acme",
//	  "anchor": "top-left",
//	  "width": 760, "height": 280,
//	  "nodes": [{"id": "root", "label": "Salesforce Org\nAcme", "kind": "root",
//	             "depth": 0, "x": 350, "y": 0, "width": 200, "height": 80}],
//	  "edges": [{"id": "root-objects", "source": "root", "target": "objects"}]
//	}
//
// The same struct carries bson tags so snapshot stores persist it unchanged.
//
// # Conversion
//
// [FromDAG] joins a [github.com/matzehuels/orgmap/pkg/dag.DAG] with its
// [github.com/matzehuels/orgmap/pkg/layout.Result]. [ToDAG] goes the other
// way for renderers and validators that need the graph structure back.
//
// # Files
//
// [Marshal], [Unmarshal], [Read], [Write], [ReadFile] and [WriteFile] handle
// JSON encoding. Output is indented and ordered exactly as the graph, so
// identical builds produce byte-identical files.
package graph
