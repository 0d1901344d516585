// Package mindmap turns an organization's categorized metadata into a
// positioned map.
//
// # Overview
//
// [BuildGraph] applies the construction rules: one root node, one category
// node per non-empty category, at most MaxItemsPerCategory item nodes per
// category and a single "... N more" overflow node for the rest. All IDs are
// derived from category keys and item positions, so identical input always
// yields identical IDs.
//
// [Builder] runs the whole pipeline: schema folding
// ([github.com/matzehuels/orgmap/pkg/metadata.Categories]), [BuildGraph] and
// [github.com/matzehuels/orgmap/pkg/layout.Compute]. Every call starts from
// scratch; nothing is carried over between builds.
//
// # Errors
//
// An absent source is a VALIDATION_ERROR, which Builder.Build recovers from
// by returning an empty map and logging the failure. Use [Validate] to see
// the error itself. Layout errors (cycles) are returned. Empty categories are
// not errors; they are simply left off the map.
//
// # Usage
//
//	b := mindmap.NewBuilder(mindmap.WithMaxItems(5))
//	m, err := b.Build(src)
//	if err != nil {
//	    return err
//	}
//	graph.Write(os.Stdout, m)
package mindmap
