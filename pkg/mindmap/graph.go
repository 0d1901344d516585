package mindmap

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matzehuels/orgmap/pkg/dag"
	"github.com/matzehuels/orgmap/pkg/errors"
	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/metadata"
)

// DefaultMaxItemsPerCategory caps the item nodes shown under a category.
const DefaultMaxItemsPerCategory = 10

// rootLabelPrefix is the first line of the root node label.
const rootLabelPrefix = "Salesforce Org"

// ID helpers. Item IDs use the 0-based position inside the category.
func categoryID(key string) string        { return key }
func itemID(key string, index int) string { return fmt.Sprintf("%s-%d", key, index) }
func overflowID(key string) string        { return key + "-more" }

// maxOrgNameLength caps the organization name shown on the root node, in runes.
const maxOrgNameLength = 256

// orgDisplayName makes any organization name printable on one line: control
// characters become spaces, surrounding space is trimmed and overlong names
// are cut with an ellipsis.
func orgDisplayName(org string) string {
	org = strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, org))
	if r := []rune(org); len(r) > maxOrgNameLength {
		org = string(r[:maxOrgNameLength-1]) + "…"
	}
	return org
}

// RootLabel returns the label of the root node for an organization name.
func RootLabel(org string) string {
	if org == "" {
		org = metadata.DefaultOrganizationName
	}
	return rootLabelPrefix + "\n" + org
}

// CategoryLabel returns "{label}\n({count})".
func CategoryLabel(label string, count int) string {
	return fmt.Sprintf("%s\n(%d)", label, count)
}

// OverflowLabel returns the label of the overflow node for hidden records.
func OverflowLabel(hidden int) string {
	return fmt.Sprintf("... %d more", hidden)
}

// BuildGraph builds the unpositioned map graph. Categories are emitted in
// the given order and only when they contain records. maxItems <= 0 selects
// DefaultMaxItemsPerCategory.
//
// Any organization name is accepted and shown through orgDisplayName. Returns
// a VALIDATION_ERROR for invalid or duplicate category keys and for category
// labels containing control characters. BuildGraph does not modify its input.
func BuildGraph(org string, categories []metadata.Category, maxItems int) (*dag.DAG, error) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItemsPerCategory
	}
	org = orgDisplayName(org)
	if org == "" {
		org = metadata.DefaultOrganizationName
	}

	g := dag.New(dag.Metadata{graph.MetaOrganization: org})
	if err := g.AddNode(dag.Node{ID: graph.RootNodeID, Label: RootLabel(org), Kind: dag.KindRoot}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "add root")
	}

	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if err := errors.ValidateCategoryKey(c.Key); err != nil {
			return nil, err
		}
		if seen[c.Key] {
			return nil, errors.Validation("duplicate category key %q", c.Key)
		}
		seen[c.Key] = true
		if err := errors.ValidateLabel(c.Label); err != nil {
			return nil, err
		}

		if len(c.Items) == 0 {
			continue
		}
		if err := addCategory(g, c, maxItems); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func addCategory(g *dag.DAG, c metadata.Category, maxItems int) error {
	catID := categoryID(c.Key)
	if err := addChild(g, graph.RootNodeID, dag.Node{
		ID:    catID,
		Label: CategoryLabel(c.Label, len(c.Items)),
		Kind:  dag.KindCategory,
		Meta:  dag.Metadata{graph.MetaCount: len(c.Items)},
	}); err != nil {
		return err
	}

	shown := min(len(c.Items), maxItems)
	for i := 0; i < shown; i++ {
		if err := addChild(g, catID, dag.Node{
			ID:    itemID(c.Key, i),
			Label: c.Items[i].DisplayName(i + 1),
			Kind:  dag.KindItem,
		}); err != nil {
			return err
		}
	}

	if hidden := len(c.Items) - maxItems; hidden > 0 {
		return addChild(g, catID, dag.Node{
			ID:    overflowID(c.Key),
			Label: OverflowLabel(hidden),
			Kind:  dag.KindOverflow,
		})
	}
	return nil
}

// addChild adds n below parent. An ID clash here means two categories
// produced overlapping IDs, which is an input problem.
func addChild(g *dag.DAG, parent string, n dag.Node) error {
	if err := g.AddNode(n); err != nil {
		return errors.Wrap(errors.ErrCodeValidation, err, "node %s", n.ID)
	}
	if err := g.AddEdge(dag.Edge{From: parent, To: n.ID}); err != nil {
		return errors.Wrap(errors.ErrCodeValidation, err, "edge %s", dag.EdgeID(parent, n.ID))
	}
	return nil
}
