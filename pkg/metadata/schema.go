package metadata

// Category is one labeled bucket of records, in display order.
type Category struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Items []Record `json:"items"`
}

// CategoryDef describes one entry of the fixed category schema.
type CategoryDef struct {
	Key   string
	Label string
	// groups returns the record groups merged into this category, in order.
	groups func(*Source) [][]Record
}

// Schema is the fixed, ordered list of categories shown on a map.
var Schema = []CategoryDef{
	{Key: "objects", Label: "Custom Objects", groups: func(s *Source) [][]Record { return [][]Record{s.CustomObjects} }},
	{Key: "flows", Label: "Flows", groups: func(s *Source) [][]Record { return [][]Record{s.Flows} }},
	{Key: "classes", Label: "Apex Classes", groups: func(s *Source) [][]Record { return [][]Record{s.ApexClasses} }},
	{Key: "triggers", Label: "Apex Triggers", groups: func(s *Source) [][]Record { return [][]Record{s.ApexTriggers} }},
	{Key: "pages", Label: "Visualforce Pages", groups: func(s *Source) [][]Record { return [][]Record{s.VisualforcePages} }},
	{Key: "components", Label: "Lightning Components", groups: func(s *Source) [][]Record {
		return [][]Record{s.AuraDefinitionBundles, s.LightningComponentBundles, s.LightningComponents}
	}},
	{Key: "profiles", Label: "Profiles", groups: func(s *Source) [][]Record { return [][]Record{s.Profiles} }},
	{Key: "permsets", Label: "Permission Sets", groups: func(s *Source) [][]Record { return [][]Record{s.PermissionSets} }},
}

// Categories folds src into Schema order. Every schema category is returned,
// including empty ones; dropping empty categories is the graph builder's
// policy. Merged groups are concatenated in declaration order into a fresh
// slice, so src is never aliased or mutated.
func Categories(src *Source) []Category {
	out := make([]Category, 0, len(Schema))
	for _, def := range Schema {
		c := Category{Key: def.Key, Label: def.Label}
		if src != nil {
			for _, g := range def.groups(src) {
				c.Items = append(c.Items, g...)
			}
		}
		out = append(out, c)
	}
	return out
}

// Lookup returns the schema entry with the given key.
func Lookup(key string) (CategoryDef, bool) {
	for _, def := range Schema {
		if def.Key == key {
			return def, true
		}
	}
	return CategoryDef{}, false
}
