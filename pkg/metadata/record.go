package metadata

import "fmt"

// displayNameFields lists the record fields tried, in order, for a label.
var displayNameFields = []string{"fullName", "name"}

// Record is a single metadata entry. Only its display name is ever read;
// everything else is passed through untouched.
type Record map[string]any

// DisplayName returns the record's fullName, else its name, else
// "Item {position}" where position is 1-based.
//
// Only non-empty string values count. A number, bool, object or null in
// fullName or name is not stringified; it falls through to the next field
// and finally to the positional label.
func (r Record) DisplayName(position int) string {
	for _, f := range displayNameFields {
		if s, ok := r[f].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("Item %d", position)
}
