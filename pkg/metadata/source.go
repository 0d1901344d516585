package metadata

// DefaultOrganizationName is used when a source carries no organization name.
const DefaultOrganizationName = "Organization"

// Source is the raw categorized-record collection for one organization.
// Field names follow the JSON produced by the metadata listing endpoint.
type Source struct {
	OrganizationName string `json:"organizationName,omitempty" toml:"organizationName" bson:"organization_name,omitempty"`
	// OrganizationLabel is accepted as an alias of OrganizationName.
	OrganizationLabel string `json:"organizationLabel,omitempty" toml:"organizationLabel" bson:"organization_label,omitempty"`

	CustomObjects             []Record `json:"customObjects,omitempty" toml:"customObjects" bson:"custom_objects,omitempty"`
	Flows                     []Record `json:"flows,omitempty" toml:"flows" bson:"flows,omitempty"`
	ApexClasses               []Record `json:"apexClasses,omitempty" toml:"apexClasses" bson:"apex_classes,omitempty"`
	ApexTriggers              []Record `json:"apexTriggers,omitempty" toml:"apexTriggers" bson:"apex_triggers,omitempty"`
	VisualforcePages          []Record `json:"visualforcePages,omitempty" toml:"visualforcePages" bson:"visualforce_pages,omitempty"`
	AuraDefinitionBundles     []Record `json:"auraDefinitionBundles,omitempty" toml:"auraDefinitionBundles" bson:"aura_definition_bundles,omitempty"`
	LightningComponentBundles []Record `json:"lightningComponentBundles,omitempty" toml:"lightningComponentBundles" bson:"lightning_component_bundles,omitempty"`
	LightningComponents       []Record `json:"lightningComponents,omitempty" toml:"lightningComponents" bson:"lightning_components,omitempty"`
	Profiles                  []Record `json:"profiles,omitempty" toml:"profiles" bson:"profiles,omitempty"`
	PermissionSets            []Record `json:"permissionSets,omitempty" toml:"permissionSets" bson:"permission_sets,omitempty"`
}

// Organization returns the organization name, falling back to the label
// alias and then to DefaultOrganizationName.
func (s *Source) Organization() string {
	switch {
	case s == nil:
		return DefaultOrganizationName
	case s.OrganizationName != "":
		return s.OrganizationName
	case s.OrganizationLabel != "":
		return s.OrganizationLabel
	default:
		return DefaultOrganizationName
	}
}

// RecordCount returns the total number of records across all groups.
func (s *Source) RecordCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, c := range Categories(s) {
		n += len(c.Items)
	}
	return n
}
