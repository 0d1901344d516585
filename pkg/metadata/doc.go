// Package metadata models the categorized-record input of an org map and
// loads it from files, stdin or HTTP.
//
// # Overview
//
// A [Source] holds the organization name plus one list of opaque [Record]
// values per metadata group, exactly as a metadata listing service returns
// them. [Schema] fixes the eight categories shown on the map, their order and
// their labels; [Categories] folds a Source into that schema. Lightning
// Components is the one category built from more than one group: Aura
// bundles, then LWC bundles, then any pre-merged records.
//
// # Usage
//
//	src, err := metadata.LoadFile("inventory.json")
//	if err != nil {
//	    return err
//	}
//	for _, c := range metadata.Categories(src) {
//	    fmt.Println(c.Label, len(c.Items))
//	}
//
// Sources may be JSON or TOML. A JSON document consisting of the literal
// null decodes to a nil *Source, which the mind-map builder renders as an
// empty map.
package metadata
