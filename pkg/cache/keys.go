package cache

// Keyer derives cache keys. Every input that changes the cached value must
// be part of the key.
type Keyer interface {
	// MapKey identifies a built map.
	MapKey(sourceHash string, opts MapKeyOpts) string
	// ArtifactKey identifies a rendered artifact of a built map.
	ArtifactKey(mapHash string, opts ArtifactKeyOpts) string
}

// MapKeyOpts lists the build options that affect a map.
type MapKeyOpts struct {
	MaxItems       int     `json:"max_items"`
	RankSeparation float64 `json:"rank_separation"`
	NodeSeparation float64 `json:"node_separation"`
	NodeWidth      float64 `json:"node_width"`
	NodeHeight     float64 `json:"node_height"`
	Anchor         string  `json:"anchor"`
}

// ArtifactKeyOpts lists the render options that affect an artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Engine  string `json:"engine"`
	PanZoom bool   `json:"pan_zoom"`
}

// DefaultKeyer produces "map:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// MapKey implements Keyer.
func (DefaultKeyer) MapKey(sourceHash string, opts MapKeyOpts) string {
	return hashKey("map", sourceHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(mapHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", mapHash, opts)
}
