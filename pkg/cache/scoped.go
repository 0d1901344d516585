package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments (or
// tenants) can share one Redis instance without colliding.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer selects
// the default keyer; an empty prefix returns inner unchanged.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix == "" {
		return inner
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// MapKey generates a prefixed map key.
func (k *ScopedKeyer) MapKey(sourceHash string, opts MapKeyOpts) string {
	return k.prefix + k.inner.MapKey(sourceHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(mapHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(mapHash, opts)
}
