// Package cache stores built maps and rendered artifacts.
//
// # Overview
//
// [Cache] is a byte-oriented key/value store with per-entry TTLs. Three
// backends are provided:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer], which hashes everything that influences the
// cached value (source bytes, build options, render format). Wrap a Keyer in
// [NewScopedKeyer] to isolate tenants or environments sharing one backend.
//
// # Usage
//
//	c, err := cache.Open(ctx, cache.Config{Backend: cache.BackendFile, Dir: dir})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	key := cache.NewDefaultKeyer().MapKey(cache.Hash(raw), cache.MapKeyOpts{MaxItems: 10})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // use cached map
//	}
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	TTLMap      = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
