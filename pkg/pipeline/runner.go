package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgmap/pkg/cache"
	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/metadata"
	"github.com/matzehuels/orgmap/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeMap      = "map"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.TTLMap and cache.TTLArtifact when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src *metadata.Source, opts Options) (*Result, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	buildStart := time.Now()
	m, buildHit, err := r.BuildWithCacheInfo(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Map = m
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = len(m.Nodes)
	result.Stats.EdgeCount = len(m.Edges)
	result.CacheInfo.BuildHit = buildHit
	if data, err := graph.Marshal(m); err == nil {
		result.MapHash = cache.Hash(data)
	}

	r.Logger.Info("built map",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds a map with caching and returns cache hit info.
// The cache key covers the canonical JSON of src, so sources that differ
// only in formatting share an entry.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, src *metadata.Source, opts Options) (graph.MindMap, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return graph.MindMap{}, false, err
	}
	r.applyLogger(&opts)

	srcHash, err := cache.HashJSON(src)
	if err != nil {
		return graph.MindMap{}, false, err
	}
	cacheKey := r.Keyer.MapKey(srcHash, opts.MapKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		var cached graph.MindMap
		if err := cache.GetJSON(ctx, r.Cache, cacheKey, &cached); err == nil {
			hooks.OnCacheHit(ctx, keyTypeMap)
			return cached, true, nil
		}
		hooks.OnCacheMiss(ctx, keyTypeMap)
	}

	pipe := observability.Pipeline()
	org := src.Organization()
	pipe.OnBuildStart(ctx, org, src.RecordCount())
	start := time.Now()

	m, err := opts.Builder().Build(src)
	pipe.OnBuildComplete(ctx, org, len(m.Nodes), time.Since(start), err)
	if err != nil {
		return graph.MindMap{}, false, err
	}

	if data, err := graph.Marshal(m); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLMap)); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeMap, len(data))
		}
	}

	return m, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, src *metadata.Source, opts Options) (graph.MindMap, error) {
	m, _, err := r.BuildWithCacheInfo(ctx, src, opts)
	return m, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m graph.MindMap, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	mapData, err := graph.Marshal(m)
	if err != nil {
		return nil, false, fmt.Errorf("serialize map for cache key: %w", err)
	}
	mapHash := cache.Hash(mapData)
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(mapHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
		}
		hooks.OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing

	pipe := observability.Pipeline()
	pipe.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := RenderMap(ctx, m, renderOpts)
	pipe.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(mapHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
			hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m graph.MindMap, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
