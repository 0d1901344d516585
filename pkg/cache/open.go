package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string // file backend
	Redis   RedisConfig
}

// Open creates the configured backend. An empty backend selects the file
// cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendFile, "":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache requires a directory")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.Redis)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Clearer is implemented by backends that can drop all entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Clear drops all entries of c if the backend supports it.
func Clear(ctx context.Context, c Cache) (int, error) {
	switch b := c.(type) {
	case *FileCache:
		return b.Clear()
	case Clearer:
		return b.Clear(ctx)
	default:
		return 0, nil
	}
}
