// Package config loads orgmap settings from a TOML file.
//
// # Overview
//
// Every section is optional; missing values keep the defaults from
// [Default]. Command-line flags override file values.
//
//	[build]
//	max_items = 10
//
//	[layout]
//	rank_separation = 100
//	node_width = 200
//	anchor = "top-left"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[storage]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
// # Location
//
// [Path] returns $XDG_CONFIG_HOME/orgmap/config.toml, falling back to
// ~/.config/orgmap/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orgmap/pkg/cache"
	"github.com/matzehuels/orgmap/pkg/errors"
	"github.com/matzehuels/orgmap/pkg/layout"
	"github.com/matzehuels/orgmap/pkg/mindmap"
	"github.com/matzehuels/orgmap/pkg/storage"
)

// AppName names the config and cache directories.
const AppName = "orgmap"

// Config is the complete file configuration.
type Config struct {
	Build   Build          `toml:"build"`
	Layout  layout.Options `toml:"layout"`
	Render  Render         `toml:"render"`
	Cache   Cache          `toml:"cache"`
	Storage Storage        `toml:"storage"`
	Server  Server         `toml:"server"`
}

// Build holds builder settings.
type Build struct {
	MaxItems int `toml:"max_items"`
}

// Render holds default render settings.
type Render struct {
	Formats []string `toml:"formats"`
	Engine  string   `toml:"engine"`
	PanZoom bool     `toml:"pan_zoom"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Namespace     string   `toml:"namespace"`
	TTL           Duration `toml:"ttl"`
}

// Storage selects the snapshot store.
type Storage struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Build:  Build{MaxItems: mindmap.DefaultMaxItemsPerCategory},
		Layout: layout.DefaultOptions(),
		Render: Render{Formats: []string{"svg"}, Engine: "native"},
		Cache: Cache{
			Backend:   cache.BackendFile,
			RedisAddr: "localhost:6379",
			Namespace: AppName + ":",
			TTL:       Duration{cache.TTLMap},
		},
		Storage: Storage{
			Backend:    storage.BackendMemory,
			Database:   storage.DefaultDatabase,
			Collection: storage.DefaultCollection,
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

var (
	renderFormats = []string{"svg", "dot", "png", "pdf", "json"}
	renderEngines = []string{"native", "graphviz"}
)

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Build.MaxItems < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "build.max_items must be >= 0, got %d", c.Build.MaxItems)
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	for _, f := range c.Render.Formats {
		if !slices.Contains(renderFormats, f) {
			return errors.New(errors.ErrCodeInvalidConfig, "render.formats: unknown format %q", f)
		}
	}
	if c.Render.Engine != "" && !slices.Contains(renderEngines, c.Render.Engine) {
		return errors.New(errors.ErrCodeInvalidConfig, "render.engine: unknown engine %q", c.Render.Engine)
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	switch c.Storage.Backend {
	case "", storage.BackendMemory, storage.BackendFile, storage.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == storage.BackendMongo && c.Storage.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "storage.mongo_uri is required for the mongo backend")
	}
	return nil
}

// CacheConfig converts the [cache] section for [cache.Open]. An empty dir
// selects [CacheDir].
func (c Config) CacheConfig() (cache.Config, error) {
	dir := c.Cache.Dir
	if dir == "" && (c.Cache.Backend == "" || c.Cache.Backend == cache.BackendFile) {
		d, err := CacheDir()
		if err != nil {
			return cache.Config{}, err
		}
		dir = d
	}
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis: cache.RedisConfig{
			Addr:      c.Cache.RedisAddr,
			Password:  c.Cache.RedisPassword,
			DB:        c.Cache.RedisDB,
			Namespace: c.Cache.Namespace,
		},
	}, nil
}

// StorageConfig converts the [storage] section for [storage.Open].
func (c Config) StorageConfig() storage.Config {
	return storage.Config{
		Backend:    c.Storage.Backend,
		Dir:        c.Storage.Dir,
		MongoURI:   c.Storage.MongoURI,
		Database:   c.Storage.Database,
		Collection: c.Storage.Collection,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/orgmap/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", AppName), nil
}
