// Package storage persists built maps as snapshots.
//
// # Overview
//
// A [Snapshot] is a built [graph.MindMap] plus an ID and creation time. The
// server's /api/maps endpoints save and list snapshots through a [Store].
// Backends:
//   - [MemoryStore]: process-local, for development and tests
//   - [FileStore]: one JSON file per snapshot, for single-host deployments
//   - [MongoStore]: MongoDB collection, for shared deployments
//
// # Usage
//
//	store, err := storage.Open(ctx, storage.Config{Backend: storage.BackendMemory})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	snap := storage.NewSnapshot(m)
//	if err := store.Save(ctx, snap); err != nil {
//	    return err
//	}
package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/orgmap/pkg/graph"
)

// ErrNotFound is returned when no snapshot has the requested ID.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a stored map.
type Snapshot struct {
	ID           string        `json:"id" bson:"_id"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	Organization string        `json:"organization" bson:"organization"`
	Map          graph.MindMap `json:"map" bson:"map"`
}

// NewSnapshot wraps m in a snapshot with a fresh random ID.
func NewSnapshot(m graph.MindMap) *Snapshot {
	return &Snapshot{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Organization: m.Organization,
		Map:          m,
	}
}

// Summary is the listing view of a snapshot.
type Summary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Organization string    `json:"organization"`
	Nodes        int       `json:"nodes"`
}

// Summary returns the listing view of s.
func (s *Snapshot) Summary() Summary {
	return Summary{ID: s.ID, CreatedAt: s.CreatedAt, Organization: s.Organization, Nodes: len(s.Map.Nodes)}
}

// Store persists snapshots. Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts or replaces a snapshot.
	Save(ctx context.Context, s *Snapshot) error
	// Get returns the snapshot with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Snapshot, error)
	// List returns all snapshots, newest first.
	List(ctx context.Context) ([]Summary, error)
	// Delete removes a snapshot. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendMongo  = "mongo"
)

// Config selects and configures a store.
type Config struct {
	Backend    string
	Dir        string // file backend
	MongoURI   string
	Database   string
	Collection string
}

// Open creates the configured store. An empty backend selects memory.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendMongo:
		return NewMongoStore(ctx, MongoConfig{URI: cfg.MongoURI, Database: cfg.Database, Collection: cfg.Collection})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func sortSummaries(out []Summary) {
	slices.SortStableFunc(out, func(a, b Summary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
