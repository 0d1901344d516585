package mindmap

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgmap/pkg/errors"
	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/layout"
	"github.com/matzehuels/orgmap/pkg/metadata"
)

// Builder turns a metadata source into a positioned map.
// A Builder holds configuration only and is safe for concurrent use.
type Builder struct {
	// MaxItems caps item nodes per category (<= 0 selects the default).
	MaxItems int
	// Layout configures spacing and anchor.
	Layout layout.Options
	// Logger receives recovered validation failures. Nil discards them.
	Logger *log.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxItems sets the per-category item cap.
func WithMaxItems(n int) Option {
	return func(b *Builder) { b.MaxItems = n }
}

// WithLayout sets the layout options.
func WithLayout(opts layout.Options) Option {
	return func(b *Builder) { b.Layout = opts }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) { b.Logger = l }
}

// NewBuilder creates a Builder with default settings.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		MaxItems: DefaultMaxItemsPerCategory,
		Layout:   layout.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Validate reports whether src can be built. It returns a VALIDATION_ERROR
// for a nil source and nil otherwise.
func Validate(src *metadata.Source) error {
	if src == nil {
		return errors.Validation("metadata source is absent")
	}
	return nil
}

// Build validates src, builds its graph and lays it out. The map is always
// recomputed from scratch.
//
// Validation failures are recovered: Build logs them and returns an empty
// map with a nil error, so callers can show "nothing connected yet" without
// special-casing. Layout failures are returned.
func (b *Builder) Build(src *metadata.Source) (graph.MindMap, error) {
	logger := b.logger()

	if err := Validate(src); err != nil {
		logger.Warn("returning empty map", "reason", errors.UserMessage(err))
		return b.empty(), nil
	}

	g, err := BuildGraph(src.Organization(), metadata.Categories(src), b.MaxItems)
	if err != nil {
		if errors.IsValidation(err) {
			logger.Warn("returning empty map", "reason", err)
			return b.empty(), nil
		}
		return graph.MindMap{}, err
	}

	res, err := layout.Compute(g, b.Layout)
	if err != nil {
		return graph.MindMap{}, err
	}

	m := graph.FromDAG(g, res)
	logger.Debug("built map",
		"organization", m.Organization,
		"nodes", len(m.Nodes),
		"edges", len(m.Edges),
		"width", m.Width,
		"height", m.Height)
	return m, nil
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

func (b *Builder) empty() graph.MindMap {
	m := graph.Empty()
	m.Anchor = string(b.Layout.WithDefaults().Anchor)
	return m
}
