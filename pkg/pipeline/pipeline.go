// Package pipeline runs the load → build → render flow shared by the CLI
// and the HTTP server.
//
// # Architecture
//
// The pipeline consists of two cached stages:
//
//  1. Build: group and truncate records, build the tree and lay it out
//     ([mindmap.Builder]). Keyed by the hash of the canonical source JSON
//     plus the build options.
//  2. Render: produce artifacts (SVG, DOT, PNG, PDF, JSON) from the built
//     map. Keyed by the hash of the map plus the render options.
//
// Loading a source document (file, stdin, URL) is done by
// [metadata.Load] before the pipeline starts.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, src, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	m, err := runner.Build(ctx, src, opts)
//	artifacts, err := runner.Render(ctx, m, opts)
//
// [mindmap.Builder]: github.com/matzehuels/orgmap/pkg/mindmap.Builder
// [metadata.Load]: github.com/matzehuels/orgmap/pkg/metadata.Load
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgmap/pkg/cache"
	"github.com/matzehuels/orgmap/pkg/errors"
	"github.com/matzehuels/orgmap/pkg/graph"
	"github.com/matzehuels/orgmap/pkg/layout"
	"github.com/matzehuels/orgmap/pkg/mindmap"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Engine constants select the SVG renderer.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// DefaultEngine is the default SVG renderer.
const DefaultEngine = EngineNative

// DefaultPNGScale is the scale factor for PNG output.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidEngines is the set of supported renderers.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	MaxItems int            `json:"max_items,omitempty"`
	Layout   layout.Options `json:"layout,omitempty"`
	Refresh  bool           `json:"refresh,omitempty"` // skip cache reads

	// Render options
	Formats []string `json:"formats,omitempty"`
	Engine  string   `json:"engine,omitempty"`
	PanZoom bool     `json:"pan_zoom,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Map is the built, positioned map.
	Map graph.MindMap

	// MapHash is the content hash of the serialized map.
	MapHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the map came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, dot, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates. An empty string selects SVG.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetBuildDefaults sets default values for building.
func (o *Options) SetBuildDefaults() {
	if o.MaxItems <= 0 {
		o.MaxItems = mindmap.DefaultMaxItemsPerCategory
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForBuild validates and sets defaults for building.
func (o *Options) ValidateForBuild() error {
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	o.SetBuildDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateEngine(o.Engine)
}

// Builder returns a map builder configured from o.
func (o *Options) Builder() *mindmap.Builder {
	return mindmap.NewBuilder(
		mindmap.WithMaxItems(o.MaxItems),
		mindmap.WithLayout(o.Layout),
		mindmap.WithLogger(o.Logger),
	)
}

// MapKeyOpts returns cache key options for building.
func (o *Options) MapKeyOpts() cache.MapKeyOpts {
	return cache.MapKeyOpts{
		MaxItems:       o.MaxItems,
		RankSeparation: o.Layout.RankSeparation,
		NodeSeparation: o.Layout.NodeSeparation,
		NodeWidth:      o.Layout.NodeWidth,
		NodeHeight:     o.Layout.NodeHeight,
		Anchor:         string(o.Layout.Anchor),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Non-SVG text formats do not depend on the engine or pan/zoom.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Engine = o.Engine
		k.PanZoom = o.PanZoom && format == FormatSVG
	}
	return k
}
