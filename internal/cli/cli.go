package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgmap/pkg/buildinfo"
	"github.com/matzehuels/orgmap/pkg/cache"
	"github.com/matzehuels/orgmap/pkg/config"
	"github.com/matzehuels/orgmap/pkg/observability"
	"github.com/matzehuels/orgmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs. It starts as
	// config.Default so commands constructed in tests work without a file.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Orgmap draws mind maps of Salesforce org metadata",
		Long: `Orgmap turns the metadata inventory of a Salesforce org (custom objects,
flows, Apex, pages, components, profiles, permission sets) into a
positioned mind map and renders it as SVG, DOT, PNG, PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			if c.Logger.GetLevel() <= log.DebugLevel {
				observability.NewLogHooks(c.Logger).Register()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/orgmap/config.toml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default path when the flag is empty.
// A missing default file leaves the built-in defaults in place.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			c.Logger.Debug("no config path", "err", err)
			return nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg, err := c.Config.CacheConfig()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return ch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineFlags are the build and render flags shared by several commands.
type pipelineFlags struct {
	maxItems int
	formats  string
	engine   string
	panZoom  bool
	refresh  bool
	noCache  bool
}

func (f *pipelineFlags) registerBuild(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxItems, "max-items", 0, "records shown per category (default from config, 10)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

func (f *pipelineFlags) registerRender(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg, dot, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&f.engine, "engine", "", "renderer: native, graphviz")
	cmd.Flags().BoolVar(&f.panZoom, "pan-zoom", false, "embed pan/zoom script in SVG output")
}

// options merges flags over the loaded config. Flags left at their zero
// value fall back to the config.
func (c *CLI) options(cmd *cobra.Command, f pipelineFlags) pipeline.Options {
	cfg := c.Config
	opts := pipeline.Options{
		MaxItems: cfg.Build.MaxItems,
		Layout:   cfg.Layout,
		Refresh:  f.refresh,
		Formats:  cfg.Render.Formats,
		Engine:   cfg.Render.Engine,
		PanZoom:  cfg.Render.PanZoom,
		Logger:   c.Logger,
	}
	if f.maxItems > 0 {
		opts.MaxItems = f.maxItems
	}
	if f.formats != "" {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if f.engine != "" {
		opts.Engine = f.engine
	}
	if cmd.Flags().Changed("pan-zoom") {
		opts.PanZoom = f.panZoom
	}
	return opts
}
