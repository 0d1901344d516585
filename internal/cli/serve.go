package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgmap/internal/server"
	"github.com/matzehuels/orgmap/pkg/cache"
	"github.com/matzehuels/orgmap/pkg/observability"
	"github.com/matzehuels/orgmap/pkg/pipeline"
	"github.com/matzehuels/orgmap/pkg/storage"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mind map HTTP API",
		Long: `Run the mind map HTTP API.

Endpoints:
  GET    /healthz
  POST   /api/mindmap              build a map from a source document
  POST   /api/mindmap/render       render it (?format=svg|dot|png|pdf|json)
  POST   /api/maps                 build and store a snapshot
  GET    /api/maps                 list snapshots
  GET    /api/maps/{id}            fetch a snapshot
  DELETE /api/maps/{id}            delete a snapshot

Cache and snapshot storage backends come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg := c.Config
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := storage.Open(ctx, cfg.StorageConfig())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	observability.NewLogHooks(c.Logger).Register()

	srv := server.New(runner, store,
		server.WithLogger(c.Logger),
		server.WithDefaults(pipeline.Options{
			MaxItems: cfg.Build.MaxItems,
			Layout:   cfg.Layout,
			Engine:   cfg.Render.Engine,
			PanZoom:  cfg.Render.PanZoom,
		}),
	)

	printInfo("Serving on %s", addr)
	printKeyValue("Cache", cacheLabel(cfg.Cache.Backend, noCache))
	printKeyValue("Storage", cfg.Storage.Backend)

	err = srv.ListenAndServe(ctx, server.Config{
		Addr:         addr,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	})
	if errors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
		return nil
	}
	return err
}

func cacheLabel(backend string, disabled bool) string {
	switch {
	case disabled:
		return cache.BackendNone
	case backend == "":
		return cache.BackendFile
	}
	return backend
}
