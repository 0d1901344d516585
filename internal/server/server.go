// Package server exposes map building and snapshot storage over HTTP.
//
// # Routes
//
//	GET    /healthz                 liveness and version
//	POST   /api/mindmap             source JSON → map JSON
//	POST   /api/mindmap/render      source JSON → artifact (?format=svg|dot|png|pdf|json)
//	POST   /api/maps                build and store a snapshot
//	GET    /api/maps                list snapshots, newest first
//	GET    /api/maps/{id}           fetch a snapshot
//	DELETE /api/maps/{id}           delete a snapshot
//
// Errors are JSON objects {"error": message, "code": CODE}. Validation and
// option errors map to 400, layout errors to 422, missing snapshots to 404.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/orgmap/pkg/pipeline"
	"github.com/matzehuels/orgmap/pkg/storage"
)

// maxBodySize caps request bodies.
const maxBodySize = 32 << 20

// Server holds the handler dependencies.
type Server struct {
	runner   *pipeline.Runner
	store    storage.Store
	logger   *log.Logger
	defaults pipeline.Options
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the build and render options applied when a request
// does not override them.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server. A nil store selects an in-memory store.
func New(runner *pipeline.Runner, store storage.Store, opts ...Option) *Server {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	s := &Server{runner: runner, store: store, logger: runner.Logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json", "text/plain", ""))
		r.Post("/mindmap", s.handleBuild)
		r.Post("/mindmap/render", s.handleRender)
		r.Route("/maps", func(r chi.Router) {
			r.Post("/", s.handleSave)
			r.Get("/", s.handleList)
			r.Get("/{id}", s.handleGet)
			r.Delete("/{id}", s.handleDelete)
		})
	})
	return r
}

// Config holds listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
