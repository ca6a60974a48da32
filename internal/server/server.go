// Package server implements the scenepatch HTTP API.
//
// # Routes
//
//	GET    /healthz                      build info
//	POST   /v1/render                    render an inline scene
//	GET    /v1/scenes                    list stored scenes
//	POST   /v1/scenes                    store a scene
//	GET    /v1/scenes/{id}               fetch a stored scene
//	PUT    /v1/scenes/{id}               replace a stored scene
//	DELETE /v1/scenes/{id}               delete a stored scene
//	GET    /v1/scenes/{id}/render        render a stored scene (raw bytes)
//	POST   /v1/animations/compile        compile a builder script
//	POST   /v1/animations/validate       validate an animation spec
//
// JSON responses share one envelope: {"success": bool, "data": ..., "error": ...}.
// Every response carries an X-Request-ID header.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/scenepatch/pkg/pipeline"
	"github.com/matzehuels/scenepatch/pkg/store"
)

// Default limits.
const (
	DefaultMaxBodyBytes   = 8 << 20
	DefaultRequestTimeout = 2 * time.Minute
	DefaultListLimit      = 50
	MaxListLimit          = 500
)

// Options configures a [Server].
type Options struct {
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Server serves the HTTP API over a pipeline runner and a scene store.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	opts   Options
}

// New returns a server. A nil logger discards output.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	return &Server{runner: runner, store: st, logger: logger, opts: opts}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)

		r.Route("/scenes", func(r chi.Router) {
			r.Get("/", s.handleListScenes)
			r.Post("/", s.handleCreateScene)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetScene)
				r.Put("/", s.handlePutScene)
				r.Delete("/", s.handleDeleteScene)
				r.Get("/render", s.handleRenderScene)
			})
		})

		r.Post("/animations/compile", s.handleCompile)
		r.Post("/animations/validate", s.handleValidateAnimation)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
