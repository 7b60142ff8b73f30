// Package server exposes the word cloud pipeline over HTTP.
//
// # Routes
//
//	GET    /healthz                    liveness and build info
//	POST   /v1/layouts                 lay out words, store and return the layout
//	GET    /v1/layouts                 list stored layouts, newest first
//	GET    /v1/layouts/{id}            fetch a stored layout
//	DELETE /v1/layouts/{id}            delete a stored layout
//	GET    /v1/layouts/{id}/render     render a stored layout (?format=svg|png|pdf|json)
//	POST   /v1/render                  lay out and render in one call
//
// Request bodies are [pipeline.Options] as JSON. Errors are returned as
// {"error": {"code": ..., "message": ...}} with the status derived from the
// error code: INVALID_* maps to 400, *NOT_FOUND to 404, anything else to 500.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// Defaults.
const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes = 8 << 20

	// DefaultRequestTimeout bounds a single request, including rendering.
	DefaultRequestTimeout = 60 * time.Second

	shutdownTimeout = 10 * time.Second
	pruneInterval   = time.Hour
)

// Server serves the HTTP API.
type Server struct {
	runner    *pipeline.Runner
	store     store.Store
	logger    *log.Logger
	timeout   time.Duration
	retention time.Duration
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// WithRetention makes ListenAndServe prune layouts older than d every hour.
// Zero keeps layouts forever.
func WithRetention(d time.Duration) Option { return func(s *Server) { s.retention = d } }

// New creates a server backed by runner and st.
// A nil runner uses an uncached runner; a nil store uses a MemoryStore.
func New(runner *pipeline.Runner, st store.Store, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		store:   st,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Route("/layouts", func(r chi.Router) {
			r.Post("/", s.handleCreateLayout)
			r.Get("/", s.handleListLayouts)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetLayout)
				r.Delete("/", s.handleDeleteLayout)
				r.Get("/render", s.handleRenderLayout)
			})
		})
		r.Post("/render", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	if s.retention > 0 {
		go s.pruneLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the runner cache and the store.
func (s *Server) Close() error {
	return errors.Join(s.runner.Close(), s.store.Close())
}

func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		s.prune(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) prune(ctx context.Context) {
	n, err := s.store.Prune(ctx, time.Now().Add(-s.retention))
	if err != nil {
		s.logger.Warn("prune layouts", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("pruned layouts", "count", n)
	}
}
