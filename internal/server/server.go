// Package server implements the Dashgrid HTTP API.
//
// The API exposes board CRUD, layout packing, artifact rendering, and the
// interactive layout operations (move, resize, insert, remove). Boards live
// in a pluggable store (in-memory or MongoDB); packed layouts and rendered
// artifacts go through the shared caching pipeline.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// Config holds server construction options.
type Config struct {
	Store  BoardStore
	Runner *pipeline.Runner
	Logger *log.Logger

	// Columns is the default breakpoint width when a request doesn't
	// specify one and the board has no column count.
	Columns int
}

// Server is the Dashgrid API server.
type Server struct {
	router  chi.Router
	store   BoardStore
	runner  *pipeline.Runner
	logger  *log.Logger
	columns int

	// locks serializes layout operations per board so concurrent gestures
	// on the same board cannot interleave.
	locks sync.Map // board ID -> *sync.Mutex
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Columns <= 0 {
		cfg.Columns = pipeline.DefaultColumns
	}

	s := &Server{
		store:   cfg.Store,
		runner:  cfg.Runner,
		logger:  cfg.Logger,
		columns: cfg.Columns,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/boards", func(r chi.Router) {
		r.Get("/", s.handleListBoards)
		r.Post("/", s.handleCreateBoard)

		r.Route("/{boardID}", func(r chi.Router) {
			r.Get("/", s.handleGetBoard)
			r.Put("/", s.handleUpdateBoard)
			r.Delete("/", s.handleDeleteBoard)

			r.Get("/layout", s.handleLayout)
			r.Get("/render", s.handleRender)

			r.Route("/ops", func(r chi.Router) {
				r.Post("/move", s.handleMove)
				r.Post("/resize", s.handleResize)
				r.Post("/insert", s.handleInsert)
				r.Post("/remove", s.handleRemove)
			})
		})
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

// boardLock returns the mutex serializing operations on one board.
func (s *Server) boardLock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// logRequests logs each request with the charm logger and notifies the
// observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
