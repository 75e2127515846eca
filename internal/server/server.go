// Package server exposes compiled page forms and submission reduction over
// HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/model"
	"github.com/goliatone/go-codejson/pkg/orchestrator"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// Pipeline is the subset of the orchestrator the handlers use.
type Pipeline interface {
	Document(ctx context.Context, page string) (schema.Document, error)
	Compile(ctx context.Context, page string) ([]model.Component, error)
	Reduce(ctx context.Context, page string, data *document.Object) (orchestrator.Result, error)
}

var _ Pipeline = (*orchestrator.Orchestrator)(nil)

// Server routes requests to a Pipeline.
type Server struct {
	pipeline        Pipeline
	logger          *zap.Logger
	maxBodyBytes    int64
	shutdownTimeout time.Duration
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxBodyBytes caps submission payload sizes.
func WithMaxBodyBytes(limit int64) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxBodyBytes = limit
		}
	}
}

// New constructs a Server.
func New(pipeline Pipeline, options ...Option) *Server {
	s := &Server{
		pipeline:        pipeline,
		logger:          zap.NewNop(),
		maxBodyBytes:    1 << 20,
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/pages/{page}", func(r chi.Router) {
		r.Get("/", s.getHeading)
		r.Get("/schema", s.getSchema)
		r.Get("/components", s.getComponents)
		r.Post("/document", s.postDocument)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
