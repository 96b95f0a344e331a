// Package server exposes the lookup service as a small JSON API
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/NikitaCOEUR/skycast/internal/autocomplete"
	"github.com/NikitaCOEUR/skycast/internal/logger"
	"github.com/NikitaCOEUR/skycast/internal/metrics"
	"github.com/NikitaCOEUR/skycast/internal/weather"
)

// ShutdownTimeout bounds how long in-flight requests may drain
const ShutdownTimeout = 10 * time.Second

// Lookup is the service the handlers call
type Lookup interface {
	Suggest(ctx context.Context, q string) ([]string, error)
	Current(ctx context.Context, q string) (*weather.Snapshot, error)
}

// Options configures a Server
type Options struct {
	Addr      string
	Threshold int
	Metrics   *metrics.Recorder
	Logger    *logger.Logger
}

// Server serves the search and current-conditions endpoints
type Server struct {
	lookup    Lookup
	addr      string
	threshold int
	metrics   *metrics.Recorder
	log       *logger.Logger
	router    chi.Router
}

// New builds the router
func New(lookup Lookup, opts Options) *Server {
	s := &Server{
		lookup:    lookup,
		addr:      opts.Addr,
		threshold: opts.Threshold,
		metrics:   opts.Metrics,
		log:       opts.Logger,
	}
	if s.threshold <= 0 {
		s.threshold = autocomplete.DefaultThreshold
	}
	if s.metrics == nil {
		s.metrics = metrics.NewRecorder()
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	s.log = s.log.Component("server")

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/current", s.handleCurrent)
	})
	r.Get("/metrics", s.handleMetrics)

	s.router = r
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is done, then shuts
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("Listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
