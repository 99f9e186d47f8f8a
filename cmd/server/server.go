//go:build !js && !wasm

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/himanishpuri/GenreDNA/internal/config"
	"github.com/himanishpuri/GenreDNA/pkg/genredna"
	"github.com/himanishpuri/GenreDNA/pkg/genredna/simulate"
	"github.com/himanishpuri/GenreDNA/pkg/logger"
)

// topK is the number of recommendations returned per prediction.
const topK = 3

const shutdownTimeout = 10 * time.Second

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	catalog genredna.Catalog
	config  *config.Config
	log     *logger.Logger
	metrics *serverMetrics

	// rng drives sample predictions. Uploads use a source seeded from the
	// file contents instead.
	rng simulate.Source
}

// NewServer creates a new server instance
func NewServer(cat genredna.Catalog, cfg *config.Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Server{
		catalog: cat,
		config:  cfg,
		log:     log,
		metrics: newServerMetrics(),
		rng:     simulate.GlobalSource{},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Infof("GenreDNA server starting on %s", srv.Addr)
	s.log.Infof("   Catalog: %d songs, %d samples", len(s.catalog.ListSongs()), len(s.catalog.ListSamples()))
	s.log.Infof("   CORS Origins: %v", s.config.AllowedOrigins)
	s.log.Infof("   GET    /health        - Health check")
	s.log.Infof("   GET    /api/samples   - List preset samples")
	s.log.Infof("   POST   /api/predict   - Predict genre (audio_file | sample_id)")
	s.log.Infof("   GET    /metrics       - Prometheus metrics")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Infof("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
