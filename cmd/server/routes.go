//go:build !js && !wasm

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/himanishpuri/GenreDNA/pkg/logger"
)

type ctxKey int

const requestLoggerKey ctxKey = iota

// setupRoutes registers all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		if s.config.RateLimitPerMinute > 0 {
			r.Use(httprate.Limit(
				s.config.RateLimitPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					s.respondError(w, http.StatusTooManyRequests, "Too many requests")
				}),
			))
		}
		r.Get("/samples", s.handleSamples)
		r.Post("/predict", s.handlePredict)
	})

	return r
}

// requestID tags each request with an X-Request-ID, reusing the caller's
// header when present.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), requestLoggerKey, s.log.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs every request and records its latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)

		s.metrics.observeRequest(r.Method, route, status, elapsed)
		s.requestLog(r).Infof("%s %s from %s -> %d (%s)", r.Method, r.URL.Path, r.RemoteAddr, status, elapsed.Round(time.Millisecond))
	})
}

// requestLog returns the per-request logger, or the server logger outside a
// request.
func (s *Server) requestLog(r *http.Request) *logger.Logger {
	if l, ok := r.Context().Value(requestLoggerKey).(*logger.Logger); ok {
		return l
	}
	return s.log
}
