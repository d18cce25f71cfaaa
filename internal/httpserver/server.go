// Package httpserver exposes an Index over HTTP: one query endpoint, one
// health endpoint, and a Prometheus metrics endpoint.
//
// The index is built once, ahead of serving, so the server's only concurrency
// concern is guarding concurrent readers against the single build-time
// writer; it holds a sync.RWMutex rather than anything fancier.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vvalberg/ferrodex"
)

// Querier is the subset of *ferrodex.Index the server depends on.
type Querier interface {
	Query(tokens []string) ([]ferrodex.QueryResult, error)
	DocumentCount() int
}

// Server serves search queries over HTTP.
type Server struct {
	mu     sync.RWMutex
	idx    Querier
	log    zerolog.Logger
	router chi.Router
	http   *http.Server

	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// Config controls listen address and timeouts.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns reasonable timeouts for a small internal service.
func DefaultConfig(addr string) Config {
	return Config{
		Addr:         addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// New builds a Server over idx. The index is expected to already be fully
// built: the server never calls AddDocument.
//
// Each Server owns its own prometheus.Registry rather than registering into
// prometheus.DefaultRegisterer, so that building more than one Server in the
// same process (as the tests in this package do) never collides over a
// metric name already registered by an earlier instance.
func New(cfg Config, idx Querier, log zerolog.Logger) *Server {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	s := &Server{
		idx:      idx,
		log:      log.With().Str("component", "httpserver").Logger(),
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ferrodex_http_requests_total",
			Help: "Total HTTP requests served, by route and status class.",
		}, []string{"route", "status"}),
		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ferrodex_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	s.router = s.newRouter()
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP)
	r.Get("/search", s.handleSearch)
	return r
}

// ListenAndServe blocks serving HTTP until the server is shut down or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("starting http server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("httpserver: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")
	return s.http.Shutdown(ctx)
}

type requestIDKeyType struct{}

var requestIDKey requestIDKeyType

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.requestsTotal.WithLabelValues(route, statusClass(rec.status)).Inc()
		s.requestLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","documents":%d}`, s.idx.DocumentCount())
}
