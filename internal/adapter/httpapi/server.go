// Package httpapi exposes the analytics engine over HTTP. Handlers pull an
// immutable snapshot from the observation store, run the pure scoring
// functions, and render the result; no evaluation output is ever stored.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/bluefin-labs/seastate/internal/feed"
	"github.com/bluefin-labs/seastate/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the evaluation endpoints plus health, readiness, and
// metrics routes.
type Server struct {
	httpServer *http.Server
	store      *feed.Store
	species    []domain.SpeciesRecord
	stocks     []domain.StockRecord
	region     string
	ready      ReadinessChecker
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(addr string, store *feed.Store, species []domain.SpeciesRecord, stocks []domain.StockRecord, region string, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		store:   store,
		species: species,
		stocks:  stocks,
		region:  region,
		ready:   ready,
		logger:  logger,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/trend", s.handleTrend)
		r.Get("/conditions", s.handleConditions)
		r.Get("/species", s.handleSpecies)
		r.Get("/species/{id}/suitability", s.handleSuitability)
		r.Get("/sustainability", s.handleSustainability)
		r.Get("/alerts", s.handleAlerts)
		r.Get("/risk", s.handleRisk)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
