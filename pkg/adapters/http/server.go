// Package http exposes the pipeline over a minimal JSON API. The core never
// depends on this adapter; it only consumes the Runner contract.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/canopy/pkg/domain"
)

// Runner is the slice of the pipeline the HTTP surface needs.
type Runner interface {
	Run(ctx context.Context, request string) (*domain.State, error)
}

// Server handles the JSON API routes.
type Server struct {
	runner Runner
	logger *slog.Logger
}

// RunRequest is the POST /run body.
type RunRequest struct {
	Request string `json:"request"`
}

// NewHandler creates the HTTP handler for the pipeline. When gatherer is
// non-nil a Prometheus scrape endpoint is mounted at /metrics.
func NewHandler(runner Runner, logger *slog.Logger, gatherer prometheus.Gatherer) http.Handler {
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Post("/run", s.handleRun)
	r.Get("/healthz", s.handleHealth)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// handleRun drives one request through the pipeline and returns the final
// state. Blocked and exhausted-retries runs are still 200s; the outcome is
// carried by the state body, mirroring the library contract.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("run: invalid request body", "error", err)
		return
	}

	state, err := s.runner.Run(r.Context(), body.Request)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyRequest) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "pipeline error", http.StatusInternalServerError)
		s.logger.Error("run failed", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		s.logger.Error("run: response encode failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
