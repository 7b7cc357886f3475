// Package observability exposes pipeline lifecycle events as Prometheus
// metrics. It plugs into the engine through domain.LifecycleHooks, so the
// core stays free of any metrics dependency.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/canopy/pkg/domain"
)

// Metrics records pipeline activity. Register it against a prometheus
// Registerer once and share it across runs.
type Metrics struct {
	runsTotal        *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
	generationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the pipeline collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canopy_runs_total",
				Help: "Completed pipeline runs by outcome",
			},
			[]string{"outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "canopy_stage_duration_seconds",
				Help:    "Time spent per pipeline stage",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		generationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canopy_generations_total",
				Help: "Text-generation calls by status",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.runsTotal, m.stageDuration, m.generationsTotal)
	return m
}

// Hooks adapts the recorder into engine lifecycle hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageLeave: func(_ context.Context, ev *domain.StageEvent) {
			m.stageDuration.WithLabelValues(ev.Stage).Observe(ev.Duration.Seconds())
		},
		OnGeneration: func(_ context.Context, ev *domain.GenerationEvent) {
			status := "ok"
			if ev.IsError {
				status = "error"
			}
			m.generationsTotal.WithLabelValues(status).Inc()
		},
	}
}

// ObserveRun records the terminal outcome of a finished run.
func (m *Metrics) ObserveRun(state *domain.State) {
	m.runsTotal.WithLabelValues(outcome(state)).Inc()
}

func outcome(state *domain.State) string {
	switch {
	case state == nil:
		return "unknown"
	case state.Status == domain.StatusBlocked:
		return "blocked"
	case state.Verdict != nil && state.Verdict.Passed:
		return "passed"
	default:
		return "failed"
	}
}
