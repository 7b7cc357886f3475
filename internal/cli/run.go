// Package cli is the composition root for the canopy binary: it assembles
// the pipeline from configuration and drives it for one-shot runs or the
// HTTP server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/internal/presentation/tui"
	"github.com/aretw0/canopy/pkg/adapters/anthropic"
	httpadapter "github.com/aretw0/canopy/pkg/adapters/http"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/observability"
)

// apiKeyEnv selects service mode when set. The pipeline itself never reads
// it; mode selection happens here, at composition time.
const apiKeyEnv = "ANTHROPIC_API_KEY"

// BuildPipeline assembles a pipeline from config. With a credential present
// the Anthropic client is injected; otherwise the deterministic fallback
// keeps everything offline.
func BuildPipeline(cfg Config, logger *slog.Logger, metrics *observability.Metrics) *canopy.Pipeline {
	opts := []canopy.Option{
		canopy.WithLogger(logger),
		canopy.WithGuardPolicy(cfg.GuardPolicy()),
		canopy.WithRetryPolicy(domain.RetryPolicy{MaxAttempts: cfg.MaxRetries}),
		canopy.WithMaxTokens(cfg.MaxTokens),
	}

	if key := os.Getenv(apiKeyEnv); key != "" {
		logger.Debug("service mode: using Anthropic generator", "model", cfg.Model)
		opts = append(opts, canopy.WithGenerator(anthropic.NewClient(key, anthropic.WithModel(cfg.Model))))
	} else {
		logger.Debug("no credential found: using fallback generator")
	}

	if metrics != nil {
		opts = append(opts, canopy.WithLifecycleHooks(metrics.Hooks()))
	}

	return canopy.New(opts...)
}

// RunOnce drives a single request through the pipeline and prints the
// outcome to stdout, either as a rendered report or as JSON.
func RunOnce(ctx context.Context, cfg Config, request string, jsonOut bool) error {
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	pipe := BuildPipeline(cfg, logger, nil)

	state, err := pipe.Run(ctx, request)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}

	fmt.Print(tui.RenderReport(state))
	fmt.Println(tui.StatusLine(state))
	return nil
}

// Serve runs the HTTP surface until the context is canceled.
func Serve(ctx context.Context, cfg Config) error {
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	pipe := BuildPipeline(cfg, logger, metrics)

	runner := &observedRunner{pipe: pipe, metrics: metrics}
	handler := httpadapter.NewHandler(runner, logger, registry)

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// observedRunner counts run outcomes on top of the pipeline.
type observedRunner struct {
	pipe    *canopy.Pipeline
	metrics *observability.Metrics
}

func (o *observedRunner) Run(ctx context.Context, request string) (*domain.State, error) {
	state, err := o.pipe.Run(ctx, request)
	if err == nil {
		o.metrics.ObserveRun(state)
	}
	return state, err
}
