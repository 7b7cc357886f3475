package canopy

import (
	"context"
	"log/slog"

	"github.com/aretw0/canopy/internal/runtime"
	"github.com/aretw0/canopy/pkg/adapters/static"
	"github.com/aretw0/canopy/pkg/adapters/template"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
)

// Version is the library version, reported by the CLI.
const Version = "0.2.0"

// Pipeline is the high-level entry point for the canopy library.
// It wraps the internal runtime engine and provides a simplified API for
// consumers. A Pipeline holds no per-run state and may be shared.
type Pipeline struct {
	generator  ports.TextGenerator
	designer   ports.Designer
	engineOpts []runtime.Option
	engine     *runtime.Engine
}

// Option defines a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithGenerator injects the text-generation collaborator. By default the
// deterministic fallback generator is used, so a Pipeline works without any
// credential or network access.
func WithGenerator(g ports.TextGenerator) Option {
	return func(p *Pipeline) {
		if g != nil {
			p.generator = g
		}
	}
}

// WithDesigner injects a custom design-spec producer.
func WithDesigner(d ports.Designer) Option {
	return func(p *Pipeline) {
		if d != nil {
			p.designer = d
		}
	}
}

// WithGuardPolicy overrides the stock denylist.
func WithGuardPolicy(policy domain.GuardPolicy) Option {
	return func(p *Pipeline) {
		p.engineOpts = append(p.engineOpts, runtime.WithGuardPolicy(policy))
	}
}

// WithRetryPolicy overrides the stock retry ceiling.
func WithRetryPolicy(policy domain.RetryPolicy) Option {
	return func(p *Pipeline) {
		p.engineOpts = append(p.engineOpts, runtime.WithRetryPolicy(policy))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pipeline) {
		p.engineOpts = append(p.engineOpts, runtime.WithLifecycleHooks(hooks))
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.engineOpts = append(p.engineOpts, runtime.WithLogger(logger))
	}
}

// WithMaxTokens bounds the generator output length.
func WithMaxTokens(n int) Option {
	return func(p *Pipeline) {
		p.engineOpts = append(p.engineOpts, runtime.WithMaxTokens(n))
	}
}

// New initializes a Pipeline. With no options it runs fully offline: the
// template designer plus the static fallback generator.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		generator: static.NewGenerator(),
		designer:  template.NewDesigner(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.engine = runtime.NewEngine(p.generator, p.designer, p.engineOpts...)
	return p
}

// Run drives one request through the pipeline graph to a terminal stage and
// returns the final state, including the verdict and any recorded error.
// It returns a non-nil error only when the request itself is unusable
// (domain.ErrEmptyRequest); every in-flight failure is reported through
// state fields instead.
func (p *Pipeline) Run(ctx context.Context, request string) (*domain.State, error) {
	return p.engine.Run(ctx, request)
}
