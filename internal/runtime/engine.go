package runtime

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
)

// Stage identifiers. The set of stages and the edges between them are fixed
// in code; the graph is not loaded from configuration.
const (
	StageGuard    = "guard"
	StageDesign   = "design"
	StageGenerate = "generate"
	StageValidate = "validate"
	StageBlocked  = "blocked"
)

// DefaultMaxTokens bounds the output length requested from the generator.
const DefaultMaxTokens = 1024

// Engine drives one request through the stage graph:
//
//	guard -> blocked (terminal)
//	guard -> design -> generate -> validate -> done (terminal)
//	                      ^_________________|  (bounded retry)
//
// The engine holds no per-run state; a fresh State is built for every Run,
// so a single Engine is safe to share across goroutines as long as the
// injected collaborators are.
type Engine struct {
	generator ports.TextGenerator
	designer  ports.Designer
	guard     domain.GuardPolicy
	retry     domain.RetryPolicy
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxTokens int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithGuardPolicy overrides the default denylist.
func WithGuardPolicy(p domain.GuardPolicy) Option {
	return func(e *Engine) {
		e.guard = p
	}
}

// WithRetryPolicy overrides the default retry ceiling.
func WithRetryPolicy(p domain.RetryPolicy) Option {
	return func(e *Engine) {
		e.retry = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxTokens bounds the generator output length.
func WithMaxTokens(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// NewEngine creates an engine with the given collaborators.
func NewEngine(generator ports.TextGenerator, designer ports.Designer, opts ...Option) *Engine {
	e := &Engine{
		generator: generator,
		designer:  designer,
		guard:     domain.DefaultGuardPolicy(),
		retry:     domain.DefaultRetryPolicy(),
		logger:    logging.NewNop(),
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run drives a fresh state through the graph to a terminal stage and returns
// the final state. Entry is always the guard stage; callers cannot route
// around it. All failures are recorded in state fields: a completed call
// never returns a partial state alongside an error.
func (e *Engine) Run(ctx context.Context, request string) (*domain.State, error) {
	if strings.TrimSpace(request) == "" {
		return nil, domain.ErrEmptyRequest
	}

	state := domain.NewState(request)
	e.logger.Debug("run started", "run_id", state.RunID)

	current := StageGuard
	for current != "" {
		var next string
		state, next = e.step(ctx, state, current)
		current = next
	}

	state = state.Clone()
	if state.Status == domain.StatusActive {
		state.Status = domain.StatusCompleted
	}
	state.FinishedAt = time.Now().UTC()

	e.logger.Debug("run finished",
		"run_id", state.RunID,
		"status", string(state.Status),
		"retries", state.RetryCount,
		"verdict", state.Verdict.String(),
	)
	return state, nil
}

// step executes one stage and resolves the next stage ID ("" = terminal).
func (e *Engine) step(ctx context.Context, state *domain.State, stage string) (*domain.State, string) {
	e.emitStageEnter(ctx, state, stage)
	start := time.Now()

	next := state
	switch stage {
	case StageGuard:
		next = e.guardStage(state)
	case StageDesign:
		next = e.designStage(ctx, state)
	case StageGenerate:
		next = e.generateStage(ctx, state)
	case StageValidate:
		next = e.validateStage(state)
	case StageBlocked:
		next = e.blockedStage(state)
	}

	next = next.Clone()
	next.History = append(next.History, stage)
	e.emitStageLeave(ctx, next, stage, time.Since(start))

	return next, e.route(next, stage)
}

// route resolves the outgoing edge for the stage that just ran.
func (e *Engine) route(state *domain.State, stage string) string {
	switch stage {
	case StageGuard:
		if routePostGuard(state) == domain.RouteProceed {
			return StageDesign
		}
		return StageBlocked
	case StageDesign:
		return StageGenerate
	case StageGenerate:
		return StageValidate
	case StageValidate:
		// The only cycle in the graph. The bound is structural: the counter
		// is compared against the ceiling before every re-entry.
		if e.retry.Decide(state.Verdict, state.RetryCount) == domain.RetryAgain {
			e.logger.Debug("retrying generation",
				"run_id", state.RunID,
				"attempt", state.RetryCount+1,
				"max", e.retry.MaxAttempts,
			)
			// Increment happens here and nowhere else. The design artifact
			// is carried into the next attempt unchanged.
			state.RetryCount++
			return StageGenerate
		}
		return ""
	default:
		return ""
	}
}

// routePostGuard labels the guard outcome. Anything but an explicit pass,
// including an unchecked guard, is blocked.
func routePostGuard(state *domain.State) domain.RouteDecision {
	if state.Guard == domain.GuardPassed {
		return domain.RouteProceed
	}
	return domain.RouteBlocked
}

func (e *Engine) emitStageEnter(ctx context.Context, state *domain.State, stage string) {
	if e.hooks.OnStageEnter == nil {
		return
	}
	e.hooks.OnStageEnter(ctx, &domain.StageEvent{
		Timestamp: time.Now().UTC(),
		Type:      domain.EventStageEnter,
		RunID:     state.RunID,
		Stage:     stage,
	})
}

func (e *Engine) emitStageLeave(ctx context.Context, state *domain.State, stage string, took time.Duration) {
	if e.hooks.OnStageLeave == nil {
		return
	}
	e.hooks.OnStageLeave(ctx, &domain.StageEvent{
		Timestamp: time.Now().UTC(),
		Type:      domain.EventStageLeave,
		RunID:     state.RunID,
		Stage:     stage,
		Duration:  took,
	})
}

func (e *Engine) emitGeneration(ctx context.Context, state *domain.State, took time.Duration, isErr bool) {
	if e.hooks.OnGeneration == nil {
		return
	}
	e.hooks.OnGeneration(ctx, &domain.GenerationEvent{
		Timestamp: time.Now().UTC(),
		RunID:     state.RunID,
		Attempt:   state.RetryCount,
		Duration:  took,
		IsError:   isErr,
	})
}
