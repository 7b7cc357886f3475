package runtime_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canopy/internal/runtime"
	"github.com/aretw0/canopy/pkg/adapters/static"
	"github.com/aretw0/canopy/pkg/adapters/template"
	"github.com/aretw0/canopy/pkg/domain"
)

func newEngine(gen *static.Scripted, opts ...runtime.Option) *runtime.Engine {
	return runtime.NewEngine(gen, template.NewDesigner(), opts...)
}

func TestRun_HappyPath(t *testing.T) {
	// Scenario: clean request, offline fallback generator.
	engine := runtime.NewEngine(static.NewGenerator(), template.NewDesigner())

	state, err := engine.Run(context.Background(), "Build a login page with email and password")
	require.NoError(t, err)

	assert.Equal(t, domain.GuardPassed, state.Guard)
	assert.Equal(t, domain.StatusCompleted, state.Status)
	assert.Contains(t, state.DesignArtifact, "Build a login page with email and password")
	require.NotNil(t, state.Verdict)
	assert.True(t, state.Verdict.Passed)
	assert.Equal(t, "All tests passed", state.Verdict.String())
	assert.Equal(t, 0, state.RetryCount)
	assert.Empty(t, state.LastError)
	assert.Equal(t,
		[]string{runtime.StageGuard, runtime.StageDesign, runtime.StageGenerate, runtime.StageValidate},
		state.History,
	)
}

func TestRun_BlockedRequest(t *testing.T) {
	gen := static.NewScripted()
	engine := newEngine(gen)

	state, err := engine.Run(context.Background(), "please rm -rf all project files")
	require.NoError(t, err)

	assert.Equal(t, domain.GuardRejected, state.Guard)
	assert.Equal(t, domain.StatusBlocked, state.Status)
	assert.Contains(t, state.LastError, "rm -rf")

	// No design, generation or validation ever ran.
	assert.Empty(t, state.DesignArtifact)
	assert.Empty(t, state.GeneratedCode)
	assert.Nil(t, state.Verdict)
	assert.Zero(t, gen.Calls())
	assert.Equal(t, []string{runtime.StageGuard, runtime.StageBlocked}, state.History)
}

func TestRun_GuardIsCaseInsensitive(t *testing.T) {
	engine := newEngine(static.NewScripted())

	state, err := engine.Run(context.Background(), "DROP TABLE users, please")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusBlocked, state.Status)
	assert.Contains(t, state.LastError, "drop table")
}

func TestRun_RetriesExhausted(t *testing.T) {
	// The generator never produces anything with the required markers, so
	// every validation fails and the counter must stop exactly at the
	// ceiling.
	gen := static.NewScripted(static.Result{Output: "<div>hello</div>"})
	engine := newEngine(gen)

	state, err := engine.Run(context.Background(), "Build a settings panel")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, state.Status)
	assert.Equal(t, 2, state.RetryCount)
	require.NotNil(t, state.Verdict)
	assert.False(t, state.Verdict.Passed)
	// Initial attempt plus two retries.
	assert.Equal(t, 3, gen.Calls())
	// The last failing candidate stays inspectable.
	assert.Equal(t, "<div>hello</div>", state.GeneratedCode)
}

func TestRun_RetryRecovers(t *testing.T) {
	gen := static.NewScripted(
		static.Result{Output: "<p>not a form</p>"},
		static.Result{Output: "<form><input /><button>Go</button></form>"},
	)
	engine := newEngine(gen)

	state, err := engine.Run(context.Background(), "Build a signup form")
	require.NoError(t, err)

	assert.True(t, state.Verdict.Passed)
	assert.Equal(t, 1, state.RetryCount)
	assert.Equal(t, 2, gen.Calls())
}

func TestRun_ServiceFailureDrivesRetryLoop(t *testing.T) {
	// A failed service call is not retried separately: it flows into
	// validation ("no code generated") and rides the normal retry loop.
	svcErr := domain.NewServiceError("authentication failed", errors.New("401"))
	gen := static.NewScripted(
		static.Result{Err: svcErr},
		static.Result{Output: "<form><input /><button>Save</button></form>"},
	)
	engine := newEngine(gen)

	state, err := engine.Run(context.Background(), "Build a profile form")
	require.NoError(t, err)

	assert.True(t, state.Verdict.Passed)
	assert.Equal(t, 1, state.RetryCount)
	// Cleared by the successful second attempt.
	assert.Empty(t, state.LastError)
}

func TestRun_ServiceFailurePreservesPreviousCandidate(t *testing.T) {
	gen := static.NewScripted(
		static.Result{Output: "<p>partial</p>"},
		static.Result{Err: domain.NewServiceError("server error", nil)},
	)
	engine := newEngine(gen, runtime.WithRetryPolicy(domain.RetryPolicy{MaxAttempts: 1}))

	state, err := engine.Run(context.Background(), "Build a checkout page")
	require.NoError(t, err)

	// The failed second attempt must not clear the first candidate.
	assert.Equal(t, "<p>partial</p>", state.GeneratedCode)
	assert.Contains(t, state.LastError, "server error")
	assert.False(t, state.Verdict.Passed)
}

func TestRun_AllFailuresTerminate(t *testing.T) {
	// Even with a permanently failing service, the run reaches a terminal
	// stage with the ceiling respected.
	gen := static.NewScripted(static.Result{Err: domain.NewServiceError("network down", nil)})
	engine := newEngine(gen)

	state, err := engine.Run(context.Background(), "Build a dashboard")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, state.Status)
	assert.Equal(t, 2, state.RetryCount)
	assert.Equal(t, "FAILED: No code was generated", state.Verdict.String())
	assert.Contains(t, state.LastError, "network down")
}

func TestRun_EmptyRequest(t *testing.T) {
	engine := newEngine(static.NewScripted())

	_, err := engine.Run(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyRequest)
}

func TestRun_ZeroRetryCeiling(t *testing.T) {
	gen := static.NewScripted(static.Result{Output: "nothing useful"})
	engine := newEngine(gen, runtime.WithRetryPolicy(domain.RetryPolicy{MaxAttempts: 0}))

	state, err := engine.Run(context.Background(), "Build a landing page")
	require.NoError(t, err)

	assert.Equal(t, 0, state.RetryCount)
	assert.Equal(t, 1, gen.Calls())
	assert.False(t, state.Verdict.Passed)
}

func TestRun_PromptEmbedsDesignArtifact(t *testing.T) {
	gen := static.NewScripted(static.Result{Output: "<form><input /><button /></form>"})
	engine := newEngine(gen)

	state, err := engine.Run(context.Background(), "Build a newsletter form")
	require.NoError(t, err)

	require.Len(t, gen.Prompts, 1)
	assert.Contains(t, gen.Prompts[0], state.DesignArtifact)
	assert.Contains(t, gen.Prompts[0], "generate clean HTML + CSS code")
}

func TestRun_RetryReusesSameDesignArtifact(t *testing.T) {
	gen := static.NewScripted(static.Result{Output: "no markers here"})
	engine := newEngine(gen)

	state, err := engine.Run(context.Background(), "Build a contact form")
	require.NoError(t, err)

	require.Equal(t, 3, len(gen.Prompts))
	for _, prompt := range gen.Prompts {
		assert.Contains(t, prompt, state.DesignArtifact)
	}
	assert.Equal(t, gen.Prompts[0], gen.Prompts[1])
	assert.Equal(t, gen.Prompts[1], gen.Prompts[2])
}

func TestRun_CustomGuardPolicy(t *testing.T) {
	engine := newEngine(static.NewScripted(static.Result{Output: "<form><input /><button /></form>"}),
		runtime.WithGuardPolicy(domain.GuardPolicy{Denylist: []string{"pineapple"}}),
	)

	// The stock phrases are gone under the injected policy.
	state, err := engine.Run(context.Background(), "rm -rf is fine now")
	require.NoError(t, err)
	assert.Equal(t, domain.GuardPassed, state.Guard)

	state, err = engine.Run(context.Background(), "add Pineapple to the menu")
	require.NoError(t, err)
	assert.Equal(t, domain.GuardRejected, state.Guard)
	assert.Contains(t, state.LastError, "pineapple")
}

func TestRun_FreshStatePerRun(t *testing.T) {
	gen := static.NewScripted(static.Result{Output: "never valid"})
	engine := newEngine(gen)

	first, err := engine.Run(context.Background(), "Build a wizard")
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), "Build a wizard")
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	// Counters do not leak between runs.
	assert.Equal(t, 2, first.RetryCount)
	assert.Equal(t, 2, second.RetryCount)
}

func TestRun_Hooks(t *testing.T) {
	var entered, left []string
	var generations int

	hooks := domain.LifecycleHooks{
		OnStageEnter: func(_ context.Context, ev *domain.StageEvent) {
			entered = append(entered, ev.Stage)
		},
		OnStageLeave: func(_ context.Context, ev *domain.StageEvent) {
			left = append(left, ev.Stage)
		},
		OnGeneration: func(_ context.Context, ev *domain.GenerationEvent) {
			generations++
		},
	}

	engine := runtime.NewEngine(static.NewGenerator(), template.NewDesigner(),
		runtime.WithLifecycleHooks(hooks))

	state, err := engine.Run(context.Background(), "Build a login page")
	require.NoError(t, err)

	assert.Equal(t, state.History, entered)
	assert.Equal(t, state.History, left)
	assert.Equal(t, 1, generations)
}

func TestRun_FallbackIsDeterministic(t *testing.T) {
	engine := runtime.NewEngine(static.NewGenerator(), template.NewDesigner())

	first, err := engine.Run(context.Background(), "Build a login page")
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), "Build a login page")
	require.NoError(t, err)

	assert.Equal(t, first.GeneratedCode, second.GeneratedCode)
	if !strings.Contains(strings.ToLower(first.GeneratedCode), "form") {
		t.Errorf("fallback markup should contain a form, got: %s", first.GeneratedCode)
	}
}
