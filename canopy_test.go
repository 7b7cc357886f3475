package canopy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/adapters/static"
	"github.com/aretw0/canopy/pkg/domain"
)

func TestPipeline_DefaultOffline(t *testing.T) {
	// No options: the pipeline must work without credentials or network.
	pipe := canopy.New()

	state, err := pipe.Run(context.Background(), "Build a login page with email and password")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, state.Status)
	require.NotNil(t, state.Verdict)
	assert.True(t, state.Verdict.Passed)
	assert.Zero(t, state.RetryCount)
}

func TestPipeline_GuardBlocks(t *testing.T) {
	pipe := canopy.New()

	state, err := pipe.Run(context.Background(), "please rm -rf all project files")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusBlocked, state.Status)
	assert.Contains(t, state.LastError, "rm -rf")
	assert.Empty(t, state.GeneratedCode)
	assert.Nil(t, state.Verdict)
}

func TestPipeline_InjectedGeneratorAndPolicies(t *testing.T) {
	gen := static.NewScripted(static.Result{Output: "plain text, no markers"})
	pipe := canopy.New(
		canopy.WithGenerator(gen),
		canopy.WithRetryPolicy(domain.RetryPolicy{MaxAttempts: 1}),
	)

	state, err := pipe.Run(context.Background(), "Build a pricing table")
	require.NoError(t, err)

	assert.Equal(t, 1, state.RetryCount)
	assert.Equal(t, 2, gen.Calls())
	assert.False(t, state.Verdict.Passed)
}

func TestPipeline_SharedAcrossRuns(t *testing.T) {
	pipe := canopy.New()
	ctx := context.Background()

	blocked, err := pipe.Run(ctx, "shutdown the reactor")
	require.NoError(t, err)
	clean, err := pipe.Run(ctx, "Build a feedback form")
	require.NoError(t, err)

	// A blocked run leaves no residue in a later clean run.
	assert.Equal(t, domain.StatusBlocked, blocked.Status)
	assert.Equal(t, domain.StatusCompleted, clean.Status)
	assert.Empty(t, clean.LastError)
}
