package static_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canopy/pkg/adapters/static"
)

func TestGenerator_Deterministic(t *testing.T) {
	gen := static.NewGenerator()
	ctx := context.Background()

	first, err := gen.Generate(ctx, "any prompt", 1024)
	require.NoError(t, err)
	second, err := gen.Generate(ctx, "a different prompt", 16)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "<form")
	assert.Contains(t, first, "input")
	assert.Contains(t, first, "button")
}

func TestScripted_ReplaysSequence(t *testing.T) {
	boom := errors.New("boom")
	gen := static.NewScripted(
		static.Result{Output: "one"},
		static.Result{Err: boom},
		static.Result{Output: "three"},
	)
	ctx := context.Background()

	out, err := gen.Generate(ctx, "p1", 0)
	require.NoError(t, err)
	assert.Equal(t, "one", out)

	_, err = gen.Generate(ctx, "p2", 0)
	assert.ErrorIs(t, err, boom)

	out, err = gen.Generate(ctx, "p3", 0)
	require.NoError(t, err)
	assert.Equal(t, "three", out)

	// Exhausted scripts repeat their last entry.
	out, err = gen.Generate(ctx, "p4", 0)
	require.NoError(t, err)
	assert.Equal(t, "three", out)

	assert.Equal(t, 4, gen.Calls())
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, gen.Prompts)
}

func TestScripted_EmptyScript(t *testing.T) {
	gen := static.NewScripted()

	out, err := gen.Generate(context.Background(), "p", 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}
