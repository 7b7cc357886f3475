package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/observability"
)

func TestMetrics_RecordsRunOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	passed := &domain.State{Status: domain.StatusCompleted, Verdict: domain.Pass()}
	failed := &domain.State{Status: domain.StatusCompleted, Verdict: domain.Fail(domain.ReasonMissingForm)}
	blocked := &domain.State{Status: domain.StatusBlocked}

	m.ObserveRun(passed)
	m.ObserveRun(passed)
	m.ObserveRun(failed)
	m.ObserveRun(blocked)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, fam := range families {
		if fam.GetName() == "canopy_runs_total" {
			found = true
		}
	}
	assert.True(t, found, "canopy_runs_total should be registered")
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnStageLeave(ctx, &domain.StageEvent{Stage: "generate", Duration: 50 * time.Millisecond})
	hooks.OnGeneration(ctx, &domain.GenerationEvent{IsError: false})
	hooks.OnGeneration(ctx, &domain.GenerationEvent{IsError: true})

	count, err := testutil.GatherAndCount(reg,
		"canopy_stage_duration_seconds", "canopy_generations_total")
	require.NoError(t, err)
	// One histogram series plus two counter series (ok + error).
	assert.Equal(t, 3, count)
}
