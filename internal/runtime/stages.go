package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/canopy/pkg/domain"
)

// promptTemplate embeds the design artifact into the generation prompt.
const promptTemplate = `Based on this UI design spec, generate clean HTML + CSS code.
Only output the code, no explanation.

Design spec:
%s`

// guardStage scans the request against the denylist. First hit wins; the
// scan does not aggregate multiple matches. Pure: the only effect is the
// returned state change.
func (e *Engine) guardStage(state *domain.State) *domain.State {
	next := state.Clone()
	if phrase := e.guard.Match(state.Request); phrase != "" {
		next.Guard = domain.GuardRejected
		next.LastError = fmt.Sprintf("request blocked by guardrail: '%s' is not allowed", phrase)
		e.logger.Warn("request blocked", "run_id", state.RunID, "phrase", phrase)
		return next
	}
	next.Guard = domain.GuardPassed
	return next
}

// designStage produces the design artifact. The stock designer is a local
// template and cannot fail; a failing replacement is recorded in LastError
// and the run continues, per the propagation policy that no stage aborts.
func (e *Engine) designStage(ctx context.Context, state *domain.State) *domain.State {
	next := state.Clone()
	artifact, err := e.designer.Design(ctx, state.Request)
	if err != nil {
		next.LastError = fmt.Sprintf("design producer failed: %v", err)
		e.logger.Error("design producer failed", "run_id", state.RunID, "error", err)
		return next
	}
	next.DesignArtifact = artifact
	return next
}

// generateStage invokes the text-generation collaborator once. On success
// the candidate markup replaces GeneratedCode and LastError is cleared; on
// failure LastError carries the service error and the previous candidate is
// kept so the caller can inspect it.
func (e *Engine) generateStage(ctx context.Context, state *domain.State) *domain.State {
	next := state.Clone()
	prompt := fmt.Sprintf(promptTemplate, state.DesignArtifact)

	start := time.Now()
	code, err := e.generator.Generate(ctx, prompt, e.maxTokens)
	e.emitGeneration(ctx, state, time.Since(start), err != nil)

	if err != nil {
		next.LastError = err.Error()
		e.logger.Error("generation failed",
			"run_id", state.RunID,
			"attempt", state.RetryCount,
			"error", err,
		)
		return next
	}

	next.GeneratedCode = code
	next.LastError = ""
	return next
}

// validateStage checks the candidate markup for the required structural
// markers. Unlike the guard, the check is exhaustive: every missing marker
// is reported.
func (e *Engine) validateStage(state *domain.State) *domain.State {
	next := state.Clone()
	next.Verdict = validateMarkup(state.GeneratedCode)
	if !next.Verdict.Passed {
		e.logger.Debug("validation failed",
			"run_id", state.RunID,
			"missing", next.Verdict.Missing,
		)
	}
	return next
}

// blockedStage is the explicit terminal node for the rejected branch. It
// marks the run blocked and touches nothing else.
func (e *Engine) blockedStage(state *domain.State) *domain.State {
	next := state.Clone()
	next.Status = domain.StatusBlocked
	return next
}
