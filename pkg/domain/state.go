package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus defines the current mode of the pipeline mechanics.
type RunStatus string

const (
	StatusActive    RunStatus = "active"    // Normal operation
	StatusBlocked   RunStatus = "blocked"   // Guard rejected the request
	StatusCompleted RunStatus = "completed" // Main branch reached a sink (pass or exhausted retries)
)

// GuardStatus is the tri-state outcome of the guard stage.
// The zero value is GuardUnchecked so a freshly built state can never
// be routed past the guard by accident.
type GuardStatus string

const (
	GuardUnchecked GuardStatus = ""
	GuardPassed    GuardStatus = "passed"
	GuardRejected  GuardStatus = "rejected"
)

// State represents the current snapshot of one pipeline run.
// Stages never mutate a State in place; each stage receives the current
// record and returns a clone with its own fields updated.
type State struct {
	// RunID identifies this run across logs, hooks and adapters.
	RunID string `json:"run_id" yaml:"run_id"`

	// Request is the original natural-language input. Immutable after creation.
	Request string `json:"request" yaml:"request"`

	// DesignArtifact is the textual design spec produced by the design stage.
	DesignArtifact string `json:"design_artifact,omitempty" yaml:"design_artifact,omitempty"`

	// GeneratedCode holds the latest candidate markup. Overwritten on each
	// generation attempt; preserved across a failed service call so the last
	// good candidate stays inspectable.
	GeneratedCode string `json:"generated_code,omitempty" yaml:"generated_code,omitempty"`

	// Verdict is the validation outcome. Nil until the validate stage has
	// run at least once.
	Verdict *Verdict `json:"verdict,omitempty" yaml:"verdict,omitempty"`

	// Guard records the guard stage outcome. Set exactly once, before any
	// other stage runs.
	Guard GuardStatus `json:"guard" yaml:"guard"`

	// RetryCount is incremented only by the retry controller, by exactly one
	// per regeneration. Never exceeds the configured ceiling.
	RetryCount int `json:"retry_count" yaml:"retry_count"`

	// LastError is a human-readable failure description: the guard rejection
	// message or the latest generation service failure. Cleared by a
	// successful generation.
	LastError string `json:"last_error,omitempty" yaml:"last_error,omitempty"`

	// Status indicates whether the run is active, blocked or completed.
	Status RunStatus `json:"status" yaml:"status"`

	// History tracks the stage IDs visited, in order.
	History []string `json:"history" yaml:"history"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero" yaml:"finished_at,omitempty"`
}

// NewState creates a clean state for a single request.
func NewState(request string) *State {
	return &State{
		RunID:     uuid.NewString(),
		Request:   request,
		Status:    StatusActive,
		StartedAt: time.Now().UTC(),
	}
}

// Clone returns a copy safe for mutation by the next stage.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = append([]string(nil), s.History...)
	if s.Verdict != nil {
		v := *s.Verdict
		v.Missing = append([]string(nil), s.Verdict.Missing...)
		next.Verdict = &v
	}
	return &next
}

// Terminal reports whether the run has reached a sink state.
func (s *State) Terminal() bool {
	return s.Status != StatusActive
}
