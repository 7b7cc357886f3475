package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageEnter EventType = "stage_enter"
	EventStageLeave EventType = "stage_leave"
	EventGeneration EventType = "generation"
)

// StageEvent represents entry into or exit from a pipeline stage.
type StageEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	RunID     string        `json:"run_id"`
	Stage     string        `json:"stage"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// GenerationEvent represents one call to the text-generation collaborator.
type GenerationEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	RunID     string        `json:"run_id"`
	Attempt   int           `json:"attempt"`
	Duration  time.Duration `json:"duration"`
	IsError   bool          `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for pipeline observability. All fields
// are optional; nil hooks are skipped.
type LifecycleHooks struct {
	OnStageEnter func(context.Context, *StageEvent)
	OnStageLeave func(context.Context, *StageEvent)
	OnGeneration func(context.Context, *GenerationEvent)
}
