// Package domain holds the core vocabulary of the pipeline: the state
// record threaded through every stage, the closed routing decisions, the
// guard and retry policies, and the lifecycle events emitted by the engine.
//
// The package is intentionally free of I/O and third-party collaborators so
// that engine logic stays pure and trivially testable.
package domain
