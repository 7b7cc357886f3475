// Package ports defines the interfaces between the pipeline core and its
// external collaborators. The engine only ever sees these contracts; the
// concrete adapters (Anthropic client, static fallback, template designer)
// live under pkg/adapters and are injected at construction time.
package ports

import "context"

// TextGenerator is the external text-generation service. Implementations
// must convert every lower-level fault (network, auth, malformed response)
// into a *domain.ServiceError rather than letting it propagate raw.
type TextGenerator interface {
	// Generate produces text for the given prompt, bounded by maxTokens.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Designer produces a textual design artifact from a natural-language
// request. In this system it is a deterministic local template, but the
// contract is kept separate so a real design service can replace it without
// touching the graph.
type Designer interface {
	Design(ctx context.Context, request string) (string, error)
}
