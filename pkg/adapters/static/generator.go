// Package static provides deterministic TextGenerator implementations that
// need no network access: the fallback used when no service credential is
// configured, and a scripted generator for tests.
package static

import (
	"context"
	"sync"
)

// fallbackMarkup is the fixed template returned regardless of the prompt.
const fallbackMarkup = `<form class='login-form'>
  <input type='email' placeholder='Email' />
  <input type='password' placeholder='Password' />
  <button type='submit'>Login</button>
</form>`

// Generator returns a hardcoded login-form markup for every prompt.
// It never fails and has no side effects, so identical inputs always yield
// identical output.
type Generator struct{}

// NewGenerator creates the fallback generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate implements ports.TextGenerator.
func (g *Generator) Generate(_ context.Context, _ string, _ int) (string, error) {
	return fallbackMarkup, nil
}

// Scripted replays a fixed sequence of canned results, one per call.
// Once the script is exhausted it keeps returning the last entry. Useful
// for driving the retry loop deterministically in tests.
type Scripted struct {
	mu      sync.Mutex
	script  []Result
	calls   int
	Prompts []string
}

// Result is one scripted generator response.
type Result struct {
	Output string
	Err    error
}

// NewScripted creates a scripted generator from the given results.
func NewScripted(script ...Result) *Scripted {
	return &Scripted{script: script}
}

// Generate implements ports.TextGenerator.
func (s *Scripted) Generate(_ context.Context, prompt string, _ int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Prompts = append(s.Prompts, prompt)
	idx := s.calls
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	s.calls++

	if idx < 0 {
		return "", nil
	}
	r := s.script[idx]
	return r.Output, r.Err
}

// Calls reports how many times Generate has been invoked.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
