/*
Package canopy is a small, deterministic task-orchestration pipeline that
turns a natural-language UI request into generated markup, validates the
result, and retries generation a bounded number of times.

The pipeline is a fixed graph of five stages operating on one shared state
record, executed synchronously to completion for each request:

	guard -> blocked (terminal)
	guard -> design -> generate -> validate -> done (terminal)
	                      ^_________________|  (bounded retry)

The guard scans the request against a denylist before any work happens and
cannot be bypassed. Generation calls an external text-generation service
through the TextGenerator port; without a credential the deterministic
fallback generator is used, so the whole pipeline runs offline.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/canopy"
	)

	func main() {
		pipe := canopy.New()

		state, err := pipe.Run(context.Background(), "Build a login page with email and password")
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(state.Verdict)
		fmt.Println(state.GeneratedCode)
	}

To use a real generation service, inject the Anthropic adapter:

	pipe := canopy.New(
		canopy.WithGenerator(anthropic.NewClient(apiKey)),
	)

All failures end up in the returned state: a guard rejection sets LastError
and leaves generation untouched, a service fault is recorded and retried
through the normal validation loop, and an exhausted run keeps its last
failing verdict for inspection. A run always reaches a terminal stage.
*/
package canopy
