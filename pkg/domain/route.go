package domain

// RouteDecision is the closed set of labels the post-guard router can emit.
type RouteDecision string

const (
	// RouteProceed continues into the design/generate/validate branch.
	RouteProceed RouteDecision = "proceed"
	// RouteBlocked short-circuits to the blocked terminator. This is the
	// defensive default whenever the guard outcome is anything but a pass.
	RouteBlocked RouteDecision = "blocked"
)

// RetryDecision is the closed set of labels the retry controller can emit.
type RetryDecision string

const (
	// RetryDone terminates the run: either the verdict passed or the retry
	// ceiling was reached.
	RetryDone RetryDecision = "done"
	// RetryAgain routes back into the generate stage.
	RetryAgain RetryDecision = "retry"
)
