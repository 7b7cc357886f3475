package domain

import "strings"

// GuardPolicy configures the pre-flight safety filter. The denylist is
// matched case-insensitively as plain substrings, first hit wins.
type GuardPolicy struct {
	Denylist []string `json:"denylist" yaml:"denylist"`
}

// DefaultGuardPolicy returns the stock denylist of unsafe phrases.
func DefaultGuardPolicy() GuardPolicy {
	return GuardPolicy{
		Denylist: []string{
			"delete all", "drop table", "rm -rf",
			"format disk", "shutdown", "hack",
			"steal", "inject", "bypass security",
		},
	}
}

// Match returns the first denylisted phrase contained in the request,
// or "" when the request is clean.
func (p GuardPolicy) Match(request string) string {
	lowered := strings.ToLower(request)
	for _, phrase := range p.Denylist {
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return phrase
		}
	}
	return ""
}

// RetryPolicy bounds the regeneration loop.
type RetryPolicy struct {
	// MaxAttempts is the retry ceiling: how many times a failed validation
	// may route back into generation. The first generation does not count.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
}

// DefaultRetryPolicy returns the stock ceiling of two regenerations.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2}
}

// Decide applies the controller rules to the current verdict and counter.
func (p RetryPolicy) Decide(verdict *Verdict, retryCount int) RetryDecision {
	if verdict != nil && verdict.Passed {
		return RetryDone
	}
	if retryCount >= p.MaxAttempts {
		return RetryDone
	}
	return RetryAgain
}
