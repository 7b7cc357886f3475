package domain

import "strings"

// Validation reasons reported by the validate stage. The list is exhaustive:
// every missing marker is reported, not just the first one found.
const (
	ReasonNoCode        = "No code was generated"
	ReasonMissingForm   = "Missing form element"
	ReasonMissingInput  = "Missing input fields"
	ReasonMissingSubmit = "Missing submit button"
)

// Verdict is the outcome of validating a generation attempt.
type Verdict struct {
	Passed  bool     `json:"passed" yaml:"passed"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Pass returns a passing verdict.
func Pass() *Verdict {
	return &Verdict{Passed: true}
}

// Fail returns a failing verdict carrying the given reasons.
func Fail(reasons ...string) *Verdict {
	return &Verdict{Missing: reasons}
}

// String renders the verdict in its canonical report form.
func (v *Verdict) String() string {
	if v == nil {
		return ""
	}
	if v.Passed {
		return "All tests passed"
	}
	return "FAILED: " + strings.Join(v.Missing, ", ")
}
