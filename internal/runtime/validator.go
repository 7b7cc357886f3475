package runtime

import (
	"strings"

	"github.com/aretw0/canopy/pkg/domain"
)

// validateMarkup inspects candidate markup for the three structural markers
// a usable form needs: a form-like container, at least one input-like field,
// and a submit-like control. Matching is case-insensitive substring presence
// only; no markup parsing happens here.
func validateMarkup(code string) *domain.Verdict {
	if strings.TrimSpace(code) == "" {
		return domain.Fail(domain.ReasonNoCode)
	}

	lowered := strings.ToLower(code)

	var missing []string
	if !strings.Contains(lowered, "form") {
		missing = append(missing, domain.ReasonMissingForm)
	}
	if !strings.Contains(lowered, "input") {
		missing = append(missing, domain.ReasonMissingInput)
	}
	if !strings.Contains(lowered, "button") && !strings.Contains(lowered, "submit") {
		missing = append(missing, domain.ReasonMissingSubmit)
	}

	if len(missing) > 0 {
		return domain.Fail(missing...)
	}
	return domain.Pass()
}
