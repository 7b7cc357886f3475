package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyRequest is returned when a run is started with a blank request.
var ErrEmptyRequest = errors.New("request is empty")

// ServiceError reports a failure of the external text-generation
// collaborator: network, auth or a malformed/empty response. It is the only
// fault the generate stage is allowed to surface; everything lower-level is
// converted at the adapter boundary.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation service: %s: %v", e.Message, e.Cause)
	}
	return "generation service: " + e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError wraps a lower-level fault as a ServiceError.
func NewServiceError(message string, cause error) *ServiceError {
	return &ServiceError{Message: message, Cause: cause}
}
