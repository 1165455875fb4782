// Package error defines domain-specific errors for the Kora assistant.
package error

import "errors"

// Advisor (conversational layer) domain errors.
var (
	// ErrAdvisorUnavailable is returned when the AI advisor is not configured.
	ErrAdvisorUnavailable = errors.New("advisor service is not available")

	// ErrEmptyQuestion is returned when an advisor request has no question text.
	ErrEmptyQuestion = errors.New("question cannot be empty")
)

// AdvisorErrorCode defines error codes for advisor errors.
// Format: ADV-XXYYYY where XX is category and YYYY is specific error.
type AdvisorErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyQuestion AdvisorErrorCode = "ADV-010001"

	// Service errors (02XXXX)
	ErrCodeAdvisorUnavailable AdvisorErrorCode = "ADV-020001"
	ErrCodeAdvisorFailed      AdvisorErrorCode = "ADV-020002"
)

// AdvisorError represents an advisor error with code and message.
type AdvisorError struct {
	Code    AdvisorErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AdvisorError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AdvisorError) Unwrap() error {
	return e.Err
}

// NewAdvisorError creates a new AdvisorError with the given code and message.
func NewAdvisorError(code AdvisorErrorCode, message string, err error) *AdvisorError {
	return &AdvisorError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
