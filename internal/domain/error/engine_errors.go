// Package error defines domain-specific errors for the Kora assistant.
package error

import "errors"

// Financial state engine domain errors. These are caller contract
// violations: invalid configuration is never silently coerced to a default.
var (
	// ErrInvalidPaydayDay is returned when a payday day-of-month falls outside 1-31.
	ErrInvalidPaydayDay = errors.New("payday day must be between 1 and 31")

	// ErrPaydayNotSet is returned when a safe-spend calculation is requested
	// before the profile has a payday configured.
	ErrPaydayNotSet = errors.New("payday is not configured")

	// ErrIncomeNotSet is returned when a calculation requiring monthly income
	// is requested before the profile has income configured.
	ErrIncomeNotSet = errors.New("income is not configured")
)

// EngineErrorCode defines error codes for engine errors.
// Format: ENG-XXYYYY where XX is category and YYYY is specific error.
type EngineErrorCode string

const (
	// Invalid argument errors (01XXXX)
	ErrCodeInvalidPaydayDay EngineErrorCode = "ENG-010001"
	ErrCodePaydayNotSet     EngineErrorCode = "ENG-010002"
	ErrCodeIncomeNotSet     EngineErrorCode = "ENG-010003"
)

// EngineError represents a financial state engine error with code and message.
type EngineError struct {
	Code    EngineErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError with the given code and message.
func NewEngineError(code EngineErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
