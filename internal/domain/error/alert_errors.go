// Package error defines domain-specific errors for the Kora assistant.
package error

import "errors"

// Alert delivery domain errors.
var (
	// ErrAlertJobNotFound is returned when an alert job is not found in the queue.
	ErrAlertJobNotFound = errors.New("alert job not found")

	// ErrInvalidLimit is returned when a spending limit is not positive.
	ErrInvalidLimit = errors.New("spending limit must be greater than zero")
)

// AlertErrorCode defines error codes for alert errors.
// Format: ALR-XXYYYY where XX is category and YYYY is specific error.
type AlertErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidLimit AlertErrorCode = "ALR-010001"

	// Delivery errors (02XXXX)
	ErrCodeAlertJobNotFound       AlertErrorCode = "ALR-020001"
	ErrCodeTemporaryAlertFailure  AlertErrorCode = "ALR-020002"
	ErrCodePermanentAlertFailure  AlertErrorCode = "ALR-020003"
)

// AlertError represents an alert error with code and message.
type AlertError struct {
	Code    AlertErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AlertError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AlertError) Unwrap() error {
	return e.Err
}

// NewAlertError creates a new AlertError with the given code and message.
func NewAlertError(code AlertErrorCode, message string, err error) *AlertError {
	return &AlertError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
