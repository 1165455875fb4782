// Package error defines domain-specific errors for the Kora assistant.
package error

import "errors"

// Financial profile domain errors.
var (
	// ErrProfileNotFound is returned when a financial profile is not found.
	ErrProfileNotFound = errors.New("financial profile not found")

	// ErrFixedExpenseNotFound is returned when a fixed expense is not found.
	ErrFixedExpenseNotFound = errors.New("fixed expense not found")

	// ErrInvalidExpenseAmount is returned when a fixed expense amount is not positive.
	ErrInvalidExpenseAmount = errors.New("expense amount must be greater than zero")

	// ErrEmptyExpenseName is returned when a fixed expense has no name.
	ErrEmptyExpenseName = errors.New("expense name cannot be empty")

	// ErrInvalidDueDay is returned when a due day falls outside 1-31.
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrInvalidIncome is returned when monthly income is not positive.
	ErrInvalidIncome = errors.New("income must be greater than zero")
)

// ProfileErrorCode defines error codes for profile errors.
// Format: PRF-XXYYYY where XX is category and YYYY is specific error.
type ProfileErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount ProfileErrorCode = "PRF-010001"
	ErrCodeEmptyExpenseName     ProfileErrorCode = "PRF-010002"
	ErrCodeInvalidDueDay        ProfileErrorCode = "PRF-010003"
	ErrCodeInvalidIncome        ProfileErrorCode = "PRF-010004"
	ErrCodeInvalidPayday        ProfileErrorCode = "PRF-010005"

	// Lookup errors (02XXXX)
	ErrCodeProfileNotFound      ProfileErrorCode = "PRF-020001"
	ErrCodeFixedExpenseNotFound ProfileErrorCode = "PRF-020002"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError with the given code and message.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
