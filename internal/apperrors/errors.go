package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the operation conflicts with the resource's current state.
var ErrConflict = errors.New("conflict with current state")

// ErrUnbalancedJournal indicates a journal whose debits and credits do not
// sum to the same total. Nothing is persisted when this is returned.
var ErrUnbalancedJournal = errors.New("journal debits and credits do not balance")

// ErrInvalidAccount indicates a referenced account number does not resolve to
// an active account.
var ErrInvalidAccount = errors.New("invalid or unknown account")

// ErrInsufficientBalance indicates a posting would drive a balance-constrained
// account's running balance negative.
var ErrInsufficientBalance = errors.New("insufficient account balance")

// ErrDuplicatePosting indicates a journal already exists for the source
// reference. Callers treat this as success-with-existing-journal, not failure.
var ErrDuplicatePosting = errors.New("journal already posted for source reference")

// AppError wraps a lower-level error with a code and message. Used by the
// database adapters so infrastructure failures carry context upward.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
