package swaps

import (
	"errors"
	"fmt"
)

// Error types for swap lifecycle operations

// SwapError represents errors raised by swap lifecycle operations
type SwapError struct {
	Type    string
	SwapID  string
	Message string
	Cause   error
}

func (e *SwapError) Error() string {
	if e.Cause != nil {
		if e.SwapID != "" {
			return fmt.Sprintf("swap error [%s] for swap %s: %s (caused by: %v)", e.Type, e.SwapID, e.Message, e.Cause)
		}
		return fmt.Sprintf("swap error [%s]: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	if e.SwapID != "" {
		return fmt.Sprintf("swap error [%s] for swap %s: %s", e.Type, e.SwapID, e.Message)
	}
	return fmt.Sprintf("swap error [%s]: %s", e.Type, e.Message)
}

func (e *SwapError) Unwrap() error {
	return e.Cause
}

// Swap error types
const (
	ErrorTypeValidationFailed  = "validation_failed"
	ErrorTypeNotAuthenticated  = "not_authenticated"
	ErrorTypeNotAuthorized     = "not_authorized"
	ErrorTypeInvalidTransition = "invalid_transition"
	ErrorTypeNotFound          = "not_found"
	ErrorTypeStorageFailed     = "storage_failed"
)

// NewValidationError creates an error for a missing or malformed field
func NewValidationError(message string) *SwapError {
	return &SwapError{
		Type:    ErrorTypeValidationFailed,
		Message: message,
	}
}

// NewNotAuthenticatedError creates an error for operations without an actor
func NewNotAuthenticatedError() *SwapError {
	return &SwapError{
		Type:    ErrorTypeNotAuthenticated,
		Message: "no authenticated actor present",
	}
}

// NewNotAuthorizedError creates an error for an actor not permitted to
// perform the requested transition
func NewNotAuthorizedError(swapID, actorID string, target Status) *SwapError {
	return &SwapError{
		Type:    ErrorTypeNotAuthorized,
		SwapID:  swapID,
		Message: fmt.Sprintf("actor %s is not permitted to move this request to %s", actorID, target),
	}
}

// NewInvalidTransitionError creates an error for a transition out of a
// terminal state
func NewInvalidTransitionError(swapID string, from, to Status) *SwapError {
	return &SwapError{
		Type:    ErrorTypeInvalidTransition,
		SwapID:  swapID,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// NewNotFoundError creates an error for a missing swap request
func NewNotFoundError(swapID string) *SwapError {
	return &SwapError{
		Type:    ErrorTypeNotFound,
		SwapID:  swapID,
		Message: "swap request not found",
	}
}

// NewStorageError creates an error wrapping a failed persistence call
func NewStorageError(operation string, cause error) *SwapError {
	return &SwapError{
		Type:    ErrorTypeStorageFailed,
		Message: fmt.Sprintf("persistence call %s failed", operation),
		Cause:   cause,
	}
}

// ErrorType extracts the swap error type from err, or "" when err is not a
// SwapError
func ErrorType(err error) string {
	var swapErr *SwapError
	if errors.As(err, &swapErr) {
		return swapErr.Type
	}
	return ""
}
