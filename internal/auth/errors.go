package auth

import (
	"errors"
	"fmt"
)

// AuthError represents errors raised by authentication operations
type AuthError struct {
	Type    string
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth error [%s]: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("auth error [%s]: %s", e.Type, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// Auth error types
const (
	ErrorTypeValidationFailed   = "validation_failed"
	ErrorTypeEmailTaken         = "email_taken"
	ErrorTypeInvalidCredentials = "invalid_credentials"
	ErrorTypeInvalidToken       = "invalid_token"
	ErrorTypeStorageFailed      = "storage_failed"
)

// NewValidationError creates an error for a malformed sign-up or sign-in request
func NewValidationError(message string) *AuthError {
	return &AuthError{
		Type:    ErrorTypeValidationFailed,
		Message: message,
	}
}

// NewEmailTakenError creates an error for a duplicate registration
func NewEmailTakenError(email string) *AuthError {
	return &AuthError{
		Type:    ErrorTypeEmailTaken,
		Message: fmt.Sprintf("an account already exists for %s", email),
	}
}

// NewInvalidCredentialsError creates an error for a failed sign-in
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		Type:    ErrorTypeInvalidCredentials,
		Message: "email or password is incorrect",
	}
}

// NewInvalidTokenError creates an error for a missing, unknown or expired token
func NewInvalidTokenError() *AuthError {
	return &AuthError{
		Type:    ErrorTypeInvalidToken,
		Message: "session token is invalid or expired",
	}
}

// NewStorageError creates an error wrapping a failed persistence call
func NewStorageError(operation string, cause error) *AuthError {
	return &AuthError{
		Type:    ErrorTypeStorageFailed,
		Message: fmt.Sprintf("persistence call %s failed", operation),
		Cause:   cause,
	}
}

// ErrorType extracts the auth error type from err, or "" when err is not an
// AuthError
func ErrorType(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Type
	}
	return ""
}
