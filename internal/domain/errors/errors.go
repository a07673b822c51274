package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a DomainError
type ErrorType string

const (
	// ErrorTypeValidation marks a caller contract violation (bad prefix, metric, name or config)
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound marks a mutation aimed at an interface the kernel does not know
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeSystem marks an unavailable resource (netlink handle, namespace, resolver file)
	ErrorTypeSystem ErrorType = "SYSTEM"

	// ErrorTypeNetwork marks a rejected external action (kernel refused, tool exited non-zero)
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeTimeout marks an external command that outlived its timeout
	ErrorTypeTimeout ErrorType = "TIMEOUT"
)

// DomainError is the single error type returned across the adapter boundary
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches on the error type only, so errors.Is(err, &DomainError{Type: ErrorTypeSystem}) works
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError creates a system error
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeSystem,
		Message: message,
		Cause:   cause,
	}
}

// NewNetworkError creates a network error
func NewNetworkError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeNetwork,
		Message: message,
		Cause:   cause,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeTimeout,
		Message: message,
	}
}

// TypeOf returns the ErrorType of err, or "" if err is not a DomainError
func TypeOf(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// IsValidationError reports whether err is a validation error
func IsValidationError(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsNotFoundError reports whether err is a not-found error
func IsNotFoundError(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsSystemError reports whether err is a system error
func IsSystemError(err error) bool {
	return TypeOf(err) == ErrorTypeSystem
}

// IsNetworkError reports whether err is a network error
func IsNetworkError(err error) bool {
	return TypeOf(err) == ErrorTypeNetwork
}

// IsTimeoutError reports whether err is a timeout error
func IsTimeoutError(err error) bool {
	return TypeOf(err) == ErrorTypeTimeout
}
