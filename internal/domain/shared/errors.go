package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrNotFound) matches errors built with a custom message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Domain error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInvalidState  = "INVALID_STATE"
	CodeUpstream      = "UPSTREAM_ERROR"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden     = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrUpstream      = NewDomainError(CodeUpstream, "Upstream service failure")
)

// NewValidationError returns an INVALID_INPUT error with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

// NewNotFoundError returns a NOT_FOUND error with the given message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewPermissionError returns a FORBIDDEN error with the given message
func NewPermissionError(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// NewUpstreamError wraps an upstream failure description
func NewUpstreamError(format string, args ...any) *DomainError {
	return NewDomainError(CodeUpstream, fmt.Sprintf(format, args...))
}

// IsNotFound reports whether err is a NOT_FOUND domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsForbidden reports whether err is a FORBIDDEN domain error
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation reports whether err is an INVALID_INPUT domain error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
