// Package companion holds the domain types shared across the pinkhoney
// backend: the canonical error taxonomy and the account entity.
package companion

import (
	"errors"
	"fmt"
)

// Error is the canonical API error carried through handlers and services.
type Error struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Param     string    `json:"param,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Cause     error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error wrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes errors.
type ErrorType string

const (
	ErrInvalidRequest      ErrorType = "invalid_request_error"
	ErrNotFound            ErrorType = "not_found_error"
	ErrStoreUnavailable    ErrorType = "store_unavailable_error"
	ErrProviderUnavailable ErrorType = "provider_unavailable_error"
	ErrCheckoutFailed      ErrorType = "checkout_failed_error"
	ErrConflict            ErrorType = "conflict_error"
	ErrAPI                 ErrorType = "api_error"
)

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(message string) *Error {
	return &Error{Type: ErrInvalidRequest, Message: message}
}

// NewInvalidRequestErrorWithParam creates an invalid request error naming the
// offending parameter.
func NewInvalidRequestErrorWithParam(message, param string) *Error {
	return &Error{Type: ErrInvalidRequest, Message: message, Param: param}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *Error {
	return &Error{Type: ErrNotFound, Message: message}
}

// NewStoreUnavailableError wraps a failed document-store call. The cause is
// preserved for logging but never fabricated into a response.
func NewStoreUnavailableError(cause error) *Error {
	return &Error{Type: ErrStoreUnavailable, Message: "account store unreachable", Cause: cause}
}

// NewProviderUnavailableError wraps a failed hosted-service call.
func NewProviderUnavailableError(provider string, cause error) *Error {
	return &Error{Type: ErrProviderUnavailable, Message: provider + " unreachable", Cause: cause}
}

// NewCheckoutFailedError wraps a failed checkout session creation.
func NewCheckoutFailedError(cause error) *Error {
	return &Error{Type: ErrCheckoutFailed, Message: "checkout session creation failed", Cause: cause}
}

// NewAPIError creates a generic API error.
func NewAPIError(message string) *Error {
	return &Error{Type: ErrAPI, Message: message}
}

// IsType reports whether err carries the given taxonomy type.
func IsType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool {
	return IsType(err, ErrNotFound)
}
