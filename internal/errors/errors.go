// Package errors provides structured error handling with context propagation and HTTP status code mapping.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tsawler/litsense"
)

// ErrorType represents the category of error for metrics and response formatting.
type ErrorType string

const (
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates resource not found (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeTimeout indicates the analysis ran past its deadline (HTTP 504)
	TypeTimeout ErrorType = "timeout"
	// TypeUnavailable indicates a disabled or unreachable dependency (HTTP 503)
	TypeUnavailable ErrorType = "unavailable"
	// TypeInternal indicates server-side error (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeTimeout:
		return http.StatusGatewayTimeout
	case TypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError creates a new validation error (HTTP 400).
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message, Context: make(map[string]any)}
}

// NotFoundError creates a new not-found error (HTTP 404).
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message, Context: make(map[string]any)}
}

// TimeoutError creates a new timeout error (HTTP 504).
func TimeoutError(message string, cause error) *Error {
	return &Error{Type: TypeTimeout, Message: message, Cause: cause, Context: make(map[string]any)}
}

// UnavailableError creates a new unavailable error (HTTP 503).
func UnavailableError(message string, cause error) *Error {
	return &Error{Type: TypeUnavailable, Message: message, Cause: cause, Context: make(map[string]any)}
}

// InternalError creates a new internal error (HTTP 500).
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause, Context: make(map[string]any)}
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrorResponse represents the JSON structure sent to clients.
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Type    ErrorType      `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

// ToResponse converts an Error to an ErrorResponse for JSON serialization.
func (e *Error) ToResponse() ErrorResponse {
	resp := ErrorResponse{
		Success: false,
		Error:   e.Message,
		Type:    e.Type,
	}
	if len(e.Context) > 0 {
		resp.Context = e.Context
	}
	return resp
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an internal error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal server error", err)
}

// FromAnalysis maps an error returned by the analysis library onto a
// structured error. The failing stage, when known, is added as context.
func FromAnalysis(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	var (
		result       *Error
		insufficient *litsense.InsufficientInputError
	)
	switch {
	case errors.As(err, &insufficient):
		result = ValidationError(insufficient.Reason)
	case errors.Is(err, litsense.ErrUnknownTextType),
		errors.Is(err, litsense.ErrUnknownAggregation),
		errors.Is(err, litsense.ErrInvalidChunkSize):
		result = ValidationError(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		result = TimeoutError("analysis timed out", err)
	case errors.Is(err, context.Canceled):
		result = UnavailableError("analysis was cancelled", err)
	default:
		result = InternalError("analysis failed", err)
	}

	if stage, ok := litsense.FailedStage(err); ok {
		result.WithContext("stage", string(stage))
	}
	return result
}
