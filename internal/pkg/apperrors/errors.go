// Package apperrors carries the error categories the HTTP layer maps to responses.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Category groups errors by who is at fault.
type Category string

const (
	// CategoryValidation is a malformed or invalid client request (4xx).
	CategoryValidation Category = "validation"
	// CategoryUpstream is a failing third-party dependency.
	CategoryUpstream Category = "upstream"
	// CategoryInternal is anything else on our side.
	CategoryInternal Category = "internal"
)

// CategorizedError is an error with a category, HTTP status and a client-safe message.
// Message is returned to callers verbatim; Cause is only logged.
type CategorizedError struct {
	Category   Category
	StatusCode int
	Code       string
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a 400 error for a bad request field.
func NewValidationError(code, message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       code,
		Message:    message,
	}
}

// NewUpstreamError creates a 500 error for a failed third-party call.
func NewUpstreamError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryUpstream,
		StatusCode: http.StatusInternalServerError,
		Code:       "UPSTREAM_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// NewInternalError creates a 500 error.
func NewInternalError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryInternal,
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// As extracts a CategorizedError from an error chain.
func As(err error) (*CategorizedError, bool) {
	var catErr *CategorizedError
	if errors.As(err, &catErr) {
		return catErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status for err, 500 when it is uncategorized.
func StatusCode(err error) int {
	if catErr, ok := As(err); ok {
		return catErr.StatusCode
	}
	return http.StatusInternalServerError
}
