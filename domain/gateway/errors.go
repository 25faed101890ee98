// Package gateway provides the error model and upstream response
// normalization for the gateway layer. This package has NO dependencies
// on I/O or external packages.
package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind classifies a gateway error.
type Kind string

const (
	// KindAuthRequired means no session credential was present.
	// The request never reaches the upstream.
	KindAuthRequired Kind = "auth_required"

	// KindValidation means a local schema check or an upstream 422
	// rejected the request. Carries field-level detail.
	KindValidation Kind = "validation_failed"

	// KindUpstream means the upstream returned a non-2xx status other
	// than 422. Status and message are passed through.
	KindUpstream Kind = "upstream_failed"

	// KindInternal covers network errors, parse errors, and unhandled
	// failures. Always 500 with a generic message.
	KindInternal Kind = "internal_failure"
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the normalized gateway error (value type).
// Details holds structured validation info when Kind is KindValidation.
type Error struct {
	Kind       Kind
	Status     int
	StatusText string
	Message    string
	Details    json.RawMessage
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway error %d (%s): %s", e.Status, e.Kind, e.Message)
}

// ErrAuthRequired returns the error for a missing session credential.
func ErrAuthRequired() *Error {
	return &Error{
		Kind:       KindAuthRequired,
		Status:     http.StatusUnauthorized,
		StatusText: http.StatusText(http.StatusUnauthorized),
		Message:    "Authentication required",
	}
}

// ErrInternal returns the generic internal failure error. The cause is
// logged by the caller, never surfaced to the client.
func ErrInternal() *Error {
	return &Error{
		Kind:       KindInternal,
		Status:     http.StatusInternalServerError,
		StatusText: http.StatusText(http.StatusInternalServerError),
		Message:    "Internal server error",
	}
}

// ValidationError builds a local validation error from field errors.
func ValidationError(fields []FieldError) *Error {
	details, _ := json.Marshal(fields)
	return &Error{
		Kind:       KindValidation,
		Status:     http.StatusUnprocessableEntity,
		StatusText: http.StatusText(http.StatusUnprocessableEntity),
		Message:    "Validation failed",
		Details:    details,
	}
}

// AsError extracts an *Error from err, converting unknown errors into
// the generic internal failure. Handlers call this at their outer
// boundary so a well-formed error response is always produced.
func AsError(err error) *Error {
	if gerr, ok := err.(*Error); ok {
		return gerr
	}
	return ErrInternal()
}
