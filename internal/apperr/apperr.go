// Package apperr defines the application error taxonomy.
// Every failure that can cross the handler boundary is carried by *Error,
// a tagged value holding the HTTP status and stable code for its kind.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	// KindHeader is a request rejected by the header gate.
	KindHeader Kind = "header"
	// KindParam is a request rejected by the path-parameter gate.
	KindParam Kind = "param"
	// KindGeneric is a domain or persistence failure.
	KindGeneric Kind = "generic"
	// KindUpstream is a failed outbound HTTP call.
	KindUpstream Kind = "upstream"
)

// Stable error codes per kind.
const (
	CodeHeader  = "ERR_HEADER"
	CodeParam   = "ERR_PARAM"
	CodeGeneric = "ERR_GENERIC"
)

// Error is the single error type crossing component boundaries.
// Component and Op identify where the failure originated.
type Error struct {
	Kind       Kind
	HTTPStatus int
	Code       string
	Message    string
	Component  string
	Op         string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Component, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Component, e.Op, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Header builds a header-gate error (400, ERR_HEADER).
func Header(message, component, op string) *Error {
	return &Error{
		Kind:       KindHeader,
		HTTPStatus: http.StatusBadRequest,
		Code:       CodeHeader,
		Message:    message,
		Component:  component,
		Op:         op,
	}
}

// Param builds a parameter-gate error (403, ERR_PARAM).
func Param(message, component, op string) *Error {
	return &Error{
		Kind:       KindParam,
		HTTPStatus: http.StatusForbidden,
		Code:       CodeParam,
		Message:    message,
		Component:  component,
		Op:         op,
	}
}

// Generic wraps a domain or persistence failure (500, ERR_GENERIC).
// The original message is preserved; err may be nil.
func Generic(message, component, op string, err error) *Error {
	return &Error{
		Kind:       KindGeneric,
		HTTPStatus: http.StatusInternalServerError,
		Code:       CodeGeneric,
		Message:    message,
		Component:  component,
		Op:         op,
		Err:        err,
	}
}

// Upstream wraps a failed outbound HTTP call (500). code carries the
// transport error code (e.g. the HTTP status text or a dial error class).
func Upstream(message, code, component, op string, err error) *Error {
	return &Error{
		Kind:       KindUpstream,
		HTTPStatus: http.StatusInternalServerError,
		Code:       code,
		Message:    message,
		Component:  component,
		Op:         op,
		Err:        err,
	}
}

// StatusOf returns the HTTP status an error maps to at the boundary.
// Untyped errors default to 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-visible message for an error.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
