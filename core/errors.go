package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is raised before any network call when local input is invalid.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	if len(err.Fields) > 0 {
		return err.Fields[0].Field + ": " + err.Fields[0].Error
	}
	return "invalid input"
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func NewAPIError(status int, msg string) error {
	return &APIError{Status: status, Message: msg}
}

func (err APIError) Error() string {
	msg := err.Message
	if msg == "" {
		msg = http.StatusText(err.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", err.Status, msg)
}

// NetworkError means the request never completed (no response received).
type NetworkError struct {
	Op  string
	Err error
}

func NewNetworkError(op string, err error) error {
	return &NetworkError{Op: op, Err: err}
}

func (err NetworkError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err NetworkError) Unwrap() error { return err.Err }

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// AsAPIError returns the underlying *APIError, if any.
func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := errors.Cause(err).(*APIError)
	return apiErr, ok
}

func IsNetworkError(err error) bool {
	_, ok := errors.Cause(err).(*NetworkError)
	return ok
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}
