// Package apperr defines the error taxonomy surfaced by the REST layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation  Code = "VALIDATION_ERROR"
	CodeNotFound    Code = "NOT_FOUND"
	CodeProvider    Code = "PROVIDER_ERROR"
	CodeCatalogLoad Code = "CATALOG_LOAD_ERROR"
	CodeInternal    Code = "INTERNAL_ERROR"
)

// Error is a caller-facing error with a stable code and an HTTP-equivalent
// status. Provider and catalog-load errors are recovered internally and
// should never reach a response.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewValidation(format string, args ...any) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
		Status:  http.StatusBadRequest,
	}
}

func NewNotFound(format string, args ...any) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf(format, args...),
		Status:  http.StatusNotFound,
	}
}

func NewProvider(message string, cause error) *Error {
	return &Error{
		Code:    CodeProvider,
		Message: message,
		Status:  http.StatusBadGateway,
		cause:   cause,
	}
}

func NewCatalogLoad(message string, cause error) *Error {
	return &Error{
		Code:    CodeCatalogLoad,
		Message: message,
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
}

// StatusOf maps any error to its HTTP status, defaulting to 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == CodeNotFound
}

func IsValidation(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == CodeValidation
}
