// Package envelope wraps every API response in {"success": ..., ...}.
package envelope

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
)

// Success is the body of every 2xx response.
type Success[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

func OK[T any](data T) Success[T] {
	return Success[T]{Success: true, Data: data}
}

type ErrorDetail struct {
	Code    string `json:"code" example:"NOT_FOUND"`
	Message string `json:"message"`
}

// Error is the body of every non-2xx response. It replaces huma's problem
// details so validation and routing failures share the record API's shape.
type Error struct {
	status  int
	Success bool        `json:"success" example:"false"`
	Detail  ErrorDetail `json:"error"`
}

func (e *Error) Error() string {
	return e.Detail.Message
}

func (e *Error) GetStatus() int {
	return e.status
}

// NewError has the signature of huma.NewError.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		msg = "internal server error"
	}

	return &Error{
		status:  status,
		Success: false,
		Detail:  ErrorDetail{Code: Code(status), Message: msg},
	}
}

// Install makes huma build every error through NewError.
func Install() {
	huma.NewError = NewError
}

// Code maps an HTTP status to the API error code.
func Code(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	}
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
