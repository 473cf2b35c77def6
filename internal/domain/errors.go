package domain

import (
	"errors"
	"net/http"
)

// Error codes for client and platform errors.
const (
	CodeNotFound       = 1
	CodeValidation     = 2
	CodeUnauthorized   = 3
	CodeNetwork        = 4
	CodeNotImplemented = 5
	CodeInternal       = 6
)

// AppError represents a platform error with a code, message, and optional wrapped error.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined platform errors.
//
// To check whether an error matches one of these categories, use the
// corresponding helper function (IsNotFound, IsUnauthorized, etc.)
// instead of errors.Is. The helpers use errors.As with error-code
// comparison, so they correctly match any *AppError that carries the
// same code, including freshly constructed instances from NewAppError
// and wrapped errors, whereas errors.Is only matches by pointer
// identity with the specific sentinel below.
var (
	ErrNotFound       = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrValidation     = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrUnauthorized   = &AppError{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrNetwork        = &AppError{Code: CodeNetwork, Message: "network failure"}
	ErrNotImplemented = &AppError{Code: CodeNotImplemented, Message: "not implemented"}
	ErrInternal       = &AppError{Code: CodeInternal, Message: "internal error"}
)

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsNotFound reports whether err is or wraps an AppError with CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation reports whether err is or wraps an AppError with CodeValidation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsUnauthorized reports whether err is or wraps an AppError with CodeUnauthorized.
func IsUnauthorized(err error) bool {
	return hasCode(err, CodeUnauthorized)
}

// IsNetwork reports whether err is or wraps an AppError with CodeNetwork.
func IsNetwork(err error) bool {
	return hasCode(err, CodeNetwork)
}

// IsNotImplemented reports whether err is or wraps an AppError with CodeNotImplemented.
func IsNotImplemented(err error) bool {
	return hasCode(err, CodeNotImplemented)
}

// IsInternal reports whether err is or wraps an AppError with CodeInternal.
func IsInternal(err error) bool {
	return hasCode(err, CodeInternal)
}

// hasCode checks whether err is or wraps an *AppError with the given code.
func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatusCode maps an error to an HTTP status code.
// If the error is an *AppError, the code is mapped; otherwise http.StatusInternalServerError is returned.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if err != nil && errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return http.StatusNotFound
		case CodeValidation:
			return http.StatusBadRequest
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeNotImplemented:
			return http.StatusNotImplemented
		case CodeNetwork:
			return http.StatusBadGateway
		case CodeInternal:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// CodeFromHTTPStatus maps an HTTP response status to an error code.
// It is the inverse of HTTPStatusCode for the statuses the platform emits.
func CodeFromHTTPStatus(status int) int {
	switch {
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return CodeValidation
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CodeUnauthorized
	case status == http.StatusNotImplemented:
		return CodeNotImplemented
	default:
		return CodeInternal
	}
}
