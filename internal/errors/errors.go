package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

const (
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeAgentUnavailable = "agent_unavailable"
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeDatabase         = "database_error"
)

// Sentinel errors the rest of the gateway marks failures with
var (
	ErrNotFound         = New(ErrCodeNotFound, "resource not found")
	ErrValidation       = New(ErrCodeValidation, "validation error")
	ErrPermissionDenied = New(ErrCodePermissionDenied, "permission denied")
	ErrHTTPClient       = New(ErrCodeHTTPClient, "http client error")
	ErrAgentUnavailable = New(ErrCodeAgentUnavailable, "no agent available")
	ErrDatabase         = New(ErrCodeDatabase, "database error")
	ErrSystem           = New(ErrCodeSystemError, "system error")

	// resolves marked errors to response status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:       http.StatusBadGateway,
		ErrAgentUnavailable: http.StatusServiceUnavailable,
		ErrDatabase:         http.StatusInternalServerError,
		ErrNotFound:         http.StatusNotFound,
		ErrValidation:       http.StatusBadRequest,
		ErrPermissionDenied: http.StatusForbidden,
		ErrSystem:           http.StatusInternalServerError,
	}
)

// InternalError is the base type behind every sentinel. Matching is by
// Code, so two errors marked with the same sentinel compare equal under
// errors.Is no matter how they were wrapped.
type InternalError struct {
	Code    string
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
	}
	return e.DisplayError()
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is matches other InternalErrors by code and defers to the wrapped
// chain for everything else
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	other, ok := target.(*InternalError)
	if ok {
		return e.Code == other.Code
	}
	return errors.Is(e.Err, target)
}

// New creates an InternalError with the given code and message
func New(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound reports whether err is marked as a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is marked as a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPermissionDenied reports whether err is marked as a permission error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsHTTPClient reports whether err came from an upstream agent call
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsAgentUnavailable reports whether err means no agent could serve the
// request
func IsAgentUnavailable(err error) bool {
	return errors.Is(err, ErrAgentUnavailable)
}

// HTTPStatusFromErr resolves the response status for a marked error.
// Unmarked errors fall through to a 500.
func HTTPStatusFromErr(err error) int {
	for mark, status := range statusCodeMap {
		if errors.Is(err, mark) {
			return status
		}
	}
	return http.StatusInternalServerError
}
