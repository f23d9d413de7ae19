package httpclient

import (
	goerrors "errors"
	"net/http"

	"github.com/ekko-ai/agentgate/internal/errors"
)

// Error is an HTTP response with a non-2xx status, carrying the status
// code and raw body so callers can branch on them
type Error struct {
	*errors.InternalError
	StatusCode int
	Response   []byte
}

func (e *Error) Unwrap() error {
	return e.InternalError.Unwrap()
}

func (e *Error) Error() string {
	return e.InternalError.Error()
}

// NewError creates an Error for the given status code
func NewError(statusCode int, response []byte) *Error {
	msg := http.StatusText(statusCode)
	if msg == "" {
		msg = "http client error"
	}
	return &Error{
		InternalError: errors.New(errors.ErrCodeHTTPClient, msg),
		StatusCode:    statusCode,
		Response:      response,
	}
}

// IsHTTPError unwraps err to an *Error if there is one in the chain
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if goerrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsClientError reports whether the error is an HTTP error with a 4xx
// status. Client errors are never retried by the dispatcher.
func IsClientError(err error) bool {
	httpErr, ok := IsHTTPError(err)
	if !ok {
		return false
	}
	return httpErr.StatusCode >= 400 && httpErr.StatusCode < 500
}
