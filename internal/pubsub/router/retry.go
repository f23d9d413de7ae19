package router

import (
	"net"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/httpclient"
	"github.com/ekko-ai/agentgate/internal/logger"
)

// NewRetryGate returns a handler middleware that acks messages whose
// delivery failed in a way a retry cannot fix, so only transient
// failures reach the router's retry middleware.
func NewRetryGate(logger *logger.Logger) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			msgs, err := h(msg)
			if err != nil && !shouldRetry(logger, err) {
				logger.Warnw("dropping message after non-retryable failure",
					"message_uuid", msg.UUID,
					"error", err,
				)
				return msgs, nil
			}
			return msgs, err
		}
	}
}

func shouldRetry(logger *logger.Logger, err error) bool {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		retry := retryableStatus(httpErr.StatusCode)
		logger.Debugw("alert delivery returned an HTTP error",
			"status_code", httpErr.StatusCode,
			"retryable", retry,
			"error", httpErr,
		)
		return retry
	}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		logger.Debugw("alert delivery timed out, retrying", "error", netErr)
		return true
	}

	// Validation, not found and permission failures never heal on retry
	if errors.IsValidation(err) ||
		errors.IsNotFound(err) ||
		errors.IsPermissionDenied(err) {
		return false
	}

	// Everything unrecognized retries so a glitch cannot drop an alert
	return true
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
