package router

import (
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/httpclient"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldRetry(t *testing.T) {
	log := logger.GetLogger()

	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "http 429 retries",
			err:      httpclient.NewError(http.StatusTooManyRequests, []byte("slow down")),
			expected: true,
		},
		{
			name:     "http 502 retries",
			err:      httpclient.NewError(http.StatusBadGateway, nil),
			expected: true,
		},
		{
			name:     "http 503 retries",
			err:      httpclient.NewError(http.StatusServiceUnavailable, nil),
			expected: true,
		},
		{
			name:     "http 504 retries",
			err:      httpclient.NewError(http.StatusGatewayTimeout, nil),
			expected: true,
		},
		{
			name:     "http 400 does not retry",
			err:      httpclient.NewError(http.StatusBadRequest, []byte("bad payload")),
			expected: false,
		},
		{
			name:     "http 500 does not retry",
			err:      httpclient.NewError(http.StatusInternalServerError, nil),
			expected: false,
		},
		{
			name:     "network timeout retries",
			err:      &net.DNSError{Err: "i/o timeout", IsTimeout: true},
			expected: true,
		},
		{
			name:     "validation errors do not retry",
			err:      ierr.NewError("bad event").Mark(ierr.ErrValidation),
			expected: false,
		},
		{
			name:     "not found errors do not retry",
			err:      ierr.NewError("no such agent").Mark(ierr.ErrNotFound),
			expected: false,
		},
		{
			name:     "unknown errors retry",
			err:      errors.New("broker write failed"),
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shouldRetry(log, tc.err))
		})
	}
}

func TestRetryGate(t *testing.T) {
	gate := NewRetryGate(logger.GetLogger())

	run := func(handlerErr error) error {
		h := gate(func(msg *message.Message) ([]*message.Message, error) {
			return nil, handlerErr
		})
		_, err := h(message.NewMessage("uuid-1", nil))
		return err
	}

	t.Run("successes pass through", func(t *testing.T) {
		require.NoError(t, run(nil))
	})

	t.Run("transient failures propagate for retry", func(t *testing.T) {
		err := run(httpclient.NewError(http.StatusServiceUnavailable, nil))
		require.Error(t, err)
	})

	t.Run("permanent failures are acked", func(t *testing.T) {
		// The gate swallows the error so the message is not redelivered
		require.NoError(t, run(httpclient.NewError(http.StatusBadRequest, nil)))
	})
}
