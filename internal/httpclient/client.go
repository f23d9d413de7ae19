package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	ierr "github.com/ekko-ai/agentgate/internal/errors"
)

// DefaultTimeout bounds requests that carry no explicit timeout
const DefaultTimeout = 30 * time.Second

// Request is a transport agnostic description of an outbound call
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	// Timeout bounds this request only. Agents carry different budgets so
	// the limit is per request, not per client.
	Timeout time.Duration
}

// Response carries the status, body and flattened headers of a call
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Client sends requests to agents
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// DefaultClient is the stock net/http backed Client
type DefaultClient struct {
	client *http.Client
}

// NewDefaultClient returns a Client backed by a plain http.Client
func NewDefaultClient() Client {
	return &DefaultClient{
		client: &http.Client{},
	}
}

// Send performs the call and reads the full response body. Responses
// with a 4xx or 5xx status come back as an *Error instead of a
// Response so callers can branch on the status code.
func (c *DefaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Agent could not be reached").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Agent response could not be read").
			Mark(ierr.ErrHTTPClient)
	}

	if resp.StatusCode >= 400 {
		return nil, NewError(resp.StatusCode, payload)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       payload,
		Headers:    flattenHeader(resp.Header),
	}, nil
}

func (c *DefaultClient) build(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Request could not be constructed").
			Mark(ierr.ErrHTTPClient)
	}

	if len(req.Body) > 0 {
		httpReq.ContentLength = int64(len(req.Body))
		httpReq.Header.Set("Content-Type", "application/json")
	}
	// Caller headers last so they can override the defaults
	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}
	return httpReq, nil
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}
