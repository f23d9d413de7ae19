package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/httpclient"
)

// MockHTTPClient implements a mock HTTP client for testing. It mirrors the
// DefaultClient contract: responses with status >= 400 come back as an
// httpclient.Error, and unregistered URLs fail like an unreachable host.
type MockHTTPClient struct {
	mu       sync.Mutex
	routes   map[string]*mockRoute
	requests []*httpclient.Request
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

type mockRoute struct {
	responses []MockResponse
	next      int
	calls     int
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]*mockRoute),
	}
}

// RegisterResponse registers a mock response for a given URL suffix
func (m *MockHTTPClient) RegisterResponse(url string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = &mockRoute{responses: []MockResponse{resp}}
}

// RegisterSequence registers a series of responses returned in order on
// successive calls. The final response repeats once the series is consumed,
// which lets tests model an agent that fails and then recovers.
func (m *MockHTTPClient) RegisterSequence(url string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = &mockRoute{responses: responses}
}

// RegisterJSONResponse is a helper to register a JSON response
func (m *MockHTTPClient) RegisterJSONResponse(url string, statusCode int, body interface{}) {
	data, _ := json.Marshal(body)
	m.RegisterResponse(url, MockResponse{
		StatusCode: statusCode,
		Body:       data,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reqCopy := *req
	m.requests = append(m.requests, &reqCopy)

	// Find the matching route
	var matched *mockRoute
	for route, mock := range m.routes {
		if strings.HasSuffix(req.URL, route) {
			matched = mock
			break
		}
	}

	if matched == nil || len(matched.responses) == 0 {
		return nil, ierr.NewErrorf("no mock response registered for %s", req.URL).
			WithHint("Agent could not be reached").
			Mark(ierr.ErrHTTPClient)
	}

	matched.calls++
	resp := matched.responses[matched.next]
	if matched.next < len(matched.responses)-1 {
		matched.next++
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, httpclient.NewError(resp.StatusCode, resp.Body)
	}

	return &httpclient.Response{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Headers:    resp.Headers,
	}, nil
}

// CallCount returns how many times the route registered under url was hit
func (m *MockHTTPClient) CallCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if route, ok := m.routes[url]; ok {
		return route.calls
	}
	return 0
}

// Requests returns every request the client has seen, in order
func (m *MockHTTPClient) Requests() []*httpclient.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*httpclient.Request{}, m.requests...)
}

// LastRequest returns the most recent request, or nil when none were made
func (m *MockHTTPClient) LastRequest() *httpclient.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]*mockRoute)
	m.requests = nil
}
