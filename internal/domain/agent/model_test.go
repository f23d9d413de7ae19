package agent

import (
	"testing"

	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/assert"
)

func testAgent() *Agent {
	return &Agent{
		Type:           "contenu",
		Name:           "Content Creator Agent",
		BaseURL:        "http://localhost:5003",
		HealthEndpoint: "/health",
		Endpoints: map[string]string{
			"blog":    "/api/content/blog",
			"product": "/api/content/product",
		},
		Capabilities: []types.Capability{"blog-writing", "product-descriptions"},
		Status:       types.StatusPublished,
	}
}

func TestAgentValidate(t *testing.T) {
	tests := []struct {
		name          string
		agent         *Agent
		expectedError bool
	}{
		{
			name:          "valid_agent",
			agent:         testAgent(),
			expectedError: false,
		},
		{
			name: "missing_type",
			agent: &Agent{
				BaseURL: "http://localhost:5003",
			},
			expectedError: true,
		},
		{
			name: "missing_base_url",
			agent: &Agent{
				Type: "contenu",
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.agent.Validate()
			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAgentResolvePath(t *testing.T) {
	a := testAgent()

	tests := []struct {
		name          string
		endpoint      string
		expectedPath  string
		expectedError bool
	}{
		{
			name:         "raw_path_passes_through",
			endpoint:     "/api/custom/route",
			expectedPath: "/api/custom/route",
		},
		{
			name:         "named_operation_maps_to_path",
			endpoint:     "blog",
			expectedPath: "/api/content/blog",
		},
		{
			name:          "unknown_operation",
			endpoint:      "video",
			expectedError: true,
		},
		{
			name:          "empty_endpoint",
			endpoint:      "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := a.ResolvePath(tt.endpoint)
			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedPath, path)
			}
		})
	}
}

func TestAgentURL(t *testing.T) {
	a := testAgent()
	assert.Equal(t, "http://localhost:5003/api/content/blog", a.URL("/api/content/blog"))

	// A trailing slash on the base URL must not produce a double slash
	a.BaseURL = "http://localhost:5003/"
	assert.Equal(t, "http://localhost:5003/api/content/blog", a.URL("/api/content/blog"))
}

func TestAgentHealthURL(t *testing.T) {
	a := testAgent()
	assert.Equal(t, "http://localhost:5003/health", a.HealthURL())

	a.HealthEndpoint = "/healthz"
	assert.Equal(t, "http://localhost:5003/healthz", a.HealthURL())

	// Agents without an explicit health endpoint default to /health
	a.HealthEndpoint = ""
	assert.Equal(t, "http://localhost:5003/health", a.HealthURL())
}

func TestAgentResolveEndpoint(t *testing.T) {
	a := testAgent()

	url, err := a.ResolveEndpoint("blog")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:5003/api/content/blog", url)

	_, err = a.ResolveEndpoint("video")
	assert.Error(t, err)
}

func TestAgentHasCapability(t *testing.T) {
	a := testAgent()

	assert.True(t, a.HasCapability("blog-writing"))
	assert.True(t, a.HasCapability("product-descriptions"))
	assert.False(t, a.HasCapability("landing-pages"))
	assert.False(t, a.HasCapability(""))
}

func TestHealthErrorRate(t *testing.T) {
	tests := []struct {
		name         string
		successes    int64
		errors       int64
		expectedRate float64
	}{
		{
			name:         "no_traffic",
			expectedRate: 0,
		},
		{
			name:         "all_successes",
			successes:    10,
			expectedRate: 0,
		},
		{
			name:         "all_errors",
			errors:       4,
			expectedRate: 1,
		},
		{
			name:         "mixed_traffic",
			successes:    3,
			errors:       1,
			expectedRate: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Health{
				SuccessCount: tt.successes,
				ErrorCount:   tt.errors,
			}
			assert.Equal(t, tt.expectedRate, h.ErrorRate())
		})
	}
}
