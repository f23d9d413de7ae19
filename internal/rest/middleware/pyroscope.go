package middleware

import (
	"context"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// PyroscopeMiddleware tags request processing with profiling labels so the
// dispatch hot path can be broken down by route
func PyroscopeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Pyroscope.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		labelPairs := []string{
			"method", c.Request.Method,
			"endpoint", c.FullPath(),
			"handler", c.Request.Method + " " + c.FullPath(),
		}
		// Route parameters carry the agent type or capability on v1 routes
		for _, param := range c.Params {
			labelPairs = append(labelPairs, "param_"+param.Key, param.Value)
		}

		pyroscope.TagWrapper(context.Background(), pyroscope.Labels(labelPairs...), func(ctx context.Context) {
			c.Next()
		})
	}
}
