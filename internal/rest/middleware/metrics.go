package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/metrics"
)

// MetricsMiddleware records request counts and latency for every gateway
// API call. Paths are recorded as route templates, not raw URLs, to keep
// the label cardinality bounded.
func MetricsMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}

	metrics.HTTPRequestsTotal.WithLabelValues(
		c.Request.Method,
		path,
		strconv.Itoa(c.Writer.Status()),
	).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(
		c.Request.Method,
		path,
	).Observe(time.Since(start).Seconds())
}
