package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/types"
)

// RequestIDMiddleware propagates the inbound correlation ID or mints a new
// one, and echoes it back on the response
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
