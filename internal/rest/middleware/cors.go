package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/types"
)

var corsAllowedHeaders = strings.Join([]string{
	types.HeaderAuthorization,
	"Content-Type",
	"x-api-key",
	types.HeaderEnvironment,
	types.HeaderRequestID,
}, ", ")

// CORSMiddleware answers preflight requests and stamps the CORS
// headers on everything else
func CORSMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*") // TODO: Set to specific origin
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Next()
}
