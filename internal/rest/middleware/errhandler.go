package middleware

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ekko-ai/agentgate/internal/config"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors attached by handlers as the standard error
// envelope. Statuses in the 5xx range are logged with the correlation ID so
// gateway side failures surface in one place.
func ErrorHandler(cfg *config.Configuration, log *logger.Logger) gin.HandlerFunc {
	debug := cfg.Logging.Level == types.LogLevelDebug

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		if status >= 500 {
			log.Errorw("request failed",
				"status", status,
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", types.GetRequestID(c.Request.Context()),
				"error", err,
			)
		}

		detail := ierr.ErrorDetail{
			Display: displayMessage(err),
			Details: safeDetails(err),
		}
		// Raw error chains are only exposed when debug logging is on
		if debug {
			detail.InternalError = err.Error()
		}

		c.JSON(status, ierr.ErrorResponse{
			Success: false,
			Error:   detail,
		})
	}
}

// displayMessage picks the first non-empty hint, which is the message the
// handler intended for the caller. GetAllHints is a post-order traversal.
func displayMessage(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

// safeDetails collects the reportable details the error builder encoded as
// JSON payloads
func safeDetails(err error) map[string]any {
	details := make(map[string]any)
	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, "__json__:")
			if !ok {
				continue
			}

			var decoded map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &decoded); err == nil {
				for k, v := range decoded {
					details[k] = v
				}
			}
		}
	}
	return details
}
