package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/service"
)

type SessionHandler struct {
	service service.SessionService
	log     *logger.Logger
}

func NewSessionHandler(service service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{service: service, log: log}
}

// @Summary Get a dispatch session
// @Description Get the session record for a request ID, available until its TTL expires
// @Tags Sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("request id is required").
			WithHint("Request ID must not be empty").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
