package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/api/dto"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/service"
)

type DispatchHandler struct {
	service service.DispatchService
	log     *logger.Logger
}

func NewDispatchHandler(service service.DispatchService, log *logger.Logger) *DispatchHandler {
	return &DispatchHandler{service: service, log: log}
}

// @Summary Dispatch a request to an agent
// @Description Forward a payload to the named agent with retries and session tracking
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.DispatchRequest true "Dispatch request"
// @Success 200 {object} dto.DispatchResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /dispatch [post]
func (h *DispatchHandler) Dispatch(c *gin.Context) {
	var req dto.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	result, err := h.service.Dispatch(c.Request.Context(), req.AgentType, req.Endpoint, req.Payload, req.ToOptions())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDispatchResponse(result))
}

// @Summary Dispatch a request by capability
// @Description Route a payload to the healthy agent with the lowest error rate for a capability
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.DispatchByCapabilityRequest true "Dispatch request"
// @Success 200 {object} dto.DispatchResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Failure 503 {object} ierr.ErrorResponse
// @Router /dispatch/capability [post]
func (h *DispatchHandler) DispatchToCapability(c *gin.Context) {
	var req dto.DispatchByCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	result, err := h.service.DispatchToCapability(c.Request.Context(), req.Capability, req.Endpoint, req.Payload, req.ToOptions())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDispatchResponse(result))
}
