package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/api/dto"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/service"
)

type RequestLogHandler struct {
	service service.RequestLogService
	log     *logger.Logger
}

func NewRequestLogHandler(service service.RequestLogService, log *logger.Logger) *RequestLogHandler {
	return &RequestLogHandler{service: service, log: log}
}

// @Summary List requests
// @Description Query the request log with filters passed as query parameters
// @Tags Requests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query dto.GetRequestsRequest false "Filter"
// @Success 200 {object} dto.GetRequestsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /requests [get]
func (h *RequestLogHandler) GetRequests(c *gin.Context) {
	var req dto.GetRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetRequests(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Query requests
// @Description Query the request log with filters passed in the request body
// @Tags Requests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter body dto.GetRequestsRequest true "Filter"
// @Success 200 {object} dto.GetRequestsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /requests/query [post]
func (h *RequestLogHandler) QueryRequests(c *gin.Context) {
	var req dto.GetRequestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetRequests(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Request statistics
// @Description Aggregate request counts and latency per agent for a time window
// @Tags Requests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query dto.GetRequestStatsRequest false "Filter"
// @Success 200 {object} dto.GetRequestStatsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /requests/stats [get]
func (h *RequestLogHandler) GetRequestStats(c *gin.Context) {
	var req dto.GetRequestStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetRequestStats(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
