package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/service"
)

type HealthHandler struct {
	service service.AgentService
	logger  *logger.Logger
}

func NewHealthHandler(service service.AgentService, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Health check
// @Description Gateway health summary including per status agent counts
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GatewayHealth(c.Request.Context()))
}
