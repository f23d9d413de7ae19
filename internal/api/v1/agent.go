package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/service"
	"github.com/ekko-ai/agentgate/internal/types"
)

type AgentHandler struct {
	service service.AgentService
	log     *logger.Logger
}

func NewAgentHandler(service service.AgentService, log *logger.Logger) *AgentHandler {
	return &AgentHandler{service: service, log: log}
}

// @Summary List agents
// @Description List all registered agents with their current health
// @Tags Agents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ListAgentsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /agents [get]
func (h *AgentHandler) ListAgents(c *gin.Context) {
	resp, err := h.service.ListAgents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get an agent
// @Description Get one agent definition together with its current health
// @Tags Agents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param type path string true "Agent type"
// @Success 200 {object} dto.AgentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /agents/{type} [get]
func (h *AgentHandler) GetAgent(c *gin.Context) {
	agentType := types.AgentType(c.Param("type"))

	resp, err := h.service.GetAgent(c.Request.Context(), agentType)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Check agent health
// @Description Trigger an immediate health check for one agent and return the outcome
// @Tags Agents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param type path string true "Agent type"
// @Success 200 {object} dto.AgentHealthResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /agents/{type}/health [post]
func (h *AgentHandler) CheckAgentHealth(c *gin.Context) {
	agentType := types.AgentType(c.Param("type"))

	resp, err := h.service.CheckAgentHealth(c.Request.Context(), agentType)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Resolve a capability
// @Description Report which agent a capability routed dispatch would hit right now
// @Tags Agents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param capability path string true "Capability"
// @Success 200 {object} dto.CapabilityRoutingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 503 {object} ierr.ErrorResponse
// @Router /agents/capability/{capability} [get]
func (h *AgentHandler) ResolveCapability(c *gin.Context) {
	capability := types.Capability(c.Param("capability"))
	if capability == "" {
		c.Error(ierr.NewError("capability is required").
			WithHint("Capability must not be empty").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ResolveCapability(c.Request.Context(), capability)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
