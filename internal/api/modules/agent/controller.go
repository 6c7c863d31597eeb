package agent

import (
	"context"
	"errors"
	"net/http"

	"github.com/ethanbaker/repogen/internal/orchestrator"
	"github.com/ethanbaker/repogen/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Orchestrator runs registered agents
type Orchestrator interface {
	IDs() []string
	Run(ctx context.Context, id, conversationKey, content string) (*orchestrator.RunResult, error)
}

// Controller serves the agent routes
type Controller struct {
	orchestrator Orchestrator
}

// NewController creates an agent controller
func NewController(o Orchestrator) *Controller {
	return &Controller{orchestrator: o}
}

// List handles GET requests for the registered agent ids
func (ctrl *Controller) List(c *gin.Context) {
	c.JSON(sdk.NewSuccessResponse("Agents retrieved successfully", ctrl.orchestrator.IDs()).AsGinResponse())
}

// Run handles POST requests that send one message to an agent
func (ctrl *Controller) Run(c *gin.Context) {
	var req sdk.RunAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewFailResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	result, err := ctrl.orchestrator.Run(c.Request.Context(), c.Param("id"), req.ConversationID, req.Content)
	switch {
	case errors.Is(err, orchestrator.ErrUnknownAgent):
		c.JSON(sdk.NewFailResponse(http.StatusNotFound, "Agent not found", err.Error()).AsGinResponse())
		return
	case errors.Is(err, orchestrator.ErrEmptyInput):
		c.JSON(sdk.NewFailResponse(http.StatusBadRequest, "Content is required", err.Error()).AsGinResponse())
		return
	case err != nil:
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Agent run failed", err.Error()).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Agent run completed", sdk.AgentRun{
		AgentID:        result.AgentID,
		ConversationID: result.ConversationID,
		FinalOutput:    result.FinalOutput,
	}).AsGinResponse())
}
