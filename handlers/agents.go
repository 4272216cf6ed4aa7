package handlers

import (
	"net/http"
	"strings"

	"github.com/benela/benela_backend/agents"
	"github.com/gin-gonic/gin"
)

type agentTaskInput struct {
	Message string `json:"message"`
}

type agentTaskResponse struct {
	Agent    string `json:"agent"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

func registerAgentRoutes(r *gin.RouterGroup, financeAgent *agents.BaseAgent) {
	r.POST("/finance", runAgentHandler(financeAgent))
}

func runAgentHandler(agent *agents.BaseAgent) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input agentTaskInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		if strings.TrimSpace(input.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Message cannot be empty"})
			return
		}
		response, err := agent.Run(c.Request.Context(), input.Message)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, agentTaskResponse{
			Agent:    agent.Name,
			Message:  input.Message,
			Response: response,
		})
	}
}
