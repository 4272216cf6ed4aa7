package handlers

import (
	"net/http"

	"github.com/benela/benela_backend/agents"
	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/middlewares"
	"github.com/benela/benela_backend/workflow"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	FinanceAgent  *agents.BaseAgent
	Notifications *workflow.NotificationDispatcher
}

// DefaultDeps wires the production agent and notification dispatcher.
func DefaultDeps() Deps {
	return Deps{
		FinanceAgent:  agents.NewFinanceAgent(agents.NewGeminiGenerator()),
		Notifications: workflow.NewNotificationDispatcher(),
	}
}

// RegisterRoutes installs auth and dataloader middleware and every API route
// on r. Middleware that must wrap all routes has to be added before calling it.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.Use(middlewares.AuthMiddleware())
	r.Use(middlewares.LoaderMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"app":         config.AppName(),
			"status":      "running",
			"environment": config.AppEnv(),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	registerFinanceRoutes(r.Group("/finance"))
	registerHrRoutes(r.Group("/hr"))
	registerProjectRoutes(r.Group("/projects"))
	registerAdminRoutes(r.Group("/admin"), deps.Notifications)
	registerAgentRoutes(r.Group("/agents"), deps.FinanceAgent)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
}
