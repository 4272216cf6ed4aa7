package handlers

import (
	"context"
	"net/http"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/models/reports"
	"github.com/gin-gonic/gin"
)

type moveTaskInput struct {
	ColumnId *int `json:"column_id" binding:"required"`
	Position *int `json:"position" binding:"required"`
}

func registerProjectRoutes(r *gin.RouterGroup) {
	r.GET("/summary", func(c *gin.Context) {
		summary, err := reports.GetProjectSummary(c.Request.Context())
		if err != nil {
			respondError(c, "Summary", err)
			return
		}
		c.JSON(http.StatusOK, summary)
	})

	listProjects := listHandler("Project", func(ctx context.Context, _ models.ListParams) ([]*models.Project, error) {
		return models.GetProjects(ctx)
	})
	createProject := createHandler("Project", models.CreateProject)
	r.GET("", listProjects)
	r.GET("/", listProjects)
	r.POST("", createProject)
	r.POST("/", createProject)
	r.GET("/:id", getHandler("Project", models.GetProject))
	r.PUT("/:id", updateHandler("Project", models.UpdateProject))
	r.DELETE("/:id", deleteHandler("Project", models.DeleteProject))

	r.GET("/:id/columns", listColumnsHandler())
	r.POST("/:id/columns", createColumnHandler())
	r.GET("/columns/:id", getHandler("Column", models.GetColumn))
	r.GET("/columns/:id/tasks", listColumnTasksHandler())
	r.PUT("/columns/:id", updateHandler("Column", models.UpdateColumn))
	r.DELETE("/columns/:id", deleteHandler("Column", models.DeleteColumn))

	r.GET("/:id/tasks", listTasksHandler())
	r.POST("/:id/tasks", createTaskHandler())
	r.GET("/tasks/:id", getHandler("Task", models.GetTask))
	r.PUT("/tasks/:id", updateHandler("Task", models.UpdateTask))
	r.PATCH("/tasks/:id/move", moveTaskHandler())
	r.DELETE("/tasks/:id", deleteHandler("Task", models.DeleteTask))
}

func listColumnsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectId, ok := pathId(c, "id")
		if !ok {
			return
		}
		columns, err := models.GetColumns(c.Request.Context(), projectId)
		if err != nil {
			respondError(c, "Column", err)
			return
		}
		c.JSON(http.StatusOK, columns)
	}
}

// the path project id wins over any project_id in the body
func createColumnHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var input models.NewKanbanColumn
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		input.ProjectId = projectId
		column, err := models.CreateColumn(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "Column", err)
			return
		}
		c.JSON(http.StatusOK, column)
	}
}

func listTasksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectId, ok := pathId(c, "id")
		if !ok {
			return
		}
		tasks, err := models.GetTasks(c.Request.Context(), projectId)
		if err != nil {
			respondError(c, "Task", err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

// unknown column is a 404 rather than an empty list
func listColumnTasksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		columnId, ok := pathId(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if _, err := models.GetColumn(ctx, columnId); err != nil {
			respondError(c, "Column", err)
			return
		}
		tasks, err := models.GetTasksByColumn(ctx, columnId)
		if err != nil {
			respondError(c, "Task", err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

func createTaskHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var input models.NewKanbanTask
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		input.ProjectId = projectId
		task, err := models.CreateTask(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "Task", err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

func moveTaskHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskId, ok := pathId(c, "id")
		if !ok {
			return
		}
		var input moveTaskInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		task, err := models.MoveTask(c.Request.Context(), taskId, *input.ColumnId, *input.Position)
		if err != nil {
			respondError(c, "Task", err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}
