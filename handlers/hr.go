package handlers

import (
	"context"
	"net/http"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/models/reports"
	"github.com/gin-gonic/gin"
)

func registerHrRoutes(r *gin.RouterGroup) {
	r.GET("/summary", func(c *gin.Context) {
		summary, err := reports.GetHrSummary(c.Request.Context())
		if err != nil {
			respondError(c, "Summary", err)
			return
		}
		c.JSON(http.StatusOK, summary)
	})

	r.GET("/employees", listHandler("Employee", models.GetEmployees))
	r.POST("/employees", createHandler("Employee", models.CreateEmployee))
	r.GET("/employees/:id", getHandler("Employee", models.GetEmployee))
	r.PUT("/employees/:id", updateHandler("Employee", models.UpdateEmployee))
	r.DELETE("/employees/:id", deleteHandler("Employee", models.DeleteEmployee))

	r.GET("/positions", listHandler("Position", models.GetPositions))
	r.POST("/positions", createHandler("Position", models.CreatePosition))
	r.GET("/positions/:id", getHandler("Position", models.GetPosition))
	r.PUT("/positions/:id", updateHandler("Position", models.UpdatePosition))
	r.DELETE("/positions/:id", deleteHandler("Position", models.DeletePosition))

	r.GET("/departments", listHandler("Department", func(ctx context.Context, _ models.ListParams) ([]*models.Department, error) {
		return models.GetDepartments(ctx)
	}))
	r.POST("/departments", createHandler("Department", models.CreateDepartment))
	r.GET("/departments/:id", getHandler("Department", models.GetDepartment))
	r.PUT("/departments/:id", updateHandler("Department", models.UpdateDepartment))
	r.DELETE("/departments/:id", deleteHandler("Department", models.DeleteDepartment))
}
