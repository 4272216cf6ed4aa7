package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/models/reports"
	"github.com/benela/benela_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	defaultMonths = 12
	maxMonths     = 120
)

// respondError maps the error taxonomy onto status codes. Unclassified
// errors are store or infrastructure failures and become 500.
func respondError(c *gin.Context, entity string, err error) {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": entity + " not found"})
	case errors.Is(err, utils.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, utils.ErrConstraintViolation), errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

func respondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

func respondDeleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + name})
		return 0, false
	}
	return id, true
}

// monthsParam reads ?months=, defaulting to 12 and rejecting values outside 1..120.
func monthsParam(c *gin.Context) (int, bool) {
	raw := c.Query("months")
	if raw == "" {
		return defaultMonths, true
	}
	months, err := strconv.Atoi(raw)
	if err != nil || months < 1 || months > maxMonths {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "months must be between 1 and 120"})
		return 0, false
	}
	return months, true
}

func listParams(c *gin.Context) (models.ListParams, bool) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return params, false
	}
	return params, true
}

func listHandler[T any](entity string, list func(context.Context, models.ListParams) ([]*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, ok := listParams(c)
		if !ok {
			return
		}
		records, err := list(c.Request.Context(), params)
		if err != nil {
			respondError(c, entity, err)
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

func getHandler[T any](entity string, get func(context.Context, int) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}
		record, err := get(c.Request.Context(), id)
		if err != nil {
			respondError(c, entity, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func createHandler[In any, T any](entity string, create func(context.Context, *In) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input In
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		record, err := create(c.Request.Context(), &input)
		if err != nil {
			respondError(c, entity, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func updateHandler[In any, T any](entity string, update func(context.Context, int, *In) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}
		var input In
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		record, err := update(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, entity, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func deleteHandler(entity string, del func(context.Context, int) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}
		if err := del(c.Request.Context(), id); err != nil {
			respondError(c, entity, err)
			return
		}
		respondDeleted(c)
	}
}

func sendExcel(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, reports.ExcelContentType, data)
}
