package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/middlewares"
	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/models/reports"
	"github.com/benela/benela_backend/utils"
	"github.com/benela/benela_backend/workflow"
	"github.com/gin-gonic/gin"
)

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type cancelSubscriptionInput struct {
	Reason *string `json:"reason"`
}

func registerAdminRoutes(r *gin.RouterGroup, dispatcher *workflow.NotificationDispatcher) {
	r.POST("/login", loginHandler())

	protected := r.Group("", middlewares.RequireAdmin())
	protected.GET("/summary", platformSummaryHandler())

	protected.GET("/clients", listClientsHandler())
	protected.POST("/clients", createHandler("Client", models.CreateClient))
	protected.GET("/clients/:id", getHandler("Client", models.GetClient))
	protected.PUT("/clients/:id", updateHandler("Client", models.UpdateClient))
	protected.DELETE("/clients/:id", deleteHandler("Client", models.DeleteClient))
	protected.PATCH("/clients/:id/suspend", clientLifecycleHandler(models.SuspendClient))
	protected.PATCH("/clients/:id/unsuspend", clientLifecycleHandler(models.UnsuspendClient))
	protected.GET("/clients/:id/subscription", clientSubscriptionHandler())

	protected.GET("/subscriptions", listHandler("Subscription", models.GetSubscriptions))
	protected.POST("/subscriptions", createHandler("Subscription", models.CreateSubscription))
	protected.GET("/subscriptions/:id", getHandler("Subscription", models.GetSubscription))
	protected.PUT("/subscriptions/:id", updateHandler("Subscription", models.UpdateSubscription))
	protected.PATCH("/subscriptions/:id/cancel", cancelSubscriptionHandler())

	protected.GET("/payments", listPaymentsHandler())
	protected.GET("/payments/client/:client_id", listClientPaymentsHandler())
	protected.POST("/payments", createHandler("Payment", models.CreatePayment))
	protected.GET("/payments/:id", getHandler("Payment", models.GetPayment))
	protected.PATCH("/payments/:id/status", updateHandler("Payment", models.UpdatePaymentStatus))

	protected.GET("/notifications", listHandler("Notification", models.GetNotifications))
	protected.POST("/notifications", createHandler("Notification", models.CreateNotification))
	protected.GET("/notifications/:id", getHandler("Notification", models.GetNotification))
	protected.POST("/notifications/:id/send", sendNotificationHandler(dispatcher))
	protected.DELETE("/notifications/:id", deleteHandler("Notification", models.DeleteNotification))

	protected.GET("/activity", listHandler("Activity", models.GetActivity))
	protected.GET("/activity/client/:client_id", listClientActivityHandler())

	protected.GET("/analytics/revenue", seriesHandler(reports.GetRevenueSeries))
	protected.GET("/analytics/revenue/export", exportRevenueHandler())
	protected.GET("/analytics/growth", seriesHandler(reports.GetGrowthSeries))
	protected.GET("/analytics/churn", seriesHandler(reports.GetChurnSeries))
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		info, err := models.Login(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) || errors.Is(err, models.ErrAdminDisabled) {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
				return
			}
			respondError(c, "Admin", err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func platformSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := reports.GetPlatformSummary(c.Request.Context())
		if err != nil {
			respondError(c, "Summary", err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// listClientsHandler pairs every client with its latest subscription, batched
// through the request's dataloader.
func listClientsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clients, err := models.GetClients(ctx)
		if err != nil {
			respondError(c, "Client", err)
			return
		}
		ids := make([]int, len(clients))
		for i, client := range clients {
			ids[i] = client.ID
		}
		subscriptions, errs := middlewares.GetLatestSubscriptions(ctx, ids)
		for _, err := range errs {
			if err != nil {
				respondError(c, "Subscription", err)
				return
			}
		}
		result := make([]*models.ClientWithSubscription, len(clients))
		for i, client := range clients {
			result[i] = &models.ClientWithSubscription{Client: client}
			if i < len(subscriptions) {
				result[i].Subscription = subscriptions[i]
			}
		}
		c.JSON(http.StatusOK, result)
	}
}

func clientLifecycleHandler(transition func(context.Context, int) (*models.ClientOrg, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}
		client, err := transition(c.Request.Context(), id)
		if err != nil {
			respondError(c, "Client", err)
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

func clientSubscriptionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if _, err := models.GetClient(ctx, id); err != nil {
			respondError(c, "Client", err)
			return
		}
		subscription, err := middlewares.GetLatestSubscription(ctx, id)
		if err != nil {
			respondError(c, "Subscription", err)
			return
		}
		if subscription == nil {
			respondError(c, "Subscription", utils.ErrorRecordNotFound)
			return
		}
		c.JSON(http.StatusOK, subscription)
	}
}

// the body is optional; an empty or missing body cancels without a reason
func cancelSubscriptionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}
		var input cancelSubscriptionInput
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				respondBindError(c, err)
				return
			}
		}
		subscription, err := models.CancelSubscription(c.Request.Context(), id, input.Reason)
		if err != nil {
			respondError(c, "Subscription", err)
			return
		}
		c.JSON(http.StatusOK, subscription)
	}
}

func listPaymentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		params, ok := listParams(c)
		if !ok {
			return
		}
		var filter models.PaymentFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			respondBindError(c, err)
			return
		}
		if filter.Status != nil && !filter.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid status"})
			return
		}
		payments, err := models.GetPayments(c.Request.Context(), params, filter)
		if err != nil {
			respondError(c, "Payment", err)
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

func listClientPaymentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientId, ok := pathId(c, "client_id")
		if !ok {
			return
		}
		params, ok := listParams(c)
		if !ok {
			return
		}
		payments, err := models.GetPaymentsByClient(c.Request.Context(), clientId, params)
		if err != nil {
			respondError(c, "Payment", err)
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

func sendNotificationHandler(dispatcher *workflow.NotificationDispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}
		var input models.SendNotificationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		notification, err := dispatcher.Send(c.Request.Context(), id, input.RecipientCount)
		if err != nil {
			respondError(c, "Notification", err)
			return
		}
		c.JSON(http.StatusOK, notification)
	}
}

func listClientActivityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientId, ok := pathId(c, "client_id")
		if !ok {
			return
		}
		params, ok := listParams(c)
		if !ok {
			return
		}
		activity, err := models.GetActivityByClient(c.Request.Context(), clientId, params)
		if err != nil {
			respondError(c, "Activity", err)
			return
		}
		c.JSON(http.StatusOK, activity)
	}
}

func seriesHandler[T any](series func(context.Context, int) ([]*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		months, ok := monthsParam(c)
		if !ok {
			return
		}
		points, err := series(c.Request.Context(), months)
		if err != nil {
			respondError(c, "Report", err)
			return
		}
		c.JSON(http.StatusOK, points)
	}
}

// ?archive=true also uploads the workbook to GCS and returns its url
// in the X-Export-Url header.
func exportRevenueHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		months, ok := monthsParam(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		data, err := reports.ExportRevenueSeries(ctx, months)
		if err != nil {
			respondError(c, "Report", err)
			return
		}
		if strings.EqualFold(c.Query("archive"), "true") && utils.GCSConfigured() {
			url, err := reports.ArchiveExport(ctx, "revenue", data)
			if err != nil {
				config.LogError(config.GetLogger(), "handlers", "exportRevenueHandler", "archive", months, err)
			} else {
				c.Header("X-Export-Url", url)
			}
		}
		sendExcel(c, "revenue.xlsx", data)
	}
}
