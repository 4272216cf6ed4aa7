package handlers

import (
	"net/http"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/models/reports"
	"github.com/gin-gonic/gin"
)

func registerFinanceRoutes(r *gin.RouterGroup) {
	r.GET("/summary", financeSummaryHandler())

	r.GET("/transactions", listHandler("Transaction", models.GetTransactions))
	r.POST("/transactions", createHandler("Transaction", models.CreateTransaction))
	r.GET("/transactions/export", exportTransactionsHandler())
	r.GET("/transactions/:id", getHandler("Transaction", models.GetTransaction))
	r.PUT("/transactions/:id", updateHandler("Transaction", models.UpdateTransaction))
	r.DELETE("/transactions/:id", deleteHandler("Transaction", models.DeleteTransaction))

	r.GET("/invoices", listHandler("Invoice", models.GetInvoices))
	r.POST("/invoices", createHandler("Invoice", models.CreateInvoice))
	r.GET("/invoices/:id", getHandler("Invoice", models.GetInvoice))
	r.PUT("/invoices/:id", updateHandler("Invoice", models.UpdateInvoice))
	r.DELETE("/invoices/:id", deleteHandler("Invoice", models.DeleteInvoice))

	r.GET("/budgets", listHandler("Budget", models.GetBudgets))
	r.POST("/budgets", createHandler("Budget", models.CreateBudget))
	r.GET("/budgets/:id", getHandler("Budget", models.GetBudget))
	r.PUT("/budgets/:id", updateHandler("Budget", models.UpdateBudget))
	r.DELETE("/budgets/:id", deleteHandler("Budget", models.DeleteBudget))
}

func financeSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := reports.GetFinanceSummary(c.Request.Context())
		if err != nil {
			respondError(c, "Summary", err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func exportTransactionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := reports.ExportTransactions(c.Request.Context())
		if err != nil {
			respondError(c, "Transaction", err)
			return
		}
		sendExcel(c, "transactions.xlsx", data)
	}
}
