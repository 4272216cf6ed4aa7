package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benela/benela_backend/agents"
	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/handlers"
	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/testutil"
	"github.com/benela/benela_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedGenerator struct {
	reply string
	err   error
}

func (g *cannedGenerator) Generate(ctx context.Context, systemPrompt string, message string) (string, error) {
	return g.reply, g.err
}

func newRouter(t *testing.T, generator agents.Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.NewTestDB(t)

	r := gin.New()
	handlers.RegisterRoutes(r, handlers.Deps{
		FinanceAgent:  agents.NewFinanceAgent(generator),
		Notifications: &workflow.NotificationDispatcher{Logger: config.GetLogger()},
	})
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, w)["status"])

	w = do(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "running", decode[map[string]string](t, w)["status"])
}

func TestUnknownRoute(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decode[map[string]string](t, w)["detail"])
}

func TestTransactionCrud(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodPost, "/finance/transactions", map[string]any{
		"description": "Consulting",
		"category":    "Services",
		"amount":      "1200.00",
		"type":        "income",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[models.Transaction](t, w)
	assert.Equal(t, models.TransactionStatusPending, created.Status)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/finance/transactions/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/finance/transactions/%d", created.ID), map[string]any{"status": "received"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.TransactionStatusReceived, decode[models.Transaction](t, w).Status)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/finance/transactions/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]bool{"ok": true}, decode[map[string]bool](t, w))

	w = do(t, r, http.MethodGet, fmt.Sprintf("/finance/transactions/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Transaction not found", decode[map[string]string](t, w)["detail"])
}

func TestCreateTransactionValidation(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodPost, "/finance/transactions", map[string]any{
		"description": "Consulting",
		"category":    "Services",
		"amount":      "10",
		"type":        "gift",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNullOnRequiredFieldRejected(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})
	project := testutil.CreateProject(t, context.Background(), "Website")

	w := do(t, r, http.MethodPut, fmt.Sprintf("/projects/%d", project.ID), map[string]any{"name": nil})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidPathId(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodGet, "/finance/invoices/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinanceSummaryEndpoint(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})
	ctx := context.Background()
	testutil.CreateTransaction(t, ctx, models.TransactionTypeIncome, "750.50")
	testutil.CreateTransaction(t, ctx, models.TransactionTypeExpense, "100.25")

	w := do(t, r, http.MethodGet, "/finance/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]json.RawMessage](t, w)
	for _, key := range []string{"total_income", "total_expenses", "net_profit", "pending_invoices"} {
		assert.Contains(t, body, key)
	}
}

func TestKanbanFlow(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodPost, "/projects/", map[string]any{"name": "Launch"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	project := decode[models.Project](t, w)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/columns", project.ID), map[string]any{"name": "To Do", "position": 0, "project_id": 9999})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	todo := decode[models.KanbanColumn](t, w)
	assert.Equal(t, project.ID, todo.ProjectId)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/columns", project.ID), map[string]any{"name": "Done", "position": 1})
	require.Equal(t, http.StatusOK, w.Code)
	done := decode[models.KanbanColumn](t, w)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/tasks", project.ID), map[string]any{"title": "Write docs", "column_id": todo.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	task := decode[models.KanbanTask](t, w)
	assert.Equal(t, project.ID, task.ProjectId)

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/projects/tasks/%d/move", task.ID), map[string]any{"column_id": done.ID, "position": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	moved := decode[models.KanbanTask](t, w)
	assert.Equal(t, done.ID, moved.ColumnId)
	assert.Equal(t, project.ID, moved.ProjectId)

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/projects/tasks/%d/move", task.ID), map[string]any{"column_id": done.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, "/projects/tasks/9999/move", map[string]any{"column_id": done.ID, "position": 0})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decode[map[string]string](t, w)["detail"])

	w = do(t, r, http.MethodGet, fmt.Sprintf("/projects/%d/tasks", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.KanbanTask](t, w), 1)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/projects/columns/%d/tasks", done.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	inDone := decode[[]models.KanbanTask](t, w)
	require.Len(t, inDone, 1)
	assert.Equal(t, task.ID, inDone[0].ID)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/projects/columns/%d/tasks", todo.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.KanbanTask](t, w))

	w = do(t, r, http.MethodGet, "/projects/columns/9999/tasks", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Column not found", decode[map[string]string](t, w)["detail"])

	w = do(t, r, http.MethodGet, fmt.Sprintf("/projects/columns/%d", done.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Done", decode[models.KanbanColumn](t, w).Name)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/projects/tasks/%d", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, done.ID, decode[models.KanbanTask](t, w).ColumnId)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/projects/%d", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/projects/%d/columns", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.KanbanColumn](t, w))

	w = do(t, r, http.MethodGet, fmt.Sprintf("/projects/tasks/%d", task.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientsListIncludesLatestSubscription(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})
	ctx := context.Background()
	acme := testutil.CreateClient(t, ctx, "acme")
	testutil.CreateClient(t, ctx, "globex")
	sub := testutil.CreateSubscription(t, ctx, acme.ID, models.PlanTierPro, models.SubscriptionStatusActive, "99")

	w := do(t, r, http.MethodGet, "/admin/clients", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rows := decode[[]models.ClientWithSubscription](t, w)
	require.Len(t, rows, 2)

	bySlug := map[string]models.ClientWithSubscription{}
	for _, row := range rows {
		bySlug[row.Client.Slug] = row
	}
	require.NotNil(t, bySlug["acme"].Subscription)
	assert.Equal(t, sub.ID, bySlug["acme"].Subscription.ID)
	assert.Nil(t, bySlug["globex"].Subscription)
}

func TestClientSubscriptionNotFound(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})
	client := testutil.CreateClient(t, context.Background(), "acme")

	w := do(t, r, http.MethodGet, fmt.Sprintf("/admin/clients/%d/subscription", client.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Subscription not found", decode[map[string]string](t, w)["detail"])

	w = do(t, r, http.MethodGet, "/admin/clients/9999/subscription", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Client not found", decode[map[string]string](t, w)["detail"])
}

func TestDuplicateClientSlugConflicts(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})
	testutil.CreateClient(t, context.Background(), "acme")

	w := do(t, r, http.MethodPost, "/admin/clients", map[string]any{
		"name":        "Acme",
		"slug":        "acme",
		"owner_name":  "Owner",
		"owner_email": "owner@acme.io",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSuspendClientEndpoint(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})
	client := testutil.CreateClient(t, context.Background(), "acme")

	w := do(t, r, http.MethodPatch, fmt.Sprintf("/admin/clients/%d/suspend", client.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.ClientOrg](t, w)
	assert.True(t, updated.IsSuspended)
	assert.False(t, updated.IsActive)
}

func TestCancelSubscriptionEndpoint(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})
	ctx := context.Background()
	client := testutil.CreateClient(t, ctx, "acme")
	sub := testutil.CreateSubscription(t, ctx, client.ID, models.PlanTierPro, models.SubscriptionStatusActive, "99")

	w := do(t, r, http.MethodPatch, fmt.Sprintf("/admin/subscriptions/%d/cancel", sub.ID), map[string]any{"reason": "budget"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.SubscriptionStatusCancelled, decode[models.Subscription](t, w).Status)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/admin/subscriptions/%d", sub.ID), map[string]any{"status": "active"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPaymentStatusFilterValidation(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodGet, "/admin/payments?status=paid", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/admin/payments?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationSendTwiceConflicts(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodPost, "/admin/notifications", map[string]any{"title": "Hi", "message": "Hello"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	n := decode[models.AdminNotification](t, w)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/admin/notifications/%d/send", n.ID), map[string]any{"recipient_count": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sent := decode[models.AdminNotification](t, w)
	assert.True(t, sent.IsSent)
	assert.Equal(t, 4, sent.RecipientCount)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/admin/notifications/%d/send", n.ID), map[string]any{"recipient_count": 4})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAnalyticsMonthsBounds(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodGet, "/admin/analytics/revenue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 12)

	w = do(t, r, http.MethodGet, "/admin/analytics/growth?months=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 3)

	for _, months := range []string{"0", "121", "abc"} {
		w = do(t, r, http.MethodGet, "/admin/analytics/churn?months="+months, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, months)
	}
}

func TestRevenueExport(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})

	w := do(t, r, http.MethodGet, "/admin/analytics/revenue/export?months=6", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestFinanceAgent(t *testing.T) {
	r := newRouter(t, &cannedGenerator{reply: "Cash runway is 9 months."})

	w := do(t, r, http.MethodPost, "/agents/finance", map[string]any{"message": "How long is our runway?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]string](t, w)
	assert.Equal(t, agents.FinanceAgentName, body["agent"])
	assert.Equal(t, "How long is our runway?", body["message"])
	assert.Equal(t, "Cash runway is 9 months.", body["response"])

	w = do(t, r, http.MethodPost, "/agents/finance", map[string]any{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Message cannot be empty", decode[map[string]string](t, w)["detail"])
}

func TestFinanceAgentUpstreamFailure(t *testing.T) {
	r := newRouter(t, &cannedGenerator{err: errors.New("quota exceeded")})

	w := do(t, r, http.MethodPost, "/agents/finance", map[string]any{"message": "Summarize Q1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["detail"], "quota exceeded")
}

func TestAdminLoginEndpoint(t *testing.T) {
	r := newRouter(t, &cannedGenerator{})
	_, err := models.CreateAdminUser(context.Background(), &models.NewAdminUser{Email: "ops@benela.io", Name: "Ops", Password: "s3cret-pass"})
	require.NoError(t, err)

	w := do(t, r, http.MethodPost, "/admin/login", map[string]any{"email": "ops@benela.io", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode[models.LoginInfo](t, w).Token)

	w = do(t, r, http.MethodPost, "/admin/login", map[string]any{"email": "ops@benela.io", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireTokenWhenEnabled(t *testing.T) {
	t.Setenv("ADMIN_AUTH_REQUIRED", "true")
	r := newRouter(t, &cannedGenerator{})
	_, err := models.CreateAdminUser(context.Background(), &models.NewAdminUser{Email: "ops@benela.io", Name: "Ops", Password: "s3cret-pass"})
	require.NoError(t, err)

	w := do(t, r, http.MethodGet, "/admin/clients", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/admin/login", map[string]any{"email": "ops@benela.io", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[models.LoginInfo](t, w).Token

	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
