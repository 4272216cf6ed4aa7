package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/benela/benela_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Ptr[T any](v T) *T { return &v }

func Dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func CreateTransaction(t *testing.T, ctx context.Context, txType models.TransactionType, amount string) *models.Transaction {
	t.Helper()
	date := time.Now().UTC()
	tx, err := models.CreateTransaction(ctx, &models.NewTransaction{
		Date:        &date,
		Description: string(txType) + " " + amount,
		Category:    "General",
		Amount:      Dec(amount),
		Type:        txType,
	})
	require.NoError(t, err)
	return tx
}

func CreateProject(t *testing.T, ctx context.Context, name string) *models.Project {
	t.Helper()
	project, err := models.CreateProject(ctx, &models.NewProject{Name: name})
	require.NoError(t, err)
	return project
}

func CreateColumn(t *testing.T, ctx context.Context, projectId int, name string, position int) *models.KanbanColumn {
	t.Helper()
	column, err := models.CreateColumn(ctx, &models.NewKanbanColumn{ProjectId: projectId, Name: name, Position: position})
	require.NoError(t, err)
	return column
}

func CreateTask(t *testing.T, ctx context.Context, projectId, columnId int, title string, position int) *models.KanbanTask {
	t.Helper()
	task, err := models.CreateTask(ctx, &models.NewKanbanTask{ProjectId: projectId, ColumnId: columnId, Title: title, Position: position})
	require.NoError(t, err)
	return task
}

func CreateClient(t *testing.T, ctx context.Context, slug string) *models.ClientOrg {
	t.Helper()
	client, err := models.CreateClient(ctx, &models.NewClientOrg{
		Name:       slug,
		Slug:       slug,
		OwnerName:  "Owner " + slug,
		OwnerEmail: slug + "@example.com",
	})
	require.NoError(t, err)
	return client
}

func CreateSubscription(t *testing.T, ctx context.Context, clientId int, tier models.PlanTier, status models.SubscriptionStatus, price string) *models.Subscription {
	t.Helper()
	subscription, err := models.CreateSubscription(ctx, &models.NewSubscription{
		ClientId:     clientId,
		PlanTier:     tier,
		Status:       status,
		PriceMonthly: Dec(price),
	})
	require.NoError(t, err)
	return subscription
}
