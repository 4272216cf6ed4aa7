package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/models/reports"
	"github.com/benela/benela_backend/testutil"
	"github.com/benela/benela_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march15 = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedCtx() context.Context {
	return utils.FixedClock(context.Background(), march15)
}

func TestFinanceSummary(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()

	testutil.CreateTransaction(t, ctx, models.TransactionTypeIncome, "500.00")
	testutil.CreateTransaction(t, ctx, models.TransactionTypeIncome, "250.50")
	testutil.CreateTransaction(t, ctx, models.TransactionTypeExpense, "100.25")

	summary, err := reports.GetFinanceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "750.5", summary.TotalIncome.String())
	assert.Equal(t, "100.25", summary.TotalExpenses.String())
	assert.Equal(t, "650.25", summary.NetProfit.String())
	assert.True(t, summary.NetProfit.Equal(summary.TotalIncome.Sub(summary.TotalExpenses)))
}

func TestFinanceSummaryCountsPendingInvoices(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()

	for i, status := range []string{models.InvoiceStatusPending, models.InvoiceStatusPending, "paid"} {
		_, err := models.CreateInvoice(ctx, &models.NewInvoice{
			InvoiceNumber: "INV-00" + string(rune('1'+i)),
			ClientName:    "Acme",
			Amount:        testutil.Dec("10"),
			Status:        status,
		})
		require.NoError(t, err)
	}

	summary, err := reports.GetFinanceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.PendingInvoices)
}

func TestSummariesOnEmptyStore(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()

	finance, err := reports.GetFinanceSummary(ctx)
	require.NoError(t, err)
	assert.True(t, finance.TotalIncome.IsZero())
	assert.True(t, finance.TotalExpenses.IsZero())
	assert.True(t, finance.NetProfit.IsZero())
	assert.Zero(t, finance.PendingInvoices)

	hr, err := reports.GetHrSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, reports.HrSummary{}, *hr)

	projects, err := reports.GetProjectSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, reports.ProjectSummary{}, *projects)

	platform, err := reports.GetPlatformSummary(ctx)
	require.NoError(t, err)
	assert.Zero(t, platform.TotalClients)
	assert.True(t, platform.MonthlyRecurringRevenue.IsZero())
	assert.True(t, platform.PaidThisMonth.IsZero())
	assert.Equal(t, reports.PlanBreakdown{}, platform.PlanBreakdown)
}

func TestSummaryIsStableWithoutWrites(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()
	testutil.CreateTransaction(t, ctx, models.TransactionTypeIncome, "42")

	first, err := reports.GetFinanceSummary(ctx)
	require.NoError(t, err)
	second, err := reports.GetFinanceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProjectSummary(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()

	alpha := testutil.CreateProject(t, ctx, "Alpha")
	_, err := models.CreateProject(ctx, &models.NewProject{Name: "Beta", Status: models.ProjectStatusCompleted})
	require.NoError(t, err)
	todo := testutil.CreateColumn(t, ctx, alpha.ID, "To Do", 0)
	testutil.CreateTask(t, ctx, alpha.ID, todo.ID, "one", 0)
	testutil.CreateTask(t, ctx, alpha.ID, todo.ID, "two", 1)

	summary, err := reports.GetProjectSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalProjects)
	assert.Equal(t, int64(1), summary.Active)
	assert.Equal(t, int64(1), summary.Completed)
	assert.Equal(t, int64(2), summary.TotalTasks)
}

func TestPlatformSummary(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()

	acme := testutil.CreateClient(t, ctx, "acme")
	globex := testutil.CreateClient(t, ctx, "globex")
	initech := testutil.CreateClient(t, ctx, "initech")

	testutil.CreateSubscription(t, ctx, acme.ID, models.PlanTierPro, models.SubscriptionStatusActive, "99")
	testutil.CreateSubscription(t, ctx, globex.ID, models.PlanTierStarter, models.SubscriptionStatusTrial, "50")
	testutil.CreateSubscription(t, ctx, initech.ID, models.PlanTierEnterprise, models.SubscriptionStatusCancelled, "499")

	_, err := models.SuspendClient(ctx, initech.ID)
	require.NoError(t, err)

	lastMonth := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	for _, p := range []struct {
		at     time.Time
		amount string
		status models.PaymentStatus
	}{
		{lastMonth, "99", models.PaymentStatusPaid},
		{thisMonth, "99", models.PaymentStatusPaid},
		{thisMonth, "50", models.PaymentStatusFailed},
	} {
		at := p.at
		_, err := models.CreatePayment(ctx, &models.NewPayment{
			ClientId: acme.ID,
			Amount:   testutil.Dec(p.amount),
			Status:   p.status,
			PaidAt:   &at,
		})
		require.NoError(t, err)
	}

	summary, err := reports.GetPlatformSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalClients)
	assert.Equal(t, int64(2), summary.ActiveClients)
	assert.Equal(t, int64(1), summary.Suspended)
	assert.Equal(t, "149", summary.MonthlyRecurringRevenue.String())
	assert.Equal(t, "99", summary.PaidThisMonth.String())
	assert.Equal(t, int64(1), summary.TrialsActive)
	assert.Equal(t, reports.PlanBreakdown{Starter: 1, Pro: 1, Enterprise: 0}, summary.PlanBreakdown)
}

func TestRevenueSeriesBuckets(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()
	client := testutil.CreateClient(t, ctx, "acme")

	paid := func(at time.Time, amount string) {
		_, err := models.CreatePayment(ctx, &models.NewPayment{
			ClientId: client.ID,
			Amount:   testutil.Dec(amount),
			Status:   models.PaymentStatusPaid,
			PaidAt:   &at,
		})
		require.NoError(t, err)
	}
	paid(time.Date(2026, time.February, 28, 23, 59, 59, 500_000_000, time.UTC), "100")
	paid(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), "50")
	paid(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC), "25.5")
	// outside the window
	paid(time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC), "1000")

	series, err := reports.GetRevenueSeries(ctx, 3)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, "Jan 2026", series[0].Month)
	assert.Equal(t, "Feb 2026", series[1].Month)
	assert.Equal(t, "Mar 2026", series[2].Month)
	assert.True(t, series[0].Revenue.IsZero())
	assert.Equal(t, "100", series[1].Revenue.String())
	assert.Equal(t, "75.5", series[2].Revenue.String())
}

func TestRevenueSeriesLabelsAreDistinct(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()

	series, err := reports.GetRevenueSeries(ctx, 12)
	require.NoError(t, err)
	require.Len(t, series, 12)

	seen := map[string]bool{}
	for _, point := range series {
		assert.False(t, seen[point.Month], point.Month)
		seen[point.Month] = true
		assert.True(t, point.Revenue.IsZero())
	}
	assert.Equal(t, "Apr 2025", series[0].Month)
	assert.Equal(t, "Mar 2026", series[11].Month)
}

func TestSeriesWithNoMonths(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()

	revenue, err := reports.GetRevenueSeries(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, revenue)
	assert.Empty(t, revenue)

	growth, err := reports.GetGrowthSeries(ctx, -1)
	require.NoError(t, err)
	assert.Empty(t, growth)
}

func TestGrowthSeriesCumulative(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()

	createdAt := []time.Time{
		time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		// before the window
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, at := range createdAt {
		client := testutil.CreateClient(t, ctx, "client-"+string(rune('a'+i)))
		require.NoError(t, config.GetDB().Model(&models.ClientOrg{}).Where("id = ?", client.ID).Update("created_at", at).Error)
	}

	series, err := reports.GetGrowthSeries(ctx, 3)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, []int64{1, 0, 2}, []int64{series[0].NewClients, series[1].NewClients, series[2].NewClients})
	assert.Equal(t, []int64{1, 1, 3}, []int64{series[0].Cumulative, series[1].Cumulative, series[2].Cumulative})

	var total int64
	for _, point := range series {
		total += point.NewClients
	}
	assert.Equal(t, total, series[len(series)-1].Cumulative)
}

func TestChurnSeries(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()
	client := testutil.CreateClient(t, ctx, "acme")

	sub := testutil.CreateSubscription(t, ctx, client.ID, models.PlanTierPro, models.SubscriptionStatusActive, "99")
	_, err := models.CancelSubscription(ctx, sub.ID, nil)
	require.NoError(t, err)

	febCtx := utils.FixedClock(context.Background(), time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC))
	old := testutil.CreateSubscription(t, febCtx, client.ID, models.PlanTierStarter, models.SubscriptionStatusActive, "29")
	_, err = models.CancelSubscription(febCtx, old.ID, nil)
	require.NoError(t, err)

	testutil.CreateSubscription(t, ctx, client.ID, models.PlanTierStarter, models.SubscriptionStatusActive, "29")

	series, err := reports.GetChurnSeries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "Feb 2026", series[0].Month)
	assert.Equal(t, int64(1), series[0].Churned)
	assert.Equal(t, int64(1), series[1].Churned)
}

func TestSeriesAreStableWithoutWrites(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()
	client := testutil.CreateClient(t, ctx, "acme")
	joined := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, config.GetDB().Model(&models.ClientOrg{}).Where("id = ?", client.ID).Update("created_at", joined).Error)
	paidAt := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	_, err := models.CreatePayment(ctx, &models.NewPayment{
		ClientId: client.ID,
		Amount:   testutil.Dec("99.99"),
		Status:   models.PaymentStatusPaid,
		PaidAt:   &paidAt,
	})
	require.NoError(t, err)
	sub := testutil.CreateSubscription(t, ctx, client.ID, models.PlanTierPro, models.SubscriptionStatusActive, "99")
	_, err = models.CancelSubscription(ctx, sub.ID, nil)
	require.NoError(t, err)

	revenue := func() []string {
		series, err := reports.GetRevenueSeries(ctx, 4)
		require.NoError(t, err)
		out := make([]string, 0, len(series))
		for _, point := range series {
			out = append(out, point.Month+"="+point.Revenue.String())
		}
		return out
	}
	growth := func() []reports.GrowthPoint {
		series, err := reports.GetGrowthSeries(ctx, 4)
		require.NoError(t, err)
		out := make([]reports.GrowthPoint, 0, len(series))
		for _, point := range series {
			out = append(out, *point)
		}
		return out
	}
	churn := func() []reports.ChurnPoint {
		series, err := reports.GetChurnSeries(ctx, 4)
		require.NoError(t, err)
		out := make([]reports.ChurnPoint, 0, len(series))
		for _, point := range series {
			out = append(out, *point)
		}
		return out
	}

	firstRevenue, firstGrowth, firstChurn := revenue(), growth(), churn()
	assert.Contains(t, firstRevenue, "Feb 2026=99.99")
	assert.Equal(t, int64(1), firstGrowth[3].Cumulative)
	assert.Equal(t, int64(1), firstChurn[3].Churned)

	assert.Equal(t, firstRevenue, revenue())
	assert.Equal(t, firstGrowth, growth())
	assert.Equal(t, firstChurn, churn())
}
