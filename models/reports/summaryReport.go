package reports

import (
	"context"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
)

type FinanceSummary struct {
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	PendingInvoices int64           `json:"pending_invoices"`
}

type HrSummary struct {
	TotalEmployees int64 `json:"total_employees"`
	Active         int64 `json:"active"`
	OnLeave        int64 `json:"on_leave"`
	OpenPositions  int64 `json:"open_positions"`
}

type ProjectSummary struct {
	TotalProjects int64 `json:"total_projects"`
	Active        int64 `json:"active"`
	Completed     int64 `json:"completed"`
	TotalTasks    int64 `json:"total_tasks"`
}

type PlanBreakdown struct {
	Starter    int64 `json:"starter"`
	Pro        int64 `json:"pro"`
	Enterprise int64 `json:"enterprise"`
}

type PlatformSummary struct {
	TotalClients            int64           `json:"total_clients"`
	ActiveClients           int64           `json:"active_clients"`
	Suspended               int64           `json:"suspended"`
	MonthlyRecurringRevenue decimal.Decimal `json:"monthly_recurring_revenue"`
	PaidThisMonth           decimal.Decimal `json:"paid_this_month"`
	TrialsActive            int64           `json:"trials_active"`
	PlanBreakdown           PlanBreakdown   `json:"plan_breakdown"`
}

var billableStatuses = []models.SubscriptionStatus{
	models.SubscriptionStatusActive,
	models.SubscriptionStatusTrial,
}

// Summaries bypass the report cache.

// GetFinanceSummary totals income and expense transactions regardless of
// their status. net_profit is always income minus expenses.
func GetFinanceSummary(ctx context.Context) (*FinanceSummary, error) {
	return runReport(ctx, "GetFinanceSummary", "", nil, func(ctx context.Context) (*FinanceSummary, error) {
		income, err := sumWhere(ctx, &models.Transaction{}, "amount", "type = ?", models.TransactionTypeIncome)
		if err != nil {
			return nil, err
		}
		expenses, err := sumWhere(ctx, &models.Transaction{}, "amount", "type = ?", models.TransactionTypeExpense)
		if err != nil {
			return nil, err
		}
		pending, err := countWhere(ctx, &models.Invoice{}, "status = ?", models.InvoiceStatusPending)
		if err != nil {
			return nil, err
		}
		return &FinanceSummary{
			TotalIncome:     money(income),
			TotalExpenses:   money(expenses),
			NetProfit:       money(income.Sub(expenses)),
			PendingInvoices: pending,
		}, nil
	})
}

func GetHrSummary(ctx context.Context) (*HrSummary, error) {
	return runReport(ctx, "GetHrSummary", "", nil, func(ctx context.Context) (*HrSummary, error) {
		var result HrSummary
		var err error
		if result.TotalEmployees, err = countWhere(ctx, &models.Employee{}, ""); err != nil {
			return nil, err
		}
		if result.Active, err = countWhere(ctx, &models.Employee{}, "status = ?", models.EmployeeStatusActive); err != nil {
			return nil, err
		}
		if result.OnLeave, err = countWhere(ctx, &models.Employee{}, "status = ?", models.EmployeeStatusOnLeave); err != nil {
			return nil, err
		}
		if result.OpenPositions, err = countWhere(ctx, &models.Position{}, "status = ?", models.PositionStatusOpen); err != nil {
			return nil, err
		}
		return &result, nil
	})
}

func GetProjectSummary(ctx context.Context) (*ProjectSummary, error) {
	return runReport(ctx, "GetProjectSummary", "", nil, func(ctx context.Context) (*ProjectSummary, error) {
		var result ProjectSummary
		var err error
		if result.TotalProjects, err = countWhere(ctx, &models.Project{}, ""); err != nil {
			return nil, err
		}
		if result.Active, err = countWhere(ctx, &models.Project{}, "status = ?", models.ProjectStatusActive); err != nil {
			return nil, err
		}
		if result.Completed, err = countWhere(ctx, &models.Project{}, "status = ?", models.ProjectStatusCompleted); err != nil {
			return nil, err
		}
		if result.TotalTasks, err = countWhere(ctx, &models.KanbanTask{}, ""); err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// GetPlatformSummary reports client counts, recurring revenue over active and
// trial subscriptions, and payments collected since the first of the month.
func GetPlatformSummary(ctx context.Context) (*PlatformSummary, error) {
	return runReport(ctx, "GetPlatformSummary", "", nil, func(ctx context.Context) (*PlatformSummary, error) {
		var result PlatformSummary
		var err error
		if result.TotalClients, err = countWhere(ctx, &models.ClientOrg{}, ""); err != nil {
			return nil, err
		}
		if result.ActiveClients, err = countWhere(ctx, &models.ClientOrg{}, "is_active = ?", true); err != nil {
			return nil, err
		}
		if result.Suspended, err = countWhere(ctx, &models.ClientOrg{}, "is_suspended = ?", true); err != nil {
			return nil, err
		}

		mrr, err := sumWhere(ctx, &models.Subscription{}, "price_monthly", "status IN ?", billableStatuses)
		if err != nil {
			return nil, err
		}
		result.MonthlyRecurringRevenue = money(mrr)

		monthStart := utils.StartOfMonth(utils.Now(ctx))
		paid, err := sumWhere(ctx, &models.Payment{}, "amount", "status = ? AND paid_at >= ?", models.PaymentStatusPaid, monthStart)
		if err != nil {
			return nil, err
		}
		result.PaidThisMonth = money(paid)

		if result.TrialsActive, err = countWhere(ctx, &models.Subscription{}, "status = ?", models.SubscriptionStatusTrial); err != nil {
			return nil, err
		}

		breakdown, err := planBreakdown(ctx)
		if err != nil {
			return nil, err
		}
		result.PlanBreakdown = *breakdown
		return &result, nil
	})
}

type planCount struct {
	PlanTier models.PlanTier
	Total    int64
}

func planBreakdown(ctx context.Context) (*PlanBreakdown, error) {
	var rows []planCount
	err := configDB(ctx).Model(&models.Subscription{}).
		Select("plan_tier, COUNT(*) AS total").
		Where("status IN ?", billableStatuses).
		Group("plan_tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	var result PlanBreakdown
	for _, row := range rows {
		switch row.PlanTier {
		case models.PlanTierStarter:
			result.Starter = row.Total
		case models.PlanTierPro:
			result.Pro = row.Total
		case models.PlanTierEnterprise:
			result.Enterprise = row.Total
		}
	}
	return &result, nil
}
