package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
)

type Budget struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Category  string          `gorm:"size:100;not null" json:"category"`
	Allocated decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"allocated"`
	Spent     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"spent"`
	// e.g. "2025-Q1"
	Period    string    `gorm:"size:20;not null;index" json:"period"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewBudget struct {
	Category  string           `json:"category" binding:"required,max=100"`
	Allocated *decimal.Decimal `json:"allocated" binding:"required"`
	Spent     *decimal.Decimal `json:"spent"`
	Period    string           `json:"period" binding:"required,max=20"`
}

type BudgetPatch struct {
	Category  utils.Optional[string]          `json:"category"`
	Allocated utils.Optional[decimal.Decimal] `json:"allocated"`
	Spent     utils.Optional[decimal.Decimal] `json:"spent"`
	Period    utils.Optional[string]          `json:"period"`
}

func (p *BudgetPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "category", p.Category); err != nil {
		return nil, err
	}
	if err := setValue(m, "allocated", p.Allocated); err != nil {
		return nil, err
	}
	if err := setValue(m, "spent", p.Spent); err != nil {
		return nil, err
	}
	if err := setValue(m, "period", p.Period); err != nil {
		return nil, err
	}
	return m, nil
}

func CreateBudget(ctx context.Context, input *NewBudget) (*Budget, error) {
	db := config.GetDB()
	budget := Budget{
		Category:  input.Category,
		Allocated: *input.Allocated,
		Spent:     utils.DereferencePtr(input.Spent, decimal.Zero),
		Period:    input.Period,
	}
	if err := db.WithContext(ctx).Create(&budget).Error; err != nil {
		return nil, utils.StoreError(err)
	}
	return &budget, nil
}

func GetBudget(ctx context.Context, id int) (*Budget, error) {
	return utils.FetchModel[Budget](ctx, id)
}

func GetBudgets(ctx context.Context, params ListParams) ([]*Budget, error) {
	params = params.WithDefault(DefaultListLimit)
	return utils.FetchModels[Budget](ctx, "period DESC, category ASC, id ASC", params.Skip, params.Limit)
}

func UpdateBudget(ctx context.Context, id int, input *BudgetPatch) (*Budget, error) {
	if _, err := utils.FetchModel[Budget](ctx, id); err != nil {
		return nil, err
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[Budget](ctx, id, updates)
}

func DeleteBudget(ctx context.Context, id int) error {
	return utils.DeleteModel[Budget](ctx, id)
}
