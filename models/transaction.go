package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          int               `gorm:"primary_key" json:"id"`
	Date        time.Time         `gorm:"not null;index" json:"date"`
	Description string            `gorm:"size:255;not null" json:"description"`
	Category    string            `gorm:"size:100;not null;index" json:"category"`
	Amount      decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"amount"`
	Type        TransactionType   `gorm:"size:20;not null;index" json:"type"`
	Status      TransactionStatus `gorm:"size:20;not null;default:pending" json:"status"`
	Notes       *string           `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransaction struct {
	Date        *time.Time        `json:"date"`
	Description string            `json:"description" binding:"required,max=255"`
	Category    string            `json:"category" binding:"required,max=100"`
	Amount      *decimal.Decimal  `json:"amount" binding:"required"`
	Type        TransactionType   `json:"type" binding:"required,oneof=income expense"`
	Status      TransactionStatus `json:"status" binding:"omitempty,oneof=paid pending received overdue"`
	Notes       *string           `json:"notes"`
}

// TransactionPatch has no type field: income/expense is fixed at creation.
type TransactionPatch struct {
	Date        utils.Optional[time.Time]         `json:"date"`
	Description utils.Optional[string]            `json:"description"`
	Category    utils.Optional[string]            `json:"category"`
	Amount      utils.Optional[decimal.Decimal]   `json:"amount"`
	Status      utils.Optional[TransactionStatus] `json:"status"`
	Notes       utils.Optional[string]            `json:"notes"`
}

func (p *TransactionPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "date", p.Date); err != nil {
		return nil, err
	}
	if err := setValue(m, "description", p.Description); err != nil {
		return nil, err
	}
	if err := setValue(m, "category", p.Category); err != nil {
		return nil, err
	}
	if err := setValue(m, "amount", p.Amount); err != nil {
		return nil, err
	}
	if err := setEnum(m, "status", p.Status); err != nil {
		return nil, err
	}
	setNullable(m, "notes", p.Notes)
	return m, nil
}

func CreateTransaction(ctx context.Context, input *NewTransaction) (*Transaction, error) {
	db := config.GetDB()

	status := input.Status
	if status == "" {
		status = TransactionStatusPending
	}
	transaction := Transaction{
		Date:        utils.DereferencePtr(input.Date, utils.Now(ctx)),
		Description: input.Description,
		Category:    input.Category,
		Amount:      *input.Amount,
		Type:        input.Type,
		Status:      status,
		Notes:       input.Notes,
	}
	if err := db.WithContext(ctx).Create(&transaction).Error; err != nil {
		config.LogError(config.GetLogger(), "Transaction", "CreateTransaction", "create", input, err)
		return nil, utils.StoreError(err)
	}
	return &transaction, nil
}

func GetTransaction(ctx context.Context, id int) (*Transaction, error) {
	return utils.FetchModel[Transaction](ctx, id)
}

func GetTransactions(ctx context.Context, params ListParams) ([]*Transaction, error) {
	params = params.WithDefault(DefaultListLimit)
	return utils.FetchModels[Transaction](ctx, "date DESC, id DESC", params.Skip, params.Limit)
}

func UpdateTransaction(ctx context.Context, id int, input *TransactionPatch) (*Transaction, error) {
	if _, err := utils.FetchModel[Transaction](ctx, id); err != nil {
		return nil, err
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[Transaction](ctx, id, updates)
}

func DeleteTransaction(ctx context.Context, id int) error {
	return utils.DeleteModel[Transaction](ctx, id)
}
