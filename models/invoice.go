package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
)

// InvoiceStatusPending is the only status the finance summary counts.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusPending = "pending"
)

type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceNumber string          `gorm:"size:50;not null;uniqueIndex" json:"invoice_number"`
	ClientName    string          `gorm:"size:255;not null" json:"client_name"`
	ClientEmail   *string         `gorm:"size:255" json:"client_email"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Tax           decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"tax"`
	Status        string          `gorm:"size:50;not null;default:draft;index" json:"status"`
	IssueDate     time.Time       `gorm:"not null" json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewInvoice struct {
	InvoiceNumber string           `json:"invoice_number" binding:"required,max=50"`
	ClientName    string           `json:"client_name" binding:"required,max=255"`
	ClientEmail   *string          `json:"client_email" binding:"omitempty,email"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	Tax           *decimal.Decimal `json:"tax"`
	Status        string           `json:"status" binding:"max=50"`
	IssueDate     *time.Time       `json:"issue_date"`
	DueDate       *time.Time       `json:"due_date"`
	Notes         *string          `json:"notes"`
}

type InvoicePatch struct {
	InvoiceNumber utils.Optional[string]          `json:"invoice_number"`
	ClientName    utils.Optional[string]          `json:"client_name"`
	ClientEmail   utils.Optional[string]          `json:"client_email"`
	Amount        utils.Optional[decimal.Decimal] `json:"amount"`
	Tax           utils.Optional[decimal.Decimal] `json:"tax"`
	Status        utils.Optional[string]          `json:"status"`
	IssueDate     utils.Optional[time.Time]       `json:"issue_date"`
	DueDate       utils.Optional[time.Time]       `json:"due_date"`
	Notes         utils.Optional[string]          `json:"notes"`
}

func (p *InvoicePatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "invoice_number", p.InvoiceNumber); err != nil {
		return nil, err
	}
	if err := setValue(m, "client_name", p.ClientName); err != nil {
		return nil, err
	}
	setNullable(m, "client_email", p.ClientEmail)
	if err := setValue(m, "amount", p.Amount); err != nil {
		return nil, err
	}
	if err := setValue(m, "tax", p.Tax); err != nil {
		return nil, err
	}
	if err := setValue(m, "status", p.Status); err != nil {
		return nil, err
	}
	if err := setValue(m, "issue_date", p.IssueDate); err != nil {
		return nil, err
	}
	setNullable(m, "due_date", p.DueDate)
	setNullable(m, "notes", p.Notes)
	return m, nil
}

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	if err := utils.ValidateUnique[Invoice](ctx, "invoice_number", input.InvoiceNumber, 0); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = InvoiceStatusDraft
	}
	db := config.GetDB()
	invoice := Invoice{
		InvoiceNumber: input.InvoiceNumber,
		ClientName:    input.ClientName,
		ClientEmail:   input.ClientEmail,
		Amount:        *input.Amount,
		Tax:           utils.DereferencePtr(input.Tax, decimal.Zero),
		Status:        status,
		IssueDate:     utils.DereferencePtr(input.IssueDate, utils.Now(ctx)),
		DueDate:       input.DueDate,
		Notes:         input.Notes,
	}
	if err := db.WithContext(ctx).Create(&invoice).Error; err != nil {
		config.LogError(config.GetLogger(), "Invoice", "CreateInvoice", "create", input, err)
		return nil, utils.StoreError(err)
	}
	return &invoice, nil
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	return utils.FetchModel[Invoice](ctx, id)
}

func GetInvoices(ctx context.Context, params ListParams) ([]*Invoice, error) {
	params = params.WithDefault(DefaultListLimit)
	return utils.FetchModels[Invoice](ctx, "issue_date DESC, id DESC", params.Skip, params.Limit)
}

func UpdateInvoice(ctx context.Context, id int, input *InvoicePatch) (*Invoice, error) {
	if _, err := utils.FetchModel[Invoice](ctx, id); err != nil {
		return nil, err
	}
	if input.InvoiceNumber.HasValue() {
		if err := utils.ValidateUnique[Invoice](ctx, "invoice_number", input.InvoiceNumber.Value, id); err != nil {
			return nil, err
		}
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[Invoice](ctx, id, updates)
}

func DeleteInvoice(ctx context.Context, id int) error {
	return utils.DeleteModel[Invoice](ctx, id)
}
