package models

import (
	"context"
	"fmt"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultCurrency = "USD"

type Payment struct {
	ID             int             `gorm:"primary_key" json:"id"`
	ClientId       int             `gorm:"not null;index" json:"client_id"`
	Client         *ClientOrg      `gorm:"foreignKey:ClientId;constraint:OnDelete:CASCADE" json:"-"`
	SubscriptionId *int            `gorm:"index" json:"subscription_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Currency       string          `gorm:"size:10;not null" json:"currency"`
	Status         PaymentStatus   `gorm:"size:20;not null;index" json:"status"`
	PaymentMethod  *string         `gorm:"size:50" json:"payment_method"`
	Description    *string         `gorm:"size:500" json:"description"`
	InvoiceNumber  *string         `gorm:"size:50" json:"invoice_number"`
	TransactionId  *string         `gorm:"size:100" json:"transaction_id"`
	PaidAt         *time.Time      `gorm:"index" json:"paid_at"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

type NewPayment struct {
	ClientId       int              `json:"client_id" binding:"required"`
	SubscriptionId *int             `json:"subscription_id"`
	Amount         *decimal.Decimal `json:"amount" binding:"required"`
	Currency       string           `json:"currency" binding:"max=10"`
	Status         PaymentStatus    `json:"status" binding:"omitempty,oneof=pending paid failed refunded"`
	PaymentMethod  *string          `json:"payment_method"`
	Description    *string          `json:"description"`
	InvoiceNumber  *string          `json:"invoice_number"`
	TransactionId  *string          `json:"transaction_id"`
	PaidAt         *time.Time       `json:"paid_at"`
}

type PaymentStatusUpdate struct {
	Status PaymentStatus `json:"status" binding:"required,oneof=pending paid failed refunded"`
	PaidAt *time.Time    `json:"paid_at"`
}

// PaymentFilter narrows the payment list; nil fields are ignored.
type PaymentFilter struct {
	ClientId *int           `form:"client_id"`
	Status   *PaymentStatus `form:"status"`
}

func (f PaymentFilter) scope(db *gorm.DB) *gorm.DB {
	if f.ClientId != nil {
		db = db.Where("client_id = ?", *f.ClientId)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	return db
}

func CreatePayment(ctx context.Context, input *NewPayment) (*Payment, error) {
	status := input.Status
	if status == "" {
		status = PaymentStatusPending
	}
	currency := input.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	paidAt := input.PaidAt
	if paidAt == nil && status == PaymentStatusPaid {
		now := utils.Now(ctx)
		paidAt = &now
	}

	db := config.GetDB()
	payment := Payment{
		ClientId:       input.ClientId,
		SubscriptionId: input.SubscriptionId,
		Amount:         *input.Amount,
		Currency:       currency,
		Status:         status,
		PaymentMethod:  input.PaymentMethod,
		Description:    input.Description,
		InvoiceNumber:  input.InvoiceNumber,
		TransactionId:  input.TransactionId,
		PaidAt:         paidAt,
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		config.LogError(config.GetLogger(), "Payment", "CreatePayment", "create", input, err)
		return nil, utils.StoreError(err)
	}
	return &payment, nil
}

func GetPayment(ctx context.Context, id int) (*Payment, error) {
	return utils.FetchModel[Payment](ctx, id)
}

func GetPayments(ctx context.Context, params ListParams, filter PaymentFilter) ([]*Payment, error) {
	params = params.WithDefault(DefaultAdminListLimit)
	return utils.FetchModels[Payment](ctx, "created_at DESC, id DESC", params.Skip, params.Limit, filter.scope)
}

func GetPaymentsByClient(ctx context.Context, clientId int, params ListParams) ([]*Payment, error) {
	return GetPayments(ctx, params, PaymentFilter{ClientId: &clientId})
}

// UpdatePaymentStatus sets the status. An explicit paid_at always wins;
// otherwise moving to paid stamps paid_at only when it is still empty.
func UpdatePaymentStatus(ctx context.Context, id int, input *PaymentStatusUpdate) (*Payment, error) {
	current, err := utils.FetchModel[Payment](ctx, id)
	if err != nil {
		return nil, err
	}

	updates := updateMap{"status": input.Status}
	if input.PaidAt != nil {
		updates["paid_at"] = *input.PaidAt
	} else if input.Status == PaymentStatusPaid && current.PaidAt == nil {
		updates["paid_at"] = utils.Now(ctx)
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if err := tx.Model(&Payment{}).Where("id = ?", id).Updates(map[string]interface{}(updates)).Error; err != nil {
		tx.Rollback()
		config.LogError(config.GetLogger(), "Payment", "UpdatePaymentStatus", "update", input, err)
		return nil, utils.StoreError(err)
	}
	if current.Status != input.Status {
		metadata := fmt.Sprintf("payment=%d %s -> %s", id, current.Status, input.Status)
		if err := logActivity(ctx, tx, current.ClientId, ActivityPaymentStatusChanged, &metadata); err != nil {
			tx.Rollback()
			return nil, utils.StoreError(err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Payment](ctx, id)
}
