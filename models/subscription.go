package models

import (
	"context"
	"fmt"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
)

const (
	DefaultSeats        = 10
	DefaultModules      = "finance,hr"
	DefaultBillingCycle = "monthly"
)

// Subscription belongs to a client. A client's current subscription is its
// most recent one by created_at, ties broken by id.
type Subscription struct {
	ID                 int                `gorm:"primary_key" json:"id"`
	ClientId           int                `gorm:"not null;index" json:"client_id"`
	Client             *ClientOrg         `gorm:"foreignKey:ClientId;constraint:OnDelete:CASCADE" json:"-"`
	PlanTier           PlanTier           `gorm:"size:20;not null;index" json:"plan_tier"`
	Status             SubscriptionStatus `gorm:"size:20;not null;index" json:"status"`
	PriceMonthly       decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"price_monthly"`
	Seats              int                `gorm:"not null" json:"seats"`
	Modules            string             `gorm:"size:255;not null" json:"modules"`
	BillingCycle       string             `gorm:"size:20;not null" json:"billing_cycle"`
	TrialEndsAt        *time.Time         `json:"trial_ends_at"`
	CurrentPeriodStart *time.Time         `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time         `json:"current_period_end"`
	CancelledAt        *time.Time         `gorm:"index" json:"cancelled_at"`
	CancelReason       *string            `gorm:"size:500" json:"cancel_reason"`
	CreatedAt          time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
}

type NewSubscription struct {
	ClientId           int                `json:"client_id" binding:"required"`
	PlanTier           PlanTier           `json:"plan_tier" binding:"required,oneof=starter pro enterprise"`
	Status             SubscriptionStatus `json:"status" binding:"omitempty,oneof=trial active cancelled expired suspended"`
	PriceMonthly       *decimal.Decimal   `json:"price_monthly"`
	Seats              *int               `json:"seats" binding:"omitempty,min=0"`
	Modules            string             `json:"modules" binding:"max=255"`
	BillingCycle       string             `json:"billing_cycle" binding:"max=20"`
	TrialEndsAt        *time.Time         `json:"trial_ends_at"`
	CurrentPeriodStart *time.Time         `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time         `json:"current_period_end"`
}

type SubscriptionPatch struct {
	PlanTier           utils.Optional[PlanTier]           `json:"plan_tier"`
	Status             utils.Optional[SubscriptionStatus] `json:"status"`
	PriceMonthly       utils.Optional[decimal.Decimal]    `json:"price_monthly"`
	Seats              utils.Optional[int]                `json:"seats"`
	Modules            utils.Optional[string]             `json:"modules"`
	BillingCycle       utils.Optional[string]             `json:"billing_cycle"`
	TrialEndsAt        utils.Optional[time.Time]          `json:"trial_ends_at"`
	CurrentPeriodStart utils.Optional[time.Time]          `json:"current_period_start"`
	CurrentPeriodEnd   utils.Optional[time.Time]          `json:"current_period_end"`
	CancelledAt        utils.Optional[time.Time]          `json:"cancelled_at"`
	CancelReason       utils.Optional[string]             `json:"cancel_reason"`
}

func (p *SubscriptionPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setEnum(m, "plan_tier", p.PlanTier); err != nil {
		return nil, err
	}
	if err := setEnum(m, "status", p.Status); err != nil {
		return nil, err
	}
	if err := setValue(m, "price_monthly", p.PriceMonthly); err != nil {
		return nil, err
	}
	if err := setValue(m, "seats", p.Seats); err != nil {
		return nil, err
	}
	if err := setValue(m, "modules", p.Modules); err != nil {
		return nil, err
	}
	if err := setValue(m, "billing_cycle", p.BillingCycle); err != nil {
		return nil, err
	}
	setNullable(m, "trial_ends_at", p.TrialEndsAt)
	setNullable(m, "current_period_start", p.CurrentPeriodStart)
	setNullable(m, "current_period_end", p.CurrentPeriodEnd)
	setNullable(m, "cancelled_at", p.CancelledAt)
	setNullable(m, "cancel_reason", p.CancelReason)
	return m, nil
}

func CreateSubscription(ctx context.Context, input *NewSubscription) (*Subscription, error) {
	status := input.Status
	if status == "" {
		status = SubscriptionStatusTrial
	}
	modules := input.Modules
	if modules == "" {
		modules = DefaultModules
	}
	billingCycle := input.BillingCycle
	if billingCycle == "" {
		billingCycle = DefaultBillingCycle
	}

	subscription := Subscription{
		ClientId:           input.ClientId,
		PlanTier:           input.PlanTier,
		Status:             status,
		PriceMonthly:       utils.DereferencePtr(input.PriceMonthly, decimal.Zero),
		Seats:              utils.DereferencePtr(input.Seats, DefaultSeats),
		Modules:            modules,
		BillingCycle:       billingCycle,
		TrialEndsAt:        input.TrialEndsAt,
		CurrentPeriodStart: input.CurrentPeriodStart,
		CurrentPeriodEnd:   input.CurrentPeriodEnd,
	}
	if status == SubscriptionStatusCancelled {
		now := utils.Now(ctx)
		subscription.CancelledAt = &now
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if err := tx.Create(&subscription).Error; err != nil {
		tx.Rollback()
		config.LogError(config.GetLogger(), "Subscription", "CreateSubscription", "create", input, err)
		return nil, utils.StoreError(err)
	}
	metadata := fmt.Sprintf("plan=%s status=%s", subscription.PlanTier, subscription.Status)
	if err := logActivity(ctx, tx, subscription.ClientId, ActivitySubscriptionCreated, &metadata); err != nil {
		tx.Rollback()
		return nil, utils.StoreError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

func GetSubscription(ctx context.Context, id int) (*Subscription, error) {
	return utils.FetchModel[Subscription](ctx, id)
}

func GetSubscriptions(ctx context.Context, params ListParams) ([]*Subscription, error) {
	params = params.WithDefault(DefaultAdminListLimit)
	return utils.FetchModels[Subscription](ctx, "created_at DESC, id DESC", params.Skip, params.Limit)
}

// GetSubscriptionByClient returns the client's latest subscription or RecordNotFound.
func GetSubscriptionByClient(ctx context.Context, clientId int) (*Subscription, error) {
	latest, err := GetLatestSubscriptions(ctx, []int{clientId})
	if err != nil {
		return nil, err
	}
	subscription, ok := latest[clientId]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return subscription, nil
}

// GetLatestSubscriptions maps each client id to its latest subscription.
// Clients without one are absent from the map.
func GetLatestSubscriptions(ctx context.Context, clientIds []int) (map[int]*Subscription, error) {
	result := make(map[int]*Subscription, len(clientIds))
	if len(clientIds) == 0 {
		return result, nil
	}

	db := config.GetDB()
	var subscriptions []*Subscription
	if err := db.WithContext(ctx).
		Where("client_id IN ?", clientIds).
		Order("client_id ASC, created_at DESC, id DESC").
		Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	for _, s := range subscriptions {
		if _, seen := result[s.ClientId]; !seen {
			result[s.ClientId] = s
		}
	}
	return result, nil
}

// UpdateSubscription applies a patch. A cancelled subscription stays
// cancelled and keeps its cancelled_at. Moving a live one to cancelled stamps
// cancelled_at unless the patch carries a date, and is logged like a cancel.
func UpdateSubscription(ctx context.Context, id int, input *SubscriptionPatch) (*Subscription, error) {
	current, err := utils.FetchModel[Subscription](ctx, id)
	if err != nil {
		return nil, err
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}

	wasCancelled := current.Status == SubscriptionStatusCancelled
	if wasCancelled {
		if input.Status.HasValue() && input.Status.Value != SubscriptionStatusCancelled {
			return nil, fmt.Errorf("%w: subscription %d is cancelled", ErrInvalidTransition, id)
		}
		if input.CancelledAt.Set {
			return nil, fmt.Errorf("%w: cancelled_at of subscription %d is fixed", ErrInvalidTransition, id)
		}
	}
	cancelling := !wasCancelled && input.Status.HasValue() && input.Status.Value == SubscriptionStatusCancelled
	if !cancelling {
		return utils.UpdateModel[Subscription](ctx, id, updates)
	}
	if !input.CancelledAt.HasValue() {
		updates["cancelled_at"] = utils.Now(ctx)
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if err := tx.Model(&Subscription{}).Where("id = ?", id).Updates(map[string]interface{}(updates)).Error; err != nil {
		tx.Rollback()
		config.LogError(config.GetLogger(), "Subscription", "UpdateSubscription", "update", id, err)
		return nil, utils.StoreError(err)
	}
	var reason *string
	if input.CancelReason.HasValue() {
		reason = input.CancelReason.Ptr()
	}
	if err := logActivity(ctx, tx, current.ClientId, ActivitySubscriptionCanceled, reason); err != nil {
		tx.Rollback()
		return nil, utils.StoreError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Subscription](ctx, id)
}

// CancelSubscription is one-way. Cancelling an already cancelled subscription
// returns it unchanged so the churn month is not moved.
func CancelSubscription(ctx context.Context, id int, reason *string) (*Subscription, error) {
	current, err := utils.FetchModel[Subscription](ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == SubscriptionStatusCancelled {
		return current, nil
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if err := tx.Model(&Subscription{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        SubscriptionStatusCancelled,
		"cancelled_at":  utils.Now(ctx),
		"cancel_reason": reason,
	}).Error; err != nil {
		tx.Rollback()
		config.LogError(config.GetLogger(), "Subscription", "CancelSubscription", "cancel", id, err)
		return nil, utils.StoreError(err)
	}
	if err := logActivity(ctx, tx, current.ClientId, ActivitySubscriptionCanceled, reason); err != nil {
		tx.Rollback()
		return nil, utils.StoreError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Subscription](ctx, id)
}
