package models

import (
	"context"
	"fmt"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
)

type AdminNotification struct {
	ID             int                `gorm:"primary_key" json:"id"`
	Title          string             `gorm:"size:255;not null" json:"title"`
	Message        string             `gorm:"type:text;not null" json:"message"`
	Type           NotificationType   `gorm:"size:20;not null" json:"type"`
	Target         NotificationTarget `gorm:"size:20;not null" json:"target"`
	TargetValue    *string            `gorm:"size:255" json:"target_value"`
	IsSent         bool               `gorm:"not null" json:"is_sent"`
	SentAt         *time.Time         `json:"sent_at"`
	RecipientCount int                `gorm:"not null" json:"recipient_count"`
	CreatedAt      time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
}

type NewAdminNotification struct {
	Title       string             `json:"title" binding:"required,max=255"`
	Message     string             `json:"message" binding:"required"`
	Type        NotificationType   `json:"type" binding:"omitempty,oneof=info warning success alert"`
	Target      NotificationTarget `json:"target" binding:"omitempty,oneof=all plan client"`
	TargetValue *string            `json:"target_value"`
}

type SendNotificationInput struct {
	RecipientCount int `json:"recipient_count" binding:"min=0"`
}

func CreateNotification(ctx context.Context, input *NewAdminNotification) (*AdminNotification, error) {
	notificationType := input.Type
	if notificationType == "" {
		notificationType = NotificationTypeInfo
	}
	target := input.Target
	if target == "" {
		target = NotificationTargetAll
	}

	db := config.GetDB()
	notification := AdminNotification{
		Title:       input.Title,
		Message:     input.Message,
		Type:        notificationType,
		Target:      target,
		TargetValue: input.TargetValue,
	}
	if err := db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, utils.StoreError(err)
	}
	return &notification, nil
}

func GetNotification(ctx context.Context, id int) (*AdminNotification, error) {
	return utils.FetchModel[AdminNotification](ctx, id)
}

func GetNotifications(ctx context.Context, params ListParams) ([]*AdminNotification, error) {
	params = params.WithDefault(DefaultListLimit)
	return utils.FetchModels[AdminNotification](ctx, "created_at DESC, id DESC", params.Skip, params.Limit)
}

func DeleteNotification(ctx context.Context, id int) error {
	return utils.DeleteModel[AdminNotification](ctx, id)
}

// SendNotification marks the notification sent exactly once. The update is
// conditional on is_sent so two concurrent sends cannot both succeed.
func SendNotification(ctx context.Context, id int, recipientCount int) (*AdminNotification, error) {
	db := config.GetDB()
	result := db.WithContext(ctx).Model(&AdminNotification{}).
		Where("id = ? AND is_sent = ?", id, false).
		Updates(map[string]interface{}{
			"is_sent":         true,
			"sent_at":         utils.Now(ctx),
			"recipient_count": recipientCount,
		})
	if result.Error != nil {
		config.LogError(config.GetLogger(), "AdminNotification", "SendNotification", "update", id, result.Error)
		return nil, utils.StoreError(result.Error)
	}

	notification, err := utils.FetchModel[AdminNotification](ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: notification %d already sent", ErrInvalidTransition, id)
	}
	return notification, nil
}
