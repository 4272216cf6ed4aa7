package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"gorm.io/gorm"
)

type ClientActivity struct {
	ID        int        `gorm:"primary_key" json:"id"`
	ClientId  int        `gorm:"not null;index" json:"client_id"`
	Client    *ClientOrg `gorm:"foreignKey:ClientId;constraint:OnDelete:CASCADE" json:"-"`
	Action    string     `gorm:"size:100;not null" json:"action"`
	Actor     *string    `gorm:"size:255" json:"actor"`
	Metadata  *string    `gorm:"type:text" json:"metadata"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

// logActivity appends an activity row inside the caller's transaction.
func logActivity(ctx context.Context, tx *gorm.DB, clientId int, action string, metadata *string) error {
	actor := utils.ActorFromContext(ctx)
	activity := ClientActivity{
		ClientId: clientId,
		Action:   action,
		Actor:    &actor,
		Metadata: metadata,
	}
	return tx.Create(&activity).Error
}

func LogActivity(ctx context.Context, clientId int, action string, actor *string, metadata *string) (*ClientActivity, error) {
	db := config.GetDB()
	activity := ClientActivity{
		ClientId: clientId,
		Action:   action,
		Actor:    actor,
		Metadata: metadata,
	}
	if err := db.WithContext(ctx).Create(&activity).Error; err != nil {
		config.LogError(config.GetLogger(), "ClientActivity", "LogActivity", "create", activity, err)
		return nil, utils.StoreError(err)
	}
	return &activity, nil
}

func GetActivity(ctx context.Context, params ListParams) ([]*ClientActivity, error) {
	params = params.WithDefault(DefaultListLimit)
	return utils.FetchModels[ClientActivity](ctx, "created_at DESC, id DESC", params.Skip, params.Limit)
}

func GetActivityByClient(ctx context.Context, clientId int, params ListParams) ([]*ClientActivity, error) {
	params = params.WithDefault(DefaultActivityLimit)
	return utils.FetchModels[ClientActivity](ctx, "created_at DESC, id DESC", params.Skip, params.Limit,
		func(db *gorm.DB) *gorm.DB { return db.Where("client_id = ?", clientId) })
}
