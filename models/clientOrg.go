package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
)

type ClientOrg struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	OwnerName   string    `gorm:"size:255;not null" json:"owner_name"`
	OwnerEmail  string    `gorm:"size:255;not null" json:"owner_email"`
	OwnerPhone  *string   `gorm:"size:50" json:"owner_phone"`
	Industry    *string   `gorm:"size:100" json:"industry"`
	CompanySize *string   `gorm:"size:50" json:"company_size"`
	Country     *string   `gorm:"size:100" json:"country"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	IsSuspended bool      `gorm:"not null;index" json:"is_suspended"`
	Notes       *string   `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// ClientWithSubscription pairs a client with its latest subscription (nil when none).
type ClientWithSubscription struct {
	Client       *ClientOrg    `json:"client"`
	Subscription *Subscription `json:"subscription"`
}

type NewClientOrg struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Slug        string  `json:"slug" binding:"required,max=100"`
	OwnerName   string  `json:"owner_name" binding:"required,max=255"`
	OwnerEmail  string  `json:"owner_email" binding:"required,email"`
	OwnerPhone  *string `json:"owner_phone"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"company_size"`
	Country     *string `json:"country"`
	Notes       *string `json:"notes"`
}

type ClientOrgPatch struct {
	Name        utils.Optional[string] `json:"name"`
	Slug        utils.Optional[string] `json:"slug"`
	OwnerName   utils.Optional[string] `json:"owner_name"`
	OwnerEmail  utils.Optional[string] `json:"owner_email"`
	OwnerPhone  utils.Optional[string] `json:"owner_phone"`
	Industry    utils.Optional[string] `json:"industry"`
	CompanySize utils.Optional[string] `json:"company_size"`
	Country     utils.Optional[string] `json:"country"`
	IsActive    utils.Optional[bool]   `json:"is_active"`
	IsSuspended utils.Optional[bool]   `json:"is_suspended"`
	Notes       utils.Optional[string] `json:"notes"`
}

func (p *ClientOrgPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "name", p.Name); err != nil {
		return nil, err
	}
	if err := setValue(m, "slug", p.Slug); err != nil {
		return nil, err
	}
	if err := setValue(m, "owner_name", p.OwnerName); err != nil {
		return nil, err
	}
	if err := setValue(m, "owner_email", p.OwnerEmail); err != nil {
		return nil, err
	}
	if p.OwnerEmail.HasValue() && !utils.IsValidEmail(p.OwnerEmail.Value) {
		return nil, invalidField("owner_email")
	}
	if p.OwnerPhone.HasValue() {
		phone, err := normalizePhone(p.OwnerPhone.Value)
		if err != nil {
			return nil, err
		}
		p.OwnerPhone.Value = phone
	}
	setNullable(m, "owner_phone", p.OwnerPhone)
	setNullable(m, "industry", p.Industry)
	setNullable(m, "company_size", p.CompanySize)
	setNullable(m, "country", p.Country)
	if err := setValue(m, "is_active", p.IsActive); err != nil {
		return nil, err
	}
	if err := setValue(m, "is_suspended", p.IsSuspended); err != nil {
		return nil, err
	}
	setNullable(m, "notes", p.Notes)
	return m, nil
}

func CreateClient(ctx context.Context, input *NewClientOrg) (*ClientOrg, error) {
	if err := utils.ValidateUnique[ClientOrg](ctx, "slug", input.Slug, 0); err != nil {
		return nil, err
	}
	phone, err := normalizePhonePtr(input.OwnerPhone)
	if err != nil {
		return nil, err
	}

	client := ClientOrg{
		Name:        input.Name,
		Slug:        input.Slug,
		OwnerName:   input.OwnerName,
		OwnerEmail:  input.OwnerEmail,
		OwnerPhone:  phone,
		Industry:    input.Industry,
		CompanySize: input.CompanySize,
		Country:     input.Country,
		IsActive:    true,
		IsSuspended: false,
		Notes:       input.Notes,
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if err := tx.Create(&client).Error; err != nil {
		tx.Rollback()
		config.LogError(config.GetLogger(), "ClientOrg", "CreateClient", "create", input, err)
		return nil, utils.StoreError(err)
	}
	if err := logActivity(ctx, tx, client.ID, ActivityClientCreated, nil); err != nil {
		tx.Rollback()
		return nil, utils.StoreError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func GetClient(ctx context.Context, id int) (*ClientOrg, error) {
	return utils.FetchModel[ClientOrg](ctx, id)
}

func GetClients(ctx context.Context) ([]*ClientOrg, error) {
	return utils.FetchModels[ClientOrg](ctx, "created_at DESC, id DESC", 0, 0)
}

func UpdateClient(ctx context.Context, id int, input *ClientOrgPatch) (*ClientOrg, error) {
	if _, err := utils.FetchModel[ClientOrg](ctx, id); err != nil {
		return nil, err
	}
	if input.Slug.HasValue() {
		if err := utils.ValidateUnique[ClientOrg](ctx, "slug", input.Slug.Value, id); err != nil {
			return nil, err
		}
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[ClientOrg](ctx, id, updates)
}

// DeleteClient removes the client with its subscriptions, payments and activity.
func DeleteClient(ctx context.Context, id int) error {
	return utils.DeleteModel[ClientOrg](ctx, id)
}

func SuspendClient(ctx context.Context, id int) (*ClientOrg, error) {
	return setClientSuspension(ctx, id, true)
}

func UnsuspendClient(ctx context.Context, id int) (*ClientOrg, error) {
	return setClientSuspension(ctx, id, false)
}

// suspension and active are always flipped together
func setClientSuspension(ctx context.Context, id int, suspended bool) (*ClientOrg, error) {
	if _, err := utils.FetchModel[ClientOrg](ctx, id); err != nil {
		return nil, err
	}

	action := ActivityClientUnsuspended
	if suspended {
		action = ActivityClientSuspended
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if err := tx.Model(&ClientOrg{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_suspended": suspended,
		"is_active":    !suspended,
	}).Error; err != nil {
		tx.Rollback()
		config.LogError(config.GetLogger(), "ClientOrg", "setClientSuspension", action, id, err)
		return nil, utils.StoreError(err)
	}
	if err := logActivity(ctx, tx, id, action, nil); err != nil {
		tx.Rollback()
		return nil, utils.StoreError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[ClientOrg](ctx, id)
}
