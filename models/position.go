package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"github.com/shopspring/decimal"
)

type Position struct {
	ID          int              `gorm:"primary_key" json:"id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Department  *string          `gorm:"size:100" json:"department"`
	Description *string          `gorm:"type:text" json:"description"`
	SalaryMin   *decimal.Decimal `gorm:"type:decimal(20,4)" json:"salary_min"`
	SalaryMax   *decimal.Decimal `gorm:"type:decimal(20,4)" json:"salary_max"`
	Status      PositionStatus   `gorm:"size:20;not null;default:open;index" json:"status"`
	OpenedDate  time.Time        `gorm:"not null" json:"opened_date"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

type NewPosition struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Department  *string          `json:"department"`
	Description *string          `json:"description"`
	SalaryMin   *decimal.Decimal `json:"salary_min"`
	SalaryMax   *decimal.Decimal `json:"salary_max"`
	Status      PositionStatus   `json:"status" binding:"omitempty,oneof=open on_hold closed"`
	OpenedDate  *time.Time       `json:"opened_date"`
}

type PositionPatch struct {
	Title       utils.Optional[string]          `json:"title"`
	Department  utils.Optional[string]          `json:"department"`
	Description utils.Optional[string]          `json:"description"`
	SalaryMin   utils.Optional[decimal.Decimal] `json:"salary_min"`
	SalaryMax   utils.Optional[decimal.Decimal] `json:"salary_max"`
	Status      utils.Optional[PositionStatus]  `json:"status"`
	OpenedDate  utils.Optional[time.Time]       `json:"opened_date"`
}

func (p *PositionPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "title", p.Title); err != nil {
		return nil, err
	}
	setNullable(m, "department", p.Department)
	setNullable(m, "description", p.Description)
	setNullable(m, "salary_min", p.SalaryMin)
	setNullable(m, "salary_max", p.SalaryMax)
	if err := setEnum(m, "status", p.Status); err != nil {
		return nil, err
	}
	if err := setValue(m, "opened_date", p.OpenedDate); err != nil {
		return nil, err
	}
	return m, nil
}

func CreatePosition(ctx context.Context, input *NewPosition) (*Position, error) {
	status := input.Status
	if status == "" {
		status = PositionStatusOpen
	}
	db := config.GetDB()
	position := Position{
		Title:       input.Title,
		Department:  input.Department,
		Description: input.Description,
		SalaryMin:   input.SalaryMin,
		SalaryMax:   input.SalaryMax,
		Status:      status,
		OpenedDate:  utils.DereferencePtr(input.OpenedDate, utils.Now(ctx)),
	}
	if err := db.WithContext(ctx).Create(&position).Error; err != nil {
		return nil, utils.StoreError(err)
	}
	return &position, nil
}

func GetPosition(ctx context.Context, id int) (*Position, error) {
	return utils.FetchModel[Position](ctx, id)
}

func GetPositions(ctx context.Context, params ListParams) ([]*Position, error) {
	params = params.WithDefault(DefaultListLimit)
	return utils.FetchModels[Position](ctx, "opened_date DESC, id DESC", params.Skip, params.Limit)
}

func UpdatePosition(ctx context.Context, id int, input *PositionPatch) (*Position, error) {
	if _, err := utils.FetchModel[Position](ctx, id); err != nil {
		return nil, err
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[Position](ctx, id, updates)
}

func DeletePosition(ctx context.Context, id int) error {
	return utils.DeleteModel[Position](ctx, id)
}
