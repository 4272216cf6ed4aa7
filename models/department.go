package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
)

type Department struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Head      *string   `gorm:"size:255" json:"head"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewDepartment struct {
	Name string  `json:"name" binding:"required,max=100"`
	Head *string `json:"head"`
}

type DepartmentPatch struct {
	Name utils.Optional[string] `json:"name"`
	Head utils.Optional[string] `json:"head"`
}

func (p *DepartmentPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "name", p.Name); err != nil {
		return nil, err
	}
	setNullable(m, "head", p.Head)
	return m, nil
}

func CreateDepartment(ctx context.Context, input *NewDepartment) (*Department, error) {
	if err := utils.ValidateUnique[Department](ctx, "name", input.Name, 0); err != nil {
		return nil, err
	}

	db := config.GetDB()
	department := Department{
		Name: input.Name,
		Head: input.Head,
	}
	if err := db.WithContext(ctx).Create(&department).Error; err != nil {
		return nil, utils.StoreError(err)
	}
	return &department, nil
}

func GetDepartment(ctx context.Context, id int) (*Department, error) {
	return utils.FetchModel[Department](ctx, id)
}

func GetDepartments(ctx context.Context) ([]*Department, error) {
	return utils.FetchModels[Department](ctx, "name ASC", 0, 0)
}

func UpdateDepartment(ctx context.Context, id int, input *DepartmentPatch) (*Department, error) {
	if _, err := utils.FetchModel[Department](ctx, id); err != nil {
		return nil, err
	}
	if input.Name.HasValue() {
		if err := utils.ValidateUnique[Department](ctx, "name", input.Name.Value, id); err != nil {
			return nil, err
		}
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[Department](ctx, id, updates)
}

func DeleteDepartment(ctx context.Context, id int) error {
	return utils.DeleteModel[Department](ctx, id)
}
