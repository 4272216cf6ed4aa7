package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
)

const DefaultProjectColor = "#7c6aff"

// Project owns its kanban columns and tasks; deleting it removes both
// through the store's ON DELETE CASCADE constraints.
type Project struct {
	ID          int           `gorm:"primary_key" json:"id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description *string       `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"size:20;not null;index" json:"status"`
	Color       string        `gorm:"size:20;not null" json:"color"`
	Owner       *string       `gorm:"size:255" json:"owner"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProject struct {
	Name        string        `json:"name" binding:"required,max=255"`
	Description *string       `json:"description"`
	Status      ProjectStatus `json:"status" binding:"omitempty,oneof=active on_hold completed archived"`
	Color       string        `json:"color" binding:"max=20"`
	Owner       *string       `json:"owner"`
}

type ProjectPatch struct {
	Name        utils.Optional[string]        `json:"name"`
	Description utils.Optional[string]        `json:"description"`
	Status      utils.Optional[ProjectStatus] `json:"status"`
	Color       utils.Optional[string]        `json:"color"`
	Owner       utils.Optional[string]        `json:"owner"`
}

func (p *ProjectPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "name", p.Name); err != nil {
		return nil, err
	}
	setNullable(m, "description", p.Description)
	if err := setEnum(m, "status", p.Status); err != nil {
		return nil, err
	}
	if err := setValue(m, "color", p.Color); err != nil {
		return nil, err
	}
	setNullable(m, "owner", p.Owner)
	return m, nil
}

func CreateProject(ctx context.Context, input *NewProject) (*Project, error) {
	status := input.Status
	if status == "" {
		status = ProjectStatusActive
	}
	color := input.Color
	if color == "" {
		color = DefaultProjectColor
	}

	db := config.GetDB()
	project := Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		Color:       color,
		Owner:       input.Owner,
	}
	if err := db.WithContext(ctx).Create(&project).Error; err != nil {
		config.LogError(config.GetLogger(), "Project", "CreateProject", "create", input, err)
		return nil, utils.StoreError(err)
	}
	return &project, nil
}

func GetProject(ctx context.Context, id int) (*Project, error) {
	return utils.FetchModel[Project](ctx, id)
}

func GetProjects(ctx context.Context) ([]*Project, error) {
	return utils.FetchModels[Project](ctx, "created_at DESC, id DESC", 0, 0)
}

func UpdateProject(ctx context.Context, id int, input *ProjectPatch) (*Project, error) {
	if _, err := utils.FetchModel[Project](ctx, id); err != nil {
		return nil, err
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[Project](ctx, id, updates)
}

func DeleteProject(ctx context.Context, id int) error {
	return utils.DeleteModel[Project](ctx, id)
}
