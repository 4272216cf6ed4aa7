package models

import (
	"context"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"gorm.io/gorm"
)

const DefaultColumnColor = "#555555"

// Columns and tasks are listed by position, then id. Positions are supplied
// by the caller and are neither unique nor contiguous.
const kanbanOrder = "position ASC, id ASC"

type KanbanColumn struct {
	ID        int       `gorm:"primary_key" json:"id"`
	ProjectId int       `gorm:"not null;index" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectId;constraint:OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Color     string    `gorm:"size:20;not null" json:"color"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type KanbanTask struct {
	ID          int           `gorm:"primary_key" json:"id"`
	ColumnId    int           `gorm:"not null;index" json:"column_id"`
	Column      *KanbanColumn `gorm:"foreignKey:ColumnId;constraint:OnDelete:CASCADE" json:"-"`
	ProjectId   int           `gorm:"not null;index" json:"project_id"`
	Project     *Project      `gorm:"foreignKey:ProjectId;constraint:OnDelete:CASCADE" json:"-"`
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description *string       `gorm:"type:text" json:"description"`
	Priority    TaskPriority  `gorm:"size:20;not null" json:"priority"`
	Assignee    *string       `gorm:"size:255" json:"assignee"`
	// comma separated
	Tags      *string    `gorm:"size:255" json:"tags"`
	DueDate   *time.Time `json:"due_date"`
	Position  int        `gorm:"not null" json:"position"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewKanbanColumn struct {
	ProjectId int    `json:"project_id"`
	Name      string `json:"name" binding:"required,max=100"`
	Color     string `json:"color" binding:"max=20"`
	Position  int    `json:"position"`
}

type KanbanColumnPatch struct {
	Name     utils.Optional[string] `json:"name"`
	Color    utils.Optional[string] `json:"color"`
	Position utils.Optional[int]    `json:"position"`
}

func (p *KanbanColumnPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "name", p.Name); err != nil {
		return nil, err
	}
	if err := setValue(m, "color", p.Color); err != nil {
		return nil, err
	}
	if err := setValue(m, "position", p.Position); err != nil {
		return nil, err
	}
	return m, nil
}

// NewKanbanTask does not require ColumnId to belong to ProjectId.
type NewKanbanTask struct {
	ColumnId    int          `json:"column_id" binding:"required"`
	ProjectId   int          `json:"project_id"`
	Title       string       `json:"title" binding:"required,max=255"`
	Description *string      `json:"description"`
	Priority    TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Assignee    *string      `json:"assignee"`
	Tags        *string      `json:"tags"`
	DueDate     *time.Time   `json:"due_date"`
	Position    int          `json:"position"`
}

type KanbanTaskPatch struct {
	ColumnId    utils.Optional[int]          `json:"column_id"`
	Title       utils.Optional[string]       `json:"title"`
	Description utils.Optional[string]       `json:"description"`
	Priority    utils.Optional[TaskPriority] `json:"priority"`
	Assignee    utils.Optional[string]       `json:"assignee"`
	Tags        utils.Optional[string]       `json:"tags"`
	DueDate     utils.Optional[time.Time]    `json:"due_date"`
	Position    utils.Optional[int]          `json:"position"`
}

func (p *KanbanTaskPatch) apply() (updateMap, error) {
	m := updateMap{}
	if err := setValue(m, "column_id", p.ColumnId); err != nil {
		return nil, err
	}
	if err := setValue(m, "title", p.Title); err != nil {
		return nil, err
	}
	setNullable(m, "description", p.Description)
	if err := setEnum(m, "priority", p.Priority); err != nil {
		return nil, err
	}
	setNullable(m, "assignee", p.Assignee)
	setNullable(m, "tags", p.Tags)
	setNullable(m, "due_date", p.DueDate)
	if err := setValue(m, "position", p.Position); err != nil {
		return nil, err
	}
	return m, nil
}

func byProject(projectId int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("project_id = ?", projectId)
	}
}

func byColumn(columnId int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("column_id = ?", columnId)
	}
}

func CreateColumn(ctx context.Context, input *NewKanbanColumn) (*KanbanColumn, error) {
	color := input.Color
	if color == "" {
		color = DefaultColumnColor
	}

	db := config.GetDB()
	column := KanbanColumn{
		ProjectId: input.ProjectId,
		Name:      input.Name,
		Color:     color,
		Position:  input.Position,
	}
	if err := db.WithContext(ctx).Create(&column).Error; err != nil {
		config.LogError(config.GetLogger(), "Kanban", "CreateColumn", "create", input, err)
		return nil, utils.StoreError(err)
	}
	return &column, nil
}

func GetColumn(ctx context.Context, id int) (*KanbanColumn, error) {
	return utils.FetchModel[KanbanColumn](ctx, id)
}

func GetColumns(ctx context.Context, projectId int) ([]*KanbanColumn, error) {
	return utils.FetchModels[KanbanColumn](ctx, kanbanOrder, 0, 0, byProject(projectId))
}

func UpdateColumn(ctx context.Context, id int, input *KanbanColumnPatch) (*KanbanColumn, error) {
	if _, err := utils.FetchModel[KanbanColumn](ctx, id); err != nil {
		return nil, err
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[KanbanColumn](ctx, id, updates)
}

// DeleteColumn removes the column and, by cascade, its tasks.
func DeleteColumn(ctx context.Context, id int) error {
	return utils.DeleteModel[KanbanColumn](ctx, id)
}

func CreateTask(ctx context.Context, input *NewKanbanTask) (*KanbanTask, error) {
	priority := input.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}

	db := config.GetDB()
	task := KanbanTask{
		ColumnId:    input.ColumnId,
		ProjectId:   input.ProjectId,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Assignee:    input.Assignee,
		Tags:        input.Tags,
		DueDate:     input.DueDate,
		Position:    input.Position,
	}
	if err := db.WithContext(ctx).Create(&task).Error; err != nil {
		config.LogError(config.GetLogger(), "Kanban", "CreateTask", "create", input, err)
		return nil, utils.StoreError(err)
	}
	return &task, nil
}

func GetTask(ctx context.Context, id int) (*KanbanTask, error) {
	return utils.FetchModel[KanbanTask](ctx, id)
}

// GetTasks lists every task of the project across all of its columns.
func GetTasks(ctx context.Context, projectId int) ([]*KanbanTask, error) {
	return utils.FetchModels[KanbanTask](ctx, kanbanOrder, 0, 0, byProject(projectId))
}

func GetTasksByColumn(ctx context.Context, columnId int) ([]*KanbanTask, error) {
	return utils.FetchModels[KanbanTask](ctx, kanbanOrder, 0, 0, byColumn(columnId))
}

func UpdateTask(ctx context.Context, id int, input *KanbanTaskPatch) (*KanbanTask, error) {
	if _, err := utils.FetchModel[KanbanTask](ctx, id); err != nil {
		return nil, err
	}
	updates, err := input.apply()
	if err != nil {
		return nil, err
	}
	return utils.UpdateModel[KanbanTask](ctx, id, updates)
}

// MoveTask reassigns column and position and nothing else. The target column
// is not checked against the task's project; the last concurrent move wins.
func MoveTask(ctx context.Context, taskId int, newColumnId int, newPosition int) (*KanbanTask, error) {
	if _, err := utils.FetchModel[KanbanTask](ctx, taskId); err != nil {
		return nil, err
	}
	return utils.UpdateModel[KanbanTask](ctx, taskId, updateMap{
		"column_id": newColumnId,
		"position":  newPosition,
	})
}

func DeleteTask(ctx context.Context, id int) error {
	return utils.DeleteModel[KanbanTask](ctx, id)
}
