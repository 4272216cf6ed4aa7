package models_test

import (
	"context"
	"testing"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/testutil"
	"github.com/benela/benela_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnDefaults(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, ctx, "Website")

	assert.Equal(t, models.ProjectStatusActive, project.Status)
	assert.Equal(t, models.DefaultProjectColor, project.Color)

	column := testutil.CreateColumn(t, ctx, project.ID, "Backlog", 0)
	assert.Equal(t, models.DefaultColumnColor, column.Color)

	task := testutil.CreateTask(t, ctx, project.ID, column.ID, "Draft copy", 0)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)
}

func TestColumnsOrderedByPositionThenId(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, ctx, "Website")

	done := testutil.CreateColumn(t, ctx, project.ID, "Done", 2)
	first := testutil.CreateColumn(t, ctx, project.ID, "To Do", 0)
	tied := testutil.CreateColumn(t, ctx, project.ID, "Doing", 0)

	columns, err := models.GetColumns(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, []int{first.ID, tied.ID, done.ID}, []int{columns[0].ID, columns[1].ID, columns[2].ID})
}

func TestGetColumnsScopedToProject(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	a := testutil.CreateProject(t, ctx, "A")
	b := testutil.CreateProject(t, ctx, "B")
	testutil.CreateColumn(t, ctx, a.ID, "To Do", 0)
	testutil.CreateColumn(t, ctx, b.ID, "To Do", 0)

	columns, err := models.GetColumns(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, a.ID, columns[0].ProjectId)
}

func TestMoveTaskKeepsProject(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, ctx, "Website")
	todo := testutil.CreateColumn(t, ctx, project.ID, "To Do", 0)
	doing := testutil.CreateColumn(t, ctx, project.ID, "Doing", 1)
	task, err := models.CreateTask(ctx, &models.NewKanbanTask{
		ProjectId: project.ID,
		ColumnId:  todo.ID,
		Title:     "Ship it",
		Priority:  models.TaskPriorityHigh,
		Position:  3,
	})
	require.NoError(t, err)

	moved, err := models.MoveTask(ctx, task.ID, doing.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, doing.ID, moved.ColumnId)
	assert.Equal(t, 0, moved.Position)
	assert.Equal(t, project.ID, moved.ProjectId)
	assert.Equal(t, task.Title, moved.Title)
	assert.Equal(t, models.TaskPriorityHigh, moved.Priority)

	inTodo, err := models.GetTasksByColumn(ctx, todo.ID)
	require.NoError(t, err)
	assert.Empty(t, inTodo)
}

func TestMoveTaskAcrossProjects(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	a := testutil.CreateProject(t, ctx, "A")
	b := testutil.CreateProject(t, ctx, "B")
	aTodo := testutil.CreateColumn(t, ctx, a.ID, "To Do", 0)
	bTodo := testutil.CreateColumn(t, ctx, b.ID, "To Do", 0)
	task := testutil.CreateTask(t, ctx, a.ID, aTodo.ID, "Ship it", 0)

	moved, err := models.MoveTask(ctx, task.ID, bTodo.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, bTodo.ID, moved.ColumnId)
	assert.Equal(t, 5, moved.Position)
	assert.Equal(t, a.ID, moved.ProjectId)

	inB, err := models.GetTasksByColumn(ctx, bTodo.ID)
	require.NoError(t, err)
	require.Len(t, inB, 1)
	assert.Equal(t, task.ID, inB[0].ID)

	tasksOfA, err := models.GetTasks(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, tasksOfA, 1)
	tasksOfB, err := models.GetTasks(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, tasksOfB)
}

func TestCreateTaskInOtherProjectsColumn(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	a := testutil.CreateProject(t, ctx, "A")
	b := testutil.CreateProject(t, ctx, "B")
	bTodo := testutil.CreateColumn(t, ctx, b.ID, "To Do", 0)

	task, err := models.CreateTask(ctx, &models.NewKanbanTask{ProjectId: a.ID, ColumnId: bTodo.ID, Title: "Stray"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, task.ProjectId)
	assert.Equal(t, bTodo.ID, task.ColumnId)
}

func TestTasksOrderedByPositionThenId(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, ctx, "Website")
	column := testutil.CreateColumn(t, ctx, project.ID, "To Do", 0)

	last := testutil.CreateTask(t, ctx, project.ID, column.ID, "last", 9)
	first := testutil.CreateTask(t, ctx, project.ID, column.ID, "first", 1)
	tiedA := testutil.CreateTask(t, ctx, project.ID, column.ID, "tied a", 4)
	tiedB := testutil.CreateTask(t, ctx, project.ID, column.ID, "tied b", 4)
	want := []int{first.ID, tiedA.ID, tiedB.ID, last.ID}

	ids := func(tasks []*models.KanbanTask) []int {
		out := make([]int, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.ID)
		}
		return out
	}

	byProject, err := models.GetTasks(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, want, ids(byProject))

	byColumn, err := models.GetTasksByColumn(ctx, column.ID)
	require.NoError(t, err)
	assert.Equal(t, want, ids(byColumn))
}

func TestMoveMissingTask(t *testing.T) {
	testutil.NewTestDB(t)
	_, err := models.MoveTask(context.Background(), 999, 1, 0)
	assert.ErrorIs(t, err, utils.ErrorRecordNotFound)
}

func TestDeleteProjectCascades(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, ctx, "Website")
	other := testutil.CreateProject(t, ctx, "Other")
	todo := testutil.CreateColumn(t, ctx, project.ID, "To Do", 0)
	done := testutil.CreateColumn(t, ctx, project.ID, "Done", 1)
	for i := 0; i < 5; i++ {
		column := todo
		if i%2 == 1 {
			column = done
		}
		testutil.CreateTask(t, ctx, project.ID, column.ID, "task", i)
	}
	otherColumn := testutil.CreateColumn(t, ctx, other.ID, "To Do", 0)
	testutil.CreateTask(t, ctx, other.ID, otherColumn.ID, "untouched", 0)

	tasks, err := models.GetTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	require.NoError(t, models.DeleteProject(ctx, project.ID))

	columns, err := models.GetColumns(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, columns)
	tasks, err = models.GetTasks(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = models.GetColumn(ctx, todo.ID)
	assert.ErrorIs(t, err, utils.ErrorRecordNotFound)

	remaining, err := models.GetTasks(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestDeleteColumnCascadesToTasks(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, ctx, "Website")
	todo := testutil.CreateColumn(t, ctx, project.ID, "To Do", 0)
	doing := testutil.CreateColumn(t, ctx, project.ID, "Doing", 1)
	gone := testutil.CreateTask(t, ctx, project.ID, todo.ID, "gone", 0)
	kept := testutil.CreateTask(t, ctx, project.ID, doing.ID, "kept", 0)

	require.NoError(t, models.DeleteColumn(ctx, todo.ID))

	_, err := models.GetTask(ctx, gone.ID)
	assert.ErrorIs(t, err, utils.ErrorRecordNotFound)
	tasks, err := models.GetTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, kept.ID, tasks[0].ID)
}

func TestDeleteMissingColumn(t *testing.T) {
	testutil.NewTestDB(t)
	err := models.DeleteColumn(context.Background(), 42)
	assert.ErrorIs(t, err, utils.ErrorRecordNotFound)
}

func TestTaskWithUnknownColumnRejected(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, ctx, "Website")

	_, err := models.CreateTask(ctx, &models.NewKanbanTask{ProjectId: project.ID, ColumnId: 12345, Title: "orphan"})
	assert.Error(t, err)
}

func TestUpdateTaskPatch(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, ctx, "Website")
	column := testutil.CreateColumn(t, ctx, project.ID, "To Do", 0)
	assignee := "maya"
	task, err := models.CreateTask(ctx, &models.NewKanbanTask{
		ProjectId: project.ID,
		ColumnId:  column.ID,
		Title:     "Ship it",
		Assignee:  &assignee,
	})
	require.NoError(t, err)

	updated, err := models.UpdateTask(ctx, task.ID, &models.KanbanTaskPatch{
		Priority: utils.Some(models.TaskPriorityHigh),
		Assignee: utils.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskPriorityHigh, updated.Priority)
	assert.Nil(t, updated.Assignee)
	assert.Equal(t, "Ship it", updated.Title)

	_, err = models.UpdateTask(ctx, task.ID, &models.KanbanTaskPatch{Title: utils.Null[string]()})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = models.UpdateTask(ctx, task.ID, &models.KanbanTaskPatch{Priority: utils.Some(models.TaskPriority("urgent"))})
	assert.ErrorIs(t, err, utils.ErrValidation)
}
