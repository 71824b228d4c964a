package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serviceops/maintdesk/internal/models"
)

func TestCreateTaskDefaults(t *testing.T) {
	st := newTestStore(t)

	task := createTestTask(t, st, TaskInput{Title: "Inspect pump"})

	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestGetTaskJoinsUserNames(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	assignee := createTestUser(t, st, "assignee@example.com")
	creator := createTestUser(t, st, "creator@example.com")

	task := createTestTask(t, st, TaskInput{
		Title:      "Inspect pump",
		AssignedTo: &assignee.ID,
		CreatedBy:  &creator.ID,
	})

	details, err := st.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", details.AssignedToName)
	assert.Equal(t, "assignee@example.com", details.AssignedToEmail)
	assert.Equal(t, "Test User", details.CreatedByName)

	unassigned := createTestTask(t, st, TaskInput{Title: "Orphan task"})
	details, err = st.GetTask(ctx, unassigned.ID)
	require.NoError(t, err)
	assert.Empty(t, details.AssignedToName)
}

func TestListTasksFilters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	createTestTask(t, st, TaskInput{Title: "Generator check", Priority: models.PriorityHigh, DueDate: "2026-09-01"})
	createTestTask(t, st, TaskInput{Title: "Filter swap", Priority: models.PriorityLow, DueDate: "2026-08-20"})
	done := createTestTask(t, st, TaskInput{Title: "Old job", DueDate: "2026-08-01"})
	_, err := st.SetTaskStatus(ctx, done.ID, models.TaskStatusCompleted)
	require.NoError(t, err)

	pending := models.TaskStatusPending
	tasks, err := st.ListTasks(ctx, TaskFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	// Default sort is due_date ascending.
	assert.Equal(t, "Filter swap", tasks[0].Title)

	high := models.PriorityHigh
	tasks, err = st.ListTasks(ctx, TaskFilter{Priority: &high})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Generator check", tasks[0].Title)

	tasks, err = st.ListTasks(ctx, TaskFilter{Search: "generator"})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	tasks, err = st.ListTasks(ctx, TaskFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestUpdateTaskMaintainsCompletedAt(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	task := createTestTask(t, st, TaskInput{Title: "Inspect pump"})

	completed := models.TaskStatusCompleted
	updated, err := st.UpdateTask(ctx, task.ID, TaskUpdateInput{
		Status:      &completed,
		ActualHours: intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.ActualHours)
	assert.Equal(t, 2, *updated.ActualHours)

	pending := models.TaskStatusPending
	updated, err = st.UpdateTask(ctx, task.ID, TaskUpdateInput{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateTaskNoFields(t *testing.T) {
	st := newTestStore(t)
	task := createTestTask(t, st, TaskInput{Title: "Inspect pump"})

	_, err := st.UpdateTask(context.Background(), task.ID, TaskUpdateInput{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestUpdateTaskNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.UpdateTask(context.Background(), 9999, TaskUpdateInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleTaskStatus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	task := createTestTask(t, st, TaskInput{Title: "Inspect pump"})

	toggled, err := st.ToggleTaskStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, toggled.Status)
	assert.NotNil(t, toggled.CompletedAt)

	toggled, err = st.ToggleTaskStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, toggled.Status)
	assert.Nil(t, toggled.CompletedAt)
}

func TestDeleteTask(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	task := createTestTask(t, st, TaskInput{Title: "Inspect pump"})

	require.NoError(t, st.DeleteTask(ctx, task.ID))
	_, err := st.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.DeleteTask(ctx, task.ID), ErrNotFound)
}

func TestTaskStats(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	today := time.Now().UTC()

	createTestTask(t, st, TaskInput{
		Title:   "Overdue job",
		DueDate: today.AddDate(0, 0, -2).Format(models.DateLayout),
	})
	createTestTask(t, st, TaskInput{
		Title:   "Future job",
		DueDate: today.AddDate(0, 0, 5).Format(models.DateLayout),
	})
	done := createTestTask(t, st, TaskInput{
		Title:   "Done job",
		DueDate: today.AddDate(0, 0, -10).Format(models.DateLayout),
	})
	_, err := st.SetTaskStatus(ctx, done.ID, models.TaskStatusCompleted)
	require.NoError(t, err)

	stats, err := st.TaskStats(ctx, today.Format(models.DateLayout))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	// Completed tasks are never overdue, no matter the due date.
	assert.Equal(t, 1, stats.Overdue)
}
