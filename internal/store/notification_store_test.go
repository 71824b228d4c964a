package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serviceops/maintdesk/internal/models"
)

// reminderFixture is a pending task assigned to a user with an email,
// due the given number of days from now.
func reminderFixture(t *testing.T, st *SQLiteStore, now time.Time, daysUntilDue int) *models.Task {
	t.Helper()
	user := createTestUser(t, st, "assignee@example.com")
	return createTestTask(t, st, TaskInput{
		Title:      "Reminder target",
		DueDate:    now.AddDate(0, 0, daysUntilDue).Format(models.DateLayout),
		AssignedTo: &user.ID,
	})
}

func TestDueReminderTasksWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		daysUntilDue int
		eligible     bool
	}{
		{"due today", 0, true},
		{"due in three days", 3, true},
		{"due at the seven day boundary", 7, true},
		{"due beyond the window", 8, false},
		{"already overdue", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			reminderFixture(t, st, now, tt.daysUntilDue)

			tasks, err := st.DueReminderTasks(context.Background(), now)
			require.NoError(t, err)
			if tt.eligible {
				require.Len(t, tasks, 1)
				assert.Equal(t, "assignee@example.com", tasks[0].AssigneeEmail)
			} else {
				assert.Empty(t, tasks)
			}
		})
	}
}

func TestDueReminderTasksExcludesCompletedAndUnassigned(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	st := newTestStore(t)
	ctx := context.Background()

	task := reminderFixture(t, st, now, 3)
	_, err := st.SetTaskStatus(ctx, task.ID, models.TaskStatusCompleted)
	require.NoError(t, err)

	// No assignee at all.
	createTestTask(t, st, TaskInput{
		Title:   "Unassigned",
		DueDate: now.AddDate(0, 0, 2).Format(models.DateLayout),
	})

	tasks, err := st.DueReminderTasks(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDueReminderTasksSuppression(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		age      time.Duration
		status   string
		eligible bool
	}{
		{"sent twelve hours ago suppresses", 12 * time.Hour, models.NotificationStatusSent, false},
		{"sent at the boundary suppresses", 24 * time.Hour, models.NotificationStatusSent, false},
		{"sent two days ago is stale", 48 * time.Hour, models.NotificationStatusSent, true},
		{"failed attempt does not suppress", 12 * time.Hour, models.NotificationStatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			ctx := context.Background()
			task := reminderFixture(t, st, now, 3)

			createdAt := now.Add(-tt.age)
			n := models.Notification{
				TaskID:    task.ID,
				Email:     "assignee@example.com",
				Status:    tt.status,
				CreatedAt: createdAt,
			}
			if tt.status == models.NotificationStatusSent {
				n.SentAt = &createdAt
			}
			_, err := st.CreateNotification(ctx, n)
			require.NoError(t, err)

			tasks, err := st.DueReminderTasks(ctx, now)
			require.NoError(t, err)
			if tt.eligible {
				assert.Len(t, tasks, 1)
			} else {
				assert.Empty(t, tasks)
			}
		})
	}
}

func TestCreateNotificationDefaults(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	task := reminderFixture(t, st, now, 1)

	n, err := st.CreateNotification(ctx, models.Notification{
		TaskID: task.ID,
		Email:  "assignee@example.com",
		Status: models.NotificationStatusSent,
	})
	require.NoError(t, err)

	assert.NotZero(t, n.ID)
	assert.Equal(t, models.NotificationTypeDueReminder, n.NotificationType)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestNotificationsForTaskNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	task := reminderFixture(t, st, now, 1)

	for _, age := range []time.Duration{72 * time.Hour, 48 * time.Hour, 2 * time.Hour} {
		_, err := st.CreateNotification(ctx, models.Notification{
			TaskID:    task.ID,
			Email:     "assignee@example.com",
			Status:    models.NotificationStatusSent,
			CreatedAt: now.Add(-age),
		})
		require.NoError(t, err)
	}

	notifications, err := st.NotificationsForTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	for i := 1; i < len(notifications); i++ {
		assert.True(t, !notifications[i-1].CreatedAt.Before(notifications[i].CreatedAt))
	}
}

func TestNextPendingTaskForUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	today := now.Format(models.DateLayout)

	user := createTestUser(t, st, "assignee@example.com")
	createTestTask(t, st, TaskInput{
		Title:      "Later task",
		DueDate:    now.AddDate(0, 0, 14).Format(models.DateLayout),
		AssignedTo: &user.ID,
	})
	createTestTask(t, st, TaskInput{
		Title:      "Soonest task",
		DueDate:    now.AddDate(0, 0, 2).Format(models.DateLayout),
		AssignedTo: &user.ID,
	})
	createTestTask(t, st, TaskInput{
		Title:      "Past task",
		DueDate:    now.AddDate(0, 0, -5).Format(models.DateLayout),
		AssignedTo: &user.ID,
	})

	task, err := st.NextPendingTaskForUser(ctx, user.ID, today)
	require.NoError(t, err)
	assert.Equal(t, "Soonest task", task.Title)

	other := createTestUser(t, st, "other@example.com")
	_, err = st.NextPendingTaskForUser(ctx, other.ID, today)
	assert.ErrorIs(t, err, ErrNotFound)
}
