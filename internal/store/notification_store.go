package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/serviceops/maintdesk/internal/models"
)

// reminderWindowDays is the forward due-date window for reminders.
const reminderWindowDays = 7

// suppressionWindow is the look-back over the notification log. One sent
// reminder inside this window suppresses further reminders for the task.
const suppressionWindow = 24 * time.Hour

// CreateNotification appends one row to the notification log. Rows are
// never updated or deleted afterwards.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n models.Notification) (*models.Notification, error) {
	if n.NotificationType == "" {
		n.NotificationType = models.NotificationTypeDueReminder
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO email_notifications (task_id, email, sent_at, status, notification_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.TaskID, n.Email, n.SentAt, n.Status, n.NotificationType, n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading notification id: %w", err)
	}
	n.ID = id
	return &n, nil
}

// DueReminderTasks evaluates the reminder eligibility filter: pending tasks
// due within the next seven calendar days, assigned to a user with an email
// address, with no sent due_reminder logged inside the suppression window.
// Boundaries are derived from now so ticks are reproducible in tests.
func (s *SQLiteStore) DueReminderTasks(ctx context.Context, now time.Time) ([]models.ReminderTask, error) {
	today := now.UTC().Format(models.DateLayout)
	horizon := now.UTC().AddDate(0, 0, reminderWindowDays).Format(models.DateLayout)
	cutoff := now.UTC().Add(-suppressionWindow)

	var tasks []models.ReminderTask
	err := s.db.SelectContext(ctx, &tasks, `
		SELECT t.*, u.email AS assignee_email, u.name AS assignee_name
		FROM tasks t
		JOIN users u ON t.assigned_to = u.id
		WHERE t.status = ?
		AND t.due_date >= ?
		AND t.due_date <= ?
		AND u.email != ''
		AND NOT EXISTS (
			SELECT 1 FROM email_notifications en
			WHERE en.task_id = t.id
			AND en.status = ?
			AND en.notification_type = ?
			AND en.created_at >= ?
		)
		ORDER BY t.due_date ASC`,
		models.TaskStatusPending, today, horizon,
		models.NotificationStatusSent, models.NotificationTypeDueReminder, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("querying reminder-eligible tasks: %w", err)
	}
	return tasks, nil
}

// NextPendingTaskForUser returns the user's earliest pending task that is
// not yet past due, for the manual force-reminder trigger.
func (s *SQLiteStore) NextPendingTaskForUser(ctx context.Context, userID int64, today string) (*models.ReminderTask, error) {
	var task models.ReminderTask
	err := s.db.GetContext(ctx, &task, `
		SELECT t.*, u.email AS assignee_email, u.name AS assignee_name
		FROM tasks t
		JOIN users u ON t.assigned_to = u.id
		WHERE t.status = ?
		AND t.assigned_to = ?
		AND t.due_date >= ?
		ORDER BY t.due_date ASC
		LIMIT 1`,
		models.TaskStatusPending, userID, today,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding pending task for user %d: %w", userID, err)
	}
	return &task, nil
}

// NotificationsForTask returns the log rows for one task, newest first.
func (s *SQLiteStore) NotificationsForTask(ctx context.Context, taskID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.SelectContext(ctx, &notifications,
		"SELECT * FROM email_notifications WHERE task_id = ? ORDER BY created_at DESC, id DESC",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notifications for task %d: %w", taskID, err)
	}
	return notifications, nil
}
