package models

import "time"

// Notification status constants
const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// NotificationTypeDueReminder marks reminders for tasks nearing their due date.
const NotificationTypeDueReminder = "due_reminder"

// Notification is one row of the append-only reminder audit log. Rows are
// inserted once per send attempt and never updated; a recent sent row for a
// task suppresses re-notification.
type Notification struct {
	ID               int64      `db:"id" json:"id"`
	TaskID           int64      `db:"task_id" json:"task_id"`
	Email            string     `db:"email" json:"email"`
	SentAt           *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	Status           string     `db:"status" json:"status"`
	NotificationType string     `db:"notification_type" json:"notification_type"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// ReminderTask is a pending task joined with its assignee's contact details,
// as selected by the reminder eligibility query.
type ReminderTask struct {
	Task
	AssigneeEmail string `db:"assignee_email"`
	AssigneeName  string `db:"assignee_name"`
}
