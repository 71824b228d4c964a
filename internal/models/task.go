package models

import "time"

// Task status constants
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Priority constants
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DateLayout is the calendar-date format used for task due dates.
const DateLayout = "2006-01-02"

// Task is a maintenance task tracked against a piece of equipment.
// Invariant: CompletedAt is non-nil if and only if Status is completed.
type Task struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Description     string     `db:"description" json:"description"`
	DueDate         string     `db:"due_date" json:"due_date"`
	Status          string     `db:"status" json:"status"`
	Priority        string     `db:"priority" json:"priority"`
	AssignedTo      *int64     `db:"assigned_to" json:"assigned_to,omitempty"`
	CreatedBy       *int64     `db:"created_by" json:"created_by,omitempty"`
	EquipmentID     string     `db:"equipment_id" json:"equipment_id,omitempty"`
	Location        string     `db:"location" json:"location,omitempty"`
	EstimatedHours  *int       `db:"estimated_hours" json:"estimated_hours,omitempty"`
	ActualHours     *int       `db:"actual_hours" json:"actual_hours,omitempty"`
	CompletionNotes string     `db:"completion_notes" json:"completion_notes,omitempty"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// TaskDetails is a task joined with the names of the users involved and
// the due-date bookkeeping the list views display.
type TaskDetails struct {
	Task
	AssignedToName  string `db:"assigned_to_name" json:"assigned_to_name,omitempty"`
	AssignedToEmail string `db:"assigned_to_email" json:"assigned_to_email,omitempty"`
	CreatedByName   string `db:"created_by_name" json:"created_by_name,omitempty"`

	DaysUntilDue int  `db:"-" json:"days_until_due"`
	IsOverdue    bool `db:"-" json:"is_overdue"`
	IsDueSoon    bool `db:"-" json:"is_due_soon"`
}

// TaskStats summarizes the task table for the dashboard overview.
type TaskStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
