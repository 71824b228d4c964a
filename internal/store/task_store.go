package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/serviceops/maintdesk/internal/models"
)

// ErrNoFields is returned when an update input contains nothing to change.
var ErrNoFields = errors.New("no fields to update")

const taskDetailsSelect = `
	SELECT t.*,
	       COALESCE(u.name, '') AS assigned_to_name,
	       COALESCE(u.email, '') AS assigned_to_email,
	       COALESCE(c.name, '') AS created_by_name
	FROM tasks t
	LEFT JOIN users u ON t.assigned_to = u.id
	LEFT JOIN users c ON t.created_by = c.id`

// CreateTask inserts a new task and returns the stored row.
func (s *SQLiteStore) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			title, description, due_date, status, priority,
			assigned_to, created_by, equipment_id, location,
			estimated_hours, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Title, input.Description, input.DueDate, models.TaskStatusPending,
		input.Priority, input.AssignedTo, input.CreatedBy, input.EquipmentID,
		input.Location, input.EstimatedHours, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading task id: %w", err)
	}
	return s.getTask(ctx, id)
}

func (s *SQLiteStore) getTask(ctx context.Context, id int64) (*models.Task, error) {
	var t models.Task
	err := s.db.GetContext(ctx, &t, "SELECT * FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return &t, nil
}

// GetTask retrieves a task with assignee and creator names joined in.
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*models.TaskDetails, error) {
	var t models.TaskDetails
	err := s.db.GetContext(ctx, &t, taskDetailsSelect+" WHERE t.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return &t, nil
}

// ListTasks retrieves tasks matching the filter, joined with user names.
func (s *SQLiteStore) ListTasks(ctx context.Context, filter TaskFilter) ([]models.TaskDetails, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "t.status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "t.priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, "t.assigned_to = ?")
		args = append(args, *filter.AssignedTo)
	}
	if filter.Search != "" {
		conditions = append(conditions,
			"(t.title LIKE ? OR t.description LIKE ? OR t.equipment_id LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query := taskDetailsSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := "t.due_date"
	allowed := map[string]string{
		"due_date":   "t.due_date",
		"priority":   "t.priority",
		"created_at": "t.created_at",
		"title":      "t.title",
	}
	if col, ok := allowed[filter.SortBy]; ok {
		sortBy = col
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var tasks []models.TaskDetails
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies the non-nil fields of input. A status change also
// maintains completed_at: set when moving to completed, cleared when moving
// back to pending.
func (s *SQLiteStore) UpdateTask(ctx context.Context, id int64, input TaskUpdateInput) (*models.Task, error) {
	var sets []string
	var args []interface{}
	set := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if input.Title != nil {
		set("title", *input.Title)
	}
	if input.Description != nil {
		set("description", *input.Description)
	}
	if input.DueDate != nil {
		set("due_date", *input.DueDate)
	}
	if input.Status != nil {
		set("status", *input.Status)
		if *input.Status == models.TaskStatusCompleted {
			set("completed_at", time.Now().UTC())
		} else {
			set("completed_at", (*time.Time)(nil))
		}
	}
	if input.Priority != nil {
		set("priority", *input.Priority)
	}
	if input.AssignedTo != nil {
		set("assigned_to", *input.AssignedTo)
	}
	if input.EquipmentID != nil {
		set("equipment_id", *input.EquipmentID)
	}
	if input.Location != nil {
		set("location", *input.Location)
	}
	if input.EstimatedHours != nil {
		set("estimated_hours", *input.EstimatedHours)
	}
	if input.ActualHours != nil {
		set("actual_hours", *input.ActualHours)
	}
	if input.CompletionNotes != nil {
		set("completion_notes", *input.CompletionNotes)
	}

	if len(sets) == 0 {
		return nil, ErrNoFields
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.getTask(ctx, id)
}

// SetTaskStatus sets the task status, maintaining the completed_at invariant.
func (s *SQLiteStore) SetTaskStatus(ctx context.Context, id int64, status string) (*models.Task, error) {
	var completedAt *time.Time
	if status == models.TaskStatusCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?",
		status, completedAt, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("setting status for task %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.getTask(ctx, id)
}

// ToggleTaskStatus flips a task between pending and completed.
func (s *SQLiteStore) ToggleTaskStatus(ctx context.Context, id int64) (*models.Task, error) {
	var status string
	err := s.db.GetContext(ctx, &status, "SELECT status FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading status for task %d: %w", id, err)
	}

	next := models.TaskStatusCompleted
	if status == models.TaskStatusCompleted {
		next = models.TaskStatusPending
	}
	return s.SetTaskStatus(ctx, id, next)
}

// DeleteTask removes a task by ID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// TaskStats returns the dashboard counts. Overdue means pending with a due
// date strictly before today.
func (s *SQLiteStore) TaskStats(ctx context.Context, today string) (*models.TaskStats, error) {
	var stats models.TaskStats

	if err := s.db.GetContext(ctx, &stats.Total, "SELECT COUNT(*) FROM tasks"); err != nil {
		return nil, fmt.Errorf("counting tasks: %w", err)
	}
	if err := s.db.GetContext(ctx, &stats.Pending,
		"SELECT COUNT(*) FROM tasks WHERE status = ?", models.TaskStatusPending); err != nil {
		return nil, fmt.Errorf("counting pending tasks: %w", err)
	}
	if err := s.db.GetContext(ctx, &stats.Completed,
		"SELECT COUNT(*) FROM tasks WHERE status = ?", models.TaskStatusCompleted); err != nil {
		return nil, fmt.Errorf("counting completed tasks: %w", err)
	}
	if err := s.db.GetContext(ctx, &stats.Overdue,
		"SELECT COUNT(*) FROM tasks WHERE status = ? AND due_date < ?",
		models.TaskStatusPending, today); err != nil {
		return nil, fmt.Errorf("counting overdue tasks: %w", err)
	}

	return &stats, nil
}
