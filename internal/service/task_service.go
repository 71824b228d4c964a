// internal/service/task_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serviceops/maintdesk/internal/models"
	"github.com/serviceops/maintdesk/internal/store"
)

// TaskService owns task validation and the due-date bookkeeping the list
// views display.
type TaskService struct {
	store store.Store
	now   func() time.Time
}

// NewTaskService creates a new task service.
func NewTaskService(st store.Store) *TaskService {
	return &TaskService{store: st, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// CreateTask validates the input and creates a pending task.
func (s *TaskService) CreateTask(ctx context.Context, input store.TaskInput) (*models.Task, error) {
	if len(input.Title) < 3 {
		return nil, fmt.Errorf("%w: title must be at least 3 characters", ErrValidation)
	}
	if _, err := time.Parse(models.DateLayout, input.DueDate); err != nil {
		return nil, fmt.Errorf("%w: due_date must be a valid date in YYYY-MM-DD format", ErrValidation)
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(input.Priority) {
		return nil, fmt.Errorf("%w: priority must be one of low, medium, high", ErrValidation)
	}
	if input.EstimatedHours != nil && *input.EstimatedHours < 1 {
		return nil, fmt.Errorf("%w: estimated_hours must be at least 1", ErrValidation)
	}

	task, err := s.store.CreateTask(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

// GetTask returns a task with user names and due-date flags filled in.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*models.TaskDetails, error) {
	task, err := s.store.GetTask(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading task %d: %w", id, err)
	}
	s.annotate(task)
	return task, nil
}

// ListTasks returns tasks matching the filter, annotated with due-date flags.
func (s *TaskService) ListTasks(ctx context.Context, filter store.TaskFilter) ([]models.TaskDetails, error) {
	if filter.Status != nil && !models.ValidStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *filter.Status)
	}
	if filter.Priority != nil && !models.ValidPriority(*filter.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *filter.Priority)
	}

	tasks, err := s.store.ListTasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	for i := range tasks {
		s.annotate(&tasks[i])
	}
	return tasks, nil
}

// UpdateTask validates and applies a partial update. Changing the status
// keeps completed_at consistent in the store layer.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input store.TaskUpdateInput) (*models.Task, error) {
	if input.Title != nil && len(*input.Title) < 3 {
		return nil, fmt.Errorf("%w: title must be at least 3 characters", ErrValidation)
	}
	if input.DueDate != nil {
		if _, err := time.Parse(models.DateLayout, *input.DueDate); err != nil {
			return nil, fmt.Errorf("%w: due_date must be a valid date in YYYY-MM-DD format", ErrValidation)
		}
	}
	if input.Status != nil && !models.ValidStatus(*input.Status) {
		return nil, fmt.Errorf("%w: status must be pending or completed", ErrValidation)
	}
	if input.Priority != nil && !models.ValidPriority(*input.Priority) {
		return nil, fmt.Errorf("%w: priority must be one of low, medium, high", ErrValidation)
	}
	if input.EstimatedHours != nil && *input.EstimatedHours < 1 {
		return nil, fmt.Errorf("%w: estimated_hours must be at least 1", ErrValidation)
	}
	if input.ActualHours != nil && *input.ActualHours < 1 {
		return nil, fmt.Errorf("%w: actual_hours must be at least 1", ErrValidation)
	}

	task, err := s.store.UpdateTask(ctx, id, input)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, store.ErrNoFields) {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}
	return task, nil
}

// SetTaskStatus marks a task pending or completed.
func (s *TaskService) SetTaskStatus(ctx context.Context, id int64, status string) (*models.Task, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: status must be pending or completed", ErrValidation)
	}
	task, err := s.store.SetTaskStatus(ctx, id, status)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("setting status of task %d: %w", id, err)
	}
	return task, nil
}

// ToggleTaskStatus flips a task between pending and completed.
func (s *TaskService) ToggleTaskStatus(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.store.ToggleTaskStatus(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggling status of task %d: %w", id, err)
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	err := s.store.DeleteTask(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

// TaskStats returns the dashboard counters.
func (s *TaskService) TaskStats(ctx context.Context) (*models.TaskStats, error) {
	today := s.now().UTC().Format(models.DateLayout)
	stats, err := s.store.TaskStats(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("computing task stats: %w", err)
	}
	return stats, nil
}

// annotate fills the computed due-date fields. Overdue and due-soon only
// apply to pending tasks.
func (s *TaskService) annotate(task *models.TaskDetails) {
	due, err := time.Parse(models.DateLayout, task.DueDate)
	if err != nil {
		return
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	task.DaysUntilDue = int(due.Sub(today).Hours() / 24)
	if task.Status == models.TaskStatusPending {
		task.IsOverdue = task.DaysUntilDue < 0
		task.IsDueSoon = task.DaysUntilDue >= 0 && task.DaysUntilDue <= 7
	}
}
