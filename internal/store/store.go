package store

import (
	"context"
	"errors"
	"time"

	"github.com/serviceops/maintdesk/internal/models"
)

// ErrNotFound is returned when a row targeted by id does not exist.
var ErrNotFound = errors.New("not found")

// TaskFilter controls filtering, sorting, and pagination for task queries.
type TaskFilter struct {
	Status     *string
	Priority   *string
	AssignedTo *int64
	Search     string // substring match on title, description, equipment_id
	SortBy     string // due_date, priority, created_at, title
	SortDesc   bool
	Limit      int
	Offset     int
}

// KnowledgeFilter restricts knowledge base listings and search pre-filters
// to exact category / equipment / difficulty matches.
type KnowledgeFilter struct {
	Category        string
	EquipmentType   string
	DifficultyLevel string
	Limit           int
}

// TaskInput carries the fields accepted when creating a task.
type TaskInput struct {
	Title          string
	Description    string
	DueDate        string
	Priority       string
	AssignedTo     *int64
	CreatedBy      *int64
	EquipmentID    string
	Location       string
	EstimatedHours *int
}

// TaskUpdateInput is the allow-listed set of updatable task fields. Nil
// pointers are left untouched, so unknown or forbidden fields cannot reach
// the UPDATE statement by construction.
type TaskUpdateInput struct {
	Title           *string
	Description     *string
	DueDate         *string
	Status          *string
	Priority        *string
	AssignedTo      *int64
	EquipmentID     *string
	Location        *string
	EstimatedHours  *int
	ActualHours     *int
	CompletionNotes *string
}

// KnowledgeInput carries the fields accepted when creating a knowledge entry.
type KnowledgeInput struct {
	Category        string
	Title           string
	Content         string
	Tags            string
	EquipmentType   string
	DifficultyLevel string
}

// KnowledgeUpdateInput is the allow-listed set of updatable entry fields.
type KnowledgeUpdateInput struct {
	Category        *string
	Title           *string
	Content         *string
	Tags            *string
	EquipmentType   *string
	DifficultyLevel *string
}

// UserUpdateInput is the allow-listed set of updatable profile fields.
type UserUpdateInput struct {
	Name       *string
	Email      *string
	Department *string
	Phone      *string
}

// Store defines the persistence interface for users, tasks, knowledge
// entries, and the reminder notification log.
type Store interface {
	// Users
	CreateUser(ctx context.Context, email, passwordHash, name, department string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id int64, input UserUpdateInput) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64) error

	// Tasks
	CreateTask(ctx context.Context, input TaskInput) (*models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.TaskDetails, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]models.TaskDetails, error)
	UpdateTask(ctx context.Context, id int64, input TaskUpdateInput) (*models.Task, error)
	SetTaskStatus(ctx context.Context, id int64, status string) (*models.Task, error)
	ToggleTaskStatus(ctx context.Context, id int64) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	TaskStats(ctx context.Context, today string) (*models.TaskStats, error)

	// Knowledge base
	CreateKnowledgeEntry(ctx context.Context, input KnowledgeInput) (*models.KnowledgeEntry, error)
	GetKnowledgeEntry(ctx context.Context, id int64) (*models.KnowledgeEntry, error)
	ListKnowledgeEntries(ctx context.Context, filter KnowledgeFilter) ([]models.KnowledgeEntry, error)
	UpdateKnowledgeEntry(ctx context.Context, id int64, input KnowledgeUpdateInput) (*models.KnowledgeEntry, error)
	DeleteKnowledgeEntry(ctx context.Context, id int64) error
	KnowledgeCategories(ctx context.Context) ([]string, error)
	KnowledgeEquipmentTypes(ctx context.Context) ([]string, error)

	// Search pre-filters
	SearchKnowledge(ctx context.Context, query string, filter KnowledgeFilter, limit int) ([]models.KnowledgeEntry, error)
	SearchKnowledgeForChat(ctx context.Context, message string, keywords []string, limit int) ([]models.ScoredEntry, error)

	// Reminder notification log
	CreateNotification(ctx context.Context, n models.Notification) (*models.Notification, error)
	DueReminderTasks(ctx context.Context, now time.Time) ([]models.ReminderTask, error)
	NextPendingTaskForUser(ctx context.Context, userID int64, today string) (*models.ReminderTask, error)
	NotificationsForTask(ctx context.Context, taskID int64) ([]models.Notification, error)
}
