// pkg/email/mock.go
package email

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/serviceops/maintdesk/internal/models"
)

// ErrMockSendFailed is returned by MockService when failure injection is on.
var ErrMockSendFailed = errors.New("mock send failed")

// MockService implements Service for testing. It records every reminder it
// is asked to send and can be told to fail, either globally or for specific
// task IDs.
type MockService struct {
	mu         sync.Mutex
	SentEmails []SentEmail
	FailAll    bool
	FailTasks  map[int64]bool
}

// SentEmail represents one reminder recorded by MockService.
type SentEmail struct {
	To     string
	TaskID int64
	Title  string
	SentAt time.Time
}

// NewMockService creates a new mock email service.
func NewMockService() *MockService {
	return &MockService{
		SentEmails: make([]SentEmail, 0),
		FailTasks:  make(map[int64]bool),
	}
}

// SendTaskReminder mock implementation.
func (m *MockService) SendTaskReminder(ctx context.Context, task models.ReminderTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAll || m.FailTasks[task.ID] {
		return ErrMockSendFailed
	}

	m.SentEmails = append(m.SentEmails, SentEmail{
		To:     task.AssigneeEmail,
		TaskID: task.ID,
		Title:  task.Title,
		SentAt: time.Now(),
	})
	return nil
}

// GetSentEmails returns all recorded reminders.
func (m *MockService) GetSentEmails() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail(nil), m.SentEmails...)
}

// GetLastSentEmail returns the last recorded reminder, or nil.
func (m *MockService) GetLastSentEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentEmails) == 0 {
		return nil
	}
	last := m.SentEmails[len(m.SentEmails)-1]
	return &last
}

// Clear forgets all recorded reminders.
func (m *MockService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEmails = m.SentEmails[:0]
}
