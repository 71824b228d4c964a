// Package reminder sends due-soon email reminders for pending maintenance
// tasks and records every attempt in the notification log.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/serviceops/maintdesk/internal/models"
	"github.com/serviceops/maintdesk/internal/store"
	"github.com/serviceops/maintdesk/pkg/email"
)

// defaultSendDelay spaces consecutive sends so a burst of due tasks does not
// hammer the SMTP relay.
const defaultSendDelay = 100 * time.Millisecond

// Service evaluates reminder eligibility and pushes reminders through the
// email transport. One run is allowed at a time; overlapping ticks are
// skipped.
type Service struct {
	store     store.Store
	email     email.Service
	log       *logrus.Entry
	now       func() time.Time
	sendDelay time.Duration

	mu      sync.Mutex
	running bool
}

// NewService creates a reminder service. The clock defaults to time.Now and
// is overridable for tests.
func NewService(st store.Store, mail email.Service, log *logrus.Logger) *Service {
	return &Service{
		store:     st,
		email:     mail,
		log:       log.WithField("component", "reminder"),
		now:       time.Now,
		sendDelay: defaultSendDelay,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithSendDelay overrides the pause between consecutive sends.
func (s *Service) WithSendDelay(d time.Duration) *Service {
	s.sendDelay = d
	return s
}

// RunOnce evaluates the eligibility filter and sends one reminder per
// eligible task. Each task is handled in isolation: a transport failure is
// logged as a failed notification and the run moves on to the next task.
// Returns the number of reminders sent.
func (s *Service) RunOnce(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Warn("reminder run already in progress, skipping")
		return 0, nil
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	now := s.now()
	tasks, err := s.store.DueReminderTasks(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("loading reminder-eligible tasks: %w", err)
	}
	if len(tasks) == 0 {
		s.log.Debug("no tasks due for reminders")
		return 0, nil
	}

	s.log.WithField("count", len(tasks)).Info("sending due-soon reminders")

	sent := 0
	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if s.sendOne(ctx, task) {
			sent++
		}
		if i < len(tasks)-1 && s.sendDelay > 0 {
			time.Sleep(s.sendDelay)
		}
	}

	s.log.WithFields(logrus.Fields{
		"sent":   sent,
		"failed": len(tasks) - sent,
	}).Info("reminder run finished")
	return sent, nil
}

// SendUserReminder sends a reminder for the user's next pending task
// regardless of the due-date window or the suppression window. Manual
// trigger for operators.
func (s *Service) SendUserReminder(ctx context.Context, userID int64) (*models.ReminderTask, error) {
	today := s.now().UTC().Format(models.DateLayout)
	task, err := s.store.NextPendingTaskForUser(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if !s.sendOne(ctx, *task) {
		return task, fmt.Errorf("sending reminder for task %d failed", task.ID)
	}
	return task, nil
}

// sendOne pushes a single reminder and records the outcome. Reports whether
// the send succeeded.
func (s *Service) sendOne(ctx context.Context, task models.ReminderTask) bool {
	log := s.log.WithFields(logrus.Fields{
		"task_id": task.ID,
		"email":   task.AssigneeEmail,
	})

	sendErr := s.email.SendTaskReminder(ctx, task)

	n := models.Notification{
		TaskID:           task.ID,
		Email:            task.AssigneeEmail,
		NotificationType: models.NotificationTypeDueReminder,
		CreatedAt:        s.now().UTC(),
	}
	if sendErr != nil {
		n.Status = models.NotificationStatusFailed
		log.WithError(sendErr).Error("reminder send failed")
	} else {
		n.Status = models.NotificationStatusSent
		sentAt := s.now().UTC()
		n.SentAt = &sentAt
		log.Info("reminder sent")
	}

	if _, err := s.store.CreateNotification(ctx, n); err != nil {
		log.WithError(err).Error("recording notification failed")
	}
	return sendErr == nil
}
