// internal/handlers/reminder_handler.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/serviceops/maintdesk/internal/middleware"
	"github.com/serviceops/maintdesk/internal/reminder"
	"github.com/serviceops/maintdesk/internal/service"
	"github.com/serviceops/maintdesk/internal/store"
)

// ReminderHandler serves the manual reminder triggers and the per-task
// notification log.
type ReminderHandler struct {
	reminders *reminder.Service
	store     store.Store
}

// NewReminderHandler creates a new reminder handler.
func NewReminderHandler(reminders *reminder.Service, st store.Store) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, store: st}
}

// Run handles POST /api/reminders/run: one on-demand eligibility sweep.
func (h *ReminderHandler) Run(c *fiber.Ctx) error {
	sent, err := h.reminders.RunOnce(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"sent": sent})
}

// SendMine handles POST /api/reminders/me: emails the caller a reminder for
// their next pending task, bypassing the eligibility windows.
func (h *ReminderHandler) SendMine(c *fiber.Ctx) error {
	task, err := h.reminders.SendUserReminder(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, service.ErrNotFound)
		}
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "reminder sent", "task": task})
}

// Log handles GET /api/tasks/:id/notifications.
func (h *ReminderHandler) Log(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	notifications, err := h.store.NotificationsForTask(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}
