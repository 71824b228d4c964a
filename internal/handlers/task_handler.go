// internal/handlers/task_handler.go
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/serviceops/maintdesk/internal/middleware"
	"github.com/serviceops/maintdesk/internal/service"
	"github.com/serviceops/maintdesk/internal/store"
)

// TaskHandler serves the task CRUD and status routes.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var input store.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if userID := middleware.UserID(c); userID != 0 {
		input.CreatedBy = &userID
	}

	task, err := h.tasks.CreateTask(c.Context(), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"task": task})
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.GetTask(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"task": task})
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	filter := store.TaskFilter{
		Search:   c.Query("search"),
		SortBy:   c.Query("sort_by"),
		SortDesc: c.QueryBool("sort_desc"),
		Limit:    c.QueryInt("limit", 50),
		Offset:   c.QueryInt("offset", 0),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if priority := c.Query("priority"); priority != "" {
		filter.Priority = &priority
	}
	if assigned := c.Query("assigned_to"); assigned != "" {
		id, err := strconv.ParseInt(assigned, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid assigned_to"})
		}
		filter.AssignedTo = &id
	}

	tasks, err := h.tasks.ListTasks(c.Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"tasks": tasks, "total": len(tasks)})
}

// Update handles PUT /api/tasks/:id.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input store.TaskUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	task, err := h.tasks.UpdateTask(c.Context(), id, input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"task": task})
}

// SetStatus handles PUT /api/tasks/:id/status.
func (h *TaskHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	task, err := h.tasks.SetTaskStatus(c.Context(), id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"task": task})
}

// Toggle handles POST /api/tasks/:id/toggle.
func (h *TaskHandler) Toggle(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.ToggleTaskStatus(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"task": task})
}

// Delete handles DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "task deleted"})
}

// Stats handles GET /api/tasks/stats.
func (h *TaskHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.tasks.TaskStats(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}
