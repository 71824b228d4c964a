// internal/handlers/routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceops/maintdesk/internal/middleware"
	"github.com/serviceops/maintdesk/pkg/auth"
)

// Register mounts the API routes. Auth routes stay open; everything else
// sits behind the bearer-token middleware.
func Register(app *fiber.App, tokenManager *auth.TokenManager,
	authHandler *AuthHandler, taskHandler *TaskHandler,
	knowledgeHandler *KnowledgeHandler, reminderHandler *ReminderHandler) {

	app.Get("/health", Health)

	api := app.Group("/api")
	api.Get("/health", Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	protected := api.Group("", middleware.RequireAuth(tokenManager))

	profile := protected.Group("/auth")
	profile.Get("/profile", authHandler.Profile)
	profile.Put("/profile", authHandler.UpdateProfile)
	profile.Post("/change-password", authHandler.ChangePassword)

	tasks := protected.Group("/tasks")
	tasks.Get("/stats", taskHandler.Stats)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Put("/:id/status", taskHandler.SetStatus)
	tasks.Post("/:id/toggle", taskHandler.Toggle)
	tasks.Delete("/:id", taskHandler.Delete)
	tasks.Get("/:id/notifications", reminderHandler.Log)

	knowledge := protected.Group("/knowledge")
	knowledge.Get("/search", knowledgeHandler.Search)
	knowledge.Post("/chat", knowledgeHandler.Chat)
	knowledge.Get("/meta/categories", knowledgeHandler.Categories)
	knowledge.Get("/meta/equipment-types", knowledgeHandler.EquipmentTypes)
	knowledge.Post("/", knowledgeHandler.Create)
	knowledge.Get("/", knowledgeHandler.List)
	knowledge.Get("/:id", knowledgeHandler.Get)
	knowledge.Put("/:id", knowledgeHandler.Update)
	knowledge.Delete("/:id", knowledgeHandler.Delete)

	reminders := protected.Group("/reminders")
	reminders.Post("/run", reminderHandler.Run)
	reminders.Post("/me", reminderHandler.SendMine)
}
