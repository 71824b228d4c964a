// internal/handlers/auth_handler.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceops/maintdesk/internal/middleware"
	"github.com/serviceops/maintdesk/internal/service"
	"github.com/serviceops/maintdesk/internal/store"
)

// AuthHandler serves registration, login, and profile routes.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.auth.Register(c.Context(), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, tokens, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "tokens": tokens})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	tokens, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"tokens": tokens})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.auth.Profile(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var input store.UserUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.auth.UpdateProfile(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.auth.ChangePassword(c.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}
