// Package handlers exposes the HTTP API on fiber.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/serviceops/maintdesk/internal/service"
)

// statusFor maps service sentinel errors to HTTP statuses. Anything
// unrecognized is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the standard error envelope. Internal errors are masked so
// storage details never reach the client.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// Health reports liveness.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
