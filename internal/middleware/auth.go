// internal/middleware/auth.go
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceops/maintdesk/pkg/auth"
)

// RequireAuth validates the Bearer token and stores the caller's identity in
// the request locals as "user_id", "user_email", and "user_name".
func RequireAuth(tokenManager *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := auth.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or malformed authorization header",
			})
		}

		claims, err := tokenManager.ValidateAccessToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)
		return c.Next()
	}
}

// UserID returns the authenticated caller's id, or 0 when the route is not
// behind RequireAuth.
func UserID(c *fiber.Ctx) int64 {
	if id, ok := c.Locals("user_id").(int64); ok {
		return id
	}
	return 0
}
