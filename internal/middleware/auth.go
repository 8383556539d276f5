package middleware

import (
	"wastex-backend/internal/models"
	"wastex-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth ensures a user is in the session. 401 with the standard error
// format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSessionUser(c) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the session user carries the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := GetSessionUser(c)
		if u == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if u.Role != models.RoleAdmin {
			return response.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}
