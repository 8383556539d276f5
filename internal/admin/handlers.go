package admin

import (
	"github.com/gofiber/fiber/v2"

	"wastex-backend/internal/pkg/response"
)

type Handlers struct {
	Service *Service
}

// ListUsers GET /api/admin/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.Service.ListUsers(c.Context())
	if err != nil {
		return response.Error(c, "Failed to fetch users", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Users fetched", users, nil)
}

// SetBlocked POST /api/admin/users/:id/block
func (h *Handlers) SetBlocked(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.SetBlocked(c.Context(), uint(id), req.Blocked); err != nil {
		if err == ErrUserNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to update user", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "User updated", fiber.Map{"id": id, "blocked": req.Blocked}, nil)
}

// PendingReports GET /api/admin/reports
func (h *Handlers) PendingReports(c *fiber.Ctx) error {
	reports, err := h.Service.PendingReports(c.Context())
	if err != nil {
		return response.Error(c, "Failed to fetch reports", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Reports fetched", reports, nil)
}
