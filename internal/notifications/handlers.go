package notifications

import (
	"github.com/gofiber/fiber/v2"

	"wastex-backend/internal/pkg/response"
)

type Handlers struct {
	Service *Service
}

// ListForUser GET /api/notifications/:userId
func (h *Handlers) ListForUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	items, err := h.Service.ListForUser(c.Context(), uint(userID))
	if err != nil {
		return response.Error(c, "Failed to fetch notifications", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Notifications fetched", items, nil)
}

// MarkRead PATCH /api/notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid notification id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.MarkRead(c.Context(), uint(id)); err != nil {
		if err == ErrNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to update notification", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Notification marked as read", fiber.Map{"id": id}, nil)
}
