package reports

import (
	"github.com/gofiber/fiber/v2"

	"wastex-backend/internal/pkg/response"
)

type Handlers struct {
	Service *Service
}

// CreateRequest body (camelCase, client contract).
type CreateRequest struct {
	ReporterID uint   `json:"reporterId"`
	TargetType string `json:"targetType"`
	TargetID   uint   `json:"targetId"`
	Reason     string `json:"reason"`
}

// Create POST /api/reports
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if req.ReporterID == 0 || req.TargetType == "" || req.TargetID == 0 {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	report, err := h.Service.Create(c.Context(), req.ReporterID, req.TargetType, req.TargetID, req.Reason)
	if err != nil {
		switch err {
		case ErrBadTargetType:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrTargetNotFound:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Failed to submit report", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Report submitted", report, nil)
}
