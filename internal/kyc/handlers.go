package kyc

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"wastex-backend/internal/pkg/response"
)

type Handlers struct {
	Service *Service
}

// UploadRequest body (camelCase, client contract).
type UploadRequest struct {
	UserID      uint   `json:"userId"`
	DocumentURL string `json:"documentUrl"`
}

// Upload POST /api/kyc/upload
func (h *Handlers) Upload(c *fiber.Ctx) error {
	var req UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if req.UserID == 0 || req.DocumentURL == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	doc, err := h.Service.Upload(c.Context(), req.UserID, req.DocumentURL)
	if err != nil {
		if err == ErrUserNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to upload document", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Document submitted for review", doc, nil)
}

// Queue GET /api/admin/kyc
func (h *Handlers) Queue(c *fiber.Ctx) error {
	entries, err := h.Service.PendingQueue(c.Context())
	if err != nil {
		return response.Error(c, "Failed to fetch review queue", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Review queue fetched", entries, nil)
}

// Approve POST /api/admin/kyc/:id/approve
func (h *Handlers) Approve(c *fiber.Ctx) error {
	return h.review(c, h.Service.Approve, "Document approved")
}

// Reject POST /api/admin/kyc/:id/reject
func (h *Handlers) Reject(c *fiber.Ctx) error {
	return h.review(c, h.Service.Reject, "Document rejected")
}

func (h *Handlers) review(c *fiber.Ctx, decide func(ctx context.Context, docID uint) error, message string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid document id", fiber.StatusBadRequest, nil)
	}
	if err := decide(c.Context(), uint(id)); err != nil {
		switch err {
		case ErrDocumentNotFound:
			return response.NotFound(c, err.Error())
		case ErrAlreadyReviewed:
			return response.Conflict(c, err.Error())
		default:
			return response.Error(c, "Failed to review document", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, message, fiber.Map{"id": id}, nil)
}
