package ai

import (
	"github.com/gofiber/fiber/v2"

	"wastex-backend/internal/pkg/response"
)

type Handlers struct {
	Assistant Assistant
}

// SuggestCategory POST /api/ai/suggest-category. Returns 500 when the oracle is not
// configured or the call fails; this endpoint is the one place AI errors
// surface to the client.
func (h *Handlers) SuggestCategory(c *fiber.Ctx) error {
	if h.Assistant == nil {
		return response.Error(c, "AI Key missing", fiber.StatusInternalServerError, nil)
	}
	var req struct {
		ImageData string `json:"imageData"`
	}
	if err := c.BodyParser(&req); err != nil || req.ImageData == "" {
		return response.Error(c, "Image data is required", fiber.StatusBadRequest, nil)
	}

	suggestion, err := h.Assistant.SuggestCategory(c.Context(), req.ImageData)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Category suggested", suggestion, nil)
}
