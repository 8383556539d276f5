package saved

import (
	"github.com/gofiber/fiber/v2"

	"wastex-backend/internal/pkg/response"
)

type Handlers struct {
	Service *Service
}

// ListForUser GET /api/saved-listings/:userId
func (h *Handlers) ListForUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	views, err := h.Service.ListForUser(c.Context(), uint(userID))
	if err != nil {
		return response.Error(c, "Failed to fetch saved listings", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Saved listings fetched", views, nil)
}

// SaveRequest body (camelCase, client contract).
type SaveRequest struct {
	UserID    uint `json:"userId"`
	ListingID uint `json:"listingId"`
}

// Save POST /api/saved-listings
func (h *Handlers) Save(c *fiber.Ctx) error {
	var req SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if req.UserID == 0 || req.ListingID == 0 {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Save(c.Context(), req.UserID, req.ListingID); err != nil {
		switch err {
		case ErrAlreadySaved:
			return response.Conflict(c, err.Error())
		case ErrListingNotFound:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Failed to save listing", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Listing saved", fiber.Map{"userId": req.UserID, "listingId": req.ListingID}, nil)
}

// Remove DELETE /api/saved-listings/:userId/:listingId
func (h *Handlers) Remove(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	listingID, err := c.ParamsInt("listingId")
	if err != nil || listingID <= 0 {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Remove(c.Context(), uint(userID), uint(listingID)); err != nil {
		return response.Error(c, "Failed to remove saved listing", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Saved listing removed", fiber.Map{"userId": userID, "listingId": listingID}, nil)
}
