package bids

import (
	"github.com/gofiber/fiber/v2"

	"wastex-backend/internal/pkg/response"
)

type Handlers struct {
	Service *Service
}

// PlaceBidRequest body (camelCase, client contract).
type PlaceBidRequest struct {
	ListingID uint    `json:"listingId"`
	BuyerID   uint    `json:"buyerId"`
	Amount    float64 `json:"amount"`
}

// PlaceBid POST /api/bids
func (h *Handlers) PlaceBid(c *fiber.Ctx) error {
	var req PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if req.ListingID == 0 || req.BuyerID == 0 {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if req.Amount <= 0 {
		return response.Error(c, "Amount must be a positive number", fiber.StatusBadRequest, nil)
	}

	bid, err := h.Service.PlaceBid(c.Context(), req.ListingID, req.BuyerID, req.Amount)
	if err != nil {
		switch err {
		case ErrListingNotFound:
			return response.NotFound(c, err.Error())
		case ErrBuyerNotFound, ErrNotBidding, ErrListingClosed, ErrBelowLeader, ErrBelowBasePrice:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Failed to place bid", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Bid placed", bid, nil)
}

// ListBids GET /api/listings/:id/bids
func (h *Handlers) ListBids(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	views, err := h.Service.ListBids(c.Context(), uint(id))
	if err != nil {
		return response.Error(c, "Failed to fetch bids", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Bids fetched", views, nil)
}
