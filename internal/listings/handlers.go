package listings

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"wastex-backend/internal/pkg/response"
)

// Auditor dispatches an AI accuracy audit for a freshly created listing.
// Implementations apply the result themselves and never surface errors here.
type Auditor interface {
	AuditListing(ctx context.Context, listingID uint, req AuditRequest)
}

// AuditRequest carries listing text and the first image for the audit oracle.
type AuditRequest struct {
	Title       string
	Description string
	Category    string
	Quality     string
	ImageData   string
}

type Handlers struct {
	Service *Service
	Auditor Auditor
}

// Search GET /api/listings
func (h *Handlers) Search(c *fiber.Ctx) error {
	f := Filters{
		Category: c.Query("category"),
		Quality:  c.Query("quality"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}
	if v := c.Query("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.Error(c, "Invalid minPrice", fiber.StatusBadRequest, nil)
		}
		f.MinPrice = &p
	}
	if v := c.Query("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.Error(c, "Invalid maxPrice", fiber.StatusBadRequest, nil)
		}
		f.MaxPrice = &p
	}
	if v := c.Query("sellerId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return response.Error(c, "Invalid sellerId", fiber.StatusBadRequest, nil)
		}
		f.SellerID = uint(id)
	}

	views, err := h.Service.Search(c.Context(), f)
	if err != nil {
		return response.Error(c, "Failed to fetch listings", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listings fetched", views, nil)
}

// GetByID GET /api/listings/:id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	view, err := h.Service.GetByID(c.Context(), uint(id))
	if err != nil {
		if err == ErrNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to fetch listing", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing fetched", view, nil)
}

// CreateRequest body (camelCase, client contract).
type CreateRequest struct {
	SellerID     uint     `json:"sellerId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Quality      string   `json:"quality"`
	QualityNotes string   `json:"qualityNotes"`
	PriceType    string   `json:"priceType"`
	Price        float64  `json:"price"`
	Quantity     string   `json:"quantity"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Images       []string `json:"images"`
}

// Create POST /api/listings. Inserts the listing, then dispatches the AI
// audit in the background. The response never waits on (or fails with) the
// audit.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if req.SellerID == 0 || req.Title == "" || req.Category == "" || req.PriceType == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if req.Price <= 0 {
		return response.Error(c, "Price must be a positive number", fiber.StatusBadRequest, nil)
	}

	listing, err := h.Service.Create(c.Context(), CreateInput{
		SellerID:     req.SellerID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Quality:      req.Quality,
		QualityNotes: req.QualityNotes,
		PriceType:    req.PriceType,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Images:       req.Images,
	})
	if err != nil {
		switch err {
		case ErrBadPriceType, ErrSellerMissing:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Failed to create listing", fiber.StatusInternalServerError, nil)
		}
	}

	if h.Auditor != nil && len(req.Images) > 0 {
		go h.Auditor.AuditListing(context.Background(), listing.ID, AuditRequest{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Quality:     req.Quality,
			ImageData:   req.Images[0],
		})
	}

	return response.SuccessCreated(c, "Listing created", fiber.Map{"id": listing.ID}, nil)
}

// UpdateStatus PATCH /api/listings/:id/status. Transitioning to "sold"
// settles the auction.
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return response.Error(c, "Status is required", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.UpdateStatus(c.Context(), uint(id), req.Status); err != nil {
		switch err {
		case ErrNotFound:
			return response.NotFound(c, err.Error())
		case ErrBadStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Failed to update listing status", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Listing status updated", fiber.Map{"id": id, "status": req.Status}, nil)
}
