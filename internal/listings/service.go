package listings

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"wastex-backend/internal/models"
	"wastex-backend/internal/notifications"
	"wastex-backend/internal/pkg/keylock"
)

var (
	ErrNotFound      = errors.New("Listing not found")
	ErrSellerMissing = errors.New("Seller not found")
	ErrBadPriceType  = errors.New("Invalid price type")
	ErrBadStatus     = errors.New("Invalid listing status")
)

// Service owns listing CRUD, discovery and settlement. Locks is shared with
// the bids service so settlement serializes against bid placement per listing.
type Service struct {
	DB    *gorm.DB
	Locks *keylock.Keyed
}

// Filters are independently optional search constraints. SellerID, when set,
// bypasses the active-only restriction (dashboard views).
type Filters struct {
	Category string
	Quality  string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	SellerID uint
	Sort     string
}

// ListingView is a listing with its seller display fields and image refs.
type ListingView struct {
	models.Listing
	SellerName     string   `json:"seller_name"`
	SellerVerified bool     `json:"seller_verified"`
	Images         []string `json:"images"`
}

// Search returns listings matching all set filters. Default order is
// insertion-recency descending; "price_low"/"price_high" sort by price.
func (s *Service) Search(ctx context.Context, f Filters) ([]ListingView, error) {
	q := s.DB.WithContext(ctx).Model(&models.Listing{})
	if f.SellerID != 0 {
		q = q.Where("seller_id = ?", f.SellerID)
	} else {
		q = q.Where("status = ?", models.StatusActive)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Quality != "" {
		q = q.Where("quality = ?", f.Quality)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}
	switch f.Sort {
	case "price_low":
		q = q.Order("price ASC")
	case "price_high":
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC, id DESC")
	}

	var ls []models.Listing
	if err := q.Find(&ls).Error; err != nil {
		return nil, err
	}
	return s.toViews(ctx, ls)
}

// GetByID returns one listing view or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id uint) (*ListingView, error) {
	var l models.Listing
	if err := s.DB.WithContext(ctx).First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	views, err := s.toViews(ctx, []models.Listing{l})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ViewsByIDs returns views for the given listing ids, in the given order.
// Missing ids are skipped. Saved-listings reuses this.
func (s *Service) ViewsByIDs(ctx context.Context, ids []uint) ([]ListingView, error) {
	if len(ids) == 0 {
		return []ListingView{}, nil
	}
	var ls []models.Listing
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&ls).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Listing, len(ls))
	for _, l := range ls {
		byID[l.ID] = l
	}
	ordered := make([]models.Listing, 0, len(ls))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return s.toViews(ctx, ordered)
}

func (s *Service) toViews(ctx context.Context, ls []models.Listing) ([]ListingView, error) {
	views := make([]ListingView, 0, len(ls))
	if len(ls) == 0 {
		return views, nil
	}

	listingIDs := make([]uint, 0, len(ls))
	sellerIDs := make([]uint, 0, len(ls))
	for _, l := range ls {
		listingIDs = append(listingIDs, l.ID)
		sellerIDs = append(sellerIDs, l.SellerID)
	}

	var sellers []models.User
	if err := s.DB.WithContext(ctx).Where("id IN ?", sellerIDs).Find(&sellers).Error; err != nil {
		return nil, err
	}
	sellerByID := make(map[uint]models.User, len(sellers))
	for _, u := range sellers {
		sellerByID[u.ID] = u
	}

	var images []models.ListingImage
	if err := s.DB.WithContext(ctx).Where("listing_id IN ?", listingIDs).Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	imagesByListing := make(map[uint][]string)
	for _, img := range images {
		imagesByListing[img.ListingID] = append(imagesByListing[img.ListingID], img.ImageURL)
	}

	for _, l := range ls {
		v := ListingView{Listing: l, Images: imagesByListing[l.ID]}
		if v.Images == nil {
			v.Images = []string{}
		}
		if seller, ok := sellerByID[l.SellerID]; ok {
			v.SellerName = seller.FirstName
			v.SellerVerified = seller.IsVerified
		}
		views = append(views, v)
	}
	return views, nil
}

// CreateInput for a new listing.
type CreateInput struct {
	SellerID     uint
	Title        string
	Description  string
	Category     string
	Quality      string
	QualityNotes string
	PriceType    string
	Price        float64
	Quantity     string
	Latitude     float64
	Longitude    float64
	Images       []string
}

// Create inserts the listing and its images in one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Listing, error) {
	if in.PriceType != models.PriceTypeFixed && in.PriceType != models.PriceTypeBidding {
		return nil, ErrBadPriceType
	}

	listing := &models.Listing{
		SellerID:     in.SellerID,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Quality:      in.Quality,
		QualityNotes: in.QualityNotes,
		PriceType:    in.PriceType,
		Price:        in.Price,
		Quantity:     in.Quantity,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Status:       models.StatusActive,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seller models.User
		if err := tx.First(&seller, in.SellerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSellerMissing
			}
			return err
		}
		if err := tx.Create(listing).Error; err != nil {
			return err
		}
		for _, url := range in.Images {
			if err := tx.Create(&models.ListingImage{ListingID: listing.ID, ImageURL: url}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

var validStatuses = map[string]bool{
	models.StatusActive:      true,
	models.StatusPending:     true,
	models.StatusSold:        true,
	models.StatusDeactivated: true,
}

// UpdateStatus transitions a listing's status. Transitioning to "sold" settles
// the auction: on a bidding listing the leading bid's buyer (highest amount,
// earliest-placed on ties) gets exactly one won notification. Re-settling an
// already-sold listing is a no-op and never re-notifies.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !validStatuses[status] {
		return ErrBadStatus
	}

	unlock := s.Locks.Lock(id)
	defer unlock()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if status == models.StatusSold && listing.Status == models.StatusSold {
			return nil
		}

		if err := tx.Model(&models.Listing{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return err
		}

		if status != models.StatusSold || listing.PriceType != models.PriceTypeBidding {
			return nil
		}

		var winner models.Bid
		if err := tx.Where("listing_id = ?", id).Order("amount DESC, created_at ASC, id ASC").First(&winner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		note := models.Notification{
			UserID:  winner.BuyerID,
			Message: notifications.WonBidMessage(listing.Title, winner.Amount),
		}
		return tx.Create(&note).Error
	})
}

// AuditOutcome is the applied result of an AI audit.
type AuditOutcome struct {
	IsVerified bool
	Notes      string
	Confidence float64
	Raw        []byte
}

// ApplyAuditResult applies an audit verdict to a listing, keyed by id and
// idempotent. The verified flag is only set on a positive verdict with
// confidence above 0.7; notes and the raw verdict are recorded either way.
func (s *Service) ApplyAuditResult(ctx context.Context, listingID uint, out AuditOutcome) error {
	updates := map[string]interface{}{
		"verification_notes": out.Notes,
	}
	if out.IsVerified && out.Confidence > 0.7 {
		updates["is_verified"] = true
	}
	if len(out.Raw) > 0 {
		updates["audit_result"] = datatypes.JSON(out.Raw)
	}
	res := s.DB.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", listingID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
