package saved

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wastex-backend/internal/listings"
	"wastex-backend/internal/models"
)

var (
	ErrAlreadySaved    = errors.New("Listing already saved")
	ErrListingNotFound = errors.New("Listing not found")
)

type Service struct {
	DB       *gorm.DB
	Listings *listings.Service
}

// ListForUser returns full listing views for a user's bookmarks, newest
// bookmark first.
func (s *Service) ListForUser(ctx context.Context, userID uint) ([]listings.ListingView, error) {
	var rows []models.SavedListing
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ListingID)
	}
	return s.Listings.ViewsByIDs(ctx, ids)
}

// Save bookmarks a listing. One row per (user, listing) pair.
func (s *Service) Save(ctx context.Context, userID, listingID uint) error {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.SavedListing{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadySaved
	}
	return s.DB.WithContext(ctx).Create(&models.SavedListing{UserID: userID, ListingID: listingID}).Error
}

// Remove deletes a bookmark. Removing an absent pair is a no-op.
func (s *Service) Remove(ctx context.Context, userID, listingID uint) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.SavedListing{}).Error
}
