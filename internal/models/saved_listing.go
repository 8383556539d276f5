package models

import "time"

// SavedListing bookmarks a listing for a user. One row per (user, listing) pair.
type SavedListing struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_saved_user_listing" json:"user_id"`
	ListingID uint      `gorm:"column:listing_id;not null;uniqueIndex:idx_saved_user_listing" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (SavedListing) TableName() string {
	return "saved_listings"
}
