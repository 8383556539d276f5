package models

import "time"

// Bid is one buyer's offer on a bidding listing. The current leader for a
// listing is the max amount; equal amounts resolve to the earliest-placed bid.
type Bid struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ListingID uint      `gorm:"column:listing_id;not null;index" json:"listing_id"`
	BuyerID   uint      `gorm:"column:buyer_id;not null;index" json:"buyer_id"`
	Amount    float64   `gorm:"column:amount;not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func (Bid) TableName() string {
	return "bids"
}
