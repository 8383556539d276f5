package models

import (
	"time"

	"gorm.io/datatypes"
)

// Listing price types.
const (
	PriceTypeFixed   = "fixed"
	PriceTypeBidding = "bidding"
)

// Listing statuses. Sold and deactivated are terminal: no further bids.
const (
	StatusActive      = "active"
	StatusPending     = "pending"
	StatusSold        = "sold"
	StatusDeactivated = "deactivated"
)

// Listing is a seller's waste-material offer. Price is the fixed price, or the
// starting/reserve price when PriceType is "bidding".
type Listing struct {
	ID                uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SellerID          uint           `gorm:"column:seller_id;not null;index" json:"seller_id"`
	Title             string         `gorm:"column:title;not null" json:"title"`
	Description       string         `gorm:"column:description" json:"description"`
	Category          string         `gorm:"column:category;not null" json:"category"`
	Quality           string         `gorm:"column:quality" json:"quality"`
	QualityNotes      string         `gorm:"column:quality_notes" json:"quality_notes"`
	PriceType         string         `gorm:"column:price_type;not null" json:"price_type"`
	Price             float64        `gorm:"column:price;not null" json:"price"`
	Quantity          string         `gorm:"column:quantity" json:"quantity"`
	Latitude          float64        `gorm:"column:latitude" json:"latitude"`
	Longitude         float64        `gorm:"column:longitude" json:"longitude"`
	Status            string         `gorm:"column:status;default:active" json:"status"`
	IsVerified        bool           `gorm:"column:is_verified;default:false" json:"is_verified"`
	VerificationNotes string         `gorm:"column:verification_notes" json:"verification_notes"`
	AuditResult       datatypes.JSON `gorm:"column:audit_result" json:"audit_result,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// ListingImage associates a listing with an image URL or data-URL blob.
// Ordering is insertion order (id ascending).
type ListingImage struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ListingID uint   `gorm:"column:listing_id;not null;index" json:"listing_id"`
	ImageURL  string `gorm:"column:image_url;not null" json:"image_url"`
}

func (ListingImage) TableName() string {
	return "listing_images"
}
