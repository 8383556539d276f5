package bids

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wastex-backend/internal/models"
	"wastex-backend/internal/notifications"
	"wastex-backend/internal/pkg/keylock"
)

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrBuyerNotFound   = errors.New("Buyer not found")
	ErrNotBidding      = errors.New("Listing does not accept bids")
	ErrListingClosed   = errors.New("Listing is no longer accepting bids")
	ErrBelowLeader     = errors.New("Bid must exceed the current highest bid")
	ErrBelowBasePrice  = errors.New("Bid must exceed the listing base price")
)

// Service implements the bidding protocol. Locks must be the same registry the
// listings service settles with, so a settlement cannot race a last-second bid.
type Service struct {
	DB    *gorm.DB
	Locks *keylock.Keyed
}

// leaderOrder resolves the current leader deterministically: highest amount,
// equal amounts to the earliest-placed bid.
const leaderOrder = "amount DESC, created_at ASC, id ASC"

// PlaceBid records a bid and fans out notifications, atomically. The new bid
// must strictly exceed the current leader, or the base price when no bids
// exist. The seller is always notified; the previous leader is notified when
// it belongs to a different buyer. Any failure rolls the whole unit back.
func (s *Service) PlaceBid(ctx context.Context, listingID, buyerID uint, amount float64) (*models.Bid, error) {
	unlock := s.Locks.Lock(listingID)
	defer unlock()

	var bid *models.Bid
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}
		if listing.PriceType != models.PriceTypeBidding {
			return ErrNotBidding
		}
		if listing.Status == models.StatusSold || listing.Status == models.StatusDeactivated {
			return ErrListingClosed
		}

		var buyer models.User
		if err := tx.First(&buyer, buyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBuyerNotFound
			}
			return err
		}

		var leader models.Bid
		hasLeader := true
		if err := tx.Where("listing_id = ?", listingID).Order(leaderOrder).First(&leader).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			hasLeader = false
		}

		if hasLeader {
			if amount <= leader.Amount {
				return ErrBelowLeader
			}
		} else if amount <= listing.Price {
			return ErrBelowBasePrice
		}

		bid = &models.Bid{ListingID: listingID, BuyerID: buyerID, Amount: amount}
		if err := tx.Create(bid).Error; err != nil {
			return err
		}

		sellerNote := models.Notification{
			UserID:  listing.SellerID,
			Message: notifications.NewBidMessage(amount, listing.Title, buyer.FirstName),
		}
		if err := tx.Create(&sellerNote).Error; err != nil {
			return err
		}

		if hasLeader && leader.BuyerID != buyerID {
			outbidNote := models.Notification{
				UserID:  leader.BuyerID,
				Message: notifications.OutbidMessage(listing.Title, amount),
			}
			if err := tx.Create(&outbidNote).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bid, nil
}

// BidView is one leaderboard row with the buyer's display name joined in.
type BidView struct {
	ID        uint    `json:"id"`
	ListingID uint    `json:"listing_id"`
	BuyerID   uint    `json:"buyer_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
	BuyerName string  `json:"buyer_name"`
}

// ListBids returns a listing's bids ordered by amount descending, ties broken
// by placement order. Empty slice when there are none.
func (s *Service) ListBids(ctx context.Context, listingID uint) ([]BidView, error) {
	out := []BidView{}
	err := s.DB.WithContext(ctx).
		Table("bids").
		Select("bids.id, bids.listing_id, bids.buyer_id, bids.amount, bids.created_at, users.first_name AS buyer_name").
		Joins("JOIN users ON users.id = bids.buyer_id").
		Where("bids.listing_id = ?", listingID).
		Order("bids.amount DESC, bids.created_at ASC, bids.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
