package listings

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wastex-backend/internal/models"
	"wastex-backend/internal/pkg/keylock"
)

func setupListingsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Listing{}, &models.ListingImage{},
		&models.Bid{}, &models.Notification{},
	))
	return &Service{DB: db, Locks: keylock.New()}, db
}

func seedSeller(t *testing.T, db *gorm.DB) *models.User {
	u := &models.User{Email: "seller@example.com", PasswordHash: "x", FirstName: "John", Role: models.RoleSeller, IsVerified: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedListing(t *testing.T, db *gorm.DB, sellerID uint, title, category, quality, status string, price float64) *models.Listing {
	l := &models.Listing{
		SellerID:  sellerID,
		Title:     title,
		Category:  category,
		Quality:   quality,
		PriceType: models.PriceTypeFixed,
		Price:     price,
		Status:    status,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestSearch_ActiveOnlyWithoutSellerID(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	seedListing(t, db, seller.ID, "PET Flakes", "Plastic", "Sorted/Clean", models.StatusActive, 450)
	seedListing(t, db, seller.ID, "Old Bales", "Paper", "Sorted/Clean", models.StatusSold, 150)
	seedListing(t, db, seller.ID, "Hidden Scrap", "Metal", "Industrial Grade", models.StatusDeactivated, 900)

	views, err := svc.Search(context.Background(), Filters{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "PET Flakes", views[0].Title)
	assert.Equal(t, "John", views[0].SellerName)
	assert.True(t, views[0].SellerVerified)
}

func TestSearch_SellerIDBypassesStatusFilter(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	seedListing(t, db, seller.ID, "PET Flakes", "Plastic", "Sorted/Clean", models.StatusActive, 450)
	seedListing(t, db, seller.ID, "Old Bales", "Paper", "Sorted/Clean", models.StatusSold, 150)

	views, err := svc.Search(context.Background(), Filters{SellerID: seller.ID})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestSearch_CombinedFiltersIntersect(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	seedListing(t, db, seller.ID, "Clean PET Flakes", "Plastic", "Sorted/Clean", models.StatusActive, 450)
	seedListing(t, db, seller.ID, "Plastic Drums", "Plastic", "Sorted/Clean", models.StatusActive, 2000)
	seedListing(t, db, seller.ID, "Aluminum Scrap", "Metal", "Industrial Grade", models.StatusActive, 450)

	min, max := 100.0, 1000.0
	views, err := svc.Search(context.Background(), Filters{
		Category: "Plastic",
		MinPrice: &min,
		MaxPrice: &max,
		Search:   "pet",
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Clean PET Flakes", views[0].Title)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	seedListing(t, db, seller.ID, "Cardboard Bales", "Paper", "", models.StatusActive, 150)

	views, err := svc.Search(context.Background(), Filters{Search: "CARDBOARD"})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestSearch_PriceSort(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	seedListing(t, db, seller.ID, "A", "Plastic", "", models.StatusActive, 300)
	seedListing(t, db, seller.ID, "B", "Plastic", "", models.StatusActive, 100)
	seedListing(t, db, seller.ID, "C", "Plastic", "", models.StatusActive, 200)

	views, err := svc.Search(context.Background(), Filters{Sort: "price_low"})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "B", views[0].Title)
	assert.Equal(t, "A", views[2].Title)

	views, err = svc.Search(context.Background(), Filters{Sort: "price_high"})
	require.NoError(t, err)
	assert.Equal(t, "A", views[0].Title)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := setupListingsTest(t)
	_, err := svc.GetByID(context.Background(), 99)
	assert.Equal(t, ErrNotFound, err)
}

func TestCreate_WithImages(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)

	listing, err := svc.Create(context.Background(), CreateInput{
		SellerID:  seller.ID,
		Title:     "Glass Cullet",
		Category:  "Glass",
		PriceType: models.PriceTypeFixed,
		Price:     300,
		Images:    []string{"https://example.com/1.jpg", "https://example.com/2.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, listing.Status)

	view, err := svc.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/1.jpg", "https://example.com/2.jpg"}, view.Images)
}

func TestCreate_RejectsUnknownPriceType(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)

	_, err := svc.Create(context.Background(), CreateInput{
		SellerID:  seller.ID,
		Title:     "Glass Cullet",
		Category:  "Glass",
		PriceType: "auction",
		Price:     300,
	})
	assert.Equal(t, ErrBadPriceType, err)
}

func TestUpdateStatus_SettleFixedListing_NoNotification(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	l := seedListing(t, db, seller.ID, "PET Flakes", "Plastic", "", models.StatusActive, 450)

	require.NoError(t, svc.UpdateStatus(context.Background(), l.ID, models.StatusSold))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateStatus_SettleBiddingNoBids_NoNotification(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	l := &models.Listing{SellerID: seller.ID, Title: "Scrap", Category: "Metal", PriceType: models.PriceTypeBidding, Price: 100, Status: models.StatusActive}
	require.NoError(t, db.Create(l).Error)

	require.NoError(t, svc.UpdateStatus(context.Background(), l.ID, models.StatusSold))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateStatus_SettleNotifiesLeader_TieGoesToEarliest(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	early := &models.User{Email: "early@example.com", PasswordHash: "x", FirstName: "Early", Role: models.RoleBuyer}
	late := &models.User{Email: "late@example.com", PasswordHash: "x", FirstName: "Late", Role: models.RoleBuyer}
	require.NoError(t, db.Create(early).Error)
	require.NoError(t, db.Create(late).Error)
	l := &models.Listing{SellerID: seller.ID, Title: "Circuit Boards", Category: "Electronic", PriceType: models.PriceTypeBidding, Price: 100, Status: models.StatusActive}
	require.NoError(t, db.Create(l).Error)

	require.NoError(t, db.Create(&models.Bid{ListingID: l.ID, BuyerID: early.ID, Amount: 500}).Error)
	require.NoError(t, db.Create(&models.Bid{ListingID: l.ID, BuyerID: late.ID, Amount: 500}).Error)

	require.NoError(t, svc.UpdateStatus(context.Background(), l.ID, models.StatusSold))

	var notes []models.Notification
	require.NoError(t, db.Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, early.ID, notes[0].UserID)
	assert.Contains(t, notes[0].Message, "Circuit Boards")
}

func TestUpdateStatus_ResettleIsNoOp(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	buyer := &models.User{Email: "b@example.com", PasswordHash: "x", FirstName: "Bea", Role: models.RoleBuyer}
	require.NoError(t, db.Create(buyer).Error)
	l := &models.Listing{SellerID: seller.ID, Title: "Scrap", Category: "Metal", PriceType: models.PriceTypeBidding, Price: 100, Status: models.StatusActive}
	require.NoError(t, db.Create(l).Error)
	require.NoError(t, db.Create(&models.Bid{ListingID: l.ID, BuyerID: buyer.ID, Amount: 200}).Error)

	require.NoError(t, svc.UpdateStatus(context.Background(), l.ID, models.StatusSold))
	require.NoError(t, svc.UpdateStatus(context.Background(), l.ID, models.StatusSold))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	l := seedListing(t, db, seller.ID, "Scrap", "Metal", "", models.StatusActive, 100)

	assert.Equal(t, ErrBadStatus, svc.UpdateStatus(context.Background(), l.ID, "archived"))
}

func TestApplyAuditResult_ConfidenceThreshold(t *testing.T) {
	svc, db := setupListingsTest(t)
	seller := seedSeller(t, db)
	l := seedListing(t, db, seller.ID, "Scrap", "Metal", "", models.StatusActive, 100)

	require.NoError(t, svc.ApplyAuditResult(context.Background(), l.ID, AuditOutcome{
		IsVerified: true, Notes: "low confidence", Confidence: 0.5,
	}))
	var fresh models.Listing
	require.NoError(t, db.First(&fresh, l.ID).Error)
	assert.False(t, fresh.IsVerified)
	assert.Equal(t, "low confidence", fresh.VerificationNotes)

	require.NoError(t, svc.ApplyAuditResult(context.Background(), l.ID, AuditOutcome{
		IsVerified: true, Notes: "matches category", Confidence: 0.95, Raw: []byte(`{"is_verified":true}`),
	}))
	require.NoError(t, db.First(&fresh, l.ID).Error)
	assert.True(t, fresh.IsVerified)
	assert.Equal(t, "matches category", fresh.VerificationNotes)
}

func TestApplyAuditResult_UnknownListing(t *testing.T) {
	svc, _ := setupListingsTest(t)
	err := svc.ApplyAuditResult(context.Background(), 404, AuditOutcome{Notes: "x"})
	assert.Equal(t, ErrNotFound, err)
}
