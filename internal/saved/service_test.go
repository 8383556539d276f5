package saved

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wastex-backend/internal/listings"
	"wastex-backend/internal/models"
	"wastex-backend/internal/pkg/keylock"
)

func setupSavedTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Listing{}, &models.ListingImage{}, &models.SavedListing{},
	))
	ls := &listings.Service{DB: db, Locks: keylock.New()}
	return &Service{DB: db, Listings: ls}, db
}

func seedListing(t *testing.T, db *gorm.DB, title string) *models.Listing {
	seller := &models.User{Email: title + "@example.com", PasswordHash: "x", FirstName: "Sam", Role: models.RoleSeller}
	require.NoError(t, db.Create(seller).Error)
	l := &models.Listing{SellerID: seller.ID, Title: title, Category: "Plastic", PriceType: models.PriceTypeFixed, Price: 100, Status: models.StatusActive}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestSave_Duplicate(t *testing.T) {
	svc, db := setupSavedTest(t)
	buyer := &models.User{Email: "b@example.com", PasswordHash: "x", FirstName: "Bea", Role: models.RoleBuyer}
	require.NoError(t, db.Create(buyer).Error)
	l := seedListing(t, db, "flakes")

	require.NoError(t, svc.Save(context.Background(), buyer.ID, l.ID))
	assert.Equal(t, ErrAlreadySaved, svc.Save(context.Background(), buyer.ID, l.ID))
}

func TestSave_UnknownListing(t *testing.T) {
	svc, _ := setupSavedTest(t)
	assert.Equal(t, ErrListingNotFound, svc.Save(context.Background(), 1, 99))
}

func TestListForUser_ReturnsFullViews(t *testing.T) {
	svc, db := setupSavedTest(t)
	buyer := &models.User{Email: "b@example.com", PasswordHash: "x", FirstName: "Bea", Role: models.RoleBuyer}
	require.NoError(t, db.Create(buyer).Error)
	first := seedListing(t, db, "flakes")
	second := seedListing(t, db, "bales")

	require.NoError(t, svc.Save(context.Background(), buyer.ID, first.ID))
	require.NoError(t, svc.Save(context.Background(), buyer.ID, second.ID))

	views, err := svc.ListForUser(context.Background(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Sam", views[0].SellerName)
}

func TestRemove_AbsentPairIsNoOp(t *testing.T) {
	svc, db := setupSavedTest(t)
	buyer := &models.User{Email: "b@example.com", PasswordHash: "x", FirstName: "Bea", Role: models.RoleBuyer}
	require.NoError(t, db.Create(buyer).Error)
	l := seedListing(t, db, "flakes")

	require.NoError(t, svc.Remove(context.Background(), buyer.ID, l.ID))

	require.NoError(t, svc.Save(context.Background(), buyer.ID, l.ID))
	require.NoError(t, svc.Remove(context.Background(), buyer.ID, l.ID))

	views, err := svc.ListForUser(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}
