package reports

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wastex-backend/internal/models"
)

func setupReportsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.Report{}))
	return &Service{DB: db}, db
}

func TestCreate_ListingTarget(t *testing.T) {
	svc, db := setupReportsTest(t)
	seller := &models.User{Email: "s@example.com", PasswordHash: "x", FirstName: "Sam", Role: models.RoleSeller}
	require.NoError(t, db.Create(seller).Error)
	l := &models.Listing{SellerID: seller.ID, Title: "Scrap", Category: "Metal", PriceType: models.PriceTypeFixed, Price: 100, Status: models.StatusActive}
	require.NoError(t, db.Create(l).Error)

	report, err := svc.Create(context.Background(), seller.ID, models.ReportTargetListing, l.ID, "miscategorized")
	require.NoError(t, err)
	assert.Equal(t, "pending", report.Status)
}

func TestCreate_BadTargetType(t *testing.T) {
	svc, _ := setupReportsTest(t)
	_, err := svc.Create(context.Background(), 1, "comment", 1, "spam")
	assert.Equal(t, ErrBadTargetType, err)
}

func TestCreate_TargetNotFound(t *testing.T) {
	svc, _ := setupReportsTest(t)
	_, err := svc.Create(context.Background(), 1, models.ReportTargetUser, 99, "spam")
	assert.Equal(t, ErrTargetNotFound, err)
}
