package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wastex-backend/internal/listings"
	"wastex-backend/internal/models"
	"wastex-backend/internal/pkg/keylock"
)

type fakeAssistant struct {
	verdict *AuditVerdict
	err     error
}

func (f *fakeAssistant) AuditListing(ctx context.Context, in AuditInput) (*AuditVerdict, error) {
	return f.verdict, f.err
}

func (f *fakeAssistant) SuggestCategory(ctx context.Context, imageData string) (*CategorySuggestion, error) {
	return nil, errors.New("not used")
}

func setupAuditorTest(t *testing.T, assistant Assistant) (*Auditor, *gorm.DB, *models.Listing) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.ListingImage{}))

	seller := &models.User{Email: "s@example.com", PasswordHash: "x", FirstName: "Sam", Role: models.RoleSeller}
	require.NoError(t, db.Create(seller).Error)
	listing := &models.Listing{SellerID: seller.ID, Title: "PET Flakes", Category: "Plastic", PriceType: models.PriceTypeFixed, Price: 100, Status: models.StatusActive}
	require.NoError(t, db.Create(listing).Error)

	ls := &listings.Service{DB: db, Locks: keylock.New()}
	return &Auditor{Assistant: assistant, Listings: ls}, db, listing
}

func TestAuditListing_HighConfidenceVerifies(t *testing.T) {
	auditor, db, listing := setupAuditorTest(t, &fakeAssistant{
		verdict: &AuditVerdict{IsVerified: true, Notes: "matches category", Confidence: 0.9},
	})

	auditor.AuditListing(context.Background(), listing.ID, listings.AuditRequest{Title: listing.Title})

	var fresh models.Listing
	require.NoError(t, db.First(&fresh, listing.ID).Error)
	assert.True(t, fresh.IsVerified)
	assert.Equal(t, "matches category", fresh.VerificationNotes)
	assert.NotEmpty(t, fresh.AuditResult)
}

func TestAuditListing_LowConfidenceRecordsNotesOnly(t *testing.T) {
	auditor, db, listing := setupAuditorTest(t, &fakeAssistant{
		verdict: &AuditVerdict{IsVerified: true, Notes: "image unclear", Confidence: 0.4},
	})

	auditor.AuditListing(context.Background(), listing.ID, listings.AuditRequest{Title: listing.Title})

	var fresh models.Listing
	require.NoError(t, db.First(&fresh, listing.ID).Error)
	assert.False(t, fresh.IsVerified)
	assert.Equal(t, "image unclear", fresh.VerificationNotes)
}

func TestAuditListing_AssistantErrorSwallowed(t *testing.T) {
	auditor, db, listing := setupAuditorTest(t, &fakeAssistant{err: errors.New("quota exceeded")})

	auditor.AuditListing(context.Background(), listing.ID, listings.AuditRequest{Title: listing.Title})

	var fresh models.Listing
	require.NoError(t, db.First(&fresh, listing.ID).Error)
	assert.False(t, fresh.IsVerified)
	assert.Empty(t, fresh.VerificationNotes)
}

func TestAuditListing_NilAssistantIsNoOp(t *testing.T) {
	auditor, db, listing := setupAuditorTest(t, nil)

	auditor.AuditListing(context.Background(), listing.ID, listings.AuditRequest{Title: listing.Title})

	var fresh models.Listing
	require.NoError(t, db.First(&fresh, listing.ID).Error)
	assert.False(t, fresh.IsVerified)
}

func TestDecodeImage_DataURLAndBarePayload(t *testing.T) {
	// "aGVsbG8=" is base64 for "hello".
	part, err := decodeImage("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.NotNil(t, part)

	part, err = decodeImage("aGVsbG8=")
	require.NoError(t, err)
	assert.NotNil(t, part)

	_, err = decodeImage("not base64!!")
	assert.Error(t, err)
}
