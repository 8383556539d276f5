package admin

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wastex-backend/internal/models"
)

func setupAdminTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Report{}))
	return &Service{DB: db}, db
}

func TestSetBlocked_Toggle(t *testing.T) {
	svc, db := setupAdminTest(t)
	u := &models.User{Email: "b@example.com", PasswordHash: "x", FirstName: "Bea", Role: models.RoleBuyer}
	require.NoError(t, db.Create(u).Error)

	require.NoError(t, svc.SetBlocked(context.Background(), u.ID, true))
	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.True(t, fresh.IsBlocked)

	require.NoError(t, svc.SetBlocked(context.Background(), u.ID, false))
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.False(t, fresh.IsBlocked)
}

func TestSetBlocked_UnknownUser(t *testing.T) {
	svc, _ := setupAdminTest(t)
	assert.Equal(t, ErrUserNotFound, svc.SetBlocked(context.Background(), 99, true))
}

func TestPendingReports_ExcludesResolved(t *testing.T) {
	svc, db := setupAdminTest(t)
	require.NoError(t, db.Create(&models.Report{ReporterID: 1, TargetType: models.ReportTargetUser, TargetID: 2, Reason: "spam", Status: "pending"}).Error)
	require.NoError(t, db.Create(&models.Report{ReporterID: 1, TargetType: models.ReportTargetUser, TargetID: 3, Reason: "old", Status: "resolved"}).Error)

	out, err := svc.PendingReports(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "spam", out[0].Reason)
}
