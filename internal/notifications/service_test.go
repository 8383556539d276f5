package notifications

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wastex-backend/internal/models"
)

func setupNotificationsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	return &Service{DB: db}, db
}

func TestListForUser_ScopedToUser(t *testing.T) {
	svc, db := setupNotificationsTest(t)
	require.NoError(t, db.Create(&models.Notification{UserID: 1, Message: "mine"}).Error)
	require.NoError(t, db.Create(&models.Notification{UserID: 2, Message: "theirs"}).Error)

	out, err := svc.ListForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "mine", out[0].Message)
	assert.False(t, out[0].IsRead)
}

func TestMarkRead(t *testing.T) {
	svc, db := setupNotificationsTest(t)
	n := &models.Notification{UserID: 1, Message: "mine"}
	require.NoError(t, db.Create(n).Error)

	require.NoError(t, svc.MarkRead(context.Background(), n.ID))

	var fresh models.Notification
	require.NoError(t, db.First(&fresh, n.ID).Error)
	assert.True(t, fresh.IsRead)
}

func TestMarkRead_NotFound(t *testing.T) {
	svc, _ := setupNotificationsTest(t)
	assert.Equal(t, ErrNotFound, svc.MarkRead(context.Background(), 99))
}
