package notifications

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wastex-backend/internal/models"
)

var ErrNotFound = errors.New("Notification not found")

type Service struct {
	DB *gorm.DB
}

// ListForUser returns a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var out []models.Notification
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flips the read flag on one notification.
func (s *Service) MarkRead(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
