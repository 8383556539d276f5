package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wastex-backend/internal/models"
)

var ErrUserNotFound = errors.New("User not found")

type Service struct {
	DB *gorm.DB
}

// ListUsers returns every account, oldest first.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetBlocked toggles the blocked flag on a user.
func (s *Service) SetBlocked(ctx context.Context, userID uint, blocked bool) error {
	res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("is_blocked", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PendingReports lists reports awaiting admin attention, newest first.
func (s *Service) PendingReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at DESC, id DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
