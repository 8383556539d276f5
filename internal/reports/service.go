package reports

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wastex-backend/internal/models"
)

var (
	ErrBadTargetType  = errors.New("Target type must be listing or user")
	ErrTargetNotFound = errors.New("Report target not found")
)

type Service struct {
	DB *gorm.DB
}

// Create files a report against a listing or user; status starts pending.
func (s *Service) Create(ctx context.Context, reporterID uint, targetType string, targetID uint, reason string) (*models.Report, error) {
	var err error
	switch targetType {
	case models.ReportTargetListing:
		err = s.DB.WithContext(ctx).First(&models.Listing{}, targetID).Error
	case models.ReportTargetUser:
		err = s.DB.WithContext(ctx).First(&models.User{}, targetID).Error
	default:
		return nil, ErrBadTargetType
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	report := &models.Report{
		ReporterID: reporterID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
		Status:     "pending",
	}
	if err := s.DB.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}
