package kyc

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wastex-backend/internal/models"
	"wastex-backend/internal/notifications"
)

var (
	ErrUserNotFound     = errors.New("User not found")
	ErrDocumentNotFound = errors.New("Document not found")
	ErrAlreadyReviewed  = errors.New("Document already reviewed")
)

type Service struct {
	DB *gorm.DB
}

// Upload records a submitted identity document with a pending status.
func (s *Service) Upload(ctx context.Context, userID uint, documentURL string) (*models.KYCDocument, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	doc := &models.KYCDocument{UserID: userID, DocumentURL: documentURL, Status: models.KYCStatusPending}
	if err := s.DB.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// QueueEntry is one pending document with the submitter's display fields.
type QueueEntry struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	DocumentURL string `json:"document_url"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// PendingQueue lists documents awaiting review, oldest first.
func (s *Service) PendingQueue(ctx context.Context) ([]QueueEntry, error) {
	out := []QueueEntry{}
	err := s.DB.WithContext(ctx).
		Table("kyc_documents").
		Select("kyc_documents.id, kyc_documents.user_id, kyc_documents.document_url, kyc_documents.status, kyc_documents.created_at, users.email, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = kyc_documents.user_id").
		Where("kyc_documents.status = ?", models.KYCStatusPending).
		Order("kyc_documents.created_at ASC, kyc_documents.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Approve marks the document approved, marks the owning user verified, and
// notifies them, in one transaction.
func (s *Service) Approve(ctx context.Context, docID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := pendingDoc(tx, docID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.KYCDocument{}).Where("id = ?", docID).Update("status", models.KYCStatusApproved).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", doc.UserID).Update("is_verified", true).Error; err != nil {
			return err
		}
		note := models.Notification{UserID: doc.UserID, Message: notifications.KYCApprovedMessage()}
		return tx.Create(&note).Error
	})
}

// Reject marks the document rejected and notifies the submitter.
func (s *Service) Reject(ctx context.Context, docID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := pendingDoc(tx, docID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.KYCDocument{}).Where("id = ?", docID).Update("status", models.KYCStatusRejected).Error; err != nil {
			return err
		}
		note := models.Notification{UserID: doc.UserID, Message: notifications.KYCRejectedMessage()}
		return tx.Create(&note).Error
	})
}

func pendingDoc(tx *gorm.DB, docID uint) (*models.KYCDocument, error) {
	var doc models.KYCDocument
	if err := tx.First(&doc, docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.Status != models.KYCStatusPending {
		return nil, ErrAlreadyReviewed
	}
	return &doc, nil
}
