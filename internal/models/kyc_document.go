package models

import "time"

// KYC document review states.
const (
	KYCStatusPending  = "pending"
	KYCStatusApproved = "approved"
	KYCStatusRejected = "rejected"
)

// KYCDocument is an identity document submitted for admin review.
// Approval marks the owning user verified.
type KYCDocument struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	DocumentURL string    `gorm:"column:document_url;not null" json:"document_url"`
	Status      string    `gorm:"column:status;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (KYCDocument) TableName() string {
	return "kyc_documents"
}
