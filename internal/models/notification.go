package models

import "time"

// Notification is an in-app message for one user (bid activity, auction
// outcomes, KYC decisions). Only the owner flips IsRead.
type Notification struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	IsRead    bool      `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
