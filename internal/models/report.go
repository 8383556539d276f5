package models

import "time"

// Report target types.
const (
	ReportTargetListing = "listing"
	ReportTargetUser    = "user"
)

// Report flags a listing or user for admin attention.
type Report struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReporterID uint      `gorm:"column:reporter_id;not null;index" json:"reporter_id"`
	TargetType string    `gorm:"column:target_type;not null" json:"target_type"`
	TargetID   uint      `gorm:"column:target_id;not null" json:"target_id"`
	Reason     string    `gorm:"column:reason" json:"reason"`
	Status     string    `gorm:"column:status;default:pending" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
