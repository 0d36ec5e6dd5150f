package models

import (
	"time"
)

type PhotoStatus string

const (
	PhotoStatusSelected  PhotoStatus = "selected"
	PhotoStatusPrinted   PhotoStatus = "printed"
	PhotoStatusDelivered PhotoStatus = "delivered"
)

// IsValid checks if the photo status is valid
func (s PhotoStatus) IsValid() bool {
	switch s {
	case PhotoStatusSelected, PhotoStatusPrinted, PhotoStatusDelivered:
		return true
	default:
		return false
	}
}

// Photo belongs to a booking's photo set. The Selected flag is what feeds
// the booking's SelectedPhotos counter; Status tracks the print workflow.
type Photo struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	BookingID uint        `json:"booking_id" gorm:"not null;index"`
	URL       string      `json:"url" gorm:"size:500;not null"`
	Status    PhotoStatus `json:"status" gorm:"type:varchar(20);default:'selected';check:status IN ('selected','printed','delivered')"`
	Selected  bool        `json:"selected" gorm:"default:false"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Photo model
func (Photo) TableName() string {
	return "photos"
}
