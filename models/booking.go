package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid checks if the booking status is one of the known lifecycle states
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// Booking is a client's request to reserve a package for a date. The photo
// counters track the post-shoot workflow: SelectedPhotos must always equal
// the number of photos in the set with Selected = true.
type Booking struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Reference   string        `json:"reference" gorm:"type:varchar(36);uniqueIndex;not null"`
	ClientName  string        `json:"client_name" gorm:"size:50;not null"`
	ClientEmail string        `json:"client_email" gorm:"size:255;not null;index"`
	Phone       string        `json:"phone" gorm:"size:20;not null"`
	PackageSlug string        `json:"package_slug" gorm:"type:varchar(100);not null"`
	Date        string        `json:"date" gorm:"size:10;not null"`
	Venue       string        `json:"venue" gorm:"size:500;not null"`
	Notes       string        `json:"notes" gorm:"size:1000"`
	AddOnSlugs  StringList    `json:"add_on_slugs" gorm:"type:text"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','confirmed','completed','cancelled')"`

	TotalPhotos     int `json:"total_photos" gorm:"default:0"`
	SelectedPhotos  int `json:"selected_photos" gorm:"default:0"`
	PrintedPhotos   int `json:"printed_photos" gorm:"default:0"`
	DeliveredPhotos int `json:"delivered_photos" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Photos []Photo `json:"photos,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
