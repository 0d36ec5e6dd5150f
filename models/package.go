package models

import (
	"time"

	"gorm.io/gorm"
)

// PhotoPackage is a photography service offering. Packages are reference
// data: seeded at startup and never mutated through the public API.
type PhotoPackage struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Slug        string         `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string         `json:"name" gorm:"type:varchar(200);not null"`
	Category    string         `json:"category" gorm:"type:varchar(100);not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	Features    StringList     `json:"features" gorm:"type:text"`
	ImageURL    string         `json:"image_url" gorm:"type:varchar(255)"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	SortOrder   int            `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	AddOns []AddOn `json:"add_ons,omitempty" gorm:"foreignKey:PackageID"`
}

// TableName specifies the table name for the PhotoPackage model
func (PhotoPackage) TableName() string {
	return "photo_packages"
}

// AddOn is an optional extra service tied to one package's catalog.
type AddOn struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PackageID uint      `json:"package_id" gorm:"not null;index"`
	Slug      string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"type:varchar(200);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the AddOn model
func (AddOn) TableName() string {
	return "add_ons"
}
