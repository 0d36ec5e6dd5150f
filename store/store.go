package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"photostudio-server/models"
)

var (
	// ErrNotFound is returned when a booking, photo or package does not exist
	ErrNotFound = errors.New("record not found")
	// ErrInvalid is returned when a mutation carries an out-of-range value
	ErrInvalid = errors.New("invalid value")
)

// PhotoCountKind selects which admin-entered counter UpdatePhotoCount writes.
type PhotoCountKind string

const (
	CountPrinted   PhotoCountKind = "printed"
	CountDelivered PhotoCountKind = "delivered"
)

// Store is the single source of truth for the package catalog and all
// bookings. It is constructed with a database handle so every test can run
// against its own isolated instance.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that need raw queries
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Packages returns the active catalog ordered for display
func (s *Store) Packages(ctx context.Context) ([]models.PhotoPackage, error) {
	var packages []models.PhotoPackage
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order asc").
		Preload("AddOns").
		Find(&packages).Error
	return packages, err
}

// PackageBySlug returns one active package with its add-on catalog
func (s *Store) PackageBySlug(ctx context.Context, slug string) (*models.PhotoPackage, error) {
	var pkg models.PhotoPackage
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		Preload("AddOns").
		First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// AddBooking appends a new booking
func (s *Store) AddBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

// Bookings returns all bookings, newest first
func (s *Store) Bookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Preload("Photos").
		Find(&bookings).Error
	return bookings, err
}

// BookingsByEmail returns a client's own bookings, newest first
func (s *Store) BookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("client_email = ?", email).
		Order("created_at desc").
		Preload("Photos").
		Find(&bookings).Error
	return bookings, err
}

// BookingByID returns one booking with its photo set
func (s *Store) BookingByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Preload("Photos").First(&booking, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// BookingByReference returns one booking by its public reference
func (s *Store) BookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Where("reference = ?", reference).
		Preload("Photos").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus replaces the status of the matching booking
func (s *Store) UpdateBookingStatus(ctx context.Context, id uint, status models.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown booking status %q", ErrInvalid, status)
	}

	result := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddPhoto appends a photo to a booking's set and bumps TotalPhotos in the
// same transaction.
func (s *Store) AddPhoto(ctx context.Context, bookingID uint, url string) (*models.Photo, error) {
	photo := &models.Photo{
		BookingID: bookingID,
		URL:       url,
		Status:    models.PhotoStatusSelected,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Create(photo).Error; err != nil {
			return err
		}

		return tx.Model(&booking).
			Update("total_photos", gorm.Expr("total_photos + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// UpdatePhotoStatus replaces the status of the matching photo within the
// matching booking
func (s *Store) UpdatePhotoStatus(ctx context.Context, bookingID, photoID uint, status models.PhotoStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown photo status %q", ErrInvalid, status)
	}

	result := s.db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("id = ? AND booking_id = ?", photoID, bookingID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TogglePhotoSelection flips the photo's selected flag and adjusts the
// booking's SelectedPhotos counter by ±1 in one transaction, keeping the
// counter equal to the number of selected photos at all times.
func (s *Store) TogglePhotoSelection(ctx context.Context, bookingID, photoID uint) (selected bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.Where("id = ? AND booking_id = ?", photoID, bookingID).
			First(&photo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		photo.Selected = !photo.Selected
		if err := tx.Model(&photo).Update("selected", photo.Selected).Error; err != nil {
			return err
		}

		delta := 1
		if !photo.Selected {
			delta = -1
		}
		if err := tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Update("selected_photos", gorm.Expr("selected_photos + ?", delta)).Error; err != nil {
			return err
		}

		selected = photo.Selected
		return nil
	})
	return selected, err
}

// UpdatePhotoCount overwrites the printed or delivered counter with an
// admin-entered value. The count is bounded by the booking's photo total so
// the tracking counters cannot exceed the photo set size.
func (s *Store) UpdatePhotoCount(ctx context.Context, bookingID uint, kind PhotoCountKind, count int) error {
	var column string
	switch kind {
	case CountPrinted:
		column = "printed_photos"
	case CountDelivered:
		column = "delivered_photos"
	default:
		return fmt.Errorf("%w: unknown photo count kind %q", ErrInvalid, kind)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if count < 0 || count > booking.TotalPhotos {
			return fmt.Errorf("%w: %s count %d out of range 0..%d",
				ErrInvalid, kind, count, booking.TotalPhotos)
		}

		return tx.Model(&booking).Update(column, count).Error
	})
}

// CountBookingsByStatus returns booking totals per status for the admin
// dashboard
func (s *Store) CountBookingsByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	counts := make(map[models.BookingStatus]int64)
	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	} {
		var n int64
		if err := s.db.WithContext(ctx).
			Model(&models.Booking{}).
			Where("status = ?", status).
			Count(&n).Error; err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}

// StalePendingBookings returns pending bookings whose date has already
// passed. Dates are stored as YYYY-MM-DD so a string comparison is enough.
func (s *Store) StalePendingBookings(ctx context.Context, today string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("status = ? AND date < ?", models.BookingStatusPending, today).
		Find(&bookings).Error
	return bookings, err
}
