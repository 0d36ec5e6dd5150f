package store

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"photostudio-server/database"
	"photostudio-server/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func createTestBooking(t *testing.T, s *Store) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		Reference:   "ref-" + t.Name(),
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
		Phone:       "1234567890",
		PackageSlug: "wedding-premium",
		Date:        "2030-01-01",
		Venue:       "Central Park",
		Status:      models.BookingStatusPending,
	}
	if err := s.AddBooking(context.Background(), booking); err != nil {
		t.Fatalf("add booking: %v", err)
	}
	return booking
}

func TestAddBooking(t *testing.T) {
	s := newTestStore(t)
	booking := createTestBooking(t, s)

	got, err := s.BookingByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("booking by id: %v", err)
	}
	if got.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if got.TotalPhotos != 0 || got.SelectedPhotos != 0 {
		t.Errorf("counters = %d/%d, want 0/0", got.TotalPhotos, got.SelectedPhotos)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	booking := createTestBooking(t, s)

	if err := s.UpdateBookingStatus(ctx, booking.ID, models.BookingStatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	got, _ := s.BookingByID(ctx, booking.ID)
	if got.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}

	t.Run("missing booking", func(t *testing.T) {
		err := s.UpdateBookingStatus(ctx, 9999, models.BookingStatusConfirmed)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		err := s.UpdateBookingStatus(ctx, booking.ID, "shipped")
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("err = %v, want ErrInvalid", err)
		}
	})
}

func TestAddPhoto(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	booking := createTestBooking(t, s)

	photo, err := s.AddPhoto(ctx, booking.ID, "https://cdn.example.com/p1.jpg")
	if err != nil {
		t.Fatalf("add photo: %v", err)
	}
	if photo.ID == 0 {
		t.Error("photo not persisted")
	}

	got, _ := s.BookingByID(ctx, booking.ID)
	if got.TotalPhotos != 1 {
		t.Errorf("TotalPhotos = %d, want 1", got.TotalPhotos)
	}
	if len(got.Photos) != 1 {
		t.Errorf("len(Photos) = %d, want 1", len(got.Photos))
	}

	t.Run("missing booking", func(t *testing.T) {
		if _, err := s.AddPhoto(ctx, 9999, "https://x/y.jpg"); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestTogglePhotoSelection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	booking := createTestBooking(t, s)
	photo, err := s.AddPhoto(ctx, booking.ID, "https://cdn.example.com/p1.jpg")
	if err != nil {
		t.Fatalf("add photo: %v", err)
	}

	selected, err := s.TogglePhotoSelection(ctx, booking.ID, photo.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !selected {
		t.Error("first toggle should select")
	}

	got, _ := s.BookingByID(ctx, booking.ID)
	if got.SelectedPhotos != 1 {
		t.Errorf("SelectedPhotos = %d, want 1", got.SelectedPhotos)
	}

	// Double toggle returns the counter to its original value
	selected, err = s.TogglePhotoSelection(ctx, booking.ID, photo.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if selected {
		t.Error("second toggle should deselect")
	}

	got, _ = s.BookingByID(ctx, booking.ID)
	if got.SelectedPhotos != 0 {
		t.Errorf("SelectedPhotos after double toggle = %d, want 0", got.SelectedPhotos)
	}

	t.Run("counter matches selected photos", func(t *testing.T) {
		p2, _ := s.AddPhoto(ctx, booking.ID, "https://cdn.example.com/p2.jpg")
		p3, _ := s.AddPhoto(ctx, booking.ID, "https://cdn.example.com/p3.jpg")

		s.TogglePhotoSelection(ctx, booking.ID, p2.ID)
		s.TogglePhotoSelection(ctx, booking.ID, p3.ID)

		got, _ := s.BookingByID(ctx, booking.ID)
		selectedCount := 0
		for _, p := range got.Photos {
			if p.Selected {
				selectedCount++
			}
		}
		if got.SelectedPhotos != selectedCount {
			t.Errorf("SelectedPhotos = %d, but %d photos are selected",
				got.SelectedPhotos, selectedCount)
		}
	})

	t.Run("missing photo", func(t *testing.T) {
		if _, err := s.TogglePhotoSelection(ctx, booking.ID, 9999); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdatePhotoStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	booking := createTestBooking(t, s)
	photo, _ := s.AddPhoto(ctx, booking.ID, "https://cdn.example.com/p1.jpg")

	if err := s.UpdatePhotoStatus(ctx, booking.ID, photo.ID, models.PhotoStatusPrinted); err != nil {
		t.Fatalf("update photo status: %v", err)
	}

	got, _ := s.BookingByID(ctx, booking.ID)
	if got.Photos[0].Status != models.PhotoStatusPrinted {
		t.Errorf("status = %s, want printed", got.Photos[0].Status)
	}

	t.Run("photo from another booking", func(t *testing.T) {
		err := s.UpdatePhotoStatus(ctx, booking.ID+1, photo.ID, models.PhotoStatusPrinted)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdatePhotoCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	booking := createTestBooking(t, s)
	s.AddPhoto(ctx, booking.ID, "https://cdn.example.com/p1.jpg")
	s.AddPhoto(ctx, booking.ID, "https://cdn.example.com/p2.jpg")

	if err := s.UpdatePhotoCount(ctx, booking.ID, CountPrinted, 2); err != nil {
		t.Fatalf("update printed count: %v", err)
	}
	if err := s.UpdatePhotoCount(ctx, booking.ID, CountDelivered, 1); err != nil {
		t.Fatalf("update delivered count: %v", err)
	}

	got, _ := s.BookingByID(ctx, booking.ID)
	if got.PrintedPhotos != 2 || got.DeliveredPhotos != 1 {
		t.Errorf("counts = %d/%d, want 2/1", got.PrintedPhotos, got.DeliveredPhotos)
	}

	tests := []struct {
		name  string
		kind  PhotoCountKind
		count int
	}{
		{"above total", CountPrinted, 3},
		{"negative", CountDelivered, -1},
		{"unknown kind", "selected", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.UpdatePhotoCount(ctx, booking.ID, tt.kind, tt.count)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestStalePendingBookings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	past := createTestBooking(t, s)
	s.DB().Model(past).Update("date", "2020-01-01")

	confirmed := &models.Booking{
		Reference: "ref-confirmed", ClientName: "A B", ClientEmail: "a@b.co",
		Phone: "1234567890", PackageSlug: "portrait-studio",
		Date: "2020-01-01", Venue: "Studio",
		Status: models.BookingStatusConfirmed,
	}
	s.AddBooking(ctx, confirmed)

	stale, err := s.StalePendingBookings(ctx, "2026-08-31")
	if err != nil {
		t.Fatalf("stale pending: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != past.ID {
		t.Errorf("stale = %v, want only the pending past booking", stale)
	}
}
