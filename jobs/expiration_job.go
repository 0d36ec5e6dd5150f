package jobs

import (
	"context"
	"log"
	"time"

	"photostudio-server/models"
	"photostudio-server/store"
)

// ExpirationJob cancels pending bookings whose requested date has passed
// without the studio confirming them.
type ExpirationJob struct {
	store    *store.Store
	stopChan chan bool
}

// NewExpirationJob creates a new expiration job
func NewExpirationJob(s *store.Store) *ExpirationJob {
	return &ExpirationJob{
		store:    s,
		stopChan: make(chan bool),
	}
}

// Start begins the expiration job
func (j *ExpirationJob) Start() {
	go j.run()
	log.Println("🚀 Booking expiration job started")
}

// Stop stops the expiration job
func (j *ExpirationJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Booking expiration job stopped")
}

// run executes the expiration job
func (j *ExpirationJob) run() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.CancelStaleBookings(context.Background())
		case <-j.stopChan:
			return
		}
	}
}

// CancelStaleBookings finds pending bookings dated before today and cancels
// them. Returns how many were cancelled.
func (j *ExpirationJob) CancelStaleBookings(ctx context.Context) int {
	today := time.Now().Format("2006-01-02")

	stale, err := j.store.StalePendingBookings(ctx, today)
	if err != nil {
		log.Printf("❌ Error checking stale bookings: %v", err)
		return 0
	}

	cancelled := 0
	for _, booking := range stale {
		if err := j.store.UpdateBookingStatus(ctx, booking.ID, models.BookingStatusCancelled); err != nil {
			log.Printf("❌ Failed to cancel booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("⏰ Cancelled stale pending booking %s (was dated %s)", booking.Reference, booking.Date)
		cancelled++
	}

	return cancelled
}
