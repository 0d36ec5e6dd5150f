package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"photostudio-server/config"
	"photostudio-server/database"
	"photostudio-server/models"
	"photostudio-server/services"
	"photostudio-server/store"
	ws "photostudio-server/websocket"
)

// mockMailer records sends and can be told to fail
type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, subject)
	return nil
}

func newBookingTestSetup(t *testing.T, mailer services.Mailer) (*gin.Engine, *store.Store, *services.DraftService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s := store.New(db)

	// Seed one package with an add-on catalog
	pkg := models.PhotoPackage{
		Slug: "wedding-premium", Name: "Wedding Premium",
		Category: "Wedding", IsActive: true,
	}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("seed package: %v", err)
	}
	addOns := []models.AddOn{
		{PackageID: pkg.ID, Slug: "wp-drone", Name: "Drone coverage"},
		{PackageID: pkg.ID, Slug: "wp-video-highlights", Name: "Video highlights reel"},
	}
	if err := db.Create(&addOns).Error; err != nil {
		t.Fatalf("seed add-ons: %v", err)
	}

	drafts := services.NewDraftService(services.NewMemoryDraftStore(), services.DraftTTL)

	handler := &BookingHandler{
		Store:  s,
		Mailer: mailer,
		Drafts: drafts,
		Hub:    ws.NewHub(),
	}

	router := gin.New()
	handler.Register(router.Group("/bookings"))
	return router, s, drafts
}

func submitBookingRequest(t *testing.T, router *gin.Engine, form models.BookingDraft) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(form)
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validBookingForm() models.BookingDraft {
	return models.BookingDraft{
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
		Phone:       "1234567890",
		PackageSlug: "wedding-premium",
		Date:        "2030-01-01",
		Venue:       "Central Park",
		AddOnSlugs:  []string{"wp-drone"},
	}
}

func countBookings(t *testing.T, s *store.Store) int {
	t.Helper()
	bookings, err := s.Bookings(context.Background())
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	return len(bookings)
}

func TestSubmitBooking_Success(t *testing.T) {
	mailer := &mockMailer{}
	router, s, drafts := newBookingTestSetup(t, mailer)

	// A draft exists before submission and must be cleared after
	drafts.Save(context.Background(), "jane@example.com", validBookingForm())

	w := submitBookingRequest(t, router, validBookingForm())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	bookings, _ := s.Bookings(context.Background())
	if len(bookings) != 1 {
		t.Fatalf("bookings = %d, want 1", len(bookings))
	}

	booking := bookings[0]
	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
	if booking.TotalPhotos != 0 || booking.SelectedPhotos != 0 {
		t.Errorf("photo counters = %d/%d, want 0/0", booking.TotalPhotos, booking.SelectedPhotos)
	}
	if booking.Reference == "" {
		t.Error("booking has no reference")
	}
	if len(mailer.sent) != 1 {
		t.Errorf("emails sent = %d, want 1", len(mailer.sent))
	}

	draft, _ := drafts.Load(context.Background(), "jane@example.com")
	if draft != nil {
		t.Error("draft should be cleared after successful submission")
	}
}

func TestSubmitBooking_EmailFailureAbortsCommit(t *testing.T) {
	mailer := &mockMailer{err: errors.New("relay unavailable")}
	router, s, _ := newBookingTestSetup(t, mailer)

	w := submitBookingRequest(t, router, validBookingForm())
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}

	if n := countBookings(t, s); n != 0 {
		t.Errorf("bookings = %d, want 0 after email failure", n)
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Email delivery failed" {
		t.Errorf("error = %v", resp["error"])
	}
}

func TestSubmitBooking_ValidationErrors(t *testing.T) {
	mailer := &mockMailer{}
	router, s, _ := newBookingTestSetup(t, mailer)

	form := validBookingForm()
	form.ClientEmail = "not-an-email"
	form.Venue = ""

	w := submitBookingRequest(t, router, form)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Errors []store.FieldError `json:"errors"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	fields := map[string]bool{}
	for _, e := range resp.Errors {
		fields[e.Field] = true
	}
	if !fields["client_email"] || !fields["venue"] {
		t.Errorf("expected errors on client_email and venue, got %v", resp.Errors)
	}

	if len(mailer.sent) != 0 {
		t.Error("no email should be sent for an invalid form")
	}
	if n := countBookings(t, s); n != 0 {
		t.Errorf("bookings = %d, want 0", n)
	}
}

func TestSubmitBooking_UnknownPackage(t *testing.T) {
	router, s, _ := newBookingTestSetup(t, &mockMailer{})

	form := validBookingForm()
	form.PackageSlug = "no-such-package"

	w := submitBookingRequest(t, router, form)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if n := countBookings(t, s); n != 0 {
		t.Errorf("bookings = %d, want 0", n)
	}
}

func TestSubmitBooking_PrunesForeignAddOns(t *testing.T) {
	router, s, _ := newBookingTestSetup(t, &mockMailer{})

	form := validBookingForm()
	form.AddOnSlugs = []string{"wp-drone", "ps-makeup"}

	w := submitBookingRequest(t, router, form)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		RemovedAddOns []string       `json:"removed_add_ons"`
		Booking       models.Booking `json:"booking"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if len(resp.RemovedAddOns) != 1 || resp.RemovedAddOns[0] != "ps-makeup" {
		t.Errorf("removed = %v, want [ps-makeup]", resp.RemovedAddOns)
	}

	bookings, _ := s.Bookings(context.Background())
	if len(bookings) != 1 {
		t.Fatalf("bookings = %d, want 1", len(bookings))
	}
	if !bookings[0].AddOnSlugs.Contains("wp-drone") || bookings[0].AddOnSlugs.Contains("ps-makeup") {
		t.Errorf("stored add-ons = %v", bookings[0].AddOnSlugs)
	}
}
