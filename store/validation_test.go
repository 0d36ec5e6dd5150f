package store

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"photostudio-server/models"
)

func validForm() models.BookingDraft {
	return models.BookingDraft{
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
		Phone:       "1234567890",
		PackageSlug: "wedding-premium",
		Date:        "2030-01-01",
		Venue:       "Central Park",
	}
}

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestValidateBookingForm_Valid(t *testing.T) {
	result := ValidateBookingForm(validForm(), testNow)
	if !result.IsValid {
		t.Fatalf("expected valid form, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %d", len(result.Errors))
	}
}

func TestValidateBookingForm_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.BookingDraft)
		field  string
	}{
		{"missing name", func(f *models.BookingDraft) { f.ClientName = "" }, "client_name"},
		{"missing email", func(f *models.BookingDraft) { f.ClientEmail = "" }, "client_email"},
		{"missing package", func(f *models.BookingDraft) { f.PackageSlug = "" }, "package_slug"},
		{"missing date", func(f *models.BookingDraft) { f.Date = "" }, "date"},
		{"missing phone", func(f *models.BookingDraft) { f.Phone = "" }, "phone"},
		{"missing venue", func(f *models.BookingDraft) { f.Venue = "" }, "venue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			result := ValidateBookingForm(form, testNow)
			if result.IsValid {
				t.Fatal("expected invalid form")
			}
			if result.ErrorFor(tt.field) == "" {
				t.Errorf("expected an error for field %q, got %v", tt.field, result.Errors)
			}
		})
	}
}

func TestValidateBookingForm_EmailShape(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"a@b.co", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"two words@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			form := validForm()
			form.ClientEmail = tt.email

			result := ValidateBookingForm(form, testNow)
			if got := result.ErrorFor("client_email") == ""; got != tt.want {
				t.Errorf("email %q: valid = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidateBookingForm_NameLengthBoundaries(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"J", false},
		{"Jo", true}, // exactly at the minimum
		{"Jane Doe", true},
		{strings.Repeat("a", 50), true}, // exactly at the maximum
		{strings.Repeat("a", 51), false},
	}

	for _, tt := range tests {
		form := validForm()
		form.ClientName = tt.name

		result := ValidateBookingForm(form, testNow)
		if got := result.ErrorFor("client_name") == ""; got != tt.want {
			t.Errorf("name %q (len %d): valid = %v, want %v",
				form.ClientName, len(form.ClientName), got, tt.want)
		}
	}
}

func TestValidateBookingForm_PhoneMinimumLength(t *testing.T) {
	form := validForm()
	form.Phone = "123456789" // 9 chars

	result := ValidateBookingForm(form, testNow)
	if result.ErrorFor("phone") == "" {
		t.Error("expected phone error for 9-character number")
	}

	form.Phone = "1234567890" // 10 chars
	result = ValidateBookingForm(form, testNow)
	if result.ErrorFor("phone") != "" {
		t.Errorf("unexpected phone error: %s", result.ErrorFor("phone"))
	}
}

func TestValidateBookingDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{"future date", "2030-01-01", true},
		{"today", "2026-08-31", true},
		{"yesterday", "2026-08-30", false},
		{"wrong format", "01/01/2030", false},
		{"garbage", "soon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateBookingDate(tt.date, testNow); got != tt.want {
				t.Errorf("ValidateBookingDate(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestPruneAddOns(t *testing.T) {
	catalog := []models.AddOn{
		{Slug: "wp-drone"},
		{Slug: "wp-video-highlights"},
	}

	t.Run("removes exactly the unknown add-ons", func(t *testing.T) {
		kept, removed := PruneAddOns([]string{"wp-drone", "ps-makeup", "wp-video-highlights"}, catalog)

		if !reflect.DeepEqual(kept, []string{"wp-drone", "wp-video-highlights"}) {
			t.Errorf("kept = %v", kept)
		}
		if !reflect.DeepEqual(removed, []string{"ps-makeup"}) {
			t.Errorf("removed = %v", removed)
		}
	})

	t.Run("all offered", func(t *testing.T) {
		kept, removed := PruneAddOns([]string{"wp-drone"}, catalog)
		if len(kept) != 1 || len(removed) != 0 {
			t.Errorf("kept = %v, removed = %v", kept, removed)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		kept, removed := PruneAddOns(nil, catalog)
		if len(kept) != 0 || len(removed) != 0 {
			t.Errorf("kept = %v, removed = %v", kept, removed)
		}
	})
}
