package store

import (
	"regexp"
	"strings"
	"time"

	"photostudio-server/models"
)

// FieldError is a structured validation failure for one form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned as data, never as an error. It is safe to
// call the validator repeatedly, e.g. on every field blur.
type ValidationResult struct {
	IsValid bool         `json:"is_valid"`
	Errors  []FieldError `json:"errors"`
}

// ErrorFor returns the message for a field, or "" when the field passed
func (r ValidationResult) ErrorFor(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const bookingDateLayout = "2006-01-02"

// ValidateEmail checks the standard email shape
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateBookingDate checks that the date is YYYY-MM-DD and not in the past
func ValidateBookingDate(date string, now time.Time) bool {
	parsed, err := time.Parse(bookingDateLayout, date)
	if err != nil {
		return false
	}
	today, _ := time.Parse(bookingDateLayout, now.Format(bookingDateLayout))
	return !parsed.Before(today)
}

// ValidateBookingForm checks a booking draft against the form rules. It is
// pure and synchronous: no store lookups happen here, so "package exists"
// is the caller's concern.
func ValidateBookingForm(form models.BookingDraft, now time.Time) ValidationResult {
	var errs []FieldError

	name := strings.TrimSpace(form.ClientName)
	if name == "" {
		errs = append(errs, FieldError{Field: "client_name", Message: "Name is required"})
	} else if len(name) < 2 || len(name) > 50 {
		errs = append(errs, FieldError{Field: "client_name", Message: "Name must be between 2 and 50 characters"})
	}

	email := strings.TrimSpace(form.ClientEmail)
	if email == "" {
		errs = append(errs, FieldError{Field: "client_email", Message: "Email is required"})
	} else if !ValidateEmail(email) {
		errs = append(errs, FieldError{Field: "client_email", Message: "Email address is not valid"})
	}

	if strings.TrimSpace(form.PackageSlug) == "" {
		errs = append(errs, FieldError{Field: "package_slug", Message: "Package selection is required"})
	}

	date := strings.TrimSpace(form.Date)
	if date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "Date is required"})
	} else if !ValidateBookingDate(date, now) {
		errs = append(errs, FieldError{Field: "date", Message: "Date must be YYYY-MM-DD and not in the past"})
	}

	phone := strings.TrimSpace(form.Phone)
	if phone == "" {
		errs = append(errs, FieldError{Field: "phone", Message: "Phone number is required"})
	} else if len(phone) < 10 {
		errs = append(errs, FieldError{Field: "phone", Message: "Phone number must be at least 10 characters"})
	}

	if strings.TrimSpace(form.Venue) == "" {
		errs = append(errs, FieldError{Field: "venue", Message: "Venue is required"})
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// PruneAddOns splits selected add-on slugs into those offered by the given
// package catalog and those that are not. Called whenever the package
// selection changes so stale add-ons are dropped from the draft.
func PruneAddOns(selected []string, catalog []models.AddOn) (kept, removed []string) {
	offered := make(map[string]bool, len(catalog))
	for _, addon := range catalog {
		offered[addon.Slug] = true
	}

	for _, slug := range selected {
		if offered[slug] {
			kept = append(kept, slug)
		} else {
			removed = append(removed, slug)
		}
	}
	return kept, removed
}
