package models

// BookingDraft is the in-progress state of the booking form. Drafts live in
// Redis keyed by the client's email, not in the database.
type BookingDraft struct {
	ClientName  string   `json:"client_name"`
	ClientEmail string   `json:"client_email"`
	Phone       string   `json:"phone"`
	PackageSlug string   `json:"package_slug"`
	Date        string   `json:"date"`
	Venue       string   `json:"venue"`
	Notes       string   `json:"notes"`
	AddOnSlugs  []string `json:"add_on_slugs"`
}

// DraftEnvelope wraps a draft with its capture time so stale drafts can be
// discarded on load. SavedAt is a Unix timestamp in seconds.
type DraftEnvelope struct {
	Data    BookingDraft `json:"data"`
	SavedAt int64        `json:"timestamp"`
}
