package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"photostudio-server/models"
)

func TestResendMailer_Send(t *testing.T) {
	var received resendEmail
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mailer := NewResendMailer("test-key", "Lumen Studio <noreply@test>").
		WithEndpoint(server.URL)

	err := mailer.Send(context.Background(), "bookings@test", "New booking", "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if received.To != "bookings@test" || received.Subject != "New booking" || received.Text != "hello" {
		t.Errorf("payload = %+v", received)
	}
}

func TestResendMailer_RelayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid recipient"}`))
	}))
	defer server.Close()

	mailer := NewResendMailer("test-key", "noreply@test").WithEndpoint(server.URL)

	err := mailer.Send(context.Background(), "bad", "subject", "body")
	if err == nil {
		t.Fatal("expected an error from a 422 response")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestResendMailer_MissingKeyFallsBackToMock(t *testing.T) {
	// Without an API key nothing is sent and no error is returned
	mailer := NewResendMailer("", "noreply@test")
	if err := mailer.Send(context.Background(), "x@y.z", "s", "b"); err != nil {
		t.Errorf("mock send should not fail: %v", err)
	}
}

func TestBookingEmailBody(t *testing.T) {
	draft := models.BookingDraft{
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
		Phone:       "1234567890",
		Date:        "2030-01-01",
		Venue:       "Central Park",
		Notes:       "Please arrive early",
	}

	body := BookingEmailBody(draft, "ref-123", "Wedding Premium", []string{"Drone coverage"})

	for _, want := range []string{
		"ref-123", "Jane Doe", "jane@example.com", "1234567890",
		"Wedding Premium", "2030-01-01", "Central Park",
		"Drone coverage", "Please arrive early",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}

	t.Run("no add-ons", func(t *testing.T) {
		body := BookingEmailBody(draft, "ref-123", "Wedding Premium", nil)
		if !strings.Contains(body, "Add-ons: none") {
			t.Errorf("body should note empty add-ons:\n%s", body)
		}
	})
}
