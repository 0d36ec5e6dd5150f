package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"photostudio-server/models"
)

const resendAPI = "https://api.resend.com/emails"

// Mailer is the outbound transactional-email collaborator. The booking flow
// treats it as a black box: a nil error means the message was accepted and
// the booking may be committed.
type Mailer interface {
	Send(ctx context.Context, to, subject, text string) error
}

// ---- Resend payload ----

type resendEmail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// ResendMailer sends plain-text email through the Resend HTTP API. Without
// an API key it logs the message instead of sending, so local development
// works without credentials.
type ResendMailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendAPI,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoint overrides the API endpoint, for tests
func (m *ResendMailer) WithEndpoint(endpoint string) *ResendMailer {
	m.endpoint = endpoint
	return m
}

func (m *ResendMailer) Send(ctx context.Context, to, subject, text string) error {
	if m.apiKey == "" {
		log.Printf("⚠️ Missing RESEND_API_KEY, mock email triggered.")
		fmt.Printf("\n--- MOCK EMAIL ---\nTo: %s\nSubject: %s\nBody:\n%s\n-------------------\n",
			to, subject, text)
		return nil
	}

	payload := resendEmail{
		From:    m.from,
		To:      to,
		Subject: subject,
		Text:    text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email relay returned %d: %s", resp.StatusCode, string(respBody))
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}

// BookingEmailSubject builds the studio-inbox subject line for a submission
func BookingEmailSubject(draft models.BookingDraft) string {
	return fmt.Sprintf("New booking request from %s", draft.ClientName)
}

// BookingEmailBody composes the plain-text notification sent to the studio
// inbox when a booking is submitted.
func BookingEmailBody(draft models.BookingDraft, reference, packageName string, addOnNames []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New booking request %s\n\n", reference)
	fmt.Fprintf(&b, "Client:  %s\n", draft.ClientName)
	fmt.Fprintf(&b, "Email:   %s\n", draft.ClientEmail)
	fmt.Fprintf(&b, "Phone:   %s\n", draft.Phone)
	fmt.Fprintf(&b, "Package: %s\n", packageName)
	fmt.Fprintf(&b, "Date:    %s\n", draft.Date)
	fmt.Fprintf(&b, "Venue:   %s\n", draft.Venue)

	if len(addOnNames) > 0 {
		fmt.Fprintf(&b, "Add-ons: %s\n", strings.Join(addOnNames, ", "))
	} else {
		b.WriteString("Add-ons: none\n")
	}

	if strings.TrimSpace(draft.Notes) != "" {
		fmt.Fprintf(&b, "\nNotes:\n%s\n", draft.Notes)
	}

	return b.String()
}
