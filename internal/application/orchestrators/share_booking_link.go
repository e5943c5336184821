package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	emailAdapter "studio/internal/adapters/email"
)

// ShareBookingLinkInput carries input for sharing a booking link by email.
type ShareBookingLinkInput struct {
	RecipientEmail string
	RecipientName  string
	BookingSlug    string
	SenderName     string // studio or staff name shown in the email
}

// ShareBookingLinkDeps holds dependencies for ShareBookingLink.
type ShareBookingLinkDeps struct {
	EmailSender emailAdapter.Sender
	FromAddress string
	ReplyTo     string
	BaseURL     string // e.g. "https://goldenhour.studio"
}

var (
	ErrNoRecipient   = errors.New("recipient email is required")
	ErrNoBookingSlug = errors.New("booking slug is required")
)

// ExecuteShareBookingLink emails the studio's public booking link to a contact.
// PRE: EmailSender is configured; BookingSlug identifies the studio
// POST: exactly one email is delivered to the recipient
func ExecuteShareBookingLink(ctx context.Context, input ShareBookingLinkInput, deps ShareBookingLinkDeps) error {
	if strings.TrimSpace(input.RecipientEmail) == "" {
		return ErrNoRecipient
	}
	if strings.TrimSpace(input.BookingSlug) == "" {
		return ErrNoBookingSlug
	}

	link := strings.TrimRight(deps.BaseURL, "/") + "/book/" + input.BookingSlug

	greeting := "Hi"
	if input.RecipientName != "" {
		greeting = "Hi " + input.RecipientName
	}
	from := "the studio"
	if input.SenderName != "" {
		from = input.SenderName
	}

	req := emailAdapter.SendRequest{
		To:      []string{input.RecipientEmail},
		From:    deps.FromAddress,
		ReplyTo: deps.ReplyTo,
		Subject: "Book your next appointment",
		HTML: "<p>" + greeting + ",</p><p>" + from + " invited you to book an appointment online:</p>" +
			`<p><a href="` + link + `">` + link + "</a></p>",
	}

	result, err := deps.EmailSender.Send(ctx, req)
	if err != nil {
		slog.Warn("share_event", "event", "booking_link_failed", "recipient", input.RecipientEmail, "error", err)
		return err
	}

	slog.Info("share_event", "event", "booking_link_sent", "recipient", input.RecipientEmail, "slug", input.BookingSlug, "message_id", result.MessageID)
	return nil
}
