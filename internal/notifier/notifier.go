// Package notifier turns booking events into guest confirmation emails.
package notifier

import (
	"context"
	"fmt"

	"stayhub/pkg/kafka"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers an email. LogSender is the only implementation; there is
// no SMTP integration.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, email Email) error {
	s.log.FromContext(ctx).Info("Confirmation email",
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}

type Notifier struct {
	sender Sender
	log    *logger.Logger
}

func New(sender Sender, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, log: log}
}

// Handle is a kafka.MessageHandler. Malformed events are permanent
// failures; sender errors are retried.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	eventType, event, err := kafka.DecodeBookingEvent(msg)
	if err != nil {
		return err
	}
	if event.UserEmail == "" {
		n.log.Warn("Booking event without guest email, skipping", "booking_id", event.BookingID, "event_type", eventType)
		return nil
	}

	if err := n.sender.Send(ctx, Compose(eventType, event)); err != nil {
		return kafka.NewTransientError("failed to send confirmation email", err)
	}
	return nil
}

// Compose renders the email for one booking event.
func Compose(eventType string, event model.BookingEvent) Email {
	place := event.PlaceTitle
	if place == "" {
		place = event.PlaceID
	}
	stay := fmt.Sprintf("%s to %s", event.Start, event.End)

	if eventType == kafka.EventBookingCancelled {
		return Email{
			To:      event.UserEmail,
			Subject: "Your booking at " + place + " was cancelled",
			Body:    fmt.Sprintf("Hello %s,\n\nyour stay at %s from %s has been cancelled.\nBooking reference: %s\n", event.UserName, place, stay, event.BookingID),
		}
	}
	return Email{
		To:      event.UserEmail,
		Subject: "Your booking at " + place + " is confirmed",
		Body:    fmt.Sprintf("Hello %s,\n\nyour stay at %s from %s is confirmed.\nBooking reference: %s\n", event.UserName, place, stay, event.BookingID),
	}
}
