package kafka

import (
	"context"
	"fmt"

	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"

	bookingSchemaVersion = "1"
)

// BookingPublisher announces booking lifecycle changes.
type BookingPublisher interface {
	PublishBookingCreated(ctx context.Context, event model.BookingEvent) error
	PublishBookingCancelled(ctx context.Context, event model.BookingEvent) error
}

type publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// EventPublisher turns booking events into keyed Kafka messages. Events of
// one place share a partition so consumers see them in order.
type EventPublisher struct {
	producer publisher
	source   string
}

func NewEventPublisher(producer *Producer, source string) *EventPublisher {
	return &EventPublisher{producer: producer, source: source}
}

func (p *EventPublisher) PublishBookingCreated(ctx context.Context, event model.BookingEvent) error {
	return p.publish(ctx, EventBookingCreated, event)
}

func (p *EventPublisher) PublishBookingCancelled(ctx context.Context, event model.BookingEvent) error {
	return p.publish(ctx, EventBookingCancelled, event)
}

func (p *EventPublisher) publish(ctx context.Context, eventType string, event model.BookingEvent) error {
	msg, err := NewMessage().
		WithKey(event.PlaceID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(p.source).
		WithSchemaVersion(bookingSchemaVersion).
		WithCorrelationID(logger.RequestID(ctx)).
		Build()
	if err != nil {
		return err
	}
	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s for booking %s: %w", eventType, event.BookingID, err)
	}
	return nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, model.BookingEvent) error   { return nil }
func (NopPublisher) PublishBookingCancelled(context.Context, model.BookingEvent) error { return nil }

// DecodeBookingEvent extracts the event type and payload of a booking
// message.
func DecodeBookingEvent(msg Message) (string, model.BookingEvent, error) {
	var event model.BookingEvent
	eventType := msg.GetEventType()
	switch eventType {
	case EventBookingCreated, EventBookingCancelled:
	default:
		return "", event, NewPermanentError(fmt.Sprintf("unknown event type %q", eventType), ErrInvalidMessage)
	}
	if err := msg.DecodeValue(&event); err != nil {
		return "", event, err
	}
	if event.BookingID == "" {
		return "", event, NewPermanentError("booking event without booking id", ErrInvalidMessage)
	}
	return eventType, event, nil
}
