// Package events announces booking lifecycle changes to downstream consumers.
package events

import (
	"context"
	"fmt"

	"staybook/pkg/kafka"
	"staybook/pkg/middleware"
	"staybook/pkg/model"
)

const (
	EventBookingCreated = "booking.created"
	SchemaVersion       = "1"
)

type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	producer MessagePublisher
	source   string
}

func NewKafkaPublisher(producer MessagePublisher, source string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source}
}

// BookingCreated keys the event by listing so one listing's bookings stay ordered.
func (p *KafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	msg, err := kafka.NewMessage().
		WithKey(booking.ListingID).
		WithValue(booking).
		WithEventType(EventBookingCreated).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("build %s event: %w", EventBookingCreated, err)
	}
	return p.producer.Publish(ctx, msg)
}

type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(context.Context, *model.Booking) error { return nil }
