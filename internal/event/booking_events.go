package event

import (
	"context"
	"time"
)

type BookingEventPayload struct {
	Number        string    `json:"number"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	RoomName      string    `json:"roomName"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
}

type BookingCreatedEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   BookingEventPayload `json:"payload"`
}

type BookingDeletedEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   BookingEventPayload `json:"payload"`
}

// CheckoutDueEvent is emitted by the departures report for each booking whose
// end date is the report day. Revenue is the stay total as a decimal string.
type CheckoutDueEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   BookingEventPayload `json:"payload"`
	Nights    int64               `json:"nights"`
	Revenue   string              `json:"revenue"`
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error
	PublishBookingDeleted(ctx context.Context, event BookingDeletedEvent) error
	PublishCheckoutDue(ctx context.Context, event CheckoutDueEvent) error
}

// NopPublisher is used when AMQP is disabled; every publish succeeds silently.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, BookingCreatedEvent) error { return nil }
func (NopPublisher) PublishBookingDeleted(context.Context, BookingDeletedEvent) error { return nil }
func (NopPublisher) PublishCheckoutDue(context.Context, CheckoutDueEvent) error       { return nil }

var _ Publisher = NopPublisher{}
