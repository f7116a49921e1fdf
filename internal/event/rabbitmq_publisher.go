package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	routingKeyBookingCreated = "booking.created"
	routingKeyBookingDeleted = "booking.deleted"
	routingKeyCheckoutDue    = "booking.checkout_due"
	publisherAppID           = "hotel-booking-service"
)

type RabbitMQEventPublisher struct {
	conn         *amqp.Connection
	exchangeName string
	logger       *slog.Logger
}

var _ Publisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	tempCh, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary channel for exchange declaration: %w", err)
	}
	defer tempCh.Close()

	err = tempCh.ExchangeDeclare(
		exchangeName,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchangeName, err)
	}

	logger.Info("RabbitMQ exchange declared", "exchange", exchangeName)

	return &RabbitMQEventPublisher{
		conn:         conn,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQEventPublisher"),
	}, nil
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, payload any) error {
	channel, err := p.conn.Channel()
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.logger.DebugContext(ctx, "Publishing message", "routingKey", routingKey, "bodySize", len(body))

	err = channel.PublishWithContext(
		ctx,
		p.exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			AppId:        publisherAppID,
		},
	)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish message to RabbitMQ",
			slog.String("routingKey", routingKey),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.InfoContext(ctx, "Successfully published message", "routingKey", routingKey)
	return nil
}

func (p *RabbitMQEventPublisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	return p.publish(ctx, routingKeyBookingCreated, event)
}

func (p *RabbitMQEventPublisher) PublishBookingDeleted(ctx context.Context, event BookingDeletedEvent) error {
	return p.publish(ctx, routingKeyBookingDeleted, event)
}

func (p *RabbitMQEventPublisher) PublishCheckoutDue(ctx context.Context, event CheckoutDueEvent) error {
	return p.publish(ctx, routingKeyCheckoutDue, event)
}
