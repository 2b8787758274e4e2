package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// Handler processes one consumed event. A returned error requeues the message.
type Handler func(ctx context.Context, event adapter.DomainEvent) error

// ConsumedEvents are the routing keys the consumer binds.
var ConsumedEvents = []adapter.EventType{
	adapter.EventExpenseCreated,
	adapter.EventExpenseDeleted,
	adapter.EventSettingsUpdated,
}

// Consumer receives domain events from the exchange. With an empty queue
// name each instance gets its own exclusive queue, so every replica sees
// every event.
type Consumer struct {
	url      string
	exchange string
	queue    string
	handler  Handler
}

// NewConsumer creates a new Consumer.
func NewConsumer(url, exchange, queue string, handler Handler) *Consumer {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Consumer{url: url, exchange: exchange, queue: queue, handler: handler}
}

// Run consumes until ctx is cancelled, reconnecting with backoff when the
// connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	attempt := 0
	for {
		started := time.Now()
		err := c.consume(ctx)
		if ctx.Err() != nil {
			slog.Info("Event consumer stopped")
			return nil
		}

		// a consumer that ran for a while starts over with a short delay
		if time.Since(started) > time.Minute {
			attempt = 0
		}
		delay := exponentialBackoff(attempt)
		attempt++

		if isConnectionError(err) {
			slog.Warn("Event consumer lost its connection", "error", err, "retryIn", delay)
		} else {
			slog.Error("Event consumer failed", "error", err, "retryIn", delay)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to dial AMQP: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	if err := declareExchange(channel, c.exchange); err != nil {
		return err
	}

	exclusive := c.queue == ""
	queue, err := channel.QueueDeclare(
		c.queue,
		!exclusive, // durable
		exclusive,  // delete when unused
		exclusive,  // exclusive
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, eventType := range ConsumedEvents {
		if err := channel.QueueBind(queue.Name, string(eventType), c.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind %s: %w", eventType, err)
		}
	}

	deliveries, err := channel.Consume(queue.Name, "", false, exclusive, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	slog.Info("Event consumer started", "queue", queue.Name, "exchange", c.exchange)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp091.Delivery) {
	var event adapter.DomainEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		slog.Error("Failed to decode event", "error", err)
		// malformed messages are dropped
		_ = delivery.Nack(false, false)
		return
	}

	if err := c.handler(ctx, event); err != nil {
		slog.Error("Failed to handle event", "type", event.Type, "eventID", event.ID, "error", err)
		_ = delivery.Nack(false, !delivery.Redelivered)
		return
	}

	_ = delivery.Ack(false)
}

// InvalidateSnapshotHandler drops the user's expense snapshot on every
// expense event.
func InvalidateSnapshotHandler(cache adapter.ExpenseSnapshotCache) Handler {
	return func(ctx context.Context, event adapter.DomainEvent) error {
		switch event.Type {
		case adapter.EventExpenseCreated, adapter.EventExpenseDeleted:
			return cache.Invalidate(ctx, event.UserID)
		default:
			return nil
		}
	}
}

func exponentialBackoff(attempt int) time.Duration {
	const maxDelay = 30 * time.Second
	if attempt > 5 {
		return maxDelay
	}
	delay := time.Second << attempt
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"connection", "eof", "broken pipe", "channel closed"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
