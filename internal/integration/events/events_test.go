package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

type recordingAcknowledger struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked++
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

type recordingCache struct {
	invalidated []uuid.UUID
}

func (c *recordingCache) Get(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, int64, bool, error) {
	return nil, 0, false, nil
}

func (c *recordingCache) Set(ctx context.Context, userID uuid.UUID, generation int64, expenses []*entity.Expense) error {
	return nil
}

func (c *recordingCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{12, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := exponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "eof", err: errors.New("unexpected EOF"), want: true},
		{name: "closed deliveries", err: errors.New("delivery channel closed"), want: true},
		{name: "other", err: errors.New("failed to bind expense.created: access refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.want {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestConsumer_HandleDelivery(t *testing.T) {
	userID := uuid.New()
	event := adapter.NewDomainEvent(adapter.EventExpenseCreated, userID, uuid.New(), nil)
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	tests := []struct {
		name        string
		body        []byte
		redelivered bool
		handlerErr  error
		wantAck     int
		wantNack    int
		wantRequeue bool
	}{
		{name: "handled", body: body, wantAck: 1},
		{name: "malformed is dropped", body: []byte("{"), wantNack: 1},
		{name: "handler failure requeues once", body: body, handlerErr: errors.New("redis down"), wantNack: 1, wantRequeue: true},
		{name: "second failure is dropped", body: body, redelivered: true, handlerErr: errors.New("redis down"), wantNack: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []adapter.DomainEvent
			consumer := NewConsumer("amqp://unused", "", "", func(ctx context.Context, e adapter.DomainEvent) error {
				got = append(got, e)
				return tt.handlerErr
			})
			ack := &recordingAcknowledger{}

			consumer.handleDelivery(context.Background(), amqp091.Delivery{
				Acknowledger: ack,
				Body:         tt.body,
				Redelivered:  tt.redelivered,
			})

			if ack.acked != tt.wantAck || ack.nacked != tt.wantNack || ack.requeue != tt.wantRequeue {
				t.Errorf("ack=%d nack=%d requeue=%v, want ack=%d nack=%d requeue=%v",
					ack.acked, ack.nacked, ack.requeue, tt.wantAck, tt.wantNack, tt.wantRequeue)
			}
			if tt.wantAck == 1 && (len(got) != 1 || got[0].UserID != userID) {
				t.Errorf("handler got %+v", got)
			}
		})
	}
}

func TestInvalidateSnapshotHandler(t *testing.T) {
	cache := &recordingCache{}
	handler := InvalidateSnapshotHandler(cache)
	userID := uuid.New()

	for _, eventType := range ConsumedEvents {
		if err := handler(context.Background(), adapter.NewDomainEvent(eventType, userID, uuid.New(), nil)); err != nil {
			t.Fatalf("handler(%s) error = %v", eventType, err)
		}
	}

	if len(cache.invalidated) != 2 {
		t.Errorf("invalidations = %d, want 2 (settings events leave the snapshot alone)", len(cache.invalidated))
	}
}

func TestNoopPublisher(t *testing.T) {
	var publisher adapter.EventPublisher = NewNoopPublisher()
	if err := publisher.Publish(context.Background(), adapter.NewDomainEvent(adapter.EventSettingsUpdated, uuid.New(), uuid.New(), nil)); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
}
