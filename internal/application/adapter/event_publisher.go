package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event routed through the message broker.
type EventType string

const (
	EventExpenseCreated  EventType = "expense.created"
	EventExpenseDeleted  EventType = "expense.deleted"
	EventSettingsUpdated EventType = "settings.updated"
)

// DomainEvent is a change notification emitted after a successful write.
type DomainEvent struct {
	ID         uuid.UUID      `json:"id"`
	Type       EventType      `json:"type"`
	UserID     uuid.UUID      `json:"user_id"`
	EntityID   uuid.UUID      `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// NewDomainEvent builds an event stamped with the current time.
func NewDomainEvent(eventType EventType, userID, entityID uuid.UUID, data map[string]any) DomainEvent {
	return DomainEvent{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// EventPublisher emits domain events. Publishing is best effort; a failure
// never undoes the write that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
