// Package events carries change notifications for members, workouts,
// records and users to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(entity, action, entityID string, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       entity + "." + action,
		Entity:     entity,
		EntityID:   entityID,
		OccurredAt: at.UTC(),
	}
}

// Publisher delivers events synchronously.
type Publisher interface {
	Publish(ctx context.Context, evs ...Event) error
	Close() error
}

// Emitter hands events off without waiting for delivery.
type Emitter interface {
	Emit(evs ...Event)
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...Event) error { return nil }
func (NoopPublisher) Close() error                            { return nil }
