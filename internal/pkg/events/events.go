// Package events publishes domain change notifications for companies and invoices.
package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	CompanyCreated EventType = "company.created"
	CompanyUpdated EventType = "company.updated"
	CompanyDeleted EventType = "company.deleted"
	InvoiceCreated EventType = "invoice.created"
	InvoiceUpdated EventType = "invoice.updated"
	InvoiceDeleted EventType = "invoice.deleted"
)

// Entity is the part of the type before the first dot.
func (t EventType) Entity() string {
	entity, _, _ := strings.Cut(string(t), ".")
	return entity
}

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	Entity     string    `json:"entity"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType EventType, key string, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Entity:     eventType.Entity(),
		Key:        key,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher must not block the caller.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) {}

// Publishers fans an event out to every publisher in order.
type Publishers []Publisher

func (p Publishers) Publish(ctx context.Context, event Event) {
	for _, publisher := range p {
		publisher.Publish(ctx, event)
	}
}
