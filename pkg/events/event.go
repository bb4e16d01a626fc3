package events

import (
	"context"
	"time"
)

const (
	TypeUserSignedUp     = "USER_SIGNED_UP"
	TypeUserLogin        = "USER_LOGIN"
	TypeFarmerRegistered = "FARMER_REGISTERED"
	TypeChatAnswered     = "CHAT_ANSWERED"
)

// Event is anything that can be put on the domain event bus.
type Event interface {
	EventType() string
	Payload() map[string]any
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]any
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]any {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func New(eventType string, data map[string]any) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

// Publisher is satisfied by the NATS publisher and by NopPublisher.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
