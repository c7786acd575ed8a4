package interfaces

import (
	"context"
	"time"
)

// Collections named in store events
type Collection string

const (
	CollectionIngredients Collection = "ingredients"
	CollectionProducts    Collection = "products"
	CollectionOrders      Collection = "orders"
	CollectionMovements   Collection = "movements"
	CollectionSettings    Collection = "settings"
	CollectionProfiles    Collection = "profiles"
)

// StoreEvent tells other instances that a collection changed on the backend.
type StoreEvent struct {
	Origin      string       `json:"origin"`
	Action      string       `json:"action"`
	Collections []Collection `json:"collections"`
	EntityID    string       `json:"entity_id,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

type AuthEventType string

const (
	AuthSignedIn       AuthEventType = "SIGNED_IN"
	AuthSignedOut      AuthEventType = "SIGNED_OUT"
	AuthUserUpdated    AuthEventType = "USER_UPDATED"
	AuthTokenRefreshed AuthEventType = "TOKEN_REFRESHED"
)

// AuthEvent is a session change delivered by the identity provider.
type AuthEvent struct {
	Event     AuthEventType `json:"event"`
	UserID    string        `json:"user_id"`
	Email     string        `json:"email"`
	Timestamp time.Time     `json:"timestamp"`
}

// Интерфейсы Messaging (Adapter/RabbitMQ)
type EventPublisher interface {
	PublishStoreEvent(ctx context.Context, event StoreEvent) error
}

type MessageConsumer interface {
	ConsumeStoreEvents(ctx context.Context, handler MessageHandler) error
	ConsumeAuthEvents(ctx context.Context, handler MessageHandler) error
}

type MessageHandler func(ctx context.Context, body []byte) error
