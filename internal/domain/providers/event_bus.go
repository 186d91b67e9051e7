package providers

import (
	"context"

	"github.com/star-burger/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to order events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.OrderEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.OrderEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelOrderUpdates is the channel for all order updates
	EventChannelOrderUpdates = "orders:events"

	// EventChannelOrderPrefix is the prefix for order-specific channels
	EventChannelOrderPrefix = "order:"
)

// GetOrderChannel returns the channel name for a specific order
func GetOrderChannel(orderID string) string {
	return EventChannelOrderPrefix + orderID
}
