package providers

import (
	"context"

	"github.com/healthfair/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to queue events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.QueueEvent) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.QueueEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelQueuePrefix is the prefix for per-event queue channels
const EventChannelQueuePrefix = "queue:event:"

// GetQueueChannel returns the channel name for an event's queue updates
func GetQueueChannel(eventID string) string {
	return EventChannelQueuePrefix + eventID
}
