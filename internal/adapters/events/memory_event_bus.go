package events

import (
	"context"
	"errors"
	"sync"

	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/providers"
)

// MemoryEventBus delivers events within a single process. It backs the
// queue stream when Redis is disabled.
type MemoryEventBus struct {
	fanout *fanout
	once   sync.Once
	done   chan struct{}
}

// NewMemoryEventBus creates an in-process event bus
func NewMemoryEventBus() providers.EventBus {
	return &MemoryEventBus{fanout: newFanout(), done: make(chan struct{})}
}

// Publish delivers event to current subscribers of channel
func (b *MemoryEventBus) Publish(ctx context.Context, channel string, event *entities.QueueEvent) error {
	select {
	case <-b.done:
		return errors.New("event bus closed")
	default:
	}
	b.fanout.broadcast(channel, event)
	return nil
}

// Subscribe subscribes to events on a channel until ctx is done
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.QueueEvent, error) {
	select {
	case <-b.done:
		return nil, errors.New("event bus closed")
	default:
	}

	ch := b.fanout.add(channel)
	go func() {
		select {
		case <-ctx.Done():
			b.fanout.remove(channel, ch)
		case <-b.done:
		}
	}()
	return ch, nil
}

// Close closes all subscriber channels
func (b *MemoryEventBus) Close() error {
	b.once.Do(func() {
		close(b.done)
		b.fanout.closeAll()
	})
	return nil
}
