package events

import (
	"sync"

	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 100

// fanout tracks local subscriber channels per bus channel
type fanout struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *entities.QueueEvent]struct{}
}

func newFanout() *fanout {
	return &fanout{subscribers: make(map[string]map[chan *entities.QueueEvent]struct{})}
}

func (f *fanout) add(channel string) chan *entities.QueueEvent {
	ch := make(chan *entities.QueueEvent, subscriberBuffer)

	f.mu.Lock()
	if f.subscribers[channel] == nil {
		f.subscribers[channel] = make(map[chan *entities.QueueEvent]struct{})
	}
	f.subscribers[channel][ch] = struct{}{}
	f.mu.Unlock()

	return ch
}

// remove closes ch and returns how many subscribers remain on channel
func (f *fanout) remove(channel string, ch chan *entities.QueueEvent) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	subs, ok := f.subscribers[channel]
	if !ok {
		return 0
	}
	if _, ok := subs[ch]; ok {
		delete(subs, ch)
		close(ch)
	}
	if len(subs) == 0 {
		delete(f.subscribers, channel)
	}
	return len(subs)
}

// broadcast never blocks; a full subscriber misses the event
func (f *fanout) broadcast(channel string, event *entities.QueueEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for ch := range f.subscribers[channel] {
		select {
		case ch <- event:
		default:
			log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("subscriber channel full, dropping event")
		}
	}
}

func (f *fanout) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for channel, subs := range f.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(f.subscribers, channel)
	}
}
