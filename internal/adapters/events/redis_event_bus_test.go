package events_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/healthfair/backend/internal/adapters/events"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/providers"
	redisclient "github.com/healthfair/backend/internal/infrastructure/clients/redis"
	"github.com/healthfair/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBus(t *testing.T) (providers.EventBus, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client, err := redisclient.NewClient(context.Background(), &config.RedisConfig{Host: server.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	bus := events.NewRedisEventBus(client)
	t.Cleanup(func() { bus.Close() })
	return bus, server
}

func waitForSubscribers(t *testing.T, server *miniredis.Miniredis, channel string, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return server.PubSubNumSub(channel)[channel] == n
	}, 2*time.Second, 10*time.Millisecond)
}

func receive(t *testing.T, sub <-chan *entities.QueueEvent) *entities.QueueEvent {
	t.Helper()
	select {
	case got, ok := <-sub:
		require.True(t, ok, "subscription closed")
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
		return nil
	}
}

func TestRedisEventBus_FansOutToLocalSubscribers(t *testing.T) {
	bus, server := newRedisBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fair := providers.GetQueueChannel("event-1")
	first, err := bus.Subscribe(ctx, fair)
	require.NoError(t, err)
	second, err := bus.Subscribe(ctx, fair)
	require.NoError(t, err)
	other, err := bus.Subscribe(ctx, providers.GetQueueChannel("event-2"))
	require.NoError(t, err)

	// Local subscribers share one Redis subscription per channel.
	waitForSubscribers(t, server, fair, 1)

	event := entities.NewQueueEvent("event-1", entities.QueueEventTypeStatusChanged)
	event.EntryID = "qe-1"
	event.Status = entities.QueueStatusInProgress
	require.NoError(t, bus.Publish(ctx, fair, event))

	for _, sub := range []<-chan *entities.QueueEvent{first, second} {
		got := receive(t, sub)
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, "qe-1", got.EntryID)
		assert.Equal(t, entities.QueueStatusInProgress, got.Status)
	}

	select {
	case got := <-other:
		t.Fatalf("unexpected event on other channel: %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRedisEventBus_LastUnsubscribeClosesRedisSubscription(t *testing.T) {
	bus, server := newRedisBus(t)
	channel := providers.GetQueueChannel("event-1")

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := bus.Subscribe(ctx, channel)
	require.NoError(t, err)
	waitForSubscribers(t, server, channel, 1)

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-sub:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	waitForSubscribers(t, server, channel, 0)
}

func TestRedisEventBus_ResubscribeAfterLastSubscriberLeaves(t *testing.T) {
	bus, server := newRedisBus(t)
	channel := providers.GetQueueChannel("event-1")

	oldCtx, oldCancel := context.WithCancel(context.Background())
	_, err := bus.Subscribe(oldCtx, channel)
	require.NoError(t, err)
	oldCancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := bus.Subscribe(ctx, channel)
	require.NoError(t, err)

	// Whichever order the old teardown and the new subscribe ran in, the
	// new subscriber must end up receiving. Publishing is repeated because
	// a fresh Redis subscription becomes active asynchronously.
	event := entities.NewQueueEvent("event-1", entities.QueueEventTypePatientRegistered)
	assert.Eventually(t, func() bool {
		if err := bus.Publish(ctx, channel, event); err != nil {
			return false
		}
		select {
		case got, ok := <-sub:
			return ok && got.ID == event.ID
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	waitForSubscribers(t, server, channel, 1)
}

func TestRedisEventBus_SubscribeAfterClose(t *testing.T) {
	bus, _ := newRedisBus(t)
	require.NoError(t, bus.Close())

	_, err := bus.Subscribe(context.Background(), providers.GetQueueChannel("event-1"))
	assert.Error(t, err)
}
