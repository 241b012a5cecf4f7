package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/healthfair/backend/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryAdapter()
	t.Cleanup(a.Close)

	_, err := a.Get(ctx, "services:all")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)

	require.NoError(t, a.Set(ctx, "services:all", []byte(`[]`), 60))
	got, err := a.Get(ctx, "services:all")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, a.Delete(ctx, "services:all"))
	_, err = a.Get(ctx, "services:all")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestMemoryAdapter_Expiry(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryAdapter()
	t.Cleanup(a.Close)

	a.set("k", []byte("v"), 50*time.Millisecond)
	require.NoError(t, a.Set(ctx, "forever", []byte("v"), 0))

	_, err := a.Get(ctx, "k")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := a.Get(ctx, "k")
		return errors.Is(err, providers.ErrCacheMiss)
	}, time.Second, 10*time.Millisecond)

	_, err = a.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryAdapter_ReadsDoNotExtendLifetime(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryAdapter()
	t.Cleanup(a.Close)

	a.set("k", []byte("v"), 100*time.Millisecond)
	deadline := time.Now().Add(100 * time.Millisecond)

	// Keep reading past the original expiry; the entry must still go away.
	assert.Eventually(t, func() bool {
		_, err := a.Get(ctx, "k")
		return errors.Is(err, providers.ErrCacheMiss)
	}, time.Second, 10*time.Millisecond)
	assert.False(t, time.Now().Before(deadline))
}

func TestMemoryAdapter_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryAdapter()
	t.Cleanup(a.Close)
	value := []byte("abc")
	require.NoError(t, a.Set(ctx, "k", value, 0))
	value[0] = 'z'

	got, err := a.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'z'

	again, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestTTLSeconds(t *testing.T) {
	assert.Equal(t, 0, ttlSeconds(0))
	assert.Equal(t, 1, ttlSeconds(200*time.Millisecond))
	assert.Equal(t, 300, ttlSeconds(5*time.Minute))
}
