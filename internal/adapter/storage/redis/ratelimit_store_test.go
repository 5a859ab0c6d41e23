package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RateLimitStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimitStore(client), mr
}

func TestRateLimitStore_IncrCountsWithinWindow(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := store.Incr(ctx, "user:abc", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRateLimitStore_WindowExpiryResetsCount(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "user:abc", time.Minute)
	require.NoError(t, err)

	mr.FastForward(time.Minute + time.Second)

	got, err := store.Incr(ctx, "user:abc", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestRateLimitStore_KeysAreIndependent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "user:a", time.Minute)
	require.NoError(t, err)

	got, err := store.Incr(ctx, "user:b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
