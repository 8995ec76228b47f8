package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront-backend/repositories/clock"
)

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	cache := NewMemoryCache(10, c)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	value, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)

	c.Advance(time.Minute)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_SetNX(t *testing.T) {
	ctx := context.Background()
	c := clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	cache := NewMemoryCache(10, c)

	created, err := cache.SetNX(ctx, "view:1:127.0.0.1", []byte("1"), time.Hour)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = cache.SetNX(ctx, "view:1:127.0.0.1", []byte("1"), time.Hour)
	require.NoError(t, err)
	assert.False(t, created)

	c.Advance(time.Hour)
	created, err = cache.SetNX(ctx, "view:1:127.0.0.1", []byte("1"), time.Hour)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestMemoryCache_Incr(t *testing.T) {
	ctx := context.Background()
	c := clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	cache := NewMemoryCache(10, c)

	for want := int64(1); want <= 3; want++ {
		got, err := cache.Incr(ctx, "rate:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// the window is not extended by later increments
	c.Advance(time.Minute)
	got, err := cache.Incr(ctx, "rate:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestMemoryCache_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10, nil)

	require.NoError(t, cache.Set(ctx, "products:list:page:1:size:10", []byte("a"), 0))
	require.NoError(t, cache.Set(ctx, "products:list:page:2:size:10", []byte("b"), 0))
	require.NoError(t, cache.Set(ctx, "search:products:lamp:page:1:size:10", []byte("c"), 0))

	require.NoError(t, cache.DeletePrefix(ctx, "products:list:"))

	_, err := cache.Get(ctx, "products:list:page:1:size:10")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cache.Get(ctx, "search:products:lamp:page:1:size:10")
	assert.NoError(t, err)
}

func TestCachedJSON(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10, nil)
	calls := 0
	load := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := CachedJSON(ctx, cache, "test", "key", time.Minute, load)
	require.NoError(t, err)
	second, err := CachedJSON(ctx, cache, "test", "key", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "products:list:page:1", CacheKey("products", "list", "page", "1"))
}
