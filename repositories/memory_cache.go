package repositories

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/storefront/storefront-backend/repositories/clock"
)

const DEFAULT_MEMORY_CACHE_SIZE = 10_000

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is the single process fallback used when no redis url is configured.
type MemoryCache struct {
	mu    sync.Mutex
	store *lru.Cache[string, memoryEntry]
	clock clock.Clock
}

func NewMemoryCache(size int, c clock.Clock) *MemoryCache {
	if size <= 0 {
		size = DEFAULT_MEMORY_CACHE_SIZE
	}
	if c == nil {
		c = clock.New()
	}
	store, _ := lru.New[string, memoryEntry](size)
	return &MemoryCache{store: store, clock: c}
}

// get must be called with the lock held
func (c *MemoryCache) get(key string) (memoryEntry, bool) {
	entry, ok := c.store.Get(key)
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !c.clock.Now().Before(entry.expiresAt) {
		c.store.Remove(key)
		return memoryEntry{}, false
	}
	return entry, true
}

func (c *MemoryCache) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.clock.Now().Add(ttl)
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Add(key, memoryEntry{value: value, expiresAt: c.expiry(ttl)})
	return nil
}

func (c *MemoryCache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.get(key); ok {
		return false, nil
	}
	c.store.Add(key, memoryEntry{value: value, expiresAt: c.expiry(ttl)})
	return true, nil
}

func (c *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		c.store.Remove(key)
	}
	return nil
}

func (c *MemoryCache) DeletePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range c.store.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.store.Remove(key)
		}
	}
	return nil
}

func (c *MemoryCache) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.get(key)
	if !ok {
		entry = memoryEntry{value: []byte("0"), expiresAt: c.expiry(ttl)}
	}
	current, err := strconv.ParseInt(string(entry.value), 10, 64)
	if err != nil {
		return 0, err
	}
	current++
	entry.value = []byte(strconv.FormatInt(current, 10))
	c.store.Add(key, entry)
	return current, nil
}
