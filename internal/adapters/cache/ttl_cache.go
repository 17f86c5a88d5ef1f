package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

type ttlCacheEntry[V any] struct {
	data       V
	insertedAt time.Time
}

type TTLCache[K comparable, V any] struct {
	cache    *ttlcache.Cache[K, ttlCacheEntry[V]]
	ttl      time.Duration
	nowFunc  func() time.Time
	inflight singleflight.Group
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var empty V

	item := c.cache.Get(key)
	if item == nil {
		return empty, false
	}

	entry := item.Value()
	// ttlcache expires on the wall clock, we expire on nowFunc so TTL can be tested
	if c.nowFunc().Sub(entry.insertedAt) >= c.ttl {
		return empty, false
	}

	return entry.data, true
}

func (c *TTLCache[K, V]) Set(key K, data V) {
	c.cache.Set(key, ttlCacheEntry[V]{data: data, insertedAt: c.nowFunc()}, ttlcache.DefaultTTL)
}

func (c *TTLCache[K, V]) Len() int {
	return c.cache.Len()
}

// Stops the background expiry loop. Must be called at most once.
func (c *TTLCache[K, V]) Stop() {
	c.cache.Stop()
}

// Capacity of zero means unlimited size. Entries past capacity are evicted least recently used first.
func NewTTLCache[K comparable, V any](ttl time.Duration, capacity uint64, nowFunc func() time.Time) *TTLCache[K, V] {
	cache := ttlcache.New[K, ttlCacheEntry[V]](
		ttlcache.WithTTL[K, ttlCacheEntry[V]](ttl),
		ttlcache.WithCapacity[K, ttlCacheEntry[V]](capacity),
		ttlcache.WithDisableTouchOnHit[K, ttlCacheEntry[V]](),
	)
	go cache.Start()

	return &TTLCache[K, V]{
		cache:   cache,
		ttl:     ttl,
		nowFunc: nowFunc,
	}
}

// Type assertion
var _ Cache[string, int] = (*TTLCache[string, int])(nil)
