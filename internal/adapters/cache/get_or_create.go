package cache

import (
	"context"
	"fmt"

	"github.com/Amund211/mojangid/internal/logging"
)

// Returns data, created, error
//
// Concurrent misses for the same key share a single call to create. Errors are not cached.
//
// create runs with a context that keeps the values of ctx but is not cancelled with it, so a
// caller giving up does not fail the other callers waiting on the same key.
func (c *TTLCache[K, V]) GetOrCreate(ctx context.Context, key K, create func(ctx context.Context) (V, error)) (V, bool, error) {
	var empty V

	if data, ok := c.Get(key); ok {
		logging.FromContext(ctx).InfoContext(ctx, "Getting cached value", "cache", "hit")
		return data, false, nil
	}

	logging.FromContext(ctx).InfoContext(ctx, "Getting cached value", "cache", "miss")

	// Only set if our closure is the one singleflight runs
	created := false
	createCtx := context.WithoutCancel(ctx)
	resultChan := c.inflight.DoChan(fmt.Sprint(key), func() (any, error) {
		// The previous in-flight call may have populated the cache after our miss
		if data, ok := c.Get(key); ok {
			return data, nil
		}

		data, err := create(createCtx)
		if err != nil {
			return nil, err
		}

		c.Set(key, data)
		created = true
		return data, nil
	})

	select {
	case <-ctx.Done():
		return empty, false, fmt.Errorf("gave up waiting for cache entry: %w", ctx.Err())
	case res := <-resultChan:
		if res.Err != nil {
			return empty, false, fmt.Errorf("failed to create cache entry: %w", res.Err)
		}

		data, ok := res.Val.(V)
		if !ok {
			panic("logic error: unexpected type from singleflight")
		}

		return data, created, nil
	}
}
