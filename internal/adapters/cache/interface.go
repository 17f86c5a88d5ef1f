package cache

import "context"

type Cache[K comparable, V any] interface {
	// Returns the value if it is present and has not expired. Does not refresh the TTL.
	Get(key K) (V, bool)
	Set(key K, data V)
	// Returns data, created, error
	GetOrCreate(ctx context.Context, key K, create func(ctx context.Context) (V, error)) (V, bool, error)
}
