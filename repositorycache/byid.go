package repositorycache

import (
	"context"
	"time"

	"github.com/goliatone/go-storefront/cache"
	"github.com/goliatone/go-storefront/registry"
)

// ByID caches single record lookups by primary key. Every entry joins one
// namespace named after the record type, so the whole set can be dropped at
// once through the registry.
type ByID[T any] struct {
	load      func(ctx context.Context, id int64) (T, error)
	cache     *registry.Registry
	namespace string
	ttl       time.Duration
}

// NewByID wraps load. A ttl of zero leaves expiry to the backend default.
func NewByID[T any](cache *registry.Registry, ttl time.Duration, load func(ctx context.Context, id int64) (T, error)) *ByID[T] {
	return &ByID[T]{
		load:      load,
		cache:     cache,
		namespace: namespaceOf[T](),
		ttl:       ttl,
	}
}

func (c *ByID[T]) key(id int64) string {
	return cache.Key(c.namespace, id)
}

// Get returns the cached record or loads it. Load errors, not found
// included, are never cached.
func (c *ByID[T]) Get(ctx context.Context, id int64) (T, error) {
	opts := []registry.SetOption{registry.WithNamespace(c.namespace)}
	if c.ttl > 0 {
		opts = append(opts, registry.WithTTL(c.ttl))
	}
	return registry.Remember(ctx, c.cache, c.key(id), func(ctx context.Context) (T, error) {
		return c.load(ctx, id)
	}, opts...)
}
