package cacheinfra

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// TTLCacheBackend adapts jellydator/ttlcache to the cache backend contract.
// Unlike sturdyc it supports per-item ttls natively.
type TTLCacheBackend struct {
	cache     *ttlcache.Cache[string, []byte]
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewTTLCacheBackend creates the backend and starts the ttlcache janitor.
// Call Close to stop it.
func NewTTLCacheBackend(cfg Config) (*TTLCacheBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := ttlcache.New[string, []byte](
		ttlcache.WithTTL[string, []byte](cfg.TTL),
		ttlcache.WithCapacity[string, []byte](uint64(cfg.Capacity)),
		// entries must expire at their write deadline, not slide on reads
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go c.Start()

	return &TTLCacheBackend{cache: c}, nil
}

func (b *TTLCacheBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := b.usable(ctx); err != nil {
		return nil, false, NewBackendError("get", key, err)
	}

	item := b.cache.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

func (b *TTLCacheBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := b.usable(ctx); err != nil {
		return NewBackendError("set", key, err)
	}

	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	b.cache.Set(key, value, ttl)
	return nil
}

func (b *TTLCacheBackend) Delete(ctx context.Context, key string) error {
	if err := b.usable(ctx); err != nil {
		return NewBackendError("delete", key, err)
	}
	b.cache.Delete(key)
	return nil
}

// Len reports the number of items currently held.
func (b *TTLCacheBackend) Len() int {
	return b.cache.Len()
}

// Close stops the janitor goroutine. It is safe to call more than once.
func (b *TTLCacheBackend) Close() error {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		b.cache.Stop()
	})
	return nil
}

func (b *TTLCacheBackend) usable(ctx context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
