package cacheinfra

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/viccon/sturdyc"
)

// sturdycEntry is what the sturdyc client actually stores. sturdyc only knows a
// client-wide ttl, so per-entry deadlines are kept alongside the payload and
// checked on read.
type sturdycEntry struct {
	data      []byte
	expiresAt time.Time
}

// SturdycBackend adapts a sturdyc client to the cache backend contract.
type SturdycBackend struct {
	client *sturdyc.Client[sturdycEntry]
	ttl    time.Duration
	now    func() time.Time
	closed atomic.Bool
}

// NewSturdycBackend creates a new sturdyc backend.
// It validates the configuration and initializes a sturdyc client with the provided settings.
//
// Capacity, NumShards, TTL and EvictionPercentage are passed to sturdyc.New();
// EvictionInterval is applied as an option when set.
func NewSturdycBackend(cfg Config) (*SturdycBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[sturdycEntry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		options...,
	)

	return &SturdycBackend{
		client: client,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// Get returns the payload stored under key. Entries past their own deadline
// are removed and reported as missing.
func (b *SturdycBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := b.usable(ctx); err != nil {
		return nil, false, NewBackendError("get", key, err)
	}

	entry, ok := b.client.Get(key)
	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && !b.now().Before(entry.expiresAt) {
		b.client.Delete(key)
		return nil, false, nil
	}

	return entry.data, true, nil
}

// Set stores value under key. A ttl of zero, or one longer than the client
// ttl, falls back to the client ttl since sturdyc evicts at that point anyway.
func (b *SturdycBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := b.usable(ctx); err != nil {
		return NewBackendError("set", key, err)
	}

	entry := sturdycEntry{data: value}
	if ttl > 0 && ttl < b.ttl {
		entry.expiresAt = b.now().Add(ttl)
	}

	b.client.Set(key, entry)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (b *SturdycBackend) Delete(ctx context.Context, key string) error {
	if err := b.usable(ctx); err != nil {
		return NewBackendError("delete", key, err)
	}
	b.client.Delete(key)
	return nil
}

// Len reports the number of entries currently held, expired ones included.
func (b *SturdycBackend) Len() int {
	return b.client.Size()
}

// Close marks the backend unusable. sturdyc has no shutdown hook of its own.
func (b *SturdycBackend) Close() error {
	b.closed.Store(true)
	return nil
}

func (b *SturdycBackend) usable(ctx context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
