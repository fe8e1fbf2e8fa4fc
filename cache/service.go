package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-storefront/internal/cacheinfra"
)

var (
	// ErrBackend is matched by every error returned from a Backend failure.
	ErrBackend = cacheinfra.ErrBackend

	// ErrCodec is matched by payload encode/decode failures.
	ErrCodec = errors.New("cache codec error")
)

// KeySerializer builds a cache key from a prefix + arbitrary parts.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(prefix string, parts ...any) string
}

// Backend is the key-value store the registry writes through to.
//
// Keys are opaque strings and values are already encoded payloads. Get on a
// missing or expired key reports found == false with a nil error; an error is
// only returned when the store itself fails. A zero ttl means the backend's
// default lifetime.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Codec converts cached values to and from their stored representation.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// BackendError wraps a failure reported by a Backend implementation.
type BackendError = cacheinfra.BackendError

// NewBackendError wraps err for the given operation and key. It returns nil when err is nil.
func NewBackendError(op, key string, err error) error {
	return cacheinfra.NewBackendError(op, key, err)
}

var (
	_ Backend = (*cacheinfra.SturdycBackend)(nil)
	_ Backend = (*cacheinfra.TTLCacheBackend)(nil)
)
