package cache

import (
	"time"

	"github.com/goliatone/go-storefront/internal/cacheinfra"
)

const (
	DriverSturdyc  = cacheinfra.DriverSturdyc
	DriverTTLCache = cacheinfra.DriverTTLCache
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	// Driver selects the backend implementation: "sturdyc" or "ttlcache".
	Driver             string
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	EvictionInterval   time.Duration

	// Codec is the payload encoding used at the backend boundary: "json" or "msgpack".
	Codec string

	// ClearConcurrency bounds the number of concurrent deletes issued when a
	// namespace is cleared. Zero means one goroutine per key.
	ClearConcurrency int
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	cfg := convertFromInternal(cacheinfra.DefaultConfig())
	cfg.Codec = CodecJSON
	cfg.ClearConcurrency = 16
	return cfg
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if err := c.toInternal().Validate(); err != nil {
		return err
	}
	if _, err := CodecByName(c.Codec); err != nil {
		return &cacheinfra.ConfigError{Field: "Codec", Message: "must be json or msgpack"}
	}
	if c.ClearConcurrency < 0 {
		return &cacheinfra.ConfigError{Field: "ClearConcurrency", Message: "must be non-negative"}
	}
	return nil
}

// NewBackend constructs the configured backend implementation.
func NewBackend(cfg Config) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	internal := cfg.toInternal()
	if internal.Driver == DriverTTLCache {
		backend, err := cacheinfra.NewTTLCacheBackend(internal)
		if err != nil {
			return nil, err
		}
		return backend, nil
	}

	backend, err := cacheinfra.NewSturdycBackend(internal)
	if err != nil {
		return nil, err
	}
	return backend, nil
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Driver:             c.Driver,
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Driver:             cfg.Driver,
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
