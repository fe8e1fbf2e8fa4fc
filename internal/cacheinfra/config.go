package cacheinfra

import "time"

const (
	DriverSturdyc  = "sturdyc"
	DriverTTLCache = "ttlcache"
)

// Config holds the configuration shared by the backend adapters.
type Config struct {
	// Driver selects the adapter. Empty means sturdyc.
	Driver string

	// Capacity defines the maximum number of entries that the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of sturdyc shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0 for sturdyc. Default: 16
	NumShards int

	// TTL is the default time-to-live for cached entries. With sturdyc it is
	// also the upper bound for per-entry ttls.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries sturdyc evicts
	// when the cache reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are swept.
	// Zero value uses the adapter default.
	EvictionInterval time.Duration
}

// DefaultConfig mirrors the storefront defaults: 1000 entries, 10 second ttl.
func DefaultConfig() Config {
	return Config{
		Driver:             DriverSturdyc,
		Capacity:           1000,
		NumShards:          16,
		TTL:                10 * time.Second,
		EvictionPercentage: 10,
		EvictionInterval:   0, // Use default
	}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	switch c.Driver {
	case "", DriverSturdyc, DriverTTLCache:
	default:
		return &ConfigError{Field: "Driver", Message: "must be sturdyc or ttlcache"}
	}

	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
	}

	if c.Driver == DriverTTLCache {
		return nil
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
