// Package cache defines the backend contract used by the namespace registry
// together with payload codecs, key construction, and backend selection.
//
// # Overview
//
// The package exports three small interfaces and their default
// implementations:
//
//   - Backend: byte oriented get, set with ttl, and delete over a key-value store
//   - Codec: converts values to bytes at the backend boundary (JSON or MessagePack)
//   - KeySerializer: builds stable cache keys from a prefix and arguments
//
// # Backends
//
// NewBackend picks an in-process store from Config.Driver:
//
//	backend, err := cache.NewBackend(cache.Config{
//		Driver:             cache.DriverTTLCache,
//		Capacity:           10_000,
//		TTL:                5 * time.Minute,
//	})
//
// The sturdyc driver uses a sharded client with a single client wide ttl;
// shorter per-entry ttls are enforced when the entry is read. The ttlcache
// driver supports per-item ttls natively and runs a janitor goroutine that is
// stopped by Close.
//
// A missing or expired key is reported as found == false, never as an error.
// Failures of the store itself are returned as *BackendError and match
// ErrBackend with errors.Is.
//
// # Keys
//
// Keys are colon separated. Scalars are rendered as is; composite arguments
// such as structs, maps and slices are reduced to a short xxhash digest of a
// canonical rendering so map ordering never leaks into the key:
//
//	cache.Key("products", "category", 3, "page", 1, "limit", 10)
//	// products:category:3:page:1:limit:10
//
// # Codecs
//
// The JSON codec is the default. The MessagePack codec reuses json struct tags
// so the same DTOs can be stored with either. Decode failures match ErrCodec.
package cache
