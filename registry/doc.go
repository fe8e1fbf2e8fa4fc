// Package registry layers namespace bookkeeping on top of a cache backend.
//
// # Overview
//
// A Registry writes encoded values to a cache.Backend and keeps an in-process
// index from namespace to the keys registered under it. Writers that change
// the data behind a group of cached reads clear the namespace instead of
// tracking individual keys:
//
//	reg := registry.New(backend, registry.WithLogger(logger))
//
//	err := reg.Set(ctx, "products:all:page:1:limit:10", page,
//		registry.WithNamespace("products:all"),
//		registry.WithTTL(5*time.Minute),
//	)
//
//	// after a product is created
//	err = reg.ClearNamespace(ctx, "products:all")
//
// Namespaces can also ride on the context, the same way request scoped
// values do:
//
//	ctx = registry.WithNamespaces(ctx, "catalog")
//	_ = reg.Set(ctx, key, value) // registered under "catalog"
//
// # Read-through
//
// Remember wraps the common get, fetch, set sequence:
//
//	page, err := registry.Remember(ctx, reg, key, loadPage, registry.WithNamespace("products:all"))
//
// # Consistency
//
// A key is registered only after the backend accepted the write, so the index
// never points at a value that was never stored. The converse does not hold:
// entries that expire in the backend stay indexed until their namespace is
// cleared or the key is deleted. Deleting an already expired key is harmless.
//
// Clearing a namespace does not remove the cleared keys from other namespaces
// that share them. Those namespaces keep stale members until they are cleared
// themselves, which costs at most a redundant delete.
//
// # Deployment
//
// The index lives in process memory. With several replicas behind a shared
// backend, a clear only reaches the keys registered by the replica handling
// the write. Single-replica deployments, or short ttls, avoid the gap.
package registry
