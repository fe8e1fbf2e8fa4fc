package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-storefront/cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Registry stores encoded values in a cache backend and remembers which keys
// belong to which namespace so a whole group can be invalidated at once.
type Registry struct {
	backend          cache.Backend
	codec            cache.Codec
	logger           logrus.FieldLogger
	clearConcurrency int

	// index maps namespace -> key -> registration generation. A clear only
	// forgets a key whose generation still matches the one it snapshotted.
	mu    sync.RWMutex
	index map[string]map[string]uint64
	gen   uint64

	stats *counters
}

// New creates a Registry on top of backend.
func New(backend cache.Backend, opts ...Option) *Registry {
	r := &Registry{
		backend: backend,
		codec:   cache.JSONCodec(),
		logger:  logrus.StandardLogger(),
		index:   make(map[string]map[string]uint64),
		stats:   newCounters(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Set encodes value and writes it under key. The key joins its namespaces
// only after the backend accepted the write; a failed write leaves the index
// untouched and the backend error is returned as is.
func (r *Registry) Set(ctx context.Context, key string, value any, opts ...SetOption) error {
	o := resolveSetOptions(ctx, opts)

	data, err := r.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := r.backend.Set(ctx, key, data, o.ttl); err != nil {
		return err
	}
	r.stats.sets.Inc()

	if len(o.namespaces) == 0 {
		return nil
	}

	r.mu.Lock()
	r.gen++
	for _, ns := range o.namespaces {
		keys, ok := r.index[ns]
		if !ok {
			keys = make(map[string]uint64)
			r.index[ns] = keys
		}
		keys[key] = r.gen
	}
	r.mu.Unlock()

	return nil
}

// Get decodes the value stored under key into dest. It reports false when the
// key is absent or expired. The index is never consulted.
func (r *Registry) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, found, err := r.backend.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		r.stats.misses.Inc()
		return false, nil
	}

	if err := r.codec.Unmarshal(data, dest); err != nil {
		r.stats.misses.Inc()
		r.stats.decodeErrors.Inc()
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	r.stats.hits.Inc()
	return true, nil
}

// Get is the typed form of Registry.Get.
func Get[T any](ctx context.Context, r *Registry, key string) (T, bool, error) {
	var value T
	found, err := r.Get(ctx, key, &value)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}
	return value, true, nil
}

// Del removes key from the backend and from every namespace holding it.
// Deleting a key that is not stored is not an error.
func (r *Registry) Del(ctx context.Context, key string) error {
	if err := r.backend.Delete(ctx, key); err != nil {
		return err
	}
	r.stats.deletes.Inc()

	r.mu.Lock()
	for ns, keys := range r.index {
		if _, ok := keys[key]; !ok {
			continue
		}
		delete(keys, key)
		if len(keys) == 0 {
			delete(r.index, ns)
		}
	}
	r.mu.Unlock()

	return nil
}

// ClearNamespace deletes every key registered under namespace and then drops
// those keys from the namespace. Clearing an unknown namespace is a no-op.
//
// Deletes run concurrently. A failure on one key does not stop the others;
// all failures are logged and returned joined. A key written again while the
// clear is running stays registered for the next clear. Other namespaces that share
// a cleared key still list it until their own clear or a Del.
func (r *Registry) ClearNamespace(ctx context.Context, namespace string) error {
	keys, gens, ok := r.snapshot(namespace)
	if !ok {
		return nil
	}

	errs := make([]error, len(keys))
	var g errgroup.Group
	if r.clearConcurrency > 0 {
		g.SetLimit(r.clearConcurrency)
	}
	for i, key := range keys {
		g.Go(func() error {
			errs[i] = r.backend.Delete(ctx, key)
			return nil
		})
	}
	_ = g.Wait()

	r.forget(namespace, keys, gens)
	r.stats.clears.Inc()

	failed := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		r.logger.WithFields(logrus.Fields{
			"namespace": namespace,
			"key":       keys[i],
			"error":     err,
		}).Error("failed to delete cache key")
	}
	if failed > 0 {
		r.stats.clearFailures.Add(int64(failed))
	}

	r.logger.WithFields(logrus.Fields{
		"namespace": namespace,
		"keys":      len(keys),
		"failed":    failed,
	}).Debug("cleared cache namespace")

	return errors.Join(errs...)
}

// Members returns the keys currently registered under namespace, sorted.
func (r *Registry) Members(namespace string) []string {
	keys, _, _ := r.snapshot(namespace)
	return keys
}

// Namespaces returns every namespace that holds at least one key, sorted.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.index))
	for ns := range r.index {
		out = append(out, ns)
	}
	r.mu.RUnlock()

	sort.Strings(out)
	return out
}

// NamespaceSizes maps each namespace to the number of keys it holds.
func (r *Registry) NamespaceSizes() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int, len(r.index))
	for ns, keys := range r.index {
		out[ns] = len(keys)
	}
	return out
}

func (r *Registry) snapshot(namespace string) ([]string, map[string]uint64, bool) {
	r.mu.RLock()
	set, ok := r.index[namespace]
	if !ok {
		r.mu.RUnlock()
		return nil, nil, false
	}
	keys := make([]string, 0, len(set))
	gens := make(map[string]uint64, len(set))
	for key, gen := range set {
		keys = append(keys, key)
		gens[key] = gen
	}
	r.mu.RUnlock()

	sort.Strings(keys)
	return keys, gens, true
}

func (r *Registry) forget(namespace string, keys []string, gens map[string]uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.index[namespace]
	if !ok {
		return
	}
	for _, key := range keys {
		if set[key] != gens[key] {
			continue
		}
		delete(set, key)
	}
	if len(set) == 0 {
		delete(r.index, namespace)
	}
}
