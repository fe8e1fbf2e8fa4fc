package registry

import (
	"context"
	"errors"

	"github.com/goliatone/go-storefront/cache"
	"github.com/sirupsen/logrus"
)

// Remember returns the value cached under key or, on a miss, calls fetch and
// stores its result with opts. An entry that no longer decodes is treated as
// a miss and overwritten. Fetch errors are returned without caching anything.
func Remember[T any](ctx context.Context, r *Registry, key string, fetch func(context.Context) (T, error), opts ...SetOption) (T, error) {
	var zero T

	cached, found, err := Get[T](ctx, r, key)
	switch {
	case err != nil && !errors.Is(err, cache.ErrCodec):
		return zero, err
	case err == nil && found:
		r.logger.WithField("key", key).Debug("cache hit")
		return cached, nil
	case err != nil:
		r.logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("discarding undecodable cache entry")
	default:
		r.logger.WithField("key", key).Debug("cache miss")
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if err := r.Set(ctx, key, value, opts...); err != nil {
		return zero, err
	}
	return value, nil
}
