package registry

import (
	"context"
	"time"

	"github.com/goliatone/go-storefront/cache"
	"github.com/sirupsen/logrus"
)

// Option configures a Registry.
type Option func(*Registry)

// WithCodec sets the codec used to encode values. Defaults to JSON.
func WithCodec(codec cache.Codec) Option {
	return func(r *Registry) {
		if codec != nil {
			r.codec = codec
		}
	}
}

// WithLogger sets the logger used for clear failures and cache tracing.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClearConcurrency bounds the number of concurrent deletes issued by
// ClearNamespace. Zero means unbounded.
func WithClearConcurrency(n int) Option {
	return func(r *Registry) {
		if n >= 0 {
			r.clearConcurrency = n
		}
	}
}

// SetOption configures a single Set call.
type SetOption func(*setOptions)

type setOptions struct {
	ttl        time.Duration
	namespaces []string
}

// WithTTL overrides the backend default ttl for one entry.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) {
		o.ttl = ttl
	}
}

// WithNamespace registers the key under the given namespaces once stored.
func WithNamespace(namespaces ...string) SetOption {
	return func(o *setOptions) {
		o.namespaces = append(o.namespaces, namespaces...)
	}
}

func resolveSetOptions(ctx context.Context, opts []SetOption) setOptions {
	var o setOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.namespaces = dedupeStrings(append(namespacesFromContext(ctx), o.namespaces...))
	return o
}
