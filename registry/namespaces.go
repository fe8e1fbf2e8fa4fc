package registry

import (
	"context"
)

type namespacesContextKey struct{}

// WithNamespaces attaches namespaces to the context. Every Set performed with
// the returned context registers its key under these namespaces in addition
// to any passed through WithNamespace.
func WithNamespaces(ctx context.Context, namespaces ...string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(namespaces) == 0 {
		return ctx
	}

	existing := namespacesFromContext(ctx)
	combined := append(existing, namespaces...)
	combined = dedupeStrings(combined)
	if len(combined) == 0 {
		return ctx
	}

	return context.WithValue(ctx, namespacesContextKey{}, combined)
}

// NamespacesFromContext returns the namespaces attached with WithNamespaces.
func NamespacesFromContext(ctx context.Context) []string {
	return namespacesFromContext(ctx)
}

func namespacesFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if namespaces, ok := ctx.Value(namespacesContextKey{}).([]string); ok {
		return append([]string(nil), namespaces...)
	}
	return nil
}

// dedupeStrings drops empty and repeated values, keeping first-seen order.
func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
