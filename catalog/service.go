package catalog

import (
	"context"
	"time"

	"github.com/goliatone/go-storefront/registry"
	"github.com/goliatone/go-storefront/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CategoryStore is the persistence the category and product services need.
type CategoryStore interface {
	List(ctx context.Context) ([]*store.Category, error)
	GetByID(ctx context.Context, id int64) (*store.Category, error)
	GetByIDWithProducts(ctx context.Context, id int64) (*store.Category, error)
	GetByName(ctx context.Context, name string) (*store.Category, error)
	Create(ctx context.Context, category *store.Category) error
}

type ProductStore interface {
	List(ctx context.Context, offset, limit int) ([]*store.Product, int, error)
	ListByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]*store.Product, int, error)
	GetByID(ctx context.Context, id int64) (*store.Product, error)
	Create(ctx context.Context, product *store.Product) error
}

type CartStore interface {
	ListByUser(ctx context.Context, userID int64) ([]*store.CartItem, error)
	Find(ctx context.Context, userID, productID int64) (*store.CartItem, error)
	GetByID(ctx context.Context, id int64) (*store.CartItem, error)
	Create(ctx context.Context, item *store.CartItem) error
	UpdateQuantity(ctx context.Context, item *store.CartItem) error
	Delete(ctx context.Context, item *store.CartItem) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

var (
	_ CategoryStore = (*store.CategoryStore)(nil)
	_ ProductStore  = (*store.ProductStore)(nil)
	_ CartStore     = (*store.CartStore)(nil)
)

// Options are shared by the cached services.
type Options struct {
	// TTL applied to cached reads. Zero defers to the backend default.
	TTL    time.Duration
	Logger logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

func (o Options) setOptions(namespaces ...string) []registry.SetOption {
	opts := []registry.SetOption{registry.WithTTL(o.TTL)}
	if len(namespaces) > 0 {
		opts = append(opts, registry.WithNamespace(namespaces...))
	}
	return opts
}

// clearNamespaces clears every namespace concurrently. Failures are logged
// and otherwise ignored: the data write they follow already succeeded.
func clearNamespaces(ctx context.Context, reg *registry.Registry, logger logrus.FieldLogger, namespaces ...string) {
	var g errgroup.Group
	for _, ns := range namespaces {
		g.Go(func() error {
			if err := reg.ClearNamespace(ctx, ns); err != nil {
				logger.WithFields(logrus.Fields{
					"namespace": ns,
					"error":     err,
				}).Warn("cache invalidation incomplete")
			}
			return nil
		})
	}
	_ = g.Wait()
}
