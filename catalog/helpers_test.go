package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-storefront/cache"
	"github.com/goliatone/go-storefront/pkg/testsupport"
	"github.com/goliatone/go-storefront/registry"
	"github.com/goliatone/go-storefront/store"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/techmaster-vietnam/goerrorkit"
	"golang.org/x/crypto/bcrypt"
)

// countingCategories records how often the cached reads reach the store.
type countingCategories struct {
	*store.CategoryStore
	lists   atomic.Int32
	details atomic.Int32
}

func (c *countingCategories) List(ctx context.Context) ([]*store.Category, error) {
	c.lists.Add(1)
	return c.CategoryStore.List(ctx)
}

func (c *countingCategories) GetByIDWithProducts(ctx context.Context, id int64) (*store.Category, error) {
	c.details.Add(1)
	return c.CategoryStore.GetByIDWithProducts(ctx, id)
}

type countingProducts struct {
	*store.ProductStore
	lists atomic.Int32
	gets  atomic.Int32
}

func (p *countingProducts) List(ctx context.Context, offset, limit int) ([]*store.Product, int, error) {
	p.lists.Add(1)
	return p.ProductStore.List(ctx, offset, limit)
}

func (p *countingProducts) ListByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]*store.Product, int, error) {
	p.lists.Add(1)
	return p.ProductStore.ListByCategory(ctx, categoryID, offset, limit)
}

func (p *countingProducts) GetByID(ctx context.Context, id int64) (*store.Product, error) {
	p.gets.Add(1)
	return p.ProductStore.GetByID(ctx, id)
}

type testEnv struct {
	reg        *registry.Registry
	categories *countingCategories
	products   *countingProducts
	catSvc     *CategoryService
	prodSvc    *ProductService
	cartSvc    *CartService
	demoID     int64
	hook       *logtest.Hook
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	logger, hook := logtest.NewNullLogger()

	db := testsupport.NewTestDB(t)
	if err := store.Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if err := store.Seed(ctx, db, store.SeedOptions{BcryptCost: bcrypt.MinCost, Logger: logger}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	backend, err := cache.NewBackend(cache.DefaultConfig())
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	reg := registry.New(backend, registry.WithLogger(logger))
	opts := Options{Logger: logger}

	env := &testEnv{
		reg:        reg,
		categories: &countingCategories{CategoryStore: store.NewCategoryStore(db)},
		products:   &countingProducts{ProductStore: store.NewProductStore(db)},
		hook:       hook,
	}
	env.catSvc = NewCategoryService(env.categories, reg, opts)
	env.prodSvc = NewProductService(env.products, env.catSvc, reg, opts)
	env.cartSvc = NewCartService(store.NewCartStore(db), env.prodSvc, logger)

	demo, err := store.NewUserStore(db).GetByUsername(ctx, "demo")
	if err != nil {
		t.Fatalf("demo user missing: %v", err)
	}
	env.demoID = demo.ID
	return env
}

func (e *testEnv) categoryID(t *testing.T, name string) int64 {
	t.Helper()
	category, err := e.categories.GetByName(context.Background(), name)
	if err != nil {
		t.Fatalf("category %s missing: %v", name, err)
	}
	return category.ID
}

func asAppError(t *testing.T, err error) *goerrorkit.AppError {
	t.Helper()
	var appErr *goerrorkit.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *goerrorkit.AppError, got %T: %v", err, err)
	}
	return appErr
}

func assertBusinessError(t *testing.T, err error) {
	t.Helper()
	if appErr := asAppError(t, err); appErr.Type != goerrorkit.BusinessError {
		t.Errorf("expected business error, got %v", appErr.Type)
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if appErr := asAppError(t, err); appErr.Type != goerrorkit.ValidationError {
		t.Errorf("expected validation error, got %v", appErr.Type)
	}
}
