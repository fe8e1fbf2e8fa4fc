package di

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-storefront/auth"
	"github.com/goliatone/go-storefront/cache"
	"github.com/goliatone/go-storefront/catalog"
	"github.com/goliatone/go-storefront/config"
	"github.com/goliatone/go-storefront/httpapi"
	"github.com/goliatone/go-storefront/registry"
	"github.com/goliatone/go-storefront/repositorycache"
	"github.com/goliatone/go-storefront/store"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
)

const ServiceName = "storefront"

// Container owns the application's long lived components and wires them
// together: database, cache backend, registry, stores, services and the
// HTTP application.
type Container struct {
	config     config.Config
	logger     logrus.FieldLogger
	version    string
	bcryptCost int

	db      *bun.DB
	ownsDB  bool
	backend cache.Backend

	registry   *registry.Registry
	auth       *auth.Service
	categories *catalog.CategoryService
	products   *catalog.ProductService
	cart       *catalog.CartService
	app        *fiber.App

	closeOnce sync.Once
	closeErr  error
}

type Option func(*Container)

// WithLogger sets the logger handed to every component.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDB uses an already opened database. The container does not close it.
func WithDB(db *bun.DB) Option {
	return func(c *Container) {
		c.db = db
	}
}

func WithVersion(version string) Option {
	return func(c *Container) {
		c.version = version
	}
}

// WithBcryptCost overrides the password hashing cost, for seeding and
// registration alike.
func WithBcryptCost(cost int) Option {
	return func(c *Container) {
		c.bcryptCost = cost
	}
}

// NewContainer opens the database unless one was provided, migrates it,
// seeds it when configured, and builds every component on top. On error
// everything opened so far is released.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: nil config")
	}

	c := &Container{
		config:  *cfg,
		logger:  logrus.StandardLogger(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.build(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) build(ctx context.Context) error {
	if c.db == nil {
		db, err := store.Open(ctx, c.config.Database)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		c.db, c.ownsDB = db, true
	}

	if err := store.Migrate(ctx, c.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if c.config.SeedDatabase {
		if err := store.Seed(ctx, c.db, store.SeedOptions{BcryptCost: c.bcryptCost, Logger: c.logger}); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	backend, err := cache.NewBackend(c.config.Cache)
	if err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}
	c.backend = backend

	codec, err := cache.CodecByName(c.config.Cache.Codec)
	if err != nil {
		return err
	}
	c.registry = registry.New(backend,
		registry.WithCodec(codec),
		registry.WithLogger(c.logger),
		registry.WithClearConcurrency(c.config.Cache.ClearConcurrency),
	)

	tokens, err := auth.NewTokenIssuer(c.config.JWT.Secret, c.config.JWT.Expiration)
	if err != nil {
		return err
	}
	users := repositorycache.NewUsers(store.NewUserStore(c.db), c.registry, c.config.Cache.TTL)
	c.auth = auth.NewService(users, tokens, auth.NewHasher(c.bcryptCost), c.logger)

	catalogOpts := catalog.Options{TTL: c.config.Cache.TTL, Logger: c.logger}
	c.categories = catalog.NewCategoryService(store.NewCategoryStore(c.db), c.registry, catalogOpts)
	c.products = catalog.NewProductService(store.NewProductStore(c.db), c.categories, c.registry, catalogOpts)
	c.cart = catalog.NewCartService(store.NewCartStore(c.db), c.products, c.logger)

	handler := httpapi.New(httpapi.Dependencies{
		Auth:       c.auth,
		Categories: c.categories,
		Products:   c.products,
		Cart:       c.cart,
		Registry:   c.registry,
		DB:         c.db,
		Info: httpapi.Info{
			Service:  ServiceName,
			Version:  c.version,
			Database: c.config.Database.Driver,
		},
		Logger: c.logger,
	})
	c.app = httpapi.NewApp(httpapi.AppConfig{
		Name:         ServiceName,
		ReadTimeout:  c.config.Server.ReadTimeout,
		WriteTimeout: c.config.Server.WriteTimeout,
		AccessLog:    true,
	}, handler)

	return nil
}

func (c *Container) Config() config.Config {
	return c.config
}

func (c *Container) DB() *bun.DB {
	return c.db
}

func (c *Container) Registry() *registry.Registry {
	return c.registry
}

func (c *Container) Auth() *auth.Service {
	return c.auth
}

func (c *Container) Categories() *catalog.CategoryService {
	return c.categories
}

func (c *Container) Products() *catalog.ProductService {
	return c.products
}

func (c *Container) Cart() *catalog.CartService {
	return c.cart
}

// App returns the HTTP application. Shutting it down is the caller's job.
func (c *Container) App() *fiber.App {
	return c.app
}

// Close releases the cache backend and, when the container opened it, the
// database. It is safe to call more than once.
func (c *Container) Close() error {
	c.closeOnce.Do(func() {
		var errs []error
		if c.backend != nil {
			errs = append(errs, c.backend.Close())
		}
		if c.db != nil && c.ownsDB {
			errs = append(errs, c.db.Close())
		}
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}
