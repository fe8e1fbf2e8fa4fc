package httpapi

import (
	"context"
	"time"

	"github.com/goliatone/go-storefront/auth"
	"github.com/goliatone/go-storefront/catalog"
	"github.com/goliatone/go-storefront/registry"
	"github.com/sirupsen/logrus"
)

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Info describes the running service on the health endpoint.
type Info struct {
	Service  string
	Version  string
	Database string
}

type Dependencies struct {
	Auth       *auth.Service
	Categories *catalog.CategoryService
	Products   *catalog.ProductService
	Cart       *catalog.CartService
	Registry   *registry.Registry
	DB         Pinger
	Info       Info
	Logger     logrus.FieldLogger
}

// Handler serves the storefront API.
type Handler struct {
	auth       *auth.Service
	categories *catalog.CategoryService
	products   *catalog.ProductService
	cart       *catalog.CartService
	registry   *registry.Registry
	db         Pinger
	info       Info
	logger     logrus.FieldLogger
	started    time.Time
}

func New(deps Dependencies) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		auth:       deps.Auth,
		categories: deps.Categories,
		products:   deps.Products,
		cart:       deps.Cart,
		registry:   deps.Registry,
		db:         deps.DB,
		info:       deps.Info,
		logger:     logger.WithField("component", "httpapi"),
		started:    time.Now(),
	}
}
