package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/goliatone/go-storefront/catalog"
	"github.com/goliatone/go-storefront/registry"
	"github.com/techmaster-vietnam/goerrorkit"
)

type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AccessLog enables the fiber request logger.
	AccessLog bool
}

// NewApp builds the fiber application with the middleware chain and every
// route registered.
func NewApp(cfg AppConfig, h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// requestid must run before the error handler so errors carry the id
	app.Use(requestid.New())
	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	app.Use(goerrorkit.FiberErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	h.Mount(app)
	return app
}

// Mount registers the routes on r.
func (h *Handler) Mount(r fiber.Router) {
	r.Get("/health", h.Health)

	authGroup := r.Group("/api/auth")
	authGroup.Post("/login", h.Login)
	authGroup.Post("/register", h.Register)

	// group middleware matches by prefix; public routes are registered first
	api := r.Group("/api", h.auth.RequireAuth())

	categories := api.Group("/categories", catalogNamespace)
	categories.Get("/", h.ListCategories)
	categories.Get("/:id", h.GetCategory)
	categories.Post("/", h.CreateCategory)

	products := api.Group("/products", catalogNamespace)
	products.Get("/", h.ListProducts)
	products.Get("/:id", h.GetProduct)
	products.Post("/", h.CreateProduct)

	cart := api.Group("/cart", catalogNamespace)
	cart.Get("/", h.GetCart)
	cart.Post("/", h.AddToCart)
	cart.Put("/:productId", h.UpdateCartItem)
	cart.Delete("/:productId", h.RemoveFromCart)
	cart.Delete("/", h.ClearCart)

	cacheGroup := api.Group("/cache")
	cacheGroup.Get("/namespaces", h.ListNamespaces)
	cacheGroup.Delete("/namespaces/:namespace", h.ClearNamespace)
}

// catalogNamespace tags every cache entry written while serving the request
// with the catalog namespace.
func catalogNamespace(c *fiber.Ctx) error {
	c.SetUserContext(registry.WithNamespaces(c.UserContext(), catalog.NamespaceCatalog))
	return c.Next()
}
