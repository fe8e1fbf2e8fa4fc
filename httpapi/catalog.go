package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-storefront/catalog"
	"github.com/techmaster-vietnam/goerrorkit"
)

// ListCategories returns every category
// GET /api/categories
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetCategory returns a category with its products
// GET /api/categories/:id
func (h *Handler) GetCategory(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	category, err := h.categories.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// CreateCategory
// POST /api/categories
func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.categories.Create(c.UserContext(), catalog.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// ListProducts returns a page of products, optionally filtered by category
// GET /api/products?categoryId=&page=&limit=
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	p, err := catalog.NewPagination(c.QueryInt("page", 0), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	if c.Query("categoryId") == "" {
		page, err := h.products.FindAll(c.UserContext(), p)
		if err != nil {
			return err
		}
		return c.JSON(page)
	}

	categoryID := c.QueryInt("categoryId", 0)
	if categoryID < 1 {
		return goerrorkit.NewValidationError("Invalid categoryId", map[string]interface{}{
			"categoryId": c.Query("categoryId"),
		})
	}

	page, err := h.products.FindByCategory(c.UserContext(), int64(categoryID), p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GetProduct
// GET /api/products/:id
func (h *Handler) GetProduct(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.products.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// CreateProduct
// POST /api/products
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.products.Create(c.UserContext(), catalog.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}
