package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

// GetCart returns the caller's cart with its summary
// GET /api/cart
func (h *Handler) GetCart(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	cart, err := h.cart.GetCart(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

// AddToCart
// POST /api/cart
func (h *Handler) AddToCart(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req AddToCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.cart.AddToCart(c.UserContext(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// UpdateCartItem sets the quantity of a cart line
// PUT /api/cart/:productId
func (h *Handler) UpdateCartItem(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	productID, err := idParam(c, "productId")
	if err != nil {
		return err
	}

	var req UpdateCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.cart.UpdateCartItem(c.UserContext(), user.ID, productID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// RemoveFromCart
// DELETE /api/cart/:productId
func (h *Handler) RemoveFromCart(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	productID, err := idParam(c, "productId")
	if err != nil {
		return err
	}

	result, err := h.cart.RemoveFromCart(c.UserContext(), user.ID, productID)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ClearCart
// DELETE /api/cart
func (h *Handler) ClearCart(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.cart.ClearCart(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
