package catalog

import (
	"context"
	"errors"
	"math"

	"github.com/goliatone/go-storefront/store"
	"github.com/sirupsen/logrus"
	"github.com/techmaster-vietnam/goerrorkit"
)

type CartSummary struct {
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
	ItemCount  int     `json:"itemCount"`
}

type Cart struct {
	Items   []*store.CartItem `json:"items"`
	Summary CartSummary       `json:"summary"`
}

// CartResult is returned by cart mutations.
type CartResult struct {
	Message  string          `json:"message"`
	CartItem *store.CartItem `json:"cartItem,omitempty"`
}

// CartService manages carts. Carts are per user and change often, so they are
// read straight from the store.
type CartService struct {
	cart     CartStore
	products *ProductService
	logger   logrus.FieldLogger
}

func NewCartService(cart CartStore, products *ProductService, logger logrus.FieldLogger) *CartService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CartService{
		cart:     cart,
		products: products,
		logger:   logger.WithField("service", "cart"),
	}
}

func (s *CartService) GetCart(ctx context.Context, userID int64) (*Cart, error) {
	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load cart")
	}
	return &Cart{Items: items, Summary: summarize(items)}, nil
}

func summarize(items []*store.CartItem) CartSummary {
	summary := CartSummary{ItemCount: len(items)}
	var total float64
	for _, item := range items {
		summary.TotalItems += item.Quantity
		if item.Product != nil {
			total += float64(item.Quantity) * item.Product.Price
		}
	}
	summary.TotalPrice = math.Round(total*100) / 100
	return summary
}

// AddToCart adds quantity of a product, merging into an existing line.
func (s *CartService) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*CartResult, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	existing, err := s.cart.Find(ctx, userID, productID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := s.cart.UpdateQuantity(ctx, existing); err != nil {
			return nil, goerrorkit.WrapWithMessage(err, "Failed to update cart")
		}
		return &CartResult{Message: "Product quantity updated in cart", CartItem: existing}, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load cart")
	}

	item := &store.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.cart.Create(ctx, item); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to add to cart")
	}

	saved, err := s.cart.GetByID(ctx, item.ID)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load cart item")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": productID,
	}).Debug("product added to cart")

	return &CartResult{Message: "Product added to cart successfully", CartItem: saved}, nil
}

// UpdateCartItem replaces the quantity of a line already in the cart.
func (s *CartService) UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) (*CartResult, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.findLine(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cart.UpdateQuantity(ctx, item); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to update cart")
	}
	return &CartResult{Message: "Cart updated successfully", CartItem: item}, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID int64) (*CartResult, error) {
	item, err := s.findLine(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.cart.Delete(ctx, item); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to remove from cart")
	}
	return &CartResult{Message: "Product removed from cart successfully"}, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID int64) (*CartResult, error) {
	if _, err := s.cart.DeleteByUser(ctx, userID); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to clear cart")
	}
	return &CartResult{Message: "Cart cleared successfully"}, nil
}

func (s *CartService) findLine(ctx context.Context, userID, productID int64) (*store.CartItem, error) {
	item, err := s.cart.Find(ctx, userID, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, goerrorkit.NewBusinessError(404, "Product not found in cart").WithData(map[string]interface{}{
			"product_id": productID,
		})
	}
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load cart")
	}
	return item, nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return goerrorkit.NewValidationError("Quantity must be at least 1", map[string]interface{}{
			"quantity": quantity,
		})
	}
	return nil
}
