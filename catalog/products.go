package catalog

import (
	"context"
	"errors"

	"github.com/goliatone/go-storefront/registry"
	"github.com/goliatone/go-storefront/store"
	"github.com/sirupsen/logrus"
	"github.com/techmaster-vietnam/goerrorkit"
)

type ProductService struct {
	products   ProductStore
	categories *CategoryService
	cache      *registry.Registry
	opts       Options
	logger     logrus.FieldLogger
}

func NewProductService(products ProductStore, categories *CategoryService, cache *registry.Registry, opts Options) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		cache:      cache,
		opts:       opts,
		logger:     opts.logger().WithField("service", "products"),
	}
}

// FindAll returns one page of all products, newest first.
func (s *ProductService) FindAll(ctx context.Context, p Pagination) (Page[*store.Product], error) {
	return registry.Remember(ctx, s.cache, productsPageKey(p), func(ctx context.Context) (Page[*store.Product], error) {
		s.logger.WithFields(logrus.Fields{"page": p.Page, "limit": p.Limit}).Info("cache miss, loading products")
		products, total, err := s.products.List(ctx, p.Offset(), p.Limit)
		if err != nil {
			return Page[*store.Product]{}, goerrorkit.WrapWithMessage(err, "Failed to load products")
		}
		return NewPage(products, total, p), nil
	}, s.opts.setOptions(namespaceProductsAll)...)
}

// FindByCategory returns one page of the category's products. An unknown
// category is a 404.
func (s *ProductService) FindByCategory(ctx context.Context, categoryID int64, p Pagination) (Page[*store.Product], error) {
	key := productsByCategoryKey(categoryID, p)
	return registry.Remember(ctx, s.cache, key, func(ctx context.Context) (Page[*store.Product], error) {
		s.logger.WithField("category_id", categoryID).Info("cache miss, loading products for category")
		if err := s.categories.Exists(ctx, categoryID); err != nil {
			return Page[*store.Product]{}, err
		}
		products, total, err := s.products.ListByCategory(ctx, categoryID, p.Offset(), p.Limit)
		if err != nil {
			return Page[*store.Product]{}, goerrorkit.WrapWithMessage(err, "Failed to load products")
		}
		return NewPage(products, total, p), nil
	}, s.opts.setOptions(productsByCategoryNamespace(categoryID))...)
}

func (s *ProductService) FindByID(ctx context.Context, id int64) (*store.Product, error) {
	return registry.Remember(ctx, s.cache, productKey(id), func(ctx context.Context) (*store.Product, error) {
		s.logger.WithField("product_id", id).Info("cache miss, loading product")
		product, err := s.products.GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "Product not found").WithData(map[string]interface{}{
				"product_id": id,
			})
		}
		if err != nil {
			return nil, goerrorkit.WrapWithMessage(err, "Failed to load product")
		}
		return product, nil
	}, s.opts.setOptions()...)
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  int64
}

// Create stores a product and invalidates every listing it can appear in.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*store.Product, error) {
	if err := s.categories.Exists(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product := &store.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to create product")
	}

	clearNamespaces(ctx, s.cache, s.logger,
		namespaceProductsAll,
		productsByCategoryNamespace(in.CategoryID),
		categoryNamespace(in.CategoryID),
	)
	s.logger.WithFields(logrus.Fields{
		"product_id":  product.ID,
		"category_id": product.CategoryID,
	}).Info("product created, product caches invalidated")

	return product, nil
}
