package catalog

import (
	"context"
	"errors"

	"github.com/goliatone/go-storefront/registry"
	"github.com/goliatone/go-storefront/store"
	"github.com/sirupsen/logrus"
	"github.com/techmaster-vietnam/goerrorkit"
)

type CategoryService struct {
	categories CategoryStore
	cache      *registry.Registry
	opts       Options
	logger     logrus.FieldLogger
}

func NewCategoryService(categories CategoryStore, cache *registry.Registry, opts Options) *CategoryService {
	return &CategoryService{
		categories: categories,
		cache:      cache,
		opts:       opts,
		logger:     opts.logger().WithField("service", "categories"),
	}
}

// FindAll lists every category ordered by name.
func (s *CategoryService) FindAll(ctx context.Context) ([]*store.Category, error) {
	return registry.Remember(ctx, s.cache, keyCategoriesAll, func(ctx context.Context) ([]*store.Category, error) {
		s.logger.Info("cache miss, loading all categories")
		categories, err := s.categories.List(ctx)
		if err != nil {
			return nil, goerrorkit.WrapWithMessage(err, "Failed to load categories")
		}
		return categories, nil
	}, s.opts.setOptions(namespaceCategories)...)
}

// FindByID returns the category with its products.
func (s *CategoryService) FindByID(ctx context.Context, id int64) (*store.Category, error) {
	return registry.Remember(ctx, s.cache, categoryDetailsKey(id), func(ctx context.Context) (*store.Category, error) {
		s.logger.WithField("category_id", id).Info("cache miss, loading category")
		category, err := s.categories.GetByIDWithProducts(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "Category not found").WithData(map[string]interface{}{
				"category_id": id,
			})
		}
		if err != nil {
			return nil, goerrorkit.WrapWithMessage(err, "Failed to load category")
		}
		return category, nil
	}, s.opts.setOptions(categoryNamespace(id))...)
}

// Exists checks the store directly, bypassing the cache.
func (s *CategoryService) Exists(ctx context.Context, id int64) error {
	_, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return goerrorkit.NewBusinessError(404, "Category not found").WithData(map[string]interface{}{
			"category_id": id,
		})
	}
	if err != nil {
		return goerrorkit.WrapWithMessage(err, "Failed to load category")
	}
	return nil
}

type CreateCategoryInput struct {
	Name        string
	Description string
}

// Create stores a new category and drops the cached category list.
func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*store.Category, error) {
	_, err := s.categories.GetByName(ctx, in.Name)
	switch {
	case err == nil:
		return nil, goerrorkit.NewBusinessError(409, "Category with this name already exists").WithData(map[string]interface{}{
			"name": in.Name,
		})
	case !errors.Is(err, store.ErrNotFound):
		return nil, goerrorkit.WrapWithMessage(err, "Failed to check category name")
	}

	category := &store.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to create category")
	}

	clearNamespaces(ctx, s.cache, s.logger, namespaceCategories)
	s.logger.WithField("category_id", category.ID).Info("category created, category cache invalidated")

	return category, nil
}
