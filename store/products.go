package store

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type ProductStore struct {
	repo repository.Repository[*Product]
}

func NewProductStore(db *bun.DB) *ProductStore {
	return &ProductStore{
		repo: repository.NewRepository[*Product](db, handlers(func() *Product { return new(Product) }, "name")),
	}
}

// List returns one page of products, newest first, and the total count.
func (s *ProductStore) List(ctx context.Context, offset, limit int) ([]*Product, int, error) {
	return s.list(ctx, offset, limit)
}

// ListByCategory is List restricted to one category.
func (s *ProductStore) ListByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]*Product, int, error) {
	return s.list(ctx, offset, limit, whereColumn("category_id", categoryID))
}

func (s *ProductStore) list(ctx context.Context, offset, limit int, criteria ...repository.SelectCriteria) ([]*Product, int, error) {
	criteria = append(criteria, withRelation("Category"), newestFirst(), page(offset, limit))
	products, total, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return nil, 0, err
	}
	if products == nil {
		products = make([]*Product, 0)
	}
	return products, total, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*Product, error) {
	product, err := s.repo.Get(ctx, byID(id), withRelation("Category"))
	if err != nil {
		return nil, notFound(err)
	}
	return product, nil
}

func (s *ProductStore) Create(ctx context.Context, product *Product) error {
	_, err := s.repo.Create(ctx, product)
	return err
}

// CreateTx is Create inside tx.
func (s *ProductStore) CreateTx(ctx context.Context, tx bun.IDB, product *Product) error {
	_, err := s.repo.CreateTx(ctx, tx, product)
	return err
}
