package store

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type CategoryStore struct {
	repo repository.Repository[*Category]
}

func NewCategoryStore(db *bun.DB) *CategoryStore {
	return &CategoryStore{
		repo: repository.NewRepository[*Category](db, handlers(func() *Category { return new(Category) }, "name")),
	}
}

// List returns every category ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]*Category, error) {
	categories, _, err := s.repo.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.name ASC")
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*Category, error) {
	category, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		return nil, notFound(err)
	}
	return category, nil
}

// GetByIDWithProducts loads the category and its products, newest first.
func (s *CategoryStore) GetByIDWithProducts(ctx context.Context, id int64) (*Category, error) {
	category, err := s.repo.Get(ctx,
		byID(id),
		withRelation("Products", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("p.created_at DESC, p.id DESC")
		}),
	)
	if err != nil {
		return nil, notFound(err)
	}
	return category, nil
}

func (s *CategoryStore) GetByName(ctx context.Context, name string) (*Category, error) {
	category, err := s.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, notFound(err)
	}
	return category, nil
}

func (s *CategoryStore) Create(ctx context.Context, category *Category) error {
	_, err := s.repo.Create(ctx, category)
	return err
}

// CreateTx is Create inside tx.
func (s *CategoryStore) CreateTx(ctx context.Context, tx bun.IDB, category *Category) error {
	_, err := s.repo.CreateTx(ctx, tx, category)
	return err
}
