package store

import (
	"context"

	"github.com/uptrace/bun"
)

type CartStore struct {
	db bun.IDB
}

func NewCartStore(db bun.IDB) *CartStore {
	return &CartStore{db: db}
}

// ListByUser returns the user's cart lines, newest first, with each product
// and its category loaded.
func (s *CartStore) ListByUser(ctx context.Context, userID int64) ([]*CartItem, error) {
	items := make([]*CartItem, 0)
	err := s.db.NewSelect().
		Model(&items).
		Relation("Product").
		Relation("Product.Category").
		Where("ci.user_id = ?", userID).
		OrderExpr("ci.created_at DESC, ci.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Find returns the user's line for a product, with the product loaded.
func (s *CartStore) Find(ctx context.Context, userID, productID int64) (*CartItem, error) {
	item := new(CartItem)
	err := s.db.NewSelect().
		Model(item).
		Relation("Product").
		Where("ci.user_id = ?", userID).
		Where("ci.product_id = ?", productID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (s *CartStore) GetByID(ctx context.Context, id int64) (*CartItem, error) {
	item := new(CartItem)
	err := s.db.NewSelect().
		Model(item).
		Relation("Product").
		Where("ci.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (s *CartStore) Create(ctx context.Context, item *CartItem) error {
	_, err := s.db.NewInsert().Model(item).Returning("*").Exec(ctx)
	return err
}

func (s *CartStore) UpdateQuantity(ctx context.Context, item *CartItem) error {
	_, err := s.db.NewUpdate().
		Model(item).
		Column("quantity", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

func (s *CartStore) Delete(ctx context.Context, item *CartItem) error {
	_, err := s.db.NewDelete().Model(item).WherePK().Exec(ctx)
	return err
}

// DeleteByUser empties the user's cart and reports how many lines were removed.
func (s *CartStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.NewDelete().
		Model((*CartItem)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
