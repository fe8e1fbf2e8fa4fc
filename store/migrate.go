package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Migrate creates the tables and indexes used by the stores when missing.
func Migrate(ctx context.Context, db *bun.DB) error {
	tables := []struct {
		model any
		fks   []string
	}{
		{model: (*User)(nil)},
		{model: (*Category)(nil)},
		{model: (*Product)(nil), fks: []string{`("category_id") REFERENCES "categories" ("id") ON DELETE RESTRICT`}},
		{model: (*CartItem)(nil), fks: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
		}},
	}

	for _, table := range tables {
		q := db.NewCreateTable().Model(table.model).IfNotExists()
		for _, fk := range table.fks {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", table.model, err)
		}
	}

	indexes := []struct {
		model   any
		name    string
		unique  bool
		columns []string
	}{
		{model: (*Product)(nil), name: "idx_products_category_id", columns: []string{"category_id"}},
		{model: (*Product)(nil), name: "idx_products_created_at", columns: []string{"created_at"}},
		{model: (*CartItem)(nil), name: "idx_cart_items_user_product", unique: true, columns: []string{"user_id", "product_id"}},
	}

	for _, idx := range indexes {
		q := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...).IfNotExists()
		if idx.unique {
			q = q.Unique()
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}

	return nil
}
