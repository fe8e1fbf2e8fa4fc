package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	Name        string     `bun:"name,notnull,unique" json:"name"`
	Description string     `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
	Products    []*Product `bun:"rel:has-many,join:id=category_id" json:"products,omitempty"`
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
	Price       float64   `bun:"price,notnull" json:"price"`
	Stock       int       `bun:"stock,notnull,default:0" json:"stock"`
	CategoryID  int64     `bun:"category_id,notnull" json:"categoryId"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
	Category    *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}

// CartItem is one product line in a user's cart. A user holds at most one
// line per product.
type CartItem struct {
	bun.BaseModel `bun:"table:cart_items,alias:ci"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"userId"`
	ProductID int64     `bun:"product_id,notnull" json:"productId"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
	Product   *Product  `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}

var (
	_ bun.BeforeAppendModelHook = (*User)(nil)
	_ bun.BeforeAppendModelHook = (*Category)(nil)
	_ bun.BeforeAppendModelHook = (*Product)(nil)
	_ bun.BeforeAppendModelHook = (*CartItem)(nil)
)

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touch(query, &u.CreatedAt, &u.UpdatedAt)
	return nil
}

func (c *Category) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touch(query, &c.CreatedAt, &c.UpdatedAt)
	return nil
}

func (p *Product) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touch(query, &p.CreatedAt, &p.UpdatedAt)
	return nil
}

func (i *CartItem) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touch(query, &i.CreatedAt, &i.UpdatedAt)
	return nil
}

// touch stamps created/updated times on insert and updated time on update.
func touch(query bun.Query, created, updated *time.Time) {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if created.IsZero() {
			*created = now
		}
		*updated = now
	case *bun.UpdateQuery:
		*updated = now
	}
}
