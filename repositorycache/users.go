package repositorycache

import (
	"context"
	"time"

	"github.com/goliatone/go-storefront/auth"
	"github.com/goliatone/go-storefront/registry"
	"github.com/goliatone/go-storefront/store"
)

var _ auth.UserStore = (*Users)(nil)

// Users decorates a user store so the lookup done for every authenticated
// request is served from the cache. Lookups by username are not cached:
// login needs the password hash, which is never serialized.
type Users struct {
	auth.UserStore
	byID *ByID[*store.User]
}

func NewUsers(base auth.UserStore, cache *registry.Registry, ttl time.Duration) *Users {
	return &Users{
		UserStore: base,
		byID:      NewByID(cache, ttl, base.GetByID),
	}
}

func (u *Users) GetByID(ctx context.Context, id int64) (*store.User, error) {
	return u.byID.Get(ctx, id)
}

// Create passes through; a new id has nothing cached yet.
func (u *Users) Create(ctx context.Context, user *store.User) error {
	return u.UserStore.Create(ctx, user)
}
