package store

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type UserStore struct {
	repo repository.Repository[*User]
}

func NewUserStore(db *bun.DB) *UserStore {
	return &UserStore{
		repo: repository.NewRepository[*User](db, handlers(func() *User { return new(User) }, "username")),
	}
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	user, err := s.repo.GetByIdentifier(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// Exists reports whether a user already holds the username or the email.
func (s *UserStore) Exists(ctx context.Context, username, email string) (bool, error) {
	count, err := s.repo.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.username = ? OR ?TableAlias.email = ?", username, email)
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserStore) Create(ctx context.Context, user *User) error {
	_, err := s.repo.Create(ctx, user)
	return err
}

// CreateTx is Create inside tx.
func (s *UserStore) CreateTx(ctx context.Context, tx bun.IDB, user *User) error {
	_, err := s.repo.CreateTx(ctx, tx, user)
	return err
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
