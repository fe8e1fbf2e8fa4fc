package repositorycache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-storefront/auth"
	"github.com/goliatone/go-storefront/cache"
	"github.com/goliatone/go-storefront/registry"
	"github.com/goliatone/go-storefront/store"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"
)

// countingUserStore is an in-memory auth.UserStore that records lookups.
type countingUserStore struct {
	users    map[int64]*store.User
	nextID   int64
	byID     int
	byName   int
	failNext error
}

func newCountingUserStore() *countingUserStore {
	return &countingUserStore{users: make(map[int64]*store.User)}
}

func (s *countingUserStore) GetByID(ctx context.Context, id int64) (*store.User, error) {
	s.byID++
	if err := s.failNext; err != nil {
		s.failNext = nil
		return nil, err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *countingUserStore) GetByUsername(ctx context.Context, username string) (*store.User, error) {
	s.byName++
	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *countingUserStore) Exists(ctx context.Context, username, email string) (bool, error) {
	for _, user := range s.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *countingUserStore) Create(ctx context.Context, user *store.User) error {
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	backend, err := cache.NewBackend(cache.DefaultConfig())
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	logger, _ := logtest.NewNullLogger()
	return registry.New(backend, registry.WithLogger(logger))
}

func TestByID_ReadThrough(t *testing.T) {
	reg := newTestRegistry(t)
	base := newCountingUserStore()
	base.Create(context.Background(), &store.User{Username: "demo", Email: "demo@example.com"})

	lookup := NewByID(reg, time.Minute, base.GetByID)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		user, err := lookup.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if user.Username != "demo" {
			t.Errorf("unexpected user %+v", user)
		}
	}
	if base.byID != 1 {
		t.Errorf("expected a single store lookup, got %d", base.byID)
	}
	if members := reg.Members("user"); len(members) != 1 || members[0] != "user:1" {
		t.Errorf("unexpected members %v", members)
	}

	if err := reg.Del(ctx, "user:1"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	lookup.Get(ctx, 1)
	if base.byID != 2 {
		t.Errorf("expected a reload after Del, got %d lookups", base.byID)
	}

	if err := reg.ClearNamespace(ctx, "user"); err != nil {
		t.Fatalf("ClearNamespace failed: %v", err)
	}
	if members := reg.Members("user"); len(members) != 0 {
		t.Errorf("expected namespace to be empty, got %v", members)
	}
}

func TestByID_ErrorsAreNotCached(t *testing.T) {
	reg := newTestRegistry(t)
	base := newCountingUserStore()
	lookup := NewByID(reg, 0, base.GetByID)
	ctx := context.Background()

	if _, err := lookup.Get(ctx, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	base.Create(ctx, &store.User{Username: "late", Email: "late@example.com"})
	user, err := lookup.Get(ctx, 1)
	if err != nil || user.Username != "late" {
		t.Fatalf("expected user created after the miss, got %+v %v", user, err)
	}

	boom := errors.New("connection reset")
	base.failNext = boom
	if err := reg.Del(ctx, "user:1"); err != nil {
		t.Fatal(err)
	}
	if _, err := lookup.Get(ctx, 1); !errors.Is(err, boom) {
		t.Errorf("expected store error to propagate, got %v", err)
	}
}

func TestUsers_WithAuthService(t *testing.T) {
	reg := newTestRegistry(t)
	base := newCountingUserStore()
	users := NewUsers(base, reg, time.Minute)

	tokens, err := auth.NewTokenIssuer("secret", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	logger, _ := logtest.NewNullLogger()
	svc := auth.NewService(users, tokens, auth.NewHasher(bcrypt.MinCost), logger)
	ctx := context.Background()

	if _, err := svc.Register(ctx, auth.RegisterInput{Username: "demo", Email: "demo@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// login twice: the password hash must come from the store every time
	var token string
	for i := 0; i < 2; i++ {
		resp, err := svc.Login(ctx, "demo", "password123")
		if err != nil {
			t.Fatalf("Login %d failed: %v", i, err)
		}
		token = resp.AccessToken
	}
	if base.byName != 2 {
		t.Errorf("expected username lookups to bypass the cache, got %d", base.byName)
	}

	for i := 0; i < 5; i++ {
		user, err := svc.Authenticate(ctx, token)
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Username != "demo" {
			t.Errorf("unexpected user %+v", user)
		}
		if i > 0 && user.PasswordHash != "" {
			t.Error("expected the password hash to stay out of the cache")
		}
	}
	if base.byID != 1 {
		t.Errorf("expected one store lookup for five authentications, got %d", base.byID)
	}

	// dropping the namespace is how an operator evicts cached users
	if err := reg.ClearNamespace(ctx, "user"); err != nil {
		t.Fatal(err)
	}
	svc.Authenticate(ctx, token)
	if base.byID != 2 {
		t.Errorf("expected a cleared namespace to force a reload, got %d lookups", base.byID)
	}
}
