package auth

import (
	"context"
	"errors"

	"github.com/goliatone/go-storefront/store"
	"github.com/sirupsen/logrus"
	"github.com/techmaster-vietnam/goerrorkit"
)

// UserStore is the persistence the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*store.User, error)
	GetByUsername(ctx context.Context, username string) (*store.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *store.User) error
}

var _ UserStore = (*store.UserStore)(nil)

const MinPasswordLength = 6

type LoginResponse struct {
	Message     string      `json:"message"`
	AccessToken string      `json:"access_token"`
	ExpiresIn   int         `json:"expires_in"`
	User        *store.User `json:"user"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type Service struct {
	users  UserStore
	tokens *TokenIssuer
	hasher Hasher
	logger logrus.FieldLogger
}

func NewService(users UserStore, tokens *TokenIssuer, hasher Hasher, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger.WithField("service", "auth"),
	}
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load user")
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.WithField("username", username).Warn("login rejected")
		return nil, goerrorkit.NewAuthError(401, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, goerrorkit.NewSystemError(err)
	}

	return &LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
		User:        user,
	}, nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*store.User, error) {
	if len(in.Password) < MinPasswordLength {
		return nil, goerrorkit.NewValidationError("Password is too short", map[string]interface{}{
			"min_length": MinPasswordLength,
		})
	}

	exists, err := s.users.Exists(ctx, in.Username, in.Email)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to check user")
	}
	if exists {
		return nil, goerrorkit.NewBusinessError(409, "Username or email already registered")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, goerrorkit.NewSystemError(err)
	}

	user := &store.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to create user")
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// Authenticate resolves the user behind a token.
func (s *Service) Authenticate(ctx context.Context, token string) (*store.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, goerrorkit.NewAuthError(401, "Invalid token").WithData(map[string]interface{}{
			"error": err.Error(),
		})
	}

	userID, _ := claims.UserID()
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, goerrorkit.NewAuthError(401, "User no longer exists")
	}
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load user")
	}
	return user, nil
}
