package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-storefront/store"
	"github.com/techmaster-vietnam/goerrorkit"
)

const localsUser = "user"

// RequireAuth rejects requests without a valid token and stores the
// authenticated user in the request locals.
func (s *Service) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return goerrorkit.NewAuthError(401, "Missing token")
		}

		user, err := s.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(localsUser, user)
		return c.Next()
	}
}

// extractToken reads a bearer token from the Authorization header, falling
// back to the token cookie.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies("token")
}

// UserFromContext returns the user stored by RequireAuth.
func UserFromContext(c *fiber.Ctx) (*store.User, bool) {
	user, ok := c.Locals(localsUser).(*store.User)
	return user, ok
}
