package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-storefront/auth"
	"github.com/goliatone/go-storefront/store"
	"github.com/techmaster-vietnam/goerrorkit"
)

// idParam reads a positive integer route parameter.
func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, goerrorkit.NewValidationError("Invalid "+name, map[string]interface{}{
			name: c.Params(name),
		})
	}
	return int64(id), nil
}

func currentUser(c *fiber.Ctx) (*store.User, error) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return nil, goerrorkit.NewAuthError(401, "Unauthorized")
	}
	return user, nil
}
