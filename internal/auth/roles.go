package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/domain"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// RequireRole ensures the caller is authenticated with the given role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgAuthenticationRequired)
		}
		if id.Role != role {
			return apperrors.NewForbidden(string(role) + " account required")
		}
		return c.Next()
	}
}

// RequireProvider ensures a provider is authenticated.
func RequireProvider() fiber.Handler {
	return RequireRole(domain.RoleProvider)
}

// RequireClient ensures a client is authenticated.
func RequireClient() fiber.Handler {
	return RequireRole(domain.RoleClient)
}
