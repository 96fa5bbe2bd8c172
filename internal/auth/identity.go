package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/domain"
)

const identityLocalsKey = "auth_identity"

type identityContextKey struct{}

// Identity is the verified caller for the lifetime of one request.
type Identity struct {
	SubjectID string
	Role      domain.Role
}

// IsProvider reports whether the caller signed in as a provider.
func (i Identity) IsProvider() bool {
	return i.Role == domain.RoleProvider
}

// IdentityFromClaims resolves an Identity from verified claims.
func IdentityFromClaims(claims *Claims) Identity {
	return Identity{SubjectID: claims.SubjectID(), Role: claims.Role}
}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext retrieves the caller attached by the access policy.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok && id.SubjectID != ""
}

// CurrentIdentity is IdentityFromContext for a fiber request.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	if id, ok := c.Locals(identityLocalsKey).(Identity); ok && id.SubjectID != "" {
		return id, true
	}
	return IdentityFromContext(c.UserContext())
}

func attachIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(identityLocalsKey, id)
	c.SetUserContext(WithIdentity(c.UserContext(), id))
}
