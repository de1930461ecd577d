package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tasky-suite/workspace-service/internal/domain"
)

// RequireRole gates a route on an exact role match. It must be registered
// after SessionMiddleware; if no identity is present the request is rejected
// rather than letting a misordered chain through.
func RequireRole(required domain.Role) fiber.Handler {
	message := "Insufficient role"
	if required == domain.RoleAdmin {
		message = "Only Admin can access this page"
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || identity.Role != required {
			return Reject(c, message)
		}
		return c.Next()
	}
}

// RequireAuthenticated admits any caller with a verified identity,
// regardless of role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return Reject(c, msgNoToken)
		}
		return c.Next()
	}
}
