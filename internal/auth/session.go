package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tasky-suite/workspace-service/internal/domain"
)

const identityKey = "session_identity"

// Rejection messages mirror the original client-facing contract: auth
// failures are reported as 200 responses with ok=false, and the message does
// not reveal which check failed beyond missing-vs-invalid.
const (
	msgNoToken      = "Access Denied: No token provided"
	msgInvalidToken = "Token is invalid or expired"
)

// SessionMiddleware verifies the session cookie and attaches the resulting
// identity to the request. It is the only component that reads the cookie.
type SessionMiddleware struct {
	tokens     *TokenManager
	cookieName string
}

// NewSessionMiddleware constructs the middleware.
func NewSessionMiddleware(tokens *TokenManager, cookieName string) *SessionMiddleware {
	if cookieName == "" {
		cookieName = "token"
	}
	return &SessionMiddleware{tokens: tokens, cookieName: cookieName}
}

// CookieName returns the name of the session cookie.
func (m *SessionMiddleware) CookieName() string {
	return m.cookieName
}

// Handle verifies the session cookie for protected routes. A rejection
// short-circuits the chain; the handler is never invoked.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Cookies(m.cookieName)
	if raw == "" {
		return Reject(c, msgNoToken)
	}

	claims, err := m.tokens.Verify(raw)
	if err != nil {
		return Reject(c, msgInvalidToken)
	}

	identity := claims.Identity()
	c.Locals(identityKey, &identity)
	return c.Next()
}

// Reject writes the uniform auth rejection payload. The 200 status with an
// ok=false body is a documented wire quirk kept for client compatibility.
func Reject(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"ok": false, "message": message})
}

// IdentityFromContext retrieves the authenticated identity attached by
// SessionMiddleware.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
