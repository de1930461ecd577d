package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tasky-suite/workspace-service/internal/api/dto"
	"github.com/tasky-suite/workspace-service/internal/auth"
	"github.com/tasky-suite/workspace-service/internal/domain"
	"github.com/tasky-suite/workspace-service/internal/repository"
	"github.com/tasky-suite/workspace-service/internal/service"
	apperrors "github.com/tasky-suite/workspace-service/pkg/util"
)

// AuthHandler exposes registration, login and the session probe endpoints.
type AuthHandler struct {
	auth       *service.AuthService
	cookieName string
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, cookieName string) *AuthHandler {
	if cookieName == "" {
		cookieName = "token"
	}
	return &AuthHandler{auth: authService, cookieName: cookieName}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FirstName == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("first name, email and password required", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperrors.NewConflict("email already registered", nil)
		}
		return err
	}

	h.setSessionCookie(c, token, exp)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"ok":   true,
		"user": userPayload(user),
	})
}

// Login handles POST /api/login. Failed credentials keep the legacy
// 200-with-ok:false contract of the auth surface.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return auth.Reject(c, "Invalid email or password")
		}
		return err
	}

	h.setSessionCookie(c, token, exp)
	return c.JSON(fiber.Map{
		"ok":   true,
		"user": userPayload(user),
	})
}

// Logout handles POST /api/logout by expiring the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"ok": true})
}

// CurrentUser handles GET /api/auth/user. The session middleware has
// already verified the token; this just echoes the identity.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return auth.Reject(c, "Access Denied: No token provided")
	}
	return c.JSON(fiber.Map{"ok": true, "user": identity})
}

// CheckAdmin handles GET /api/checkadmin, reached only through the admin
// role gate.
func (h *AuthHandler) CheckAdmin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "message": "Welcome Admin"})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func userPayload(user *domain.User) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"role":      user.Role,
	}
}
