package middleware

import (
	"strings"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/config"
	"bearinmind/backend/models"
	"bearinmind/backend/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Authenticator turns a bearer token into a caller identity.
type Authenticator interface {
	Authenticate(token string) (services.Identity, error)
}

// AuthMiddleware reads the token from the Authorization header or, for web
// clients, from the token cookie. A missing or broken token leaves the request
// anonymous.
func AuthMiddleware(auth Authenticator, cfg *config.Config, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c, cfg)
		if token == "" {
			return c.Next()
		}

		identity, err := auth.Authenticate(token)
		if err != nil {
			logger.Warn("rejected auth token",
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Error(err))
			return c.Next()
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, cfg *config.Config) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, cfg.JWTHeaderPrefix); ok {
			return strings.TrimSpace(token)
		}
	}
	return c.Cookies(cfg.JWTCookieName)
}

// CurrentIdentity returns the identity stored by AuthMiddleware.
func CurrentIdentity(c *fiber.Ctx) (services.Identity, bool) {
	identity, ok := c.Locals(identityKey).(services.Identity)
	return identity, ok
}

// RequireAuth rejects anonymous requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentIdentity(c); !ok {
			return apperrors.Unauthorized("session", apperrors.INCORRECT_CREDENTIALS)
		}
		return c.Next()
	}
}

// RoleRequired lets through callers holding role, directly or through a role
// that implies it.
func RoleRequired(role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return apperrors.Unauthorized("session", apperrors.INCORRECT_CREDENTIALS)
		}
		if !identity.HasRole(role) {
			return apperrors.Forbidden("session", apperrors.FORBIDDEN).
				With("userId", identity.UserID).
				With("requiredRole", role)
		}
		return c.Next()
	}
}
