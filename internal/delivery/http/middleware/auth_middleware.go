package middleware

import (
	"errors"
	"strings"

	"pitchmatch/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ctxKey int

const identityKey ctxKey = iota

// Identity is the verified caller of a request.
type Identity struct {
	UserID uuid.UUID
	Role   jwt.Role
	Email  string
}

// AuthMiddleware verifies access tokens issued by the hosted auth provider.
type AuthMiddleware struct {
	tokens jwt.Service
}

func NewAuthMiddleware(tokens jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.tokens.ValidateToken(raw)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		case err != nil:
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(identityKey, Identity{UserID: claims.UserID, Role: claims.Role, Email: claims.Email})
		return c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. It must run after
// Middleware.
func RequireRole(roles ...jwt.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, _ := c.Locals(identityKey).(Identity)
		for _, r := range roles {
			if id.Role == r {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
}

// Caller returns the identity stored by Middleware.
func Caller(c fiber.Ctx) (uuid.UUID, jwt.Role, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return uuid.Nil, "", false
	}
	return id.UserID, id.Role, true
}

// bearerToken extracts the credential from an "Authorization: Bearer x"
// header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
