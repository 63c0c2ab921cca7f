package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// CronAuthMiddleware guards scheduled-job endpoints with a shared secret sent
// as a bearer token. It runs before any data access.
type CronAuthMiddleware struct {
	secret string
	logger *zap.Logger
}

func NewCronAuthMiddleware(secret string, logger *zap.Logger) *CronAuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronAuthMiddleware{secret: secret, logger: logger}
}

func (m *CronAuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.secret == "" {
			m.logger.Error("cron secret is not configured", zap.String("path", c.Path()))
			return NewAppError(fiber.StatusInternalServerError, "Server configuration error", nil, nil)
		}

		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(m.secret)) != 1 {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		return c.Next()
	}
}
