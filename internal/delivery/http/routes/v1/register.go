package v1

import (
	"pitchmatch/internal/delivery/http/handler"
	"pitchmatch/internal/delivery/http/middleware"
	"pitchmatch/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth     *middleware.AuthMiddleware
	Cron     *middleware.CronAuthMiddleware
	Match    *handler.MatchHandler
	Batch    *handler.BatchHandler
	Startup  *handler.StartupHandler
	Investor *handler.InvestorHandler
}

// Register mounts the v1 API. The cron route is registered before the user
// auth group so a scheduler never needs a user token.
func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	RegisterCron(r, h.Cron, h.Batch)

	protected := r.Group("", h.Auth.Middleware())

	if h.Match != nil {
		h.Match.RegisterRoutes(protected.Group("/matches"))
	}
	if h.Startup != nil {
		h.Startup.RegisterRoutes(protected.Group("/startups", middleware.RequireRole(jwt.RoleStartup)))
	}
	if h.Investor != nil {
		h.Investor.RegisterRoutes(protected.Group("/investors", middleware.RequireRole(jwt.RoleInvestor)))
	}
}
