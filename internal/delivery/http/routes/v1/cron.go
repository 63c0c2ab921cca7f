package v1

import (
	"pitchmatch/internal/delivery/http/handler"
	"pitchmatch/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

func RegisterCron(r fiber.Router, cron *middleware.CronAuthMiddleware, batch *handler.BatchHandler) {
	if r == nil || cron == nil || batch == nil {
		return
	}
	r.Post("/matches/recalculate-all", cron.Middleware(), batch.RecalculateAll)
}
