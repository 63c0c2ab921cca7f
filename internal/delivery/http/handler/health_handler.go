package handler

import (
	"context"
	"time"

	"pitchmatch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthPingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Redis    string    `json:"redis"`
	Time     time.Time `json:"time"`
}

// HealthHandler reports "ok" when every dependency answers, "degraded" when
// only the cache is down and "unhealthy" with a 503 when the database is.
type HealthHandler struct {
	db    Pinger
	cache Pinger
	now   func() time.Time
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	out := HealthResponse{
		Status:   "ok",
		Database: probe(c.Context(), h.db),
		Redis:    probe(c.Context(), h.cache),
		Time:     h.now().UTC(),
	}

	status := fiber.StatusOK
	switch {
	case out.Database != "up":
		out.Status = "unhealthy"
		status = fiber.StatusServiceUnavailable
	case out.Redis != "up":
		out.Status = "degraded"
	}

	return response.Success(c, status, "", out)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
