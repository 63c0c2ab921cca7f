package routes

import (
	"pitchmatch/internal/delivery/http/handler"
	v1 "pitchmatch/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// Registry mounts the health probe at the root and the versioned API under
// /api/v1.
type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, api v1.Handlers) *Registry {
	return &Registry{health: health, v1: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	v1.Register(app.Group("/api/v1"), r.v1)
}
