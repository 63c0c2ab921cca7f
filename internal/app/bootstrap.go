package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pitchmatch/internal/config"
	"pitchmatch/internal/delivery/http/handler"
	"pitchmatch/internal/delivery/http/middleware"
	"pitchmatch/internal/delivery/http/routes"
	v1 "pitchmatch/internal/delivery/http/routes/v1"
	"pitchmatch/internal/scheduler"
	"pitchmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	WS        *http.Server
	Scheduler *scheduler.Scheduler
	Container *Container
}

// New builds the HTTP app on top of an existing container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:     c.Config.App.AppName,
		ReadTimeout: 30 * time.Second,
		// Batch runs and deck analysis may take up to their own timeouts.
		WriteTimeout: c.Config.Matching.BatchTimeout + c.Config.Extraction.Timeout + 10*time.Second,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	a := &App{
		Fiber:     f,
		Scheduler: scheduler.New(c.Batch, c.Config.Matching.RecalcInterval, c.Logger.Named("scheduler")),
		Container: c,
	}

	if addr, err := ListenAddr(c.Config.App.WSPort); err == nil {
		a.WS = &http.Server{
			Addr:              addr,
			Handler:           ws.NewHandler(c.Hub, c.JWT, c.Logger.Named("ws")).Mux(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return a
}

// Bootstrap connects every dependency, optionally migrates and seeds, and
// returns the app with its cleanup.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if cfg.Database.RunMigrations {
		n, err := c.Migrate(ctx)
		if err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		c.Logger.Info("migrations applied", zap.Int("count", n))
	}
	if cfg.Database.RunSeeders {
		if err := c.Seed(ctx); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("run seeders: %w", err)
		}
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	api := v1.Handlers{
		Auth:     middleware.NewAuthMiddleware(c.JWT),
		Cron:     middleware.NewCronAuthMiddleware(c.Config.Matching.CronSecret, c.Logger.Named("cron")),
		Match:    handler.NewMatchHandler(c.Matching, c.Board),
		Batch:    handler.NewBatchHandler(c.Batch, c.Logger.Named("batch")),
		Startup:  handler.NewStartupHandler(c.Profiles, c.Board, c.Analysis),
		Investor: handler.NewInvestorHandler(c.Profiles, c.Board, c.Analysis),
	}

	routes.NewRegistry(handler.NewHealthHandler(c.DB, c.Cache), api).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
