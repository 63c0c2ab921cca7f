package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pitchmatch/internal/app"
	"pitchmatch/internal/config"
	"pitchmatch/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App.LogJSON, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	bootstrap, cleanup, err := app.Bootstrap(cfg, lg)
	if err != nil {
		lg.Fatal("failed to bootstrap app", zap.Error(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			lg.Error("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		lg.Fatal("invalid HTTP port", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go bootstrap.Container.Hub.Run(ctx)
	go bootstrap.Scheduler.Run(ctx)

	errCh := make(chan error, 2)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()
	if bootstrap.WS != nil {
		go func() {
			lg.Info("websocket listening", zap.String("addr", bootstrap.WS.Addr))
			if err := bootstrap.WS.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("server error", zap.Error(err))
		}
	case sig := <-sigCh:
		lg.Info("shutting down", zap.String("signal", sig.String()))
	}

	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if bootstrap.WS != nil {
		if err := bootstrap.WS.Shutdown(shutdownCtx); err != nil {
			lg.Error("websocket shutdown error", zap.Error(err))
		}
	}
	if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("shutdown error", zap.Error(err))
	}
}
