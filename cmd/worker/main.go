// cmd/worker/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/pkg/container"
	"bookstore-catalog/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize container
	c, err := container.NewContainer(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}

	cfg := loadConfig(c.Config)

	// Startup health checks
	checker := newHealthChecker(cfg, c)
	if err := checker.checkAll(ctx); err != nil {
		c.Cleanup(context.Background())
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}
	go checker.startHealthCheckServer(ctx, cfg.HealthAddr)

	srv, err := setupAsynqServer(cfg, initializeHandlers(c))
	if err != nil {
		c.Cleanup(context.Background())
		log.Fatal().Err(err).Msg("[Worker] Failed to start")
	}

	scheduler, err := setupScheduler(cfg)
	if err != nil {
		srv.Shutdown()
		c.Cleanup(context.Background())
		log.Fatal().Err(err).Msg("[Scheduler] Failed to start")
	}

	log.Info().Msg("Bookstore catalog worker started")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	scheduler.Shutdown()
	srv.Shutdown()
	_ = checker.Close()

	cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c.Cleanup(cleanupCtx)

	log.Info().Msg("[Shutdown] Stopped")
}
