package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	httpapi "github.com/armstrongwx/weather-duel/internal/api/http"
	"github.com/armstrongwx/weather-duel/internal/config"
	"github.com/armstrongwx/weather-duel/internal/openmeteo"
	"github.com/armstrongwx/weather-duel/internal/scheduler"
	"github.com/armstrongwx/weather-duel/internal/store"
	"github.com/armstrongwx/weather-duel/internal/weather"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	// Temporal alignment is pinned to the reporting timezone, never the
	// host zone.
	timeline, err := weather.NewTimeline(cfg.ReportingTZ)
	if err != nil {
		log.WithError(err).Fatal("failed to set up reporting timezone")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Open-Meteo client with resilience (backoff + circuit breakers).
	meteo := openmeteo.NewClient(httpClient, cfg.ReportingTZ)

	// In-memory view history with configured retention.
	views := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// File-backed settings and streak persistence.
	state, err := store.NewFileStateStore(cfg.StateFile)
	if err != nil {
		log.WithError(err).Fatal("failed to set up state store")
	}

	// Core service orchestrating fetches, scoring and streaks.
	service := weather.NewService(meteo, views, state, timeline, cfg.Defaults, log)

	// Initial refresh so the API has data right away. Failure is not
	// fatal; the scheduler and manual refreshes will retry.
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := service.Refresh(ctx); err != nil {
			log.WithError(err).Warn("initial refresh failed; serving without data until a refresh succeeds")
		}
	}()

	// Scheduler that periodically refreshes the comparison.
	sched := scheduler.New(service, cfg.RefreshInterval, log)
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("failed to start scheduler")
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-duel",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-duel",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
}
