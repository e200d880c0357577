package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/Austin-SALVATORE/data-visual-water-quality/internal/api/http"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/charts"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/charts/basemap"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/config"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/logger"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality/hubeau"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/scheduler"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/store"
)

func main() {
	dotenvErr := config.LoadDotEnv()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "development").Fatalf("failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.Env)
	if dotenvErr != nil {
		log.Infof("no .env file loaded: %v", dotenvErr)
	}

	// Shared HTTP client for outbound Hub'Eau calls. Zero timeout means none.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	var fetcher quality.Fetcher = hubeau.NewClient(httpClient, cfg.HubeauBaseURL, log)
	if cfg.UpstreamRateLimit > 0 {
		fetcher = hubeau.NewRateLimitedFetcher(fetcher, cfg.UpstreamRateLimit, 1)
	}

	world, err := basemap.Load(cfg.BasemapPath)
	if err != nil {
		log.Fatalf("failed to load basemap: %v", err)
	}

	// Probe history with configured retention.
	probes := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	service := quality.NewService(fetcher, charts.NewRenderers(world), probes, log)

	sched := scheduler.New(cfg.ProbeInterval, service, log)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "water-quality-viz",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${pid} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
		Output: log.Writer(),
	}))

	httpapi.RegisterRoutes(app, service, log)

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
