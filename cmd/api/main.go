package main

import (
	"context"
	"credit-account/internal/account"
	"credit-account/internal/api"
	"credit-account/internal/auth"
	"credit-account/internal/config"
	"credit-account/internal/observability"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.GetLoggerFromEnv(cfg.LogLevel, cfg.ServiceName)
	defer logger.Sync()

	logger.Info("Starting credit account API", zap.String("version", "1.0.0"))

	// Metrics
	var (
		metrics  *observability.Metrics
		meter    *observability.AccountMeter
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = observability.NewMetrics(reg)
		gatherer = reg

		shutdownOtel, err := observability.SetupOpenTelemetry(cfg.ServiceName, reg, logger)
		if err != nil {
			logger.Fatal("Failed to set up OpenTelemetry", zap.Error(err))
		}
		defer shutdownOtel()

		meter, err = observability.NewAccountMeter()
		if err != nil {
			logger.Fatal("Failed to create account meter", zap.Error(err))
		}
	}

	guard, err := auth.NewOperatorGuard(cfg.OperatorAPIKey, logger)
	if err != nil {
		logger.Fatal("Failed to set up operator guard", zap.Error(err))
	}

	handlers := api.NewHandlers(logger, metrics, meter, account.New())

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.Error("Fiber error", zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	api.SetupRoutes(app, logger, metrics, gatherer, handlers, guard)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Credit account API started",
		zap.String("port", cfg.Port),
		zap.String("account_id", handlers.AccountID().String()))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Failed to shutdown gracefully", zap.Error(err))
	}

	logger.Info("Credit account API stopped")
}
