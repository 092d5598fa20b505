package api

import (
	"credit-account/internal/auth"
	"credit-account/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRoutes registers the account API. A nil gatherer leaves /metrics
// unregistered.
func SetupRoutes(
	app *fiber.App,
	logger *zap.Logger,
	metrics *observability.Metrics,
	gatherer prometheus.Gatherer,
	handlers *Handlers,
	guard *auth.OperatorGuard,
) {
	SetupMiddleware(app, logger, metrics)

	app.Get("/healthz", handlers.Health)

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/v1")

	acc := v1.Group("/account")
	acc.Get("/", handlers.GetAccount)
	acc.Post("/deposit", handlers.Deposit)
	acc.Post("/withdraw", handlers.Withdraw)

	// Blocked-state operations are operator only
	acc.Put("/max-credit", guard.RequireAPIKey(), handlers.SetMaxCredit)
	acc.Post("/block", guard.RequireAPIKey(), handlers.Block)
	acc.Post("/unblock", guard.RequireAPIKey(), handlers.Unblock)
}
