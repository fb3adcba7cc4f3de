package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flightprice/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, predictionSvc *service.PredictionService, dbEnabled bool) {
	handler := NewHandler(predictionSvc, dbEnabled)

	app.Get("/", handler.Root)
	app.Post("/predict", handler.Predict)

	// Vocabulary endpoints feed the client's dropdowns
	for _, r := range vocabularyRoutes {
		app.Get(r.path, handler.vocabulary(r.key, r.field))
	}

	// Operational endpoints
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/predictions/recent", handler.RecentPredictions)
}
