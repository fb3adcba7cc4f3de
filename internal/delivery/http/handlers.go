package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/flightprice/backend/internal/domain"
	"github.com/flightprice/backend/internal/service"
)

const (
	serviceName = "flightprice-backend"
	version     = "1.0.0"
)

// vocabularyRoutes maps each vocabulary endpoint to its response key and the
// categorical field it lists. Cities are listed from the source column.
var vocabularyRoutes = []struct {
	path  string
	key   string
	field domain.Field
}{
	{"/airlines", "airlines", domain.FieldAirline},
	{"/cities", "cities", domain.FieldSourceCity},
	{"/departure_times", "departure_times", domain.FieldDepartureTime},
	{"/stops", "stops", domain.FieldStops},
	{"/arrival_times", "arrival_times", domain.FieldArrivalTime},
	{"/classes", "classes", domain.FieldClass},
}

// Handler contains all HTTP handlers
type Handler struct {
	predictionSvc *service.PredictionService
	dbEnabled     bool
}

// NewHandler creates a new handler. dbEnabled reports whether predictions
// are logged to a real database, which only changes the health report.
func NewHandler(predictionSvc *service.PredictionService, dbEnabled bool) *Handler {
	return &Handler{
		predictionSvc: predictionSvc,
		dbEnabled:     dbEnabled,
	}
}

// Root returns the API banner
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Flight Price Prediction API",
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	database := "disabled"
	if h.dbEnabled {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		database = "ok"
		if err := h.predictionSvc.Health(ctx); err != nil {
			database = "unavailable"
		}
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  serviceName,
		"version":  version,
		"database": database,
	})
}

// Predict prices a flight. Every failure, including malformed input,
// is reported as a 500 with the error text in detail.
func (h *Handler) Predict(c *fiber.Ctx) error {
	resp, err := h.predictionSvc.PredictJSON(c.Context(), c.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Prediction error: "+err.Error())
	}

	return c.JSON(resp)
}

// vocabulary returns a handler listing one field's trained labels
func (h *Handler) vocabulary(key string, field domain.Field) fiber.Handler {
	return func(c *fiber.Ctx) error {
		labels := h.predictionSvc.Vocabulary(field)
		if labels == nil {
			labels = []string{}
		}
		return c.JSON(fiber.Map{key: labels})
	}
}

// RecentPredictions returns prediction logs within a time range
func (h *Handler) RecentPredictions(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	data, err := h.predictionSvc.RecentPredictions(c.Context(), hours, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch prediction history")
	}
	if data == nil {
		data = []domain.PredictionLog{}
	}

	return c.JSON(fiber.Map{
		"data":  data,
		"count": len(data),
	})
}

// ErrorHandler renders errors as {"detail": message}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": message,
	})
}
