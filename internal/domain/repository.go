package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PredictionRequest is the /predict body. The cabin class travels as
// flight_class on the wire and becomes Flight.Class internally.
type PredictionRequest struct {
	Airline         string  `json:"airline"`
	Flight          string  `json:"flight"`
	SourceCity      string  `json:"source_city"`
	DepartureTime   string  `json:"departure_time"`
	Stops           string  `json:"stops"`
	ArrivalTime     string  `json:"arrival_time"`
	DestinationCity string  `json:"destination_city"`
	FlightClass     string  `json:"flight_class"`
	Duration        float64 `json:"duration"`
	DaysLeft        float64 `json:"days_left"`
}

// ToFlight maps boundary naming onto the internal flight record
func (r PredictionRequest) ToFlight() Flight {
	return Flight{
		Airline:         r.Airline,
		Flight:          r.Flight,
		SourceCity:      r.SourceCity,
		DepartureTime:   r.DepartureTime,
		Stops:           r.Stops,
		ArrivalTime:     r.ArrivalTime,
		DestinationCity: r.DestinationCity,
		Class:           r.FlightClass,
		Duration:        r.Duration,
		DaysLeft:        int(r.DaysLeft),
	}
}

// PredictionResponse is the /predict reply
type PredictionResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
	Currency       string  `json:"currency"`
}

// PredictionLog is one served prediction, kept for offline analysis
type PredictionLog struct {
	ID             uuid.UUID `json:"id"`
	Flight         Flight    `json:"flight"`
	PredictedPrice float64   `json:"predicted_price"`
	Currency       string    `json:"currency"`
	FallbackFields []Field   `json:"fallback_fields,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PredictionRepository defines the interface for prediction persistence
type PredictionRepository interface {
	// SavePredictionLog persists a served prediction
	SavePredictionLog(ctx context.Context, entry PredictionLog) error

	// RecentPredictionLogs returns predictions served in [from, to], newest first
	RecentPredictionLogs(ctx context.Context, from, to time.Time, limit int) ([]PredictionLog, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}
