package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flightprice/backend/internal/domain"
	"github.com/flightprice/backend/internal/logger"
	"github.com/flightprice/backend/internal/metrics"
	"github.com/flightprice/backend/internal/ml"
	"github.com/flightprice/backend/pkg/utils"
)

// PredictionService prices flights against a loaded artifact bundle
type PredictionService struct {
	bundle *ml.Bundle
	repo   PredictionRepository
	log    logger.Logger

	wgBg sync.WaitGroup // tracks background log writes for graceful shutdown
}

// NewPredictionService creates a new prediction service. The bundle must
// already be loaded; the service never modifies it.
func NewPredictionService(bundle *ml.Bundle, repo PredictionRepository, log logger.Logger) *PredictionService {
	return &PredictionService{
		bundle: bundle,
		repo:   repo,
		log:    log,
	}
}

// WaitBackground blocks until all background log writes complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *PredictionService) WaitBackground() {
	s.wgBg.Wait()
}

// PredictJSON validates a raw /predict body and prices it
func (s *PredictionService) PredictJSON(ctx context.Context, body []byte) (domain.PredictionResponse, error) {
	flight, err := ParsePredictionRequest(body)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return domain.PredictionResponse{}, err
	}
	return s.Predict(ctx, flight)
}

// Predict encodes the flight, evaluates the model and tags the price with
// the currency. Categorical values outside the vocabulary are priced as the
// first sorted label of their field.
func (s *PredictionService) Predict(ctx context.Context, flight domain.Flight) (resp domain.PredictionResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("prediction: unexpected failure: %v", r)
		}
		if err != nil && !errors.Is(err, ErrInvalidInput) {
			metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		}
	}()

	if flight.Duration <= 0 || !utils.IsFinite(flight.Duration) {
		metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return resp, fmt.Errorf("%w: duration must be a positive number", ErrInvalidInput)
	}
	if flight.DaysLeft < 0 || flight.DaysLeft > domain.MaxDaysLeft {
		metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return resp, fmt.Errorf("%w: days_left must be between 0 and %d", ErrInvalidInput, domain.MaxDaysLeft)
	}

	start := time.Now()
	price, fallbacks, err := s.bundle.Predict(flight)
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return resp, fmt.Errorf("prediction: %w", err)
	}
	if !utils.IsFinite(price) {
		return resp, errors.New("prediction: model produced a non-finite price")
	}

	for _, field := range fallbacks {
		metrics.EncoderFallbacks.WithLabelValues(string(field)).Inc()
		label, _ := flight.Category(field)
		s.log.Debug("Unseen category, using first vocabulary label", map[string]interface{}{
			"field": string(field),
			"label": label,
		})
	}

	resp = domain.PredictionResponse{
		PredictedPrice: price,
		Currency:       domain.Currency,
	}
	metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	s.saveLog(domain.PredictionLog{
		ID:             uuid.New(),
		Flight:         flight,
		PredictedPrice: price,
		Currency:       resp.Currency,
		FallbackFields: fallbacks,
		CreatedAt:      time.Now().UTC(),
	})

	return resp, nil
}

// saveLog persists the prediction asynchronously (tracked for graceful shutdown)
func (s *PredictionService) saveLog(entry domain.PredictionLog) {
	if s.repo == nil {
		return
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SavePredictionLog(bgCtx, entry); err != nil {
			metrics.PredictionLogFailures.Inc()
			s.log.WithError(err).Warn("Failed to save prediction log", map[string]interface{}{
				"id": entry.ID.String(),
			})
		}
	}()
}

// Vocabulary returns the sorted labels a categorical field was trained on
func (s *PredictionService) Vocabulary(field domain.Field) []string {
	return s.bundle.Vocabulary(field)
}

// RecentPredictions returns predictions served in the last hours, newest first
func (s *PredictionService) RecentPredictions(ctx context.Context, hours, limit int) ([]domain.PredictionLog, error) {
	if s.repo == nil {
		return nil, nil
	}

	to := time.Now().UTC()
	from := to.Add(-time.Duration(hours) * time.Hour)

	logs, err := s.repo.RecentPredictionLogs(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("prediction: failed to fetch recent predictions: %w", err)
	}
	return logs, nil
}

// Health reports the prediction log store's connectivity
func (s *PredictionService) Health(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Health(ctx)
}
