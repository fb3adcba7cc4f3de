package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/flightprice/backend/internal/domain"
)

// mockCapacity bounds the in-memory log kept in demo mode
const mockCapacity = 1000

// MockRepository implements domain.PredictionRepository for testing/demo mode.
// It keeps the most recent predictions in memory.
type MockRepository struct {
	mu      sync.Mutex
	entries []domain.PredictionLog
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SavePredictionLog keeps the entry in memory, dropping the oldest past capacity
func (r *MockRepository) SavePredictionLog(ctx context.Context, entry domain.PredictionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	if len(r.entries) > mockCapacity {
		r.entries = append([]domain.PredictionLog(nil), r.entries[len(r.entries)-mockCapacity:]...)
	}
	return nil
}

// RecentPredictionLogs returns the in-memory entries in [from, to], newest first
func (r *MockRepository) RecentPredictionLogs(ctx context.Context, from, to time.Time, limit int) ([]domain.PredictionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []domain.PredictionLog
	for _, e := range r.entries {
		if e.CreatedAt.Before(from) || e.CreatedAt.After(to) {
			continue
		}
		results = append(results, e)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
