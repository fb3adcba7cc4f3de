package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flightprice/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS prediction_logs (
		id               UUID PRIMARY KEY,
		airline          TEXT NOT NULL,
		flight           TEXT NOT NULL,
		source_city      TEXT NOT NULL,
		departure_time   TEXT NOT NULL,
		stops            TEXT NOT NULL,
		arrival_time     TEXT NOT NULL,
		destination_city TEXT NOT NULL,
		class            TEXT NOT NULL,
		duration         DOUBLE PRECISION NOT NULL,
		days_left        INTEGER NOT NULL,
		predicted_price  DOUBLE PRECISION NOT NULL,
		currency         TEXT NOT NULL,
		fallback_fields  TEXT[] NOT NULL DEFAULT '{}',
		created_at       TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS prediction_logs_created_at_idx ON prediction_logs (created_at DESC);
`

// PostgresRepository implements domain.PredictionRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the prediction_logs table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SavePredictionLog persists a served prediction to PostgreSQL
func (r *PostgresRepository) SavePredictionLog(ctx context.Context, entry domain.PredictionLog) error {
	query := `
		INSERT INTO prediction_logs (
			id, airline, flight, source_city, departure_time, stops, arrival_time,
			destination_city, class, duration, days_left,
			predicted_price, currency, fallback_fields, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	f := entry.Flight
	_, err := r.pool.Exec(ctx, query,
		entry.ID, f.Airline, f.Flight, f.SourceCity, f.DepartureTime, f.Stops, f.ArrivalTime,
		f.DestinationCity, f.Class, f.Duration, f.DaysLeft,
		entry.PredictedPrice, entry.Currency, fieldNames(entry.FallbackFields), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save prediction log: %w", err)
	}

	return nil
}

// RecentPredictionLogs retrieves served predictions from PostgreSQL
func (r *PostgresRepository) RecentPredictionLogs(ctx context.Context, from, to time.Time, limit int) ([]domain.PredictionLog, error) {
	query := `
		SELECT id, airline, flight, source_city, departure_time, stops, arrival_time,
			   destination_city, class, duration, days_left,
			   predicted_price, currency, fallback_fields, created_at
		FROM prediction_logs
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query prediction logs: %w", err)
	}
	defer rows.Close()

	var results []domain.PredictionLog
	for rows.Next() {
		var (
			e         domain.PredictionLog
			fallbacks []string
		)
		err := rows.Scan(
			&e.ID, &e.Flight.Airline, &e.Flight.Flight, &e.Flight.SourceCity, &e.Flight.DepartureTime,
			&e.Flight.Stops, &e.Flight.ArrivalTime, &e.Flight.DestinationCity, &e.Flight.Class,
			&e.Flight.Duration, &e.Flight.DaysLeft,
			&e.PredictedPrice, &e.Currency, &fallbacks, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan prediction log row: %w", err)
		}
		for _, name := range fallbacks {
			e.FallbackFields = append(e.FallbackFields, domain.Field(name))
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read prediction logs: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func fieldNames(fields []domain.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}
