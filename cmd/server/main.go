package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flightprice/backend/internal/config"
	"github.com/flightprice/backend/internal/delivery/http"
	"github.com/flightprice/backend/internal/domain"
	"github.com/flightprice/backend/internal/logger"
	"github.com/flightprice/backend/internal/ml"
	"github.com/flightprice/backend/internal/repository/postgres"
	"github.com/flightprice/backend/internal/service"
)

func main() {
	// Configuration (.env, optional config.yaml, environment)
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured(config.LoggingConfig{Level: "info"}).Error("Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging)
	defer func() { _ = log.Sync() }()

	// Artifact bundle; the service does not start without it
	bundle, err := ml.LoadBundle(cfg.Artifacts.ModelPath, cfg.Artifacts.EncodersPath)
	if err != nil {
		log.WithError(err).Error("Failed to load model artifacts", map[string]interface{}{
			"model_path":    cfg.Artifacts.ModelPath,
			"encoders_path": cfg.Artifacts.EncodersPath,
		})
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Model artifacts loaded", map[string]interface{}{
		"model_path":    cfg.Artifacts.ModelPath,
		"encoders_path": cfg.Artifacts.EncodersPath,
		"airlines":      len(bundle.Vocabulary(domain.FieldAirline)),
	})

	// Dependency Injection: Repositories
	pool := connectDatabase(cfg, log)
	if pool != nil {
		defer pool.Close()
	}

	var predictionRepo service.PredictionRepository
	if pool != nil {
		predictionRepo = postgres.NewPostgresRepository(pool)
	} else {
		predictionRepo = postgres.NewMockRepository()
	}

	// Dependency Injection: Services
	predictionSvc := service.NewPredictionService(bundle, predictionRepo, log)

	app := http.NewApp(cfg)
	http.SetupRoutes(app, predictionSvc, pool != nil)

	// Graceful shutdown
	go func() {
		log.Info("Server starting", map[string]interface{}{
			"port":        cfg.Server.Port,
			"environment": cfg.App.Environment,
		})
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.WithError(err).Error("Server error", nil)
			_ = log.Sync()
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)
	if err := app.ShutdownWithTimeout(config.GetDuration(cfg.Server.ShutdownTimeout)); err != nil {
		log.WithError(err).Warn("Server forced to shutdown", nil)
	}
	predictionSvc.WaitBackground()
	log.Info("Server exited gracefully", nil)
}

// connectDatabase opens the prediction log store. A missing URL or an
// unreachable database leaves the service running without persistence.
func connectDatabase(cfg *config.Config, log logger.Logger) *pgxpool.Pool {
	if cfg.Database.URL == "" {
		log.Info("DATABASE_URL not set, prediction logs kept in memory", nil)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Database.ConnectTimeout))
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.WithError(err).Warn("Could not connect to database, prediction logs kept in memory", nil)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Warn("Database unreachable, prediction logs kept in memory", nil)
		pool.Close()
		return nil
	}

	if err := postgres.NewPostgresRepository(pool).EnsureSchema(ctx); err != nil {
		log.WithError(err).Warn("Could not prepare prediction_logs table", nil)
	}

	log.Info("Connected to PostgreSQL", nil)
	return pool
}
