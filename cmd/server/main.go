package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/scoutcentral/scout-api/internal/artifacts"
	"github.com/scoutcentral/scout-api/internal/config"
	"github.com/scoutcentral/scout-api/internal/dataset"
	"github.com/scoutcentral/scout-api/internal/handlers"
	"github.com/scoutcentral/scout-api/internal/logic"
	"github.com/scoutcentral/scout-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Roster snapshot, immutable for the lifetime of the process.
	ds, report, err := loadDataset(ctx, cfg)
	if err != nil {
		sugar.Fatalw("Failed to load dataset", "source", cfg.DatasetSource, "error", err)
	}
	sugar.Infow("Dataset loaded",
		"source", cfg.DatasetSource,
		"players", report.Kept,
		"skipped", report.Skipped,
	)
	if len(report.Duplicates) > 0 {
		sugar.Warnw("Duplicate player names in dataset; first occurrence wins",
			"names", report.Duplicates)
	}

	// ClickHouse (prediction audit trail)
	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Invalid ClickHouse URL", "error", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer ch.Close()

	// Redis (live prediction counters)
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	// Trained artifacts
	store := artifacts.NewFileStore(cfg.ModelDir)
	prediction := logic.NewPredictionService(store, logger)
	if cfg.ModelWarmup {
		if err := prediction.Warmup(ctx); err != nil {
			sugar.Fatalw("Model warmup failed", "modelDir", cfg.ModelDir, "error", err)
		}
		sugar.Infow("Model artifacts warmed up", "modelDir", cfg.ModelDir)
	}
	comparison := logic.NewComparisonService(ds, logger)

	// Audit pipeline
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    ch,
		Redis:         rdb,
		Logger:        logger,
	})
	pool.Start(ctx)
	defer pool.Stop()

	h := handlers.New(handlers.Config{
		AuditPool:  pool,
		Dataset:    ds,
		ClickHouse: ch,
		Redis:      rdb,
		Logger:     logger,
		Comparison: comparison,
		Prediction: prediction,
	})

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.RequestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/players", h.ListPlayers)
		r.Get("/players/{name}", h.GetPlayer)
		r.Get("/players/{name}/comparison", h.GetPlayerComparison)
		r.Post("/predict", h.PredictPerformance)
		r.Post("/models/reload", h.ReloadModels)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}
}

// loadDataset builds the roster snapshot from the configured source.
func loadDataset(ctx context.Context, cfg *config.Config) (dataset.Store, *dataset.LoadReport, error) {
	switch cfg.DatasetSource {
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		return dataset.LoadPostgres(ctx, pool)
	default:
		return dataset.LoadCSV(cfg.DatasetPath)
	}
}
