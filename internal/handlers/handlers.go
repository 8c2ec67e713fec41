package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/scoutcentral/scout-api/internal/dataset"
	"github.com/scoutcentral/scout-api/internal/logic"
	"github.com/scoutcentral/scout-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// AuditQueue defines the interface for the prediction audit worker pool
type AuditQueue interface {
	Enqueue(event *models.PredictionEvent) bool
	QueueDepth() int
}

type Config struct {
	AuditPool  AuditQueue
	Dataset    dataset.Store
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Comparison logic.ComparisonService
	Prediction logic.PredictionService
}

type Handler struct {
	pool       AuditQueue
	ds         dataset.Store
	ch         driver.Conn
	redis      *redis.Client
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	comparison logic.ComparisonService
	prediction logic.PredictionService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:       cfg.AuditPool,
		ds:         cfg.Dataset,
		ch:         cfg.ClickHouse,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		comparison: cfg.Comparison,
		prediction: cfg.Prediction,
	}
}
