package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Dataset source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Dataset
	DatasetSource string // "csv" or "postgres"
	DatasetPath   string // CSV roster path (csv source)
	PostgresURL   string // players table (postgres source)

	// Model artifacts
	ModelDir    string
	ModelWarmup bool

	// Audit pipeline
	ClickHouseURL string
	RedisURL      string
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		DatasetSource: strings.ToLower(getEnv("DATASET_SOURCE", SourceCSV)),

		ModelWarmup: getEnvBool("MODEL_WARMUP", true),

		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		QueueSize:     getEnvInt("QUEUE_SIZE", 1000),
		BatchSize:     getEnvInt("BATCH_SIZE", 100),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	switch cfg.DatasetSource {
	case SourceCSV:
		if cfg.DatasetPath, err = getEnvRequired("DATASET_PATH"); err != nil {
			return nil, err
		}
	case SourcePostgres:
		if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown DATASET_SOURCE: %q", cfg.DatasetSource)
	}
	if cfg.ModelDir, err = getEnvRequired("MODEL_DIR"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
