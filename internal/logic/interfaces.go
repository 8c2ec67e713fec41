package logic

import (
	"context"

	"github.com/scoutcentral/scout-api/internal/models"
)

// ComparisonService computes peer-relative normalized player profiles.
type ComparisonService interface {
	Compare(ctx context.Context, playerName string, features []string) (*models.NormalizedComparison, error)
}

// PredictionService routes a raw player record through the position-specific
// scaler and classifier.
type PredictionService interface {
	Predict(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error)
	// Reload drops cached artifact pairs; the next prediction per position
	// loads fresh from the store.
	Reload()
	// Warmup eagerly loads the artifact pair for every known position.
	Warmup(ctx context.Context) error
}
