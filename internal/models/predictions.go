package models

import "time"

// PredictRequest is the payload accepted by POST /api/v1/predict. Attributes
// holds every numeric metric keyed by dataset column name; which keys are
// required depends on the position.
type PredictRequest struct {
	Name        string             `json:"name"`
	Club        string             `json:"club"`
	Nationality string             `json:"nationality"`
	Position    string             `json:"position" validate:"required"`
	Attributes  map[string]float64 `json:"attributes" validate:"required"`
}

// PredictionResult is the outcome of routing a player through the
// position-specific scaler and classifier.
type PredictionResult struct {
	Position Position         `json:"position"`
	Label    PerformanceLabel `json:"label"`
	Severity string           `json:"severity"`
	Features []string         `json:"features"`
	Vector   []float64        `json:"vector"`
}

// PredictionEvent is the audit record enqueued after every successful
// prediction and batch-inserted into ClickHouse for offline retraining.
type PredictionEvent struct {
	Timestamp  time.Time
	RequestID  string
	PlayerName string
	Position   Position
	Label      PerformanceLabel
	Features   []string
	Values     []float64
}
