package handlers

import (
	"context"

	"github.com/scoutcentral/scout-api/internal/models"
)

// MockComparisonService implements logic.ComparisonService for testing
type MockComparisonService struct {
	CompareFunc func(ctx context.Context, playerName string, features []string) (*models.NormalizedComparison, error)
}

func (m *MockComparisonService) Compare(ctx context.Context, playerName string, features []string) (*models.NormalizedComparison, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, playerName, features)
	}
	return &models.NormalizedComparison{}, nil
}

// MockPredictionService implements logic.PredictionService for testing
type MockPredictionService struct {
	PredictFunc func(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error)
	ReloadCalls int
}

func (m *MockPredictionService) Predict(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, req)
	}
	return &models.PredictionResult{}, nil
}

func (m *MockPredictionService) Reload() {
	m.ReloadCalls++
}

func (m *MockPredictionService) Warmup(ctx context.Context) error {
	return nil
}

// MockAuditQueue implements AuditQueue for testing
type MockAuditQueue struct {
	Events []*models.PredictionEvent
}

func (m *MockAuditQueue) Enqueue(event *models.PredictionEvent) bool {
	m.Events = append(m.Events, event)
	return true
}

func (m *MockAuditQueue) QueueDepth() int {
	return len(m.Events)
}

// MockDatasetStore implements dataset.Store over a fixed slice
type MockDatasetStore struct {
	players []models.PlayerRecord
}

func (m *MockDatasetStore) Players() []models.PlayerRecord { return m.players }

func (m *MockDatasetStore) FindByName(name string) (*models.PlayerRecord, bool) {
	for i := range m.players {
		if m.players[i].Name == name {
			p := m.players[i]
			return &p, true
		}
	}
	return nil, false
}

func (m *MockDatasetStore) PeersOf(pos models.Position) []models.PlayerRecord {
	var out []models.PlayerRecord
	for _, p := range m.players {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}

func (m *MockDatasetStore) Names() []string {
	out := make([]string, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, p.Name)
	}
	return out
}

func (m *MockDatasetStore) Len() int { return len(m.players) }
