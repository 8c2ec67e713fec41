package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/scoutcentral/scout-api/internal/logic"
	"github.com/scoutcentral/scout-api/internal/models"
)

func TestPredictPerformance(t *testing.T) {
	logger := zap.NewNop()

	validBody := `{
		"name": "Keeper",
		"position": "Goalkeeper",
		"attributes": {"Age": 28, "Appearances": 34, "Conceded": 22, "Shutouts": 15}
	}`

	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockPredictionService)
		expectedStatus int
		expectedBody   string
		expectAudit    bool
	}{
		{
			name: "Happy Path",
			body: validBody,
			mockSetup: func(m *MockPredictionService) {
				m.PredictFunc = func(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error) {
					return &models.PredictionResult{
						Position: models.PositionGoalkeeper,
						Label:    models.LabelGood,
						Severity: "green",
						Features: []string{"Age", "Appearances", "Conceded", "Shutouts"},
						Vector:   []float64{28, 34, 22, 15},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"label":"Good"`,
			expectAudit:    true,
		},
		{
			name:           "Invalid JSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Invalid JSON`,
		},
		{
			name:           "Missing Position Field",
			body:           `{"name": "X", "attributes": {"Age": 20}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Position",
			body: `{"position": "Wingback", "attributes": {"Age": 20}}`,
			mockSetup: func(m *MockPredictionService) {
				m.PredictFunc = func(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error) {
					return nil, logic.ErrInvalidPosition
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid position`,
		},
		{
			name: "Missing Feature",
			body: validBody,
			mockSetup: func(m *MockPredictionService) {
				m.PredictFunc = func(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error) {
					return nil, logic.ErrMissingFeature
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Artifact Failure Is 502",
			body: validBody,
			mockSetup: func(m *MockPredictionService) {
				m.PredictFunc = func(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error) {
					return nil, logic.ErrArtifactLoad
				}
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `model artifacts unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockPredictionService{}
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}
			audit := &MockAuditQueue{}

			h := &Handler{
				prediction: mockService,
				pool:       audit,
				logger:     logger.Sugar(),
				validator:  validator.New(),
			}

			r := httptest.NewRequest("POST", "/api/v1/predict", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.PredictPerformance(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
			if tt.expectAudit && len(audit.Events) != 1 {
				t.Errorf("expected 1 audit event, got %d", len(audit.Events))
			}
			if !tt.expectAudit && len(audit.Events) != 0 {
				t.Errorf("expected no audit events, got %d", len(audit.Events))
			}
		})
	}
}

func TestPredictAuditEventContents(t *testing.T) {
	mockService := &MockPredictionService{
		PredictFunc: func(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error) {
			return &models.PredictionResult{
				Position: models.PositionStriker,
				Label:    models.LabelPoor,
				Severity: "red",
				Features: []string{"Appearances", "Goals", "Interception", "Key Passes", "Shots on Target"},
				Vector:   []float64{10, 1, 2, 3, 4},
			}, nil
		},
	}
	audit := &MockAuditQueue{}
	h := &Handler{
		prediction: mockService,
		pool:       audit,
		logger:     zap.NewNop().Sugar(),
		validator:  validator.New(),
	}

	body := `{"name": "Cara", "position": "Striker", "attributes": {"Appearances": 10}}`
	r := httptest.NewRequest("POST", "/api/v1/predict", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.PredictPerformance(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(audit.Events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(audit.Events))
	}
	ev := audit.Events[0]
	if ev.PlayerName != "Cara" || ev.Position != models.PositionStriker || ev.Label != models.LabelPoor {
		t.Errorf("audit event = %+v", ev)
	}
	if ev.Timestamp.IsZero() {
		t.Error("audit event missing timestamp")
	}
}

func TestReloadModels(t *testing.T) {
	mockService := &MockPredictionService{}
	h := &Handler{
		prediction: mockService,
		logger:     zap.NewNop().Sugar(),
	}

	r := httptest.NewRequest("POST", "/api/v1/models/reload", nil)
	w := httptest.NewRecorder()

	h.ReloadModels(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mockService.ReloadCalls != 1 {
		t.Errorf("expected 1 reload call, got %d", mockService.ReloadCalls)
	}
}
