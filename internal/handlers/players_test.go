package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/scoutcentral/scout-api/internal/models"
)

func testRoster() *MockDatasetStore {
	return &MockDatasetStore{players: []models.PlayerRecord{
		{
			Name:        "Alice",
			Club:        "Arsenal",
			Nationality: "England",
			Position:    models.PositionDefender,
			Performance: models.LabelGood,
			Attributes: map[string]float64{
				models.ColAge:         27,
				models.ColAppearances: 30,
				models.ColGoals:       2,
				models.ColAssist:      1,
			},
		},
		{
			Name:     "Cara",
			Position: models.PositionStriker,
			Attributes: map[string]float64{
				models.ColGoals: 19,
			},
		},
	}}
}

func TestListPlayers(t *testing.T) {
	h := &Handler{ds: testRoster(), logger: zap.NewNop().Sugar()}

	r := httptest.NewRequest("GET", "/api/v1/players", nil)
	w := httptest.NewRecorder()

	h.ListPlayers(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"count":2`) {
		t.Errorf("expected count 2, got %q", body)
	}
	if !strings.Contains(body, "Alice") || !strings.Contains(body, "Cara") {
		t.Errorf("expected both players in %q", body)
	}
}

func TestGetPlayer(t *testing.T) {
	tests := []struct {
		name           string
		player         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Happy Path",
			player:         "Alice",
			expectedStatus: http.StatusOK,
			expectedBody:   `"severity":"green"`,
		},
		{
			name:           "Not Found",
			player:         "Ghost",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{ds: testRoster(), logger: zap.NewNop().Sugar()}

			r := httptest.NewRequest("GET", "/api/v1/players/"+tt.player, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("name", tt.player)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			h.GetPlayer(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestGetPlayerKeyStats(t *testing.T) {
	h := &Handler{ds: testRoster(), logger: zap.NewNop().Sugar()}

	r := httptest.NewRequest("GET", "/api/v1/players/Alice", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("name", "Alice")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	h.GetPlayer(w, r)

	body := w.Body.String()
	for _, want := range []string{`"appearances":30`, `"goals":2`, `"assists":1`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q, got %q", want, body)
		}
	}
}
