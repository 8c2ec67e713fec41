package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/scoutcentral/scout-api/internal/logic"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check all dependencies
	checks := map[string]bool{
		"dataset":    h.ds != nil && h.ds.Len() > 0,
		"clickhouse": h.ch.Ping(ctx) == nil,
		"redis":      h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": h.pool.QueueDepth(),
	})
}

// RequestIDMiddleware tags every request with a UUID for log correlation and
// the prediction audit trail.
func (h *Handler) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestID extracts the request ID set by RequestIDMiddleware.
func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps core errors onto HTTP statuses: user-input errors are
// 4xx, artifact failures are 502 so callers can tell infrastructure faults
// apart from bad input.
func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, logic.ErrPlayerNotFound):
		h.errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrInvalidPosition),
		errors.Is(err, logic.ErrMissingFeature),
		errors.Is(err, logic.ErrEmptyFeatureSet):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrArtifactLoad):
		h.errorResponse(w, http.StatusBadGateway, "model artifacts unavailable")
	default:
		h.errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}
