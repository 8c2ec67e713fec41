package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/scoutcentral/scout-api/internal/models"
)

// PredictPerformance classifies a player's performance from raw attributes
// @Summary Predict Performance
// @Description Routes the record through the position-specific scaler and classifier
// @Tags Predict
// @Accept json
// @Produce json
// @Param request body models.PredictRequest true "Player attributes"
// @Success 200 {object} models.PredictionResult "Prediction"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Model Unavailable"
// @Router /predict [post]
func (h *Handler) PredictPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.prediction.Predict(ctx, &req)
	if err != nil {
		h.logger.Warnw("Prediction failed",
			"player", req.Name,
			"position", req.Position,
			"error", err,
		)
		h.serviceError(w, err)
		return
	}

	// Audit trail is best-effort; the queue sheds under load.
	if h.pool != nil {
		h.pool.Enqueue(&models.PredictionEvent{
			Timestamp:  time.Now().UTC(),
			RequestID:  requestID(ctx),
			PlayerName: req.Name,
			Position:   result.Position,
			Label:      result.Label,
			Features:   result.Features,
			Values:     result.Vector,
		})
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// ReloadModels invalidates the cached artifact pairs
// @Summary Reload Models
// @Description Drops cached scaler/classifier pairs; next prediction per position loads fresh artifacts
// @Tags Predict
// @Produce json
// @Success 200 {object} map[string]string "Reloaded"
// @Router /models/reload [post]
func (h *Handler) ReloadModels(w http.ResponseWriter, r *http.Request) {
	h.prediction.Reload()
	h.logger.Infow("Model reload requested", "request_id", requestID(r.Context()))
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
