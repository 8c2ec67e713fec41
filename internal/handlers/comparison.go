package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/scoutcentral/scout-api/internal/models"
)

// GetPlayerComparison returns the normalized peer comparison for a player
// @Summary Peer Comparison
// @Description Min-max normalized radar-chart profile of a player vs the average of same-position peers
// @Tags Players
// @Produce json
// @Param name path string true "Player Name"
// @Param features query string false "Comma-separated feature list (defaults to the outfield radar metrics)"
// @Success 200 {object} models.NormalizedComparison "Normalized comparison"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /players/{name}/comparison [get]
func (h *Handler) GetPlayerComparison(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.errorResponse(w, http.StatusBadRequest, "Player name is required")
		return
	}

	features := models.DefaultComparisonFeatures
	if raw := r.URL.Query().Get("features"); raw != "" {
		features = features[:0:0]
		for _, f := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(f); trimmed != "" {
				features = append(features, trimmed)
			}
		}
	}

	cmp, err := h.comparison.Compare(r.Context(), name, features)
	if err != nil {
		h.logger.Warnw("Comparison failed", "player", name, "error", err)
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, cmp)
}
