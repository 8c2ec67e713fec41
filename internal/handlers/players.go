package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListPlayers returns every player name in the roster
// @Summary List Players
// @Description Player names in dataset order, for selection dropdowns
// @Tags Players
// @Produce json
// @Success 200 {object} map[string]interface{} "Player names"
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	names := h.ds.Names()
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":   len(names),
		"players": names,
	})
}

// GetPlayer returns a single player's record and key stats
// @Summary Get Player
// @Description Full record plus key stats and the stored performance label
// @Tags Players
// @Produce json
// @Param name path string true "Player Name"
// @Success 200 {object} map[string]interface{} "Player record"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /players/{name} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.errorResponse(w, http.StatusBadRequest, "Player name is required")
		return
	}

	player, ok := h.ds.FindByName(name)
	if !ok {
		h.errorResponse(w, http.StatusNotFound, "Player not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"player": player,
		"key_stats": map[string]int{
			"appearances": player.Appearances(),
			"goals":       player.Goals(),
			"assists":     player.Assists(),
		},
		"performance": map[string]string{
			"label":    string(player.Performance),
			"severity": player.Performance.Severity(),
		},
	})
}
