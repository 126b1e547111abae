package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/partpeople/lead-portal/internal/entity"
)

type SettingHandler struct {
	Settings entity.SettingRepository
}

func NewSettingHandler(settings entity.SettingRepository) *SettingHandler {
	return &SettingHandler{Settings: settings}
}

// HandleList returns all settings as a flat key -> value object.
func (h *SettingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	writeJSON(w, http.StatusOK, out)
}

// HandleUpdate upserts every key in the request body in one call.
func (h *SettingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(values) == 0 {
		writeError(w, http.StatusBadRequest, "No settings provided")
		return
	}

	for key, value := range values {
		if key == "" {
			writeError(w, http.StatusBadRequest, "Setting keys cannot be empty")
			return
		}
		if err := h.Settings.Upsert(r.Context(), key, value); err != nil {
			respondError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *SettingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	if err := h.Settings.Delete(r.Context(), req.Key); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
