package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/usecase"
)

type ActivityHandler struct {
	Recorder *usecase.ActivityRecorder
}

func NewActivityHandler(recorder *usecase.ActivityRecorder) *ActivityHandler {
	return &ActivityHandler{Recorder: recorder}
}

func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	opts := entity.ListActivitiesOptions{
		AgentID: r.URL.Query().Get("agentId"),
		Limit:   50,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}

	activities, err := h.Recorder.List(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	if activities == nil {
		activities = []*entity.Activity{}
	}

	writeJSON(w, http.StatusOK, activities)
}

type recordActivityRequest struct {
	AgentID     string          `json:"agent_id"`
	LeadID      string          `json:"lead_id"`
	Action      string          `json:"action"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata"`
}

func (h *ActivityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req recordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	input := usecase.RecordActivityInput{
		AgentID:     req.AgentID,
		LeadID:      req.LeadID,
		Action:      req.Action,
		Description: req.Description,
	}
	if len(req.Metadata) > 0 && string(req.Metadata) != "null" {
		input.Metadata = string(req.Metadata)
	}

	act, err := h.Recorder.Record(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": act.ID})
}

// HandleDelete purges the log, optionally scoped to one agent via ?agentId=.
func (h *ActivityHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Recorder.Purge(r.Context(), r.URL.Query().Get("agentId"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"deleted_count": deleted,
	})
}
