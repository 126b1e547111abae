package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/partpeople/lead-portal/internal/infra/http/middleware"
	"github.com/partpeople/lead-portal/internal/usecase"
)

// PipelineHandler serves the board view: every lead endpoint also exists
// under /leads, but the pipeline variants take ids in the request body.
type PipelineHandler struct {
	Outreach *usecase.OutreachUseCase
}

func NewPipelineHandler(outreach *usecase.OutreachUseCase) *PipelineHandler {
	return &PipelineHandler{Outreach: outreach}
}

func (h *PipelineHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	out, err := h.Outreach.Pipeline(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *PipelineHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if input.Company == "" || input.Industry == "" {
		writeError(w, http.StatusBadRequest, "company and industry are required")
		return
	}

	lead, err := h.Outreach.CreateLead(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, lead)
}

type updatePipelineLeadRequest struct {
	ID string `json:"id"`
	usecase.UpdateLeadInput
}

func (h *PipelineHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updatePipelineLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	lead, err := h.Outreach.UpdateLead(r.Context(), req.ID, req.UpdateLeadInput)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *PipelineHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.Outreach.DeleteLead(r.Context(), req.ID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
