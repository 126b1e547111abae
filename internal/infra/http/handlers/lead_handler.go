package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/infra/http/middleware"
	"github.com/partpeople/lead-portal/internal/usecase"
)

type LeadHandler struct {
	Outreach *usecase.OutreachUseCase
}

func NewLeadHandler(outreach *usecase.OutreachUseCase) *LeadHandler {
	return &LeadHandler{Outreach: outreach}
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	opts := listOptionsFromQuery(r)

	leads, err := h.Outreach.ListLeads(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
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

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Outreach.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.Outreach.UpdateLead(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Outreach.DeleteLead(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *LeadHandler) HandleCreateDemo(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Outreach.CreateDemo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadTransition(string(entity.LeadStatusDemoReady))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Demo website created",
		"demo_url": lead.DemoURL,
		"lead":     lead,
	})
}

func (h *LeadHandler) HandleGenerateEmail(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Outreach.GenerateEmailDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadTransition(string(entity.LeadStatusEmailDraft))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "Email draft generated",
		"email_subject": lead.EmailSubject,
		"email_body":    lead.EmailBody,
		"lead":          lead,
	})
}

func (h *LeadHandler) HandleEditDraft(w http.ResponseWriter, r *http.Request) {
	var input usecase.EditDraftInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.Outreach.EditDraft(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lead":    lead,
	})
}

func (h *LeadHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Outreach.ApproveAndSend(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadTransition(string(entity.LeadStatusApproved))
	middleware.RecordEmailApproved()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email approved and sent",
		"lead":    lead,
	})
}

func (h *LeadHandler) HandleEmailLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Outreach.EmailLogsForLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if logs == nil {
		logs = []*entity.EmailLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}

func listOptionsFromQuery(r *http.Request) entity.ListLeadsOptions {
	opts := entity.ListLeadsOptions{
		Status: entity.LeadStatus(r.URL.Query().Get("status")),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		opts.Limit = limit
	}
	return opts
}
