package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/usecase"
)

type AgentHandler struct {
	Agents entity.AgentRepository
}

func NewAgentHandler(agents entity.AgentRepository) *AgentHandler {
	return &AgentHandler{Agents: agents}
}

func (h *AgentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Agents.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if agents == nil {
		agents = []*entity.Agent{}
	}

	writeJSON(w, http.StatusOK, agents)
}

func (h *AgentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if input.AgentID == "" || input.Name == "" || input.Model == "" {
		writeError(w, http.StatusBadRequest, "agent_id, name and model are required")
		return
	}

	agent, err := entity.NewAgent(input.AgentID, input.Name, input.Model, entity.AgentStatus(input.Status))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Agents.Create(r.Context(), agent); err != nil {
		if errors.Is(err, entity.ErrAgentExists) {
			writeError(w, http.StatusBadRequest, "Agent with this id already exists")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": agent.ID})
}

type updateAgentRequest struct {
	ID string `json:"id"`
	usecase.UpdateAgentInput
}

func (h *AgentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	agent, err := h.Agents.FindByID(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, entity.ErrAgentNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found")
			return
		}
		respondError(w, err)
		return
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Model != nil {
		agent.Model = *req.Model
	}
	if req.Status != nil {
		status := entity.AgentStatus(*req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		agent.Status = status
		if status == entity.AgentStatusActive {
			now := time.Now()
			agent.LastActive = &now
		}
	}
	if req.CurrentTask != nil {
		agent.CurrentTask = *req.CurrentTask
	}

	if err := h.Agents.Update(r.Context(), agent); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AgentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.Agents.Delete(r.Context(), req.ID); err != nil {
		if errors.Is(err, entity.ErrAgentNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
