package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/usecase"
)

type TaskHandler struct {
	Tasks  entity.TaskRepository
	Agents entity.AgentRepository
}

func NewTaskHandler(tasks entity.TaskRepository, agents entity.AgentRepository) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Agents: agents}
}

func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	opts := entity.ListTasksOptions{
		Status:  entity.TaskStatus(r.URL.Query().Get("status")),
		AgentID: r.URL.Query().Get("agentId"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}

	tasks, err := h.Tasks.List(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	if tasks == nil {
		tasks = []*entity.Task{}
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if input.AgentID == "" || input.Title == "" {
		writeError(w, http.StatusBadRequest, "agent_id and title are required")
		return
	}

	// Tasks must point at a known agent.
	if _, err := h.Agents.FindByAgentID(r.Context(), input.AgentID); err != nil {
		if errors.Is(err, entity.ErrAgentNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found")
			return
		}
		respondError(w, err)
		return
	}

	task, err := entity.NewTask(input.AgentID, input.Title, input.Description, input.Priority)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Tasks.Create(r.Context(), task); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      task.ID,
		"task_id": task.TaskID,
	})
}

type updateTaskRequest struct {
	ID string `json:"id"`
	usecase.UpdateTaskInput
}

func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	status := entity.TaskStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if err := h.Tasks.UpdateStatus(r.Context(), req.ID, status, req.Result); err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.Tasks.Delete(r.Context(), req.ID); err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
