package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/usecase"
)

type ApiKeyHandler struct {
	Keys *usecase.ApiKeyUseCase
}

func NewApiKeyHandler(keys *usecase.ApiKeyUseCase) *ApiKeyHandler {
	return &ApiKeyHandler{Keys: keys}
}

func (h *ApiKeyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Keys.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if keys == nil {
		keys = []*entity.ApiKey{}
	}

	writeJSON(w, http.StatusOK, keys)
}

func (h *ApiKeyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateApiKeyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	key, err := h.Keys.Create(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": key.ID})
}

type updateApiKeyRequest struct {
	ID string `json:"id"`
	usecase.UpdateApiKeyInput
}

func (h *ApiKeyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateApiKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.Keys.Update(r.Context(), req.ID, req.UpdateApiKeyInput); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ApiKeyHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		IsActive *bool  `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ID == "" || req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "id and is_active are required")
		return
	}

	if err := h.Keys.SetActive(r.Context(), req.ID, *req.IsActive); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ApiKeyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.Keys.Delete(r.Context(), req.ID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
