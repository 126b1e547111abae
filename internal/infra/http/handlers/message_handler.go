package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/usecase"
)

type MessageHandler struct {
	Messages *usecase.MessageUseCase
}

func NewMessageHandler(messages *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{Messages: messages}
}

func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Messages.ListThread(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if msgs == nil {
		msgs = []*entity.LeadMessage{}
	}

	writeJSON(w, http.StatusOK, msgs)
}

func (h *MessageHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	msg, err := h.Messages.CreateMessage(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var input usecase.EditMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	msg, err := h.Messages.EditMessage(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "msgId"), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Messages.ApproveMessage(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "msgId"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": msg,
	})
}

func (h *MessageHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.Messages.MarkThreadRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"updated_count": count,
	})
}
