package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/partpeople/lead-portal/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps domain errors to 4xx responses with their message.
// Everything else is logged and surfaced as a generic 500 so internals
// never leak.
func respondError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		switch de.Code {
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		case usecase.CodeConflict:
			status = http.StatusConflict
		}
		writeError(w, status, de.Message)
		return
	}

	log.Printf("internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
