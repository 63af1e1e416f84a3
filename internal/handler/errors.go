package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"propertypulse/internal/repository"
	"propertypulse/internal/service"
)

// ErrorResponse is the uniform error body: always a JSON object, never a
// bare string.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Ownership
// failures deliberately return 401, matching the unauthenticated case.
// Anything unrecognized is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, repository.ErrNotOwner):
		writeError(w, "not authorized", http.StatusUnauthorized)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, "property not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidUserID):
		writeError(w, "user ID is required", http.StatusBadRequest)
	default:
		log.Printf("request failed: %v", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
	}
}
