package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/usecase"
)

type dataEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dataEnvelope{Success: true, Message: message, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: success, Message: message})
}

// writeError maps the business error taxonomy onto HTTP responses. Anything
// outside the taxonomy is a server-side fault: logged, never echoed.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		writeMessage(w, http.StatusConflict, false, "Already checked in")
	case errors.Is(err, domain.ErrNotCheckedIn):
		writeMessage(w, http.StatusConflict, false, "Not currently checked in")
	case errors.Is(err, domain.ErrEmailTaken):
		writeMessage(w, http.StatusUnprocessableEntity, false, "Email already taken")
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusUnprocessableEntity, false, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, false, "Not found")
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, false, "Forbidden")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, false, "Invalid credentials")
	default:
		logger.Error("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
	}
}
