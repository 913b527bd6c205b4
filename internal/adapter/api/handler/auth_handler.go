package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rickymcpower/hrSfera/internal/adapter/api/middleware"
	"github.com/rickymcpower/hrSfera/internal/usecase"
)

// AuthHandler handles login, logout and current-user requests.
type AuthHandler struct {
	useCase  usecase.AuthUseCase
	logger   *slog.Logger
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(uc usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		useCase:  uc,
		logger:   logger,
		validate: validator.New(),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, false, "Email and password are required")
		return
	}

	result, err := h.useCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.useCase.Logout(r.Context(), claims.ID, expiresAt); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "Logged out")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	session, err := h.useCase.CurrentUser(r.Context(), p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "", session)
}
