package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rickymcpower/hrSfera/internal/adapter/api/middleware"
	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/usecase"
)

// EmployeeHandler handles the admin-only roster endpoints.
type EmployeeHandler struct {
	useCase  usecase.DirectoryUseCase
	logger   *slog.Logger
	validate *validator.Validate
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(uc usecase.DirectoryUseCase, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		useCase:  uc,
		logger:   logger,
		validate: validator.New(),
	}
}

func (h *EmployeeHandler) Index(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	users, err := h.useCase.List(r.Context(), p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "", users)
}

type createEmployeeRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=employee admin"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *EmployeeHandler) Store(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, false, "Invalid employee payload")
		return
	}

	user, err := h.useCase.Create(r.Context(), p, usecase.CreateEmployeeParams{
		Name:     req.Name,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, "Employee created successfully", user)
}

func (h *EmployeeHandler) Show(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// A malformed id is as unobservable as a foreign one.
		writeError(w, h.logger, domain.ErrNotFound)
		return
	}

	user, err := h.useCase.GetByID(r.Context(), p, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "", user)
}

func (h *EmployeeHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, domain.ErrNotFound)
		return
	}

	if err := h.useCase.Delete(r.Context(), p, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "Employee deleted successfully")
}
