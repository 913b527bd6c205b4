package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rickymcpower/hrSfera/internal/adapter/api/middleware"
	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/usecase"
)

const dateLayout = "2006-01-02"

// TimeEntryHandler handles the attendance endpoints: check-in, check-out,
// status, history and today.
type TimeEntryHandler struct {
	useCase usecase.TimeTrackingUseCase
	logger  *slog.Logger
}

// NewTimeEntryHandler creates a new TimeEntryHandler.
func NewTimeEntryHandler(uc usecase.TimeTrackingUseCase, logger *slog.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{useCase: uc, logger: logger}
}

func (h *TimeEntryHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	entry, err := h.useCase.CheckIn(r.Context(), p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, "Check-in successful", entry)
}

func (h *TimeEntryHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	entry, err := h.useCase.CheckOut(r.Context(), p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "Check-out successful", entry)
}

func (h *TimeEntryHandler) Status(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	status, err := h.useCase.CurrentStatus(r.Context(), p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "", status)
}

func (h *TimeEntryHandler) History(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	start, err := parseDateParam(r, "start_date")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	end, err := parseDateParam(r, "end_date")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	history, err := h.useCase.History(r.Context(), p, start, end)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "", history)
}

func (h *TimeEntryHandler) Today(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	entry, err := h.useCase.TodayEntry(r.Context(), p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, "", entry)
}

// parseDateParam reads an optional YYYY-MM-DD query parameter. An absent
// parameter yields the zero time, which selects the service's default range.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", domain.ErrValidation, name)
	}
	return t, nil
}
