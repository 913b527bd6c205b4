package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickymcpower/hrSfera/internal/adapter/metrics"
	"github.com/rickymcpower/hrSfera/internal/domain"
)

// TimeTrackingService implements the attendance state machine. The state is
// held entirely in storage: a principal is "checked in" exactly when an open
// entry exists for it.
type TimeTrackingService struct {
	entries domain.TimeEntryRepository
	metrics *metrics.AttendanceMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewTimeTrackingService creates a new TimeTrackingService. metrics may be nil.
func NewTimeTrackingService(entries domain.TimeEntryRepository, m *metrics.AttendanceMetrics, logger *slog.Logger) *TimeTrackingService {
	return &TimeTrackingService{
		entries: entries,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// CheckIn opens a new entry for the principal. The repository's open-entry
// uniqueness guarantee backs the lookup, so a race between two concurrent
// check-ins resolves to exactly one created entry; the loser sees the same
// conflict as if the lookup had caught it.
func (s *TimeTrackingService) CheckIn(ctx context.Context, p domain.Principal) (*domain.TimeEntry, error) {
	open, err := s.entries.FindOpenByUser(ctx, p.TenantID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find open entry: %w", err)
	}
	if open != nil {
		s.countCheckin("conflict")
		return nil, domain.ErrAlreadyCheckedIn
	}

	now := s.now().UTC()
	entry := &domain.TimeEntry{
		ID:          uuid.New(),
		TenantID:    p.TenantID,
		UserID:      p.ID,
		CheckInTime: now,
		Date:        domain.DateOf(now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrOpenEntryExists) {
			s.countCheckin("conflict")
			return nil, domain.ErrAlreadyCheckedIn
		}
		s.countCheckin("error")
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.countCheckin("ok")
	if s.metrics != nil {
		s.metrics.OpenSessions.Inc()
	}
	s.logger.Info("checked in", "user_id", p.ID, "tenant_id", p.TenantID, "entry_id", entry.ID)
	return entry, nil
}

// CheckOut closes the principal's open entry, fixing its duration as whole
// minutes truncated toward zero.
func (s *TimeTrackingService) CheckOut(ctx context.Context, p domain.Principal) (*domain.TimeEntry, error) {
	open, err := s.entries.FindOpenByUser(ctx, p.TenantID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find open entry: %w", err)
	}
	if open == nil {
		s.countCheckout("conflict")
		return nil, domain.ErrNotCheckedIn
	}

	now := s.now().UTC()
	minutes := int(now.Sub(open.CheckInTime).Minutes())
	open.CheckOutTime = &now
	open.DurationMinutes = &minutes
	open.UpdatedAt = now

	if err := s.entries.Close(ctx, open); err != nil {
		if errors.Is(err, domain.ErrNotCheckedIn) {
			s.countCheckout("conflict")
			return nil, domain.ErrNotCheckedIn
		}
		s.countCheckout("error")
		return nil, fmt.Errorf("close entry: %w", err)
	}

	s.countCheckout("ok")
	if s.metrics != nil {
		s.metrics.OpenSessions.Dec()
	}
	s.logger.Info("checked out", "user_id", p.ID, "entry_id", open.ID, "duration_minutes", minutes)
	return open, nil
}

// CurrentStatus reports whether the principal is checked in. Never mutates.
func (s *TimeTrackingService) CurrentStatus(ctx context.Context, p domain.Principal) (*Status, error) {
	open, err := s.entries.FindOpenByUser(ctx, p.TenantID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find open entry: %w", err)
	}
	if open == nil {
		return &Status{Status: StatusCheckedOut}, nil
	}

	elapsed := int(s.now().UTC().Sub(open.CheckInTime).Minutes())
	return &Status{
		Status:       StatusCheckedIn,
		CurrentEntry: open,
		WorkingTime:  &elapsed,
	}, nil
}

// History aggregates entries whose date falls in [start, end], both
// inclusive. A zero start defaults to the first day of the current month, a
// zero end to today.
func (s *TimeTrackingService) History(ctx context.Context, p domain.Principal, start, end time.Time) (*History, error) {
	now := s.now().UTC()
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if end.IsZero() {
		end = domain.DateOf(now)
	}
	start = domain.DateOf(start)
	end = domain.DateOf(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", domain.ErrValidation)
	}

	entries, err := s.entries.ListByUserAndDateRange(ctx, p.TenantID, p.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if entries == nil {
		// An empty history marshals as [], never null.
		entries = []*domain.TimeEntry{}
	}

	totalMinutes := 0
	days := make(map[time.Time]struct{})
	for _, e := range entries {
		if e.DurationMinutes != nil {
			totalMinutes += *e.DurationMinutes
		}
		days[e.Date] = struct{}{}
	}

	return &History{
		Entries:      entries,
		TotalMinutes: totalMinutes,
		TotalDays:    len(days),
	}, nil
}

// TodayEntry returns the most recently started entry attributed to today,
// open or closed, or nil when the principal has none.
func (s *TimeTrackingService) TodayEntry(ctx context.Context, p domain.Principal) (*domain.TimeEntry, error) {
	today := domain.DateOf(s.now().UTC())
	entry, err := s.entries.FindLatestByUserAndDate(ctx, p.TenantID, p.ID, today)
	if err != nil {
		return nil, fmt.Errorf("find today entry: %w", err)
	}
	return entry, nil
}

func (s *TimeTrackingService) countCheckin(status string) {
	if s.metrics != nil {
		s.metrics.CheckinsTotal.WithLabelValues(status).Inc()
	}
}

func (s *TimeTrackingService) countCheckout(status string) {
	if s.metrics != nil {
		s.metrics.CheckoutsTotal.WithLabelValues(status).Inc()
	}
}
