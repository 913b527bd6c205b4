package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/domain/mocks"
)

func testPrincipal() domain.Principal {
	return domain.Principal{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Role:     domain.RoleEmployee,
	}
}

func newTrackingService(repo *mocks.MockTimeEntryRepository, now time.Time) *TimeTrackingService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewTimeTrackingService(repo, nil, logger)
	s.now = func() time.Time { return now }
	return s
}

func TestTimeTrackingService_CheckIn(t *testing.T) {
	p := testPrincipal()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("creates an open entry dated today", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, at)

		entry, err := s.CheckIn(context.Background(), p)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !entry.Open() {
			t.Error("expected entry to be open")
		}
		if !entry.CheckInTime.Equal(at) {
			t.Errorf("check-in time: got %v, want %v", entry.CheckInTime, at)
		}
		wantDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		if !entry.Date.Equal(wantDate) {
			t.Errorf("date: got %v, want %v", entry.Date, wantDate)
		}
		if entry.TenantID != p.TenantID {
			t.Error("entry tenant must equal principal tenant")
		}
		if len(repo.Entries) != 1 {
			t.Fatalf("expected 1 stored entry, got %d", len(repo.Entries))
		}
	})

	t.Run("conflict when an open entry exists", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, at)

		if _, err := s.CheckIn(context.Background(), p); err != nil {
			t.Fatalf("first check-in failed: %v", err)
		}
		_, err := s.CheckIn(context.Background(), p)
		if !errors.Is(err, domain.ErrAlreadyCheckedIn) {
			t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
		}
		if len(repo.Entries) != 1 {
			t.Errorf("conflicting check-in must not create entries, got %d", len(repo.Entries))
		}
	})

	t.Run("storage conflict maps to the same business error", func(t *testing.T) {
		// The lookup misses but the insert loses the race: the service must
		// report it exactly like the application-level check.
		repo := &mocks.MockTimeEntryRepository{CreateErr: domain.ErrOpenEntryExists}
		s := newTrackingService(repo, at)

		_, err := s.CheckIn(context.Background(), p)
		if !errors.Is(err, domain.ErrAlreadyCheckedIn) {
			t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
		}
	})

	t.Run("concurrent check-ins create exactly one entry", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, at)

		const attempts = 16
		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.CheckIn(context.Background(), p)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrAlreadyCheckedIn):
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if succeeded != 1 {
			t.Errorf("expected exactly 1 successful check-in, got %d", succeeded)
		}
		if n := repo.OpenCount(p.ID); n != 1 {
			t.Errorf("expected exactly 1 open entry, got %d", n)
		}
	})
}

func TestTimeTrackingService_CheckOut(t *testing.T) {
	p := testPrincipal()
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("closes the open entry with floored duration", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, checkIn)

		if _, err := s.CheckIn(context.Background(), p); err != nil {
			t.Fatalf("check-in failed: %v", err)
		}

		// 09:00 -> 17:30 same day is 510 minutes.
		s.now = func() time.Time { return time.Date(2026, 3, 10, 17, 30, 45, 0, time.UTC) }
		entry, err := s.CheckOut(context.Background(), p)
		if err != nil {
			t.Fatalf("check-out failed: %v", err)
		}
		if entry.Open() {
			t.Fatal("expected entry to be closed")
		}
		if entry.DurationMinutes == nil || *entry.DurationMinutes != 510 {
			t.Errorf("duration: got %v, want 510", entry.DurationMinutes)
		}
		if n := repo.OpenCount(p.ID); n != 0 {
			t.Errorf("expected no open entries, got %d", n)
		}
	})

	t.Run("conflict when no open entry exists", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, checkIn)

		_, err := s.CheckOut(context.Background(), p)
		if !errors.Is(err, domain.ErrNotCheckedIn) {
			t.Fatalf("expected ErrNotCheckedIn, got %v", err)
		}
	})

	t.Run("second immediate check-out conflicts", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, checkIn)

		if _, err := s.CheckIn(context.Background(), p); err != nil {
			t.Fatalf("check-in failed: %v", err)
		}
		if _, err := s.CheckOut(context.Background(), p); err != nil {
			t.Fatalf("first check-out failed: %v", err)
		}
		_, err := s.CheckOut(context.Background(), p)
		if !errors.Is(err, domain.ErrNotCheckedIn) {
			t.Fatalf("expected ErrNotCheckedIn, got %v", err)
		}
	})
}

func TestTimeTrackingService_CurrentStatus(t *testing.T) {
	p := testPrincipal()
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("checked out without an open entry", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, checkIn)

		status, err := s.CurrentStatus(context.Background(), p)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if status.Status != StatusCheckedOut {
			t.Errorf("status: got %q, want %q", status.Status, StatusCheckedOut)
		}
		if status.CurrentEntry != nil || status.WorkingTime != nil {
			t.Error("expected nil entry and working time when checked out")
		}
	})

	t.Run("checked in with elapsed minutes", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, checkIn)

		if _, err := s.CheckIn(context.Background(), p); err != nil {
			t.Fatalf("check-in failed: %v", err)
		}

		s.now = func() time.Time { return checkIn.Add(95 * time.Minute) }
		status, err := s.CurrentStatus(context.Background(), p)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if status.Status != StatusCheckedIn {
			t.Errorf("status: got %q, want %q", status.Status, StatusCheckedIn)
		}
		if status.CurrentEntry == nil {
			t.Fatal("expected current entry")
		}
		if status.WorkingTime == nil || *status.WorkingTime != 95 {
			t.Errorf("working time: got %v, want 95", status.WorkingTime)
		}
	})
}

func TestTimeTrackingService_History(t *testing.T) {
	p := testPrincipal()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	closedEntry := func(day, minutes int) *domain.TimeEntry {
		in := time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC)
		out := in.Add(time.Duration(minutes) * time.Minute)
		return &domain.TimeEntry{
			ID:              uuid.New(),
			TenantID:        p.TenantID,
			UserID:          p.ID,
			CheckInTime:     in,
			CheckOutTime:    &out,
			DurationMinutes: &minutes,
			Date:            time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("empty history with default range", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, now)

		h, err := s.History(context.Background(), p, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(h.Entries) != 0 || h.TotalMinutes != 0 || h.TotalDays != 0 {
			t.Errorf("expected empty history, got %+v", h)
		}
		// Clients receive an empty array, not null.
		body, err := json.Marshal(h)
		if err != nil {
			t.Fatalf("marshal history: %v", err)
		}
		if !strings.Contains(string(body), `"entries":[]`) {
			t.Errorf("expected entries to marshal as [], got %s", body)
		}
	})

	t.Run("sums closed entries, counts distinct days including open", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		repo.Entries = append(repo.Entries,
			closedEntry(10, 480),
			closedEntry(11, 300),
			closedEntry(11, 60), // second session on the same day
			&domain.TimeEntry{ // open entry today
				ID:          uuid.New(),
				TenantID:    p.TenantID,
				UserID:      p.ID,
				CheckInTime: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
				Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			},
		)
		s := newTrackingService(repo, now)

		h, err := s.History(context.Background(), p, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(h.Entries) != 4 {
			t.Errorf("entries: got %d, want 4", len(h.Entries))
		}
		if h.TotalMinutes != 840 {
			t.Errorf("total minutes: got %d, want 840", h.TotalMinutes)
		}
		if h.TotalDays != 3 {
			t.Errorf("total days: got %d, want 3", h.TotalDays)
		}
	})

	t.Run("explicit range filters by date", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		repo.Entries = append(repo.Entries, closedEntry(1, 100), closedEntry(10, 200))
		s := newTrackingService(repo, now)

		h, err := s.History(context.Background(), p,
			time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(h.Entries) != 1 || h.TotalMinutes != 200 || h.TotalDays != 1 {
			t.Errorf("unexpected aggregation: %+v", h)
		}
	})

	t.Run("end before start is a validation error", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, now)

		_, err := s.History(context.Background(), p,
			time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestTimeTrackingService_TodayEntry(t *testing.T) {
	p := testPrincipal()
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	t.Run("none today", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, now)

		entry, err := s.TodayEntry(context.Background(), p)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if entry != nil {
			t.Errorf("expected nil entry, got %+v", entry)
		}
	})

	t.Run("returns the most recently started entry of today", func(t *testing.T) {
		repo := &mocks.MockTimeEntryRepository{}
		s := newTrackingService(repo, time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC))

		if _, err := s.CheckIn(context.Background(), p); err != nil {
			t.Fatalf("check-in failed: %v", err)
		}
		s.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
		if _, err := s.CheckOut(context.Background(), p); err != nil {
			t.Fatalf("check-out failed: %v", err)
		}
		s.now = func() time.Time { return time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC) }
		second, err := s.CheckIn(context.Background(), p)
		if err != nil {
			t.Fatalf("second check-in failed: %v", err)
		}

		s.now = func() time.Time { return now }
		entry, err := s.TodayEntry(context.Background(), p)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if entry == nil || entry.ID != second.ID {
			t.Errorf("expected the later session, got %+v", entry)
		}
	})
}
