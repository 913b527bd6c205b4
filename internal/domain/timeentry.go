package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TimeEntry represents one check-in/check-out session. An entry with a nil
// CheckOutTime is "open"; closing it sets CheckOutTime and DurationMinutes
// exactly once. Date is fixed from the check-in instant and never recomputed.
type TimeEntry struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"tenant_id"`
	UserID          uuid.UUID  `json:"user_id"`
	CheckInTime     time.Time  `json:"check_in_time"`
	CheckOutTime    *time.Time `json:"check_out_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Date            time.Time  `json:"date"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Open reports whether the entry has not been checked out yet.
func (e *TimeEntry) Open() bool {
	return e.CheckOutTime == nil
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TimeEntryRepository defines the storage contract for attendance records.
// All queries are scoped by tenant so a caller can never reach across tenants
// even with a forged user id. Find methods return (nil, nil) when no row
// matches.
type TimeEntryRepository interface {
	// Create inserts a new open entry. The store guarantees at most one open
	// entry per user atomically; a violation returns ErrOpenEntryExists.
	Create(ctx context.Context, e *TimeEntry) error

	// Close persists the check-out of an open entry. Closing an entry that is
	// no longer open returns ErrNotCheckedIn.
	Close(ctx context.Context, e *TimeEntry) error

	// FindOpenByUser returns the user's open entry, if any.
	FindOpenByUser(ctx context.Context, tenantID, userID uuid.UUID) (*TimeEntry, error)

	// ListByUserAndDateRange returns the user's entries whose Date falls in
	// [start, end], newest first.
	ListByUserAndDateRange(ctx context.Context, tenantID, userID uuid.UUID, start, end time.Time) ([]*TimeEntry, error)

	// FindLatestByUserAndDate returns the most recently started entry for the
	// given calendar day, open or closed.
	FindLatestByUserAndDate(ctx context.Context, tenantID, userID uuid.UUID, date time.Time) (*TimeEntry, error)
}
