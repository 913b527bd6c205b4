package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rickymcpower/hrSfera/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// TimeEntryRepository implements domain.TimeEntryRepository for PostgreSQL.
// The one-open-entry-per-user invariant is enforced by the partial unique
// index time_entries_one_open_per_user, so two racing inserts cannot both
// commit; the loser surfaces domain.ErrOpenEntryExists.
type TimeEntryRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTimeEntryRepository creates a new PostgreSQL time entry repository.
func NewTimeEntryRepository(db *sql.DB, logger *slog.Logger) *TimeEntryRepository {
	return &TimeEntryRepository{db: db, logger: logger}
}

func (r *TimeEntryRepository) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, tenant_id, user_id, check_in_time, check_out_time, duration_minutes, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.TenantID,
		e.UserID,
		e.CheckInTime,
		e.CheckOutTime,
		e.DurationMinutes,
		e.Date,
		e.Notes,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrOpenEntryExists
		}
		return fmt.Errorf("create time entry: %w", err)
	}

	return nil
}

func (r *TimeEntryRepository) Close(ctx context.Context, e *domain.TimeEntry) error {
	// The WHERE guard keeps check-out close-once: a row that already has a
	// check_out_time is never touched again.
	query := `
		UPDATE time_entries
		SET check_out_time = $2, duration_minutes = $3, updated_at = $4
		WHERE id = $1 AND check_out_time IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, e.ID, e.CheckOutTime, e.DurationMinutes, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("close time entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close time entry: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotCheckedIn
	}

	return nil
}

func (r *TimeEntryRepository) FindOpenByUser(ctx context.Context, tenantID, userID uuid.UUID) (*domain.TimeEntry, error) {
	query := selectEntry + `
		WHERE tenant_id = $1 AND user_id = $2 AND check_out_time IS NULL
	`

	entry, err := r.scanOne(r.db.QueryRowContext(ctx, query, tenantID, userID))
	if err != nil {
		return nil, fmt.Errorf("find open entry: %w", err)
	}
	return entry, nil
}

func (r *TimeEntryRepository) ListByUserAndDateRange(ctx context.Context, tenantID, userID uuid.UUID, start, end time.Time) ([]*domain.TimeEntry, error) {
	query := selectEntry + `
		WHERE tenant_id = $1 AND user_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date DESC, check_in_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

func (r *TimeEntryRepository) FindLatestByUserAndDate(ctx context.Context, tenantID, userID uuid.UUID, date time.Time) (*domain.TimeEntry, error) {
	query := selectEntry + `
		WHERE tenant_id = $1 AND user_id = $2 AND date = $3
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	entry, err := r.scanOne(r.db.QueryRowContext(ctx, query, tenantID, userID, date))
	if err != nil {
		return nil, fmt.Errorf("find latest entry: %w", err)
	}
	return entry, nil
}

const selectEntry = `
	SELECT id, tenant_id, user_id, check_in_time, check_out_time, duration_minutes, date, COALESCE(notes, ''), created_at, updated_at
	FROM time_entries
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner, e *domain.TimeEntry) error {
	return row.Scan(
		&e.ID,
		&e.TenantID,
		&e.UserID,
		&e.CheckInTime,
		&e.CheckOutTime,
		&e.DurationMinutes,
		&e.Date,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

func (r *TimeEntryRepository) scanOne(row *sql.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	if err := scanEntry(row, &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, err
	}
	return &e, nil
}
