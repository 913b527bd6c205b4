package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rickymcpower/hrSfera/internal/domain"
)

// UserRepository implements domain.UserRepository for PostgreSQL. The global
// unique index on users.email backs the email identity rule; deleting a user
// cascades to its time entries via the schema's foreign keys.
type UserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

const selectUser = `
	SELECT id, tenant_id, name, email, password_hash, role, created_at, updated_at
	FROM users
`

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := selectUser + ` WHERE id = $1`

	u, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := selectUser + ` WHERE email = $1`

	u, err := r.scanOne(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	query := selectUser + ` WHERE tenant_id = $1 ORDER BY name`
	return r.list(ctx, query, tenantID)
}

func (r *UserRepository) ListAdminsByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	query := selectUser + ` WHERE tenant_id = $1 AND role = $2 ORDER BY name`
	return r.list(ctx, query, tenantID, domain.RoleAdmin)
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Store(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, tenant_id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.TenantID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("store user: %w", err)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row rowScanner, u *domain.User) error {
	return row.Scan(
		&u.ID,
		&u.TenantID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, err
	}
	return &u, nil
}
