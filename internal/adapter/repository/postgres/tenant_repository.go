package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rickymcpower/hrSfera/internal/domain"
)

// TenantRepository implements domain.TenantRepository for PostgreSQL.
type TenantRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTenantRepository creates a new PostgreSQL tenant repository.
func NewTenantRepository(db *sql.DB, logger *slog.Logger) *TenantRepository {
	return &TenantRepository{db: db, logger: logger}
}

func (r *TenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, COALESCE(logo, ''), COALESCE(primary_color, ''), COALESCE(secondary_color, ''), COALESCE(address, ''), created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var t domain.Tenant
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Logo,
		&t.PrimaryColor,
		&t.SecondaryColor,
		&t.Address,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, fmt.Errorf("find by id: %w", err)
	}

	return &t, nil
}

func (r *TenantRepository) Store(ctx context.Context, t *domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, logo, primary_color, secondary_color, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Logo,
		t.PrimaryColor,
		t.SecondaryColor,
		t.Address,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store tenant: %w", err)
	}

	return nil
}
