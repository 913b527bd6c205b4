package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role defines the permission level of a user within its tenant.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Principal is the authenticated identity attached to every service call.
// It carries just enough to make tenant-isolation and role checks explicit.
type Principal struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Role     Role
}

// User represents an employee or admin account within a tenant.
type User struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not exposed in API responses
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal returns the identity a user acts as.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, TenantID: u.TenantID, Role: u.Role}
}

// UserRepository defines the interface for user persistence.
// Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ListByTenant returns all users of a tenant, ordered by name.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*User, error)

	// ListAdminsByTenant returns the tenant's users with the admin role,
	// ordered by name.
	ListAdminsByTenant(ctx context.Context, tenantID uuid.UUID) ([]*User, error)

	// Store inserts a new user. Emails are globally unique; inserting a
	// duplicate returns ErrEmailTaken.
	Store(ctx context.Context, u *User) error

	// Delete removes a user. The storage layer cascades deletion of the
	// user's time entries.
	Delete(ctx context.Context, id uuid.UUID) error
}
