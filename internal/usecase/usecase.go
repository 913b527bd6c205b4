package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rickymcpower/hrSfera/internal/domain"
)

// TimeTrackingUseCase defines the contract for the attendance state machine.
// Every call acts on behalf of the supplied principal; a zero start or end on
// History selects the default range (first day of the current month .. today).
type TimeTrackingUseCase interface {
	CheckIn(ctx context.Context, p domain.Principal) (*domain.TimeEntry, error)
	CheckOut(ctx context.Context, p domain.Principal) (*domain.TimeEntry, error)
	CurrentStatus(ctx context.Context, p domain.Principal) (*Status, error)
	History(ctx context.Context, p domain.Principal, start, end time.Time) (*History, error)
	TodayEntry(ctx context.Context, p domain.Principal) (*domain.TimeEntry, error)
}

// DirectoryUseCase defines the contract for tenant-scoped roster management.
// All operations require the admin role.
type DirectoryUseCase interface {
	List(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	ListAdmins(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	Create(ctx context.Context, p domain.Principal, params CreateEmployeeParams) (*domain.User, error)
	GetByID(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error
}

// AuthUseCase defines the contract for authentication services.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	CurrentUser(ctx context.Context, p domain.Principal) (*SessionUser, error)
}

// CheckedIn and CheckedOut are the two observable states of a principal.
const (
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
)

// Status is the result of a CurrentStatus query. WorkingTime is the elapsed
// whole minutes since check-in, nil when checked out.
type Status struct {
	Status       string            `json:"status"`
	CurrentEntry *domain.TimeEntry `json:"current_entry"`
	WorkingTime  *int              `json:"working_time"`
}

// History aggregates a principal's entries over a date range. TotalMinutes
// sums closed entries only; TotalDays counts distinct dates including days
// with an open entry.
type History struct {
	Entries      []*domain.TimeEntry `json:"entries"`
	TotalMinutes int                 `json:"total_minutes"`
	TotalDays    int                 `json:"total_days"`
}

// CreateEmployeeParams carries the input for creating a roster entry.
type CreateEmployeeParams struct {
	Name     string
	Email    string
	Role     domain.Role
	Password string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token  string         `json:"token"`
	User   *domain.User   `json:"user"`
	Tenant *domain.Tenant `json:"tenant"`
}

// SessionUser is the current principal's account with its tenant.
type SessionUser struct {
	User   *domain.User   `json:"user"`
	Tenant *domain.Tenant `json:"tenant"`
}
