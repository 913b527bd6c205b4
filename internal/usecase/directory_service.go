package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rickymcpower/hrSfera/internal/domain"
)

// DirectoryService implements tenant-scoped roster management. Lookups by id
// return domain.ErrNotFound identically for absent ids and ids belonging to
// another tenant, so cross-tenant existence is never observable.
type DirectoryService struct {
	users  domain.UserRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(users domain.UserRepository, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all users of the principal's tenant, ordered by name.
func (s *DirectoryService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	users, err := s.users.ListByTenant(ctx, p.TenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// ListAdmins returns the tenant's admins, ordered by name.
func (s *DirectoryService) ListAdmins(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	users, err := s.users.ListAdminsByTenant(ctx, p.TenantID)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// Create adds a user to the principal's tenant. Emails are globally unique
// across tenants.
func (s *DirectoryService) Create(ctx context.Context, p domain.Principal, params CreateEmployeeParams) (*domain.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if !params.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, params.Role)
	}

	existing, err := s.users.FindByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     p.TenantID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         params.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The insert can still lose a race to a concurrent signup; the store's
	// unique email index reports that as ErrEmailTaken, same as the check.
	if err := s.users.Store(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("store user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "tenant_id", user.TenantID, "role", user.Role)
	return user, nil
}

// GetByID returns a user of the principal's tenant.
func (s *DirectoryService) GetByID(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.findInTenant(ctx, p.TenantID, id)
}

// Delete removes a user of the principal's tenant. The storage layer cascades
// deletion of the user's time entries.
func (s *DirectoryService) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	user, err := s.findInTenant(ctx, p.TenantID, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info("user deleted", "user_id", user.ID, "tenant_id", user.TenantID)
	return nil
}

func (s *DirectoryService) findInTenant(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	if user == nil || user.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func requireAdmin(p domain.Principal) error {
	if p.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
