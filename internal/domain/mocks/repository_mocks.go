package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rickymcpower/hrSfera/internal/domain"
)

// MockTimeEntryRepository is an in-memory implementation of
// domain.TimeEntryRepository for testing. Create enforces the one-open-entry
// invariant under the same lock as the insert, mirroring the partial unique
// index the Postgres implementation relies on.
type MockTimeEntryRepository struct {
	mu      sync.Mutex
	Entries []*domain.TimeEntry

	CreateErr error
	CloseErr  error
	FindErr   error
}

func (m *MockTimeEntryRepository) Create(ctx context.Context, e *domain.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, existing := range m.Entries {
		if existing.UserID == e.UserID && existing.Open() {
			return domain.ErrOpenEntryExists
		}
	}
	cp := *e
	m.Entries = append(m.Entries, &cp)
	return nil
}

func (m *MockTimeEntryRepository) Close(ctx context.Context, e *domain.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CloseErr != nil {
		return m.CloseErr
	}
	for _, existing := range m.Entries {
		if existing.ID == e.ID && existing.Open() {
			cp := *e
			*existing = cp
			return nil
		}
	}
	return domain.ErrNotCheckedIn
}

func (m *MockTimeEntryRepository) FindOpenByUser(ctx context.Context, tenantID, userID uuid.UUID) (*domain.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, e := range m.Entries {
		if e.TenantID == tenantID && e.UserID == userID && e.Open() {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockTimeEntryRepository) ListByUserAndDateRange(ctx context.Context, tenantID, userID uuid.UUID, start, end time.Time) ([]*domain.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []*domain.TimeEntry
	for _, e := range m.Entries {
		if e.TenantID != tenantID || e.UserID != userID {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckInTime.After(out[j].CheckInTime)
	})
	return out, nil
}

func (m *MockTimeEntryRepository) FindLatestByUserAndDate(ctx context.Context, tenantID, userID uuid.UUID, date time.Time) (*domain.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var latest *domain.TimeEntry
	for _, e := range m.Entries {
		if e.TenantID != tenantID || e.UserID != userID || !e.Date.Equal(date) {
			continue
		}
		if latest == nil || e.CheckInTime.After(latest.CheckInTime) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// OpenCount returns the number of open entries for a user.
func (m *MockTimeEntryRepository) OpenCount(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.UserID == userID && e.Open() {
			n++
		}
	}
	return n
}

// MockUserRepository is an in-memory implementation of domain.UserRepository.
type MockUserRepository struct {
	mu    sync.Mutex
	Users []*domain.User

	StoreErr error
	FindErr  error
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, u := range m.Users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, u := range m.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	return m.list(tenantID, false)
}

func (m *MockUserRepository) ListAdminsByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	return m.list(tenantID, true)
}

func (m *MockUserRepository) list(tenantID uuid.UUID, adminsOnly bool) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []*domain.User
	for _, u := range m.Users {
		if u.TenantID != tenantID {
			continue
		}
		if adminsOnly && u.Role != domain.RoleAdmin {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockUserRepository) Store(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	for _, existing := range m.Users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	cp := *u
	m.Users = append(m.Users, &cp)
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.Users {
		if u.ID == id {
			m.Users = append(m.Users[:i], m.Users[i+1:]...)
			return nil
		}
	}
	return nil
}

// MockTenantRepository is an in-memory implementation of domain.TenantRepository.
type MockTenantRepository struct {
	mu      sync.Mutex
	Tenants []*domain.Tenant
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Tenants {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockTenantRepository) Store(ctx context.Context, t *domain.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.Tenants = append(m.Tenants, &cp)
	return nil
}

// MockTokenRepository is an in-memory implementation of domain.TokenRepository.
type MockTokenRepository struct {
	mu      sync.Mutex
	Revoked map[string]bool

	RevokeErr error
}

func (m *MockTokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RevokeErr != nil {
		return m.RevokeErr
	}
	if m.Revoked == nil {
		m.Revoked = make(map[string]bool)
	}
	m.Revoked[tokenID] = true
	return nil
}

func (m *MockTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Revoked[tokenID], nil
}
