package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rickymcpower/hrSfera/internal/adapter/metrics"
	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/pkg/token"
)

// ErrInvalidCredentials is returned on login with an unknown email or a wrong
// password, indistinguishably.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService implements login/logout over JWTs with a revocation store.
type AuthService struct {
	users   domain.UserRepository
	tenants domain.TenantRepository
	tokens  domain.TokenRepository
	metrics *metrics.AttendanceMetrics
	logger  *slog.Logger

	jwtSecret string
	jwtExpiry time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService. metrics may be nil.
func NewAuthService(users domain.UserRepository, tenants domain.TenantRepository, tokens domain.TokenRepository, m *metrics.AttendanceMetrics, logger *slog.Logger, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		tenants:   tenants,
		tokens:    tokens,
		metrics:   m,
		logger:    logger,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		now:       time.Now,
	}
}

// Login verifies credentials and mints an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.countLogin("error")
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if user == nil {
		s.countLogin("invalid")
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.countLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	signed, err := token.Generate(user, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		s.countLogin("error")
		return nil, fmt.Errorf("generate token: %w", err)
	}

	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		s.countLogin("error")
		return nil, fmt.Errorf("find tenant: %w", err)
	}

	s.countLogin("ok")
	s.logger.Info("login", "user_id", user.ID, "tenant_id", user.TenantID)
	return &LoginResult{Token: signed, User: user, Tenant: tenant}, nil
}

// Logout revokes the presented token for the remainder of its validity.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	if err := s.tokens.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// CurrentUser returns the principal's account with its tenant.
func (s *AuthService) CurrentUser(ctx context.Context, p domain.Principal) (*SessionUser, error) {
	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return &SessionUser{User: user, Tenant: tenant}, nil
}

func (s *AuthService) countLogin(status string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(status).Inc()
	}
}
