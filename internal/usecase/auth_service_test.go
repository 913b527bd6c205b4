package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/domain/mocks"
	"github.com/rickymcpower/hrSfera/internal/pkg/token"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) (*AuthService, *mocks.MockUserRepository, *mocks.MockTokenRepository, *domain.User) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tenant := &domain.Tenant{ID: uuid.New(), Name: "Farmacia Central"}
	tenants := &mocks.MockTenantRepository{Tenants: []*domain.Tenant{tenant}}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	users := &mocks.MockUserRepository{Users: []*domain.User{user}}
	tokens := &mocks.MockTokenRepository{}

	return NewAuthService(users, tenants, tokens, nil, logger, testSecret, time.Hour), users, tokens, user
}

func TestAuthService_Login(t *testing.T) {
	t.Run("returns a valid token with the user and tenant", func(t *testing.T) {
		s, _, _, user := newAuthFixture(t)

		result, err := s.Login(context.Background(), "maria@example.com", "secret-password")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.User.ID != user.ID {
			t.Error("unexpected user in result")
		}
		if result.Tenant == nil || result.Tenant.ID != user.TenantID {
			t.Error("expected the user's tenant in result")
		}

		claims, err := token.Validate(result.Token, testSecret)
		if err != nil {
			t.Fatalf("token must validate: %v", err)
		}
		if claims.UserID != user.ID || claims.TenantID != user.TenantID || claims.Role != user.Role {
			t.Error("claims must carry the principal")
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		s, _, _, _ := newAuthFixture(t)

		_, errUnknown := s.Login(context.Background(), "nobody@example.com", "secret-password")
		_, errWrong := s.Login(context.Background(), "maria@example.com", "wrong")

		if !errors.Is(errUnknown, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", errUnknown)
		}
		if !errors.Is(errWrong, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", errWrong)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes the token for its remaining validity", func(t *testing.T) {
		s, _, tokens, _ := newAuthFixture(t)

		err := s.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !tokens.Revoked["jti-1"] {
			t.Error("token must be revoked")
		}
	})

	t.Run("an expired token needs no revocation", func(t *testing.T) {
		s, _, tokens, _ := newAuthFixture(t)

		err := s.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tokens.Revoked["jti-2"] {
			t.Error("expired token must not be stored")
		}
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	s, users, _, user := newAuthFixture(t)

	t.Run("returns the account with its tenant", func(t *testing.T) {
		session, err := s.CurrentUser(context.Background(), user.Principal())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.User.ID != user.ID || session.Tenant.ID != user.TenantID {
			t.Error("unexpected session contents")
		}
	})

	t.Run("a deleted account is NotFound", func(t *testing.T) {
		if err := users.Delete(context.Background(), user.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		_, err := s.CurrentUser(context.Background(), user.Principal())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
