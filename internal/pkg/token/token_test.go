package token

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rickymcpower/hrSfera/internal/domain"
)

func TestGenerateAndValidate(t *testing.T) {
	user := &domain.User{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Role:     domain.RoleAdmin,
	}

	signed, err := Generate(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := Validate(signed, "secret")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != user.ID || claims.TenantID != user.TenantID || claims.Role != user.Role {
		t.Error("claims must round-trip the principal")
	}
	if claims.ID == "" {
		t.Error("claims must carry a token id for revocation")
	}

	p := claims.Principal()
	if p.ID != user.ID || p.TenantID != user.TenantID || p.Role != user.Role {
		t.Error("principal must match the user")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	user := &domain.User{ID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleEmployee}

	signed, err := Generate(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := Validate(signed, "other-secret"); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidate_Expired(t *testing.T) {
	user := &domain.User{ID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleEmployee}

	signed, err := Generate(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := Validate(signed, "secret"); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}
