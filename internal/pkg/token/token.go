package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rickymcpower/hrSfera/internal/domain"
)

// Claims defines the custom claims carried by an access token. The registered
// ID (jti) is what the revocation store keys on.
type Claims struct {
	UserID   uuid.UUID   `json:"user_id"`
	TenantID uuid.UUID   `json:"tenant_id"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Principal returns the identity the claims assert.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{ID: c.UserID, TenantID: c.TenantID, Role: c.Role}
}

// Generate creates a signed JWT for a user.
func Generate(user *domain.User, secretKey string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secretKey))
}

// Validate parses and validates a JWT string.
func Validate(tokenString, secretKey string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}
