package domain

import (
	"context"
	"time"
)

// TokenRepository defines the interface for the revoked-token store backing
// logout. Revocations only need to live as long as the token itself, so
// implementations may expire entries after ttl.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
