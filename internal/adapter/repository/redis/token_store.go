package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_tokens:"

// TokenStore implements domain.TokenRepository on Redis. Revocations carry a
// TTL equal to the token's remaining validity, so the set cleans itself up.
type TokenStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewTokenStore creates a new Redis token store.
func NewTokenStore(client *redis.Client, logger *slog.Logger) *TokenStore {
	return &TokenStore{
		client: client,
		logger: logger,
	}
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	s.logger.Debug("token revoked", "token_id", tokenID, "ttl", ttl)
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token %s: %w", tokenID, err)
	}
	return n > 0, nil
}
