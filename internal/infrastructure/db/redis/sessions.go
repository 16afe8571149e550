package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

// SessionStore tracks live sessions in Redis.
// Key format: session:<token_id>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create records a live session that expires with the token.
func (s *SessionStore) Create(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("session create: %w: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// Exists reports whether the session is still live.
func (s *SessionStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w: %v", domain.ErrUnavailable, err)
	}
	return n > 0, nil
}

// Revoke deletes the session. Revoking an unknown or expired session is not
// an error.
func (s *SessionStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("session revoke: %w: %v", domain.ErrUnavailable, err)
	}
	return nil
}

func (s *SessionStore) key(tokenID string) string {
	return "session:" + tokenID
}
