package ports

import (
	"context"
	"time"
)

// SessionStore tracks live sessions by token id. A session is created at
// login, disappears at logout or when its TTL elapses, and a token whose
// session is gone no longer authenticates.
type SessionStore interface {
	Create(ctx context.Context, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}
