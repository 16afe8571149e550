package ports

import (
	"context"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

// AuthService implements registration, login and session teardown.
type AuthService interface {
	// Register creates a new client-role account. Admin accounts are never
	// created through this path; see EnsureAdmin.
	Register(ctx context.Context, username, password, organization string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token. The
	// error for an unknown username and a wrong password is the same value
	// so callers cannot enumerate accounts.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the session identified by the token's jti claim.
	Logout(ctx context.Context, tokenID string) error
	// EnsureAdmin provisions the out-of-band admin account at startup if it
	// does not exist yet. A no-op when username is empty.
	EnsureAdmin(ctx context.Context, username, password, organization string) error
}
