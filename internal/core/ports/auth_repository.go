package ports

import (
	"context"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
