package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
	"github.com/anrssnbv/flight-requests-backend/internal/core/ports"
)

// AuthService implements registration, login and session teardown.
type AuthService struct {
	repo      ports.AuthRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a new client-role account. The role is never taken from
// the caller; self-service registration always yields a client.
func (s *AuthService) Register(ctx context.Context, username, password, organization string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	organization = strings.TrimSpace(organization)
	if username == "" || password == "" || organization == "" {
		return nil, fmt.Errorf("%w: username, password and organization are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Organization: organization,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("organization", created.Organization).Msg("user registered")
	return created, nil
}

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tokenID := uuid.NewString()
	token, err := s.generateToken(user, tokenID)
	if err != nil {
		return "", nil, err
	}

	if err := s.sessions.Create(ctx, tokenID, s.tokenTTL); err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login")
	return token, user, nil
}

// Logout revokes the session; the token is dead from this point even if its
// expiry claim is still in the future.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.Revoke(ctx, tokenID)
}

// EnsureAdmin provisions the single out-of-band admin account at startup.
// Registration never produces admins, so this is the only creation path.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, organization string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.Create(ctx, &domain.User{
		Username:     username,
		Organization: organization,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("admin account provisioned")
	return nil
}

func (s *AuthService) generateToken(user *domain.User, tokenID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"username":     user.Username,
		"organization": user.Organization,
		"role":         user.Role,
		"jti":          tokenID,
		"exp":          time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
