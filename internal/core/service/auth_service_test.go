package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubSessionStore struct {
	sessions  map[string]bool
	createErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]bool)}
}

func (s *stubSessionStore) Create(_ context.Context, tokenID string, _ time.Duration) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.sessions[tokenID] = true
	return nil
}

func (s *stubSessionStore) Exists(_ context.Context, tokenID string) (bool, error) {
	return s.sessions[tokenID], nil
}

func (s *stubSessionStore) Revoke(_ context.Context, tokenID string) error {
	delete(s.sessions, tokenID)
	return nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), "alice", "pass123", "acme")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected client role, got %s", user.Role)
	}
	if user.Organization != "acme" {
		t.Fatalf("unexpected organization: %s", user.Organization)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour, discardLogger)

	cases := [][3]string{
		{"", "pass", "acme"},
		{"alice", "", "acme"},
		{"alice", "pass", ""},
		{"   ", "pass", "acme"},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc[0], tc[1], tc[2]); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %q/%q/%q, got %v", tc[0], tc[1], tc[2], err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), "bob", "pass", "acme")
	if _, err := svc.Register(context.Background(), "bob", "pass2", "acme"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(repo, sessions, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), "carol", "s3cret", "acme"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "carol" || claims["role"] != domain.RoleClient || claims["organization"] != "acme" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		t.Fatalf("expected jti claim")
	}
	if live, _ := sessions.Exists(context.Background(), jti); !live {
		t.Fatalf("expected session to be created at login")
	}
}

func TestAuthService_Login_SameErrorForUnknownUserAndBadPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), "dave", "rightpass", "acme")

	_, _, errUnknown := svc.Login(context.Background(), "nobody", "whatever")
	_, _, errBadPass := svc.Login(context.Background(), "dave", "wrongpass")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errBadPass, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", errBadPass)
	}
	if errUnknown.Error() != errBadPass.Error() {
		t.Fatalf("error messages must not distinguish the failure cause: %q vs %q", errUnknown, errBadPass)
	}
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	repo := newStubAuthRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(repo, sessions, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), "erin", "pass", "acme")
	token, _, err := svc.Login(context.Background(), "erin", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	jti, _ := claims["jti"].(string)

	if err := svc.Logout(context.Background(), jti); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if live, _ := sessions.Exists(context.Background(), jti); live {
		t.Fatalf("expected session to be revoked")
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubSessionStore(), "secret", time.Hour, discardLogger)

	if err := svc.EnsureAdmin(context.Background(), "ops", "adminpass", "operations"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	admin, err := repo.FindByUsername(context.Background(), "ops")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}

	// Second call is a no-op.
	if err := svc.EnsureAdmin(context.Background(), "ops", "other", "operations"); err != nil {
		t.Fatalf("EnsureAdmin second call failed: %v", err)
	}

	// Empty credentials skip provisioning entirely.
	if err := svc.EnsureAdmin(context.Background(), "", "", "operations"); err != nil {
		t.Fatalf("EnsureAdmin with empty credentials failed: %v", err)
	}
}
