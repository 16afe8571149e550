package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/anrssnbv/flight-requests-backend/internal/api/middleware"
	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

type stubAuthService struct {
	registerUser *domain.User
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
	logoutErr    error

	loggedOutTokenID string
}

func (s *stubAuthService) Register(_ context.Context, _, _, _ string) (*domain.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return s.loginToken, s.loginUser, s.loginErr
}

func (s *stubAuthService) Logout(_ context.Context, tokenID string) error {
	s.loggedOutTokenID = tokenID
	return s.logoutErr
}

func (s *stubAuthService) EnsureAdmin(_ context.Context, _, _, _ string) error {
	return nil
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{
		registerUser: &domain.User{ID: "u1", Username: "alice", Organization: "acme", Role: domain.RoleClient},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"pass","organization":"acme"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.User.Username != "alice" || resp.User.Role != domain.RoleClient {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatalf("password hash leaked in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(http.MethodPost, "/api/auth/register", `{"username":"alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists})

	c, rec := newTestContext(http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"pass","organization":"acme"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "jwt-token",
		loginUser:  &domain.User{ID: "u1", Username: "alice", Role: domain.RoleClient},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token != "jwt-token" || resp.User.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/auth/logout", "")
	c.Set(middleware.IdentityKey, domain.Identity{
		UserID: "u1", Username: "alice", Organization: "acme",
		Role: domain.RoleClient, TokenID: "jti-1",
	})
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.loggedOutTokenID != "jti-1" {
		t.Fatalf("expected session jti-1 to be revoked, got %q", svc.loggedOutTokenID)
	}
}

func TestAuthHandler_Logout_NoIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/api/auth/logout", "")
	err := h.Logout(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}
