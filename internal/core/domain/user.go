package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid username or password")

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Organization string    `json:"organization"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the resolved result of a successful token check. It is built
// once by the auth middleware and passed down; nothing below the transport
// boundary re-parses credentials.
type Identity struct {
	UserID       string
	Username     string
	Organization string
	Role         string
	TokenID      string
}
